package model

// Summary accumulates outcome counts for one run. It is a plain value: the
// batch driver threads it through and returns it.
type Summary struct {
	Skipped      int          `yaml:"skipped"`
	Unchanged    int          `yaml:"unchanged"`
	Modified     int          `yaml:"modified"`
	Failed       int          `yaml:"failed"`
	BytesRemoved int64        `yaml:"bytes_removed"`
	Failures     []FailedFile `yaml:"-"`
}

// Add returns the summary with outcome counted in.
func (s Summary) Add(outcome Outcome) Summary {
	switch o := outcome.(type) {
	case SkippedFile:
		s.Skipped++
	case UnchangedFile:
		s.Unchanged++
	case ModifiedFile:
		s.Modified++
		s.BytesRemoved += int64(o.BytesRemoved)
	case FailedFile:
		s.Failed++
		s.Failures = append(s.Failures, o)
	}

	return s
}

// Total returns the number of outcomes counted.
func (s Summary) Total() int {
	return s.Skipped + s.Unchanged + s.Modified + s.Failed
}

// HasFailures reports whether any file failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Report is the persisted record of a single run.
type Report struct {
	GeneratedAt string        `yaml:"generated_at"`
	DurationMS  int64         `yaml:"duration_ms"`
	DryRun      bool          `yaml:"dry_run"`
	Entries     []ReportEntry `yaml:"entries"`
	Summary     Summary       `yaml:"summary"`
}

// ReportEntry is the flattened form of an Outcome.
type ReportEntry struct {
	Path         Path       `yaml:"path"`
	Status       Status     `yaml:"status"`
	Reason       SkipReason `yaml:"reason,omitempty"`
	BytesRemoved int        `yaml:"bytes_removed,omitempty"`
	DryRun       bool       `yaml:"dry_run,omitempty"`
	Error        string     `yaml:"error,omitempty"`
}

// NewReportEntry flattens an outcome for serialization.
func NewReportEntry(outcome Outcome) ReportEntry {
	entry := ReportEntry{Path: outcome.File(), Status: outcome.Status()}

	switch o := outcome.(type) {
	case SkippedFile:
		entry.Reason = o.Reason
	case ModifiedFile:
		entry.BytesRemoved = o.BytesRemoved
		entry.DryRun = o.DryRun
	case FailedFile:
		if o.Err != nil {
			entry.Error = o.Err.Error()
		}
	case UnchangedFile:
	}

	return entry
}
