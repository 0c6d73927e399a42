package model

// Status is the printable name of an outcome kind.
type Status string

// Outcome statuses.
const (
	StatusSkipped   Status = "skipped"
	StatusUnchanged Status = "unchanged"
	StatusModified  Status = "modified"
	StatusFailed    Status = "failed"
)

// Outcome is the per-file result handed back to the caller. SkippedFile,
// UnchangedFile, ModifiedFile and FailedFile are the only implementations.
type Outcome interface {
	File() Path
	Status() Status
}

// SkippedFile is a deliberate policy decision, not an error.
type SkippedFile struct {
	Path   Path
	Reason SkipReason
}

// UnchangedFile had no trailing whitespace.
type UnchangedFile struct {
	Path Path
}

// ModifiedFile was rewritten, or would have been when DryRun is set.
type ModifiedFile struct {
	Path         Path
	BytesRemoved int
	DryRun       bool
}

// FailedFile could not be read or committed. The original content is intact.
type FailedFile struct {
	Path Path
	Err  error
}

// File returns the path the outcome refers to.
func (o SkippedFile) File() Path { return o.Path }

// File returns the path the outcome refers to.
func (o UnchangedFile) File() Path { return o.Path }

// File returns the path the outcome refers to.
func (o ModifiedFile) File() Path { return o.Path }

// File returns the path the outcome refers to.
func (o FailedFile) File() Path { return o.Path }

// Status returns StatusSkipped.
func (SkippedFile) Status() Status { return StatusSkipped }

// Status returns StatusUnchanged.
func (UnchangedFile) Status() Status { return StatusUnchanged }

// Status returns StatusModified.
func (ModifiedFile) Status() Status { return StatusModified }

// Status returns StatusFailed.
func (FailedFile) Status() Status { return StatusFailed }
