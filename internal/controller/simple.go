package controller

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/rtrim/internal/model"
)

var (
	modifiedColor  = color.New(color.FgGreen)
	skippedColor   = color.New(color.FgYellow)
	unchangedColor = color.New(color.Faint)
	failedColor    = color.New(color.FgRed, color.Bold)
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd     *cobra.Command
	verbose bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options)
	s.verbose = cfg.verbose

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// DisplayRunInfo prints the batch size in verbose mode.
func (s *SimpleUI) DisplayRunInfo(files int, threads int, dryRun bool) {
	if !s.verbose {
		return
	}

	mode := ""
	if dryRun {
		mode = " (dry run)"
	}

	s.printf("Processing %d file(s) with %d worker(s)%s\n", files, threads, mode)
}

// DisplayOutcome prints one line per file. Skipped and unchanged files are
// only shown in verbose mode; failures are listed by DisplaySummary.
func (s *SimpleUI) DisplayOutcome(outcome m.Outcome) {
	switch o := outcome.(type) {
	case m.ModifiedFile:
		if o.DryRun {
			s.printf("  %s %s (%s)\n", modifiedColor.Sprint("Would trim:"), o.Path, humanize.Bytes(uint64(o.BytesRemoved)))
			return
		}

		s.printf("  %s %s\n", modifiedColor.Sprint("Processed:"), o.Path)
	case m.SkippedFile:
		if s.verbose {
			s.printf("  %s %s\n", skippedColor.Sprintf("Skipped (%s):", o.Reason), o.Path)
		}
	case m.UnchangedFile:
		if s.verbose {
			s.printf("  %s %s\n", unchangedColor.Sprint("Unchanged:"), o.Path)
		}
	case m.FailedFile:
	}
}

// DisplaySummary prints the per-status table and the failure list.
func (s *SimpleUI) DisplaySummary(summary m.Summary) {
	s.printf("\n%s", renderSummaryTable(summary))

	if summary.BytesRemoved > 0 {
		s.printf("Removed %s of trailing whitespace\n", humanize.Bytes(uint64(summary.BytesRemoved)))
	}

	if !summary.HasFailures() {
		return
	}

	s.printf("\n%s\n", failedColor.Sprintf("%d file(s) failed:", summary.Failed))

	for _, failure := range summary.Failures {
		s.printf("  %s: %v\n", failure.Path, failure.Err)
	}
}

// DisplayReport prints a saved report as a table.
func (s *SimpleUI) DisplayReport(report m.Report) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Status", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, entry := range report.Entries {
		table.Append([]string{string(entry.Path), string(entry.Status), entryDetail(entry)})
	}

	table.Render()

	mode := ""
	if report.DryRun {
		mode = ", dry run"
	}

	s.printf("Report generated %s (%dms%s)\n\n", report.GeneratedAt, report.DurationMS, mode)
	s.printf("%s", tableBuffer.String())
	s.printf("\n%s", renderSummaryTable(report.Summary))

	return nil
}

func renderSummaryTable(summary m.Summary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Status", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	table.Append([]string{string(m.StatusModified), fmt.Sprintf("%d", summary.Modified)})
	table.Append([]string{string(m.StatusUnchanged), fmt.Sprintf("%d", summary.Unchanged)})
	table.Append([]string{string(m.StatusSkipped), fmt.Sprintf("%d", summary.Skipped)})
	table.Append([]string{string(m.StatusFailed), fmt.Sprintf("%d", summary.Failed)})

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", summary.Total())})

	table.Render()

	return tableBuffer.String()
}

func entryDetail(entry m.ReportEntry) string {
	switch entry.Status {
	case m.StatusSkipped:
		return string(entry.Reason)
	case m.StatusModified:
		detail := fmt.Sprintf("-%s", humanize.Bytes(uint64(entry.BytesRemoved)))
		if entry.DryRun {
			detail += " (dry run)"
		}

		return detail
	case m.StatusFailed:
		return entry.Error
	case m.StatusUnchanged:
	}

	return ""
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
