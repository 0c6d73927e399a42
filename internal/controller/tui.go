package controller

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	m "github.com/mouse-blink/rtrim/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
)

func statusStyle(status m.Status) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)

	switch status {
	case m.StatusModified:
		return style.Foreground(lipgloss.Color("2"))
	case m.StatusSkipped:
		return style.Foreground(lipgloss.Color("3"))
	case m.StatusFailed:
		return style.Foreground(lipgloss.Color("1"))
	case m.StatusUnchanged:
		return style.Foreground(lipgloss.Color("8"))
	}

	return style
}

// TUI implements UI for interactive terminals: styled output while running,
// and a Bubble Tea browser for saved reports too long for the screen.
type TUI struct {
	output  io.Writer
	verbose bool
	width   int
	height  int
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start initializes the UI and reads the terminal size.
func (t *TUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options)
	t.verbose = cfg.verbose

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd())) //nolint:gosec // fd fits in int
		if err == nil {
			t.width = width
			t.height = height
		}
	}

	return nil
}

// Close finalizes the UI.
func (t *TUI) Close() {}

// DisplayRunInfo shows the title and batch size.
func (t *TUI) DisplayRunInfo(files int, threads int, dryRun bool) {
	mode := ""
	if dryRun {
		mode = " · dry run"
	}

	t.println(titleStyle.Render("✂ rtrim"))
	t.println(mutedStyle.Render(fmt.Sprintf("%d file(s) · %d worker(s)%s", files, threads, mode)))
}

// DisplayOutcome shows one styled line per file.
func (t *TUI) DisplayOutcome(outcome m.Outcome) {
	switch o := outcome.(type) {
	case m.ModifiedFile:
		label := "trimmed"
		if o.DryRun {
			label = "would trim"
		}

		t.println(fmt.Sprintf("  %s %s %s",
			statusStyle(m.StatusModified).Render(label),
			o.Path,
			mutedStyle.Render("-"+humanize.Bytes(uint64(o.BytesRemoved)))))
	case m.SkippedFile:
		if t.verbose {
			t.println(fmt.Sprintf("  %s %s", statusStyle(m.StatusSkipped).Render("skipped "+string(o.Reason)), o.Path))
		}
	case m.UnchangedFile:
		if t.verbose {
			t.println(fmt.Sprintf("  %s %s", statusStyle(m.StatusUnchanged).Render("unchanged"), o.Path))
		}
	case m.FailedFile:
	}
}

// DisplaySummary shows the counts in a box followed by any failures.
func (t *TUI) DisplaySummary(summary m.Summary) {
	t.println("")
	t.println(boxStyle.Render(renderSummaryLines(summary)))

	for _, failure := range summary.Failures {
		t.println(fmt.Sprintf("  %s %s: %v", statusStyle(m.StatusFailed).Render("failed"), failure.Path, failure.Err))
	}
}

// DisplayReport prints the report, or opens a scrollable list when it does
// not fit the terminal.
func (t *TUI) DisplayReport(report m.Report) error {
	model := newReportModel(report)
	model.width = t.width
	model.height = t.height

	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func renderSummaryLines(summary m.Summary) string {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
			statusStyle(m.StatusModified).Render("modified"), accent.Render(fmt.Sprintf("%d", summary.Modified)),
			statusStyle(m.StatusUnchanged).Render("unchanged"), accent.Render(fmt.Sprintf("%d", summary.Unchanged)),
			statusStyle(m.StatusSkipped).Render("skipped"), accent.Render(fmt.Sprintf("%d", summary.Skipped)),
			statusStyle(m.StatusFailed).Render("failed"), accent.Render(fmt.Sprintf("%d", summary.Failed)),
		),
		mutedStyle.Render(fmt.Sprintf("%d file(s), %s removed", summary.Total(), humanize.Bytes(uint64(summary.BytesRemoved)))),
	)
}

func (t *TUI) println(line string) {
	_, _ = fmt.Fprintln(t.output, line)
}
