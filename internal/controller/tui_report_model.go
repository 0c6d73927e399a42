package controller

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/rtrim/internal/model"
)

const (
	defaultWidth  = 80
	statusWidth   = 10
	reservedLines = 9 // title, summary, footer, borders and headers
	listChrome    = 2 // filter bar of the list itself
)

// entryItem is one report entry in the list.
type entryItem struct {
	entry m.ReportEntry
}

func (e entryItem) FilterValue() string {
	return string(e.entry.Path)
}

type entryDelegate struct{}

func (d entryDelegate) Height() int  { return 1 }
func (d entryDelegate) Spacing() int { return 0 }
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d entryDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	e, ok := item.(entryItem)
	if !ok {
		return
	}

	width := lm.Width() - statusWidth - 2
	path := truncateToWidth(string(e.entry.Path), width)

	badge := statusStyle(e.entry.Status).Width(statusWidth)
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	if index == lm.Index() {
		badge = badge.Background(lipgloss.Color("6")).Foreground(lipgloss.Color("0"))
		pathStyle = pathStyle.Background(lipgloss.Color("6")).Foreground(lipgloss.Color("0")).Bold(true)
	}

	_, _ = fmt.Fprintf(w, "%s  %s", badge.Render(string(e.entry.Status)), pathStyle.Render(path))
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)
	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// reportModel browses a saved report.
type reportModel struct {
	report   m.Report
	entries  list.Model
	width    int
	height   int
	quitting bool
}

func newReportModel(report m.Report) reportModel {
	items := make([]list.Item, 0, len(report.Entries))
	for _, entry := range report.Entries {
		items = append(items, entryItem{entry: entry})
	}

	entries := list.New(items, entryDelegate{}, defaultWidth, 20)
	entries.SetShowPagination(false)
	entries.SetShowFilter(true)
	entries.SetShowHelp(false)
	entries.SetShowTitle(false)
	entries.SetShowStatusBar(false)
	entries.FilterInput.Placeholder = "Filter by path…"

	return reportModel{report: report, entries: entries}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.width = msg.Width
		rm.height = msg.Height

		return rm, nil

	case tea.KeyMsg:
		if rm.entries.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "esc", "ctrl+c":
				rm.quitting = true
				return rm, tea.Quit
			}
		} else if msg.String() == "ctrl+c" {
			rm.quitting = true
			return rm, tea.Quit
		}
	}

	var cmd tea.Cmd

	rm.entries, cmd = rm.entries.Update(msg)

	return rm, cmd
}

// listHeight is the number of entry rows that fit under the header.
func (rm reportModel) listHeight() int {
	if rm.height == 0 {
		return len(rm.report.Entries)
	}

	return max(rm.height-reservedLines-listChrome, 5)
}

// needsPagination returns true if the entries do not fit on screen.
func (rm reportModel) needsPagination() bool {
	return rm.height > 0 && len(rm.report.Entries) > rm.listHeight()
}

func (rm reportModel) View() string {
	if rm.quitting {
		return ""
	}

	width := rm.width
	if width == 0 {
		width = defaultWidth
	}

	title := titleStyle.Padding(1, 0, 0, 2).Render("✂ rtrim report")

	generated := fmt.Sprintf("generated %s · %dms", rm.report.GeneratedAt, rm.report.DurationMS)
	if rm.report.DryRun {
		generated += " · dry run"
	}

	summary := lipgloss.NewStyle().Padding(0, 0, 1, 2).Render(lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(generated),
		renderSummaryLines(rm.report.Summary),
	))

	if len(rm.report.Entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, summary, "  No files recorded\n")
	}

	listWidth := max(width-6, 20)

	entries := rm.entries
	entries.SetWidth(listWidth)
	entries.SetHeight(rm.listHeight() + listChrome)

	headers := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth).
		Render(fmt.Sprintf("%-*s  %s", statusWidth, "Status", "File Path"))

	table := boxStyle.Margin(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, headers, entries.View()))

	parts := []string{title, summary, table}

	if rm.needsPagination() {
		footer := mutedStyle.Align(lipgloss.Center).Width(width).
			Render("↑/k up • ↓/j down • / filter • q quit")
		parts = append(parts, footer)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}
