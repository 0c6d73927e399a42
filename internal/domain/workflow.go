package domain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/rtrim/internal/adapter"
	"github.com/mouse-blink/rtrim/internal/controller"
	m "github.com/mouse-blink/rtrim/internal/model"
)

// RunArgs holds the behavior flags for one batch.
type RunArgs struct {
	Roots   []Root
	Exclude []string
	DryRun  bool
	Verbose bool
	Threads int
	Report  m.Path
}

// ViewArgs holds the arguments for displaying a saved report.
type ViewArgs struct {
	Report m.Path
}

// Workflow is the batch driver: collect candidates, classify and commit each
// one, and report the outcomes.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) (m.Summary, error)
	View(args ViewArgs) error
}

type workflow struct {
	collector  Collector
	classifier Classifier
	committer  Committer
	reports    adapter.ReportStore
	ui         controller.UI
	log        m.Logger
	now        func() time.Time

	displayMu sync.Mutex
}

// NewWorkflow creates a new Workflow instance with the provided components.
func NewWorkflow(
	collector Collector,
	classifier Classifier,
	committer Committer,
	reports adapter.ReportStore,
	ui controller.UI,
	log m.Logger,
) Workflow {
	return &workflow{
		collector:  collector,
		classifier: classifier,
		committer:  committer,
		reports:    reports,
		ui:         ui,
		log:        log,
		now:        time.Now,
	}
}

// Run processes every candidate and returns the accumulated summary. Per-file
// failures are part of the summary, not the error. The error is reserved for
// fatal problems found before processing, a failed report write, and
// cancellation. A cancelled run never interrupts a commit already in flight;
// it only stops new files from being started.
func (w *workflow) Run(ctx context.Context, args RunArgs) (m.Summary, error) {
	started := w.now()

	collection, err := w.collector.Collect(args.Roots, args.Exclude)
	if err != nil {
		return m.Summary{}, err
	}

	threads := max(args.Threads, 1)

	if err := w.ui.Start(controller.WithVerbose(args.Verbose)); err != nil {
		return m.Summary{}, err
	}
	defer w.ui.Close()

	w.ui.DisplayRunInfo(len(collection.Paths), threads, args.DryRun)

	outcomes := make([]m.Outcome, 0, len(collection.Failures)+len(collection.Paths))
	for _, failure := range collection.Failures {
		w.display(failure)
		outcomes = append(outcomes, failure)
	}

	for _, outcome := range w.processAll(ctx, collection.Paths, threads, args.DryRun) {
		if outcome != nil {
			outcomes = append(outcomes, outcome)
		}
	}

	var summary m.Summary
	for _, outcome := range outcomes {
		summary = summary.Add(outcome)
	}

	w.ui.DisplaySummary(summary)

	if args.Report != "" {
		report := buildReport(outcomes, summary, started, w.now(), args.DryRun)
		if err := w.reports.SaveReport(args.Report, report); err != nil {
			return summary, err
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("run interrupted after %d of %d files: %w",
			summary.Total()-len(collection.Failures), len(collection.Paths), err)
	}

	return summary, nil
}

// processAll runs files on a bounded pool. Outcomes keep input order; a nil
// entry marks a file that was never started because ctx was cancelled.
func (w *workflow) processAll(ctx context.Context, paths []m.Path, threads int, dryRun bool) []m.Outcome {
	results := make([]m.Outcome, len(paths))

	var group errgroup.Group

	group.SetLimit(threads)

	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}

		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			outcome := w.processFile(path, dryRun)
			results[i] = outcome
			w.display(outcome)

			return nil
		})
	}

	_ = group.Wait()

	return results
}

// processFile classifies path and, when needed, commits the trimmed content.
func (w *workflow) processFile(path m.Path, dryRun bool) m.Outcome {
	candidate, classification, err := w.classifier.Classify(path)
	if err != nil {
		w.log.Warn("failed to read file", "path", path, "error", err)
		return m.FailedFile{Path: path, Err: err}
	}

	switch c := classification.(type) {
	case m.Skip:
		return m.SkippedFile{Path: path, Reason: c.Reason}

	case m.Unchanged:
		return m.UnchangedFile{Path: path}

	case m.Modified:
		if dryRun {
			return m.ModifiedFile{Path: path, BytesRemoved: c.Removed, DryRun: true}
		}

		if err := w.committer.Commit(candidate, c.Content); err != nil {
			w.log.Warn("failed to commit file", "path", path, "error", err)
			return m.FailedFile{Path: path, Err: err}
		}

		w.log.Debug("trimmed file", "path", path, "bytes_removed", c.Removed)

		return m.ModifiedFile{Path: path, BytesRemoved: c.Removed}

	default:
		return m.FailedFile{Path: path, Err: fmt.Errorf("unknown classification %T", classification)}
	}
}

func (w *workflow) display(outcome m.Outcome) {
	w.displayMu.Lock()
	defer w.displayMu.Unlock()

	w.ui.DisplayOutcome(outcome)
}

// View loads a saved report and hands it to the UI.
func (w *workflow) View(args ViewArgs) error {
	report, err := w.reports.LoadReport(args.Report)
	if err != nil {
		return err
	}

	return w.ui.DisplayReport(report)
}

func buildReport(outcomes []m.Outcome, summary m.Summary, started, finished time.Time, dryRun bool) m.Report {
	entries := make([]m.ReportEntry, 0, len(outcomes))
	for _, outcome := range outcomes {
		entries = append(entries, m.NewReportEntry(outcome))
	}

	return m.Report{
		GeneratedAt: started.UTC().Format(time.RFC3339),
		DurationMS:  finished.Sub(started).Milliseconds(),
		DryRun:      dryRun,
		Entries:     entries,
		Summary:     summary,
	}
}
