package adapter

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	m "github.com/mouse-blink/rtrim/internal/model"
)

const reportPerm os.FileMode = 0o644

// AtomicWriter replaces a file's content in a single observable step.
type AtomicWriter interface {
	WriteAtomic(path m.Path, content []byte, perm os.FileMode) error
}

// ReportStore persists and retrieves run reports.
type ReportStore interface {
	SaveReport(path m.Path, report m.Report) error
	LoadReport(path m.Path) (m.Report, error)
}

type reportStore struct {
	fs     SourceFSAdapter
	writer AtomicWriter
}

// NewReportStore constructs a YAML ReportStore. Reports are written through
// writer so a crash never leaves a truncated report behind.
func NewReportStore(fs SourceFSAdapter, writer AtomicWriter) ReportStore {
	return &reportStore{fs: fs, writer: writer}
}

func (rs *reportStore) SaveReport(path m.Path, report m.Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := rs.writer.WriteAtomic(path, data, reportPerm); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return nil
}

func (rs *reportStore) LoadReport(path m.Path) (m.Report, error) {
	data, err := rs.fs.ReadRegularFile(path, 0)
	if err != nil {
		return m.Report{}, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("failed to decode report %s: %w", path, err)
	}

	return report, nil
}
