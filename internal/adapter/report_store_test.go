package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/rtrim/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileWriter struct {
	calls int
	err   error
}

func (w *fileWriter) WriteAtomic(path m.Path, content []byte, perm os.FileMode) error {
	w.calls++
	if w.err != nil {
		return w.err
	}

	return os.WriteFile(string(path), content, perm)
}

func sampleReport() m.Report {
	summary := m.Summary{}.
		Add(m.ModifiedFile{Path: "a.txt", BytesRemoved: 3}).
		Add(m.SkippedFile{Path: "b.bin", Reason: m.SkipBinary})

	return m.Report{
		GeneratedAt: "2026-10-17T10:00:00Z",
		DurationMS:  42,
		Entries: []m.ReportEntry{
			{Path: "a.txt", Status: m.StatusModified, BytesRemoved: 3},
			{Path: "b.bin", Status: m.StatusSkipped, Reason: m.SkipBinary},
		},
		Summary: summary,
	}
}

func TestReportStore_SaveAndLoad(t *testing.T) {
	writer := &fileWriter{}
	store := NewReportStore(NewLocalSourceFSAdapter(), writer)
	path := m.Path(filepath.Join(t.TempDir(), "report.yaml"))

	report := sampleReport()
	require.NoError(t, store.SaveReport(path, report))
	assert.Equal(t, 1, writer.calls)

	raw := string(readFileBytes(t, string(path)))
	assert.Contains(t, raw, "generated_at:")
	assert.Contains(t, raw, "status: modified")
	assert.Contains(t, raw, "reason: binary")

	loaded, err := store.LoadReport(path)
	require.NoError(t, err)
	assert.Equal(t, report.GeneratedAt, loaded.GeneratedAt)
	assert.Equal(t, report.DurationMS, loaded.DurationMS)
	assert.Equal(t, report.Entries, loaded.Entries)
	assert.Equal(t, 1, loaded.Summary.Modified)
	assert.Equal(t, 1, loaded.Summary.Skipped)
	assert.Equal(t, int64(3), loaded.Summary.BytesRemoved)
}

func TestReportStore_SaveWriterError(t *testing.T) {
	boom := errors.New("disk full")
	store := NewReportStore(NewLocalSourceFSAdapter(), &fileWriter{err: boom})

	err := store.SaveReport(m.Path(filepath.Join(t.TempDir(), "report.yaml")), sampleReport())
	require.ErrorIs(t, err, boom)
}

func TestReportStore_LoadErrors(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter(), &fileWriter{})
	root := t.TempDir()

	_, err := store.LoadReport(m.Path(filepath.Join(root, "missing.yaml")))
	require.Error(t, err)

	bad := filepath.Join(root, "bad.yaml")
	writeTestFile(t, bad, "entries: [unterminated\n")

	_, err = store.LoadReport(m.Path(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode report")
}
