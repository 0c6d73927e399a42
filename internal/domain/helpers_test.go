package domain

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/rtrim/internal/adapter"
	m "github.com/mouse-blink/rtrim/internal/model"
)

func writeFile(t *testing.T, path string, content string, perm os.FileMode) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}

func fileMode(t *testing.T, path string) os.FileMode {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err)

	return info.Mode()
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	sort.Strings(names)

	return names
}

func relPaths(t *testing.T, root string, paths []m.Path) []string {
	t.Helper()

	rel := make([]string, 0, len(paths))
	for _, path := range paths {
		r, err := filepath.Rel(root, string(path))
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}

	return rel
}

// faultyFS fails selected steps of the commit protocol and otherwise uses
// the local disk.
type faultyFS struct {
	adapter.SourceFSAdapter

	failCreate  error
	failChmod   error
	failWrite   error
	failSync    error
	failClose   error
	failRename  error
	failSyncDir error
	failRead    error
	readErr     map[m.Path]error
	walkFailDir string
	walkErr     error
}

func newFaultyFS() *faultyFS {
	return &faultyFS{SourceFSAdapter: adapter.NewLocalSourceFSAdapter()}
}

func (f *faultyFS) ReadRegularFile(path m.Path, sizeHint int64) ([]byte, error) {
	if err, ok := f.readErr[path]; ok {
		return nil, err
	}

	if f.failRead != nil {
		return nil, f.failRead
	}

	return f.SourceFSAdapter.ReadRegularFile(path, sizeHint)
}

func (f *faultyFS) CreateExclusive(path m.Path, perm os.FileMode) (adapter.TempFile, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}

	tmp, err := f.SourceFSAdapter.CreateExclusive(path, perm)
	if err != nil {
		return nil, err
	}

	return &faultyTempFile{TempFile: tmp, fs: f}, nil
}

func (f *faultyFS) Rename(oldPath, newPath m.Path) error {
	if f.failRename != nil {
		return f.failRename
	}

	return f.SourceFSAdapter.Rename(oldPath, newPath)
}

func (f *faultyFS) SyncDir(path m.Path) error {
	if f.failSyncDir != nil {
		return f.failSyncDir
	}

	return f.SourceFSAdapter.SyncDir(path)
}

func (f *faultyFS) Walk(root m.Path, fn fs.WalkDirFunc) error {
	return f.SourceFSAdapter.Walk(root, func(path string, d fs.DirEntry, err error) error {
		if err == nil && d.IsDir() && f.walkFailDir != "" && d.Name() == f.walkFailDir {
			if cbErr := fn(path, d, f.walkErr); cbErr != nil {
				return cbErr
			}

			return fs.SkipDir
		}

		return fn(path, d, err)
	})
}

type faultyTempFile struct {
	adapter.TempFile

	fs *faultyFS
}

func (t *faultyTempFile) Chmod(mode os.FileMode) error {
	if t.fs.failChmod != nil {
		return t.fs.failChmod
	}

	return t.TempFile.Chmod(mode)
}

// Write stops halfway through when a write failure is injected.
func (t *faultyTempFile) Write(p []byte) (int, error) {
	if t.fs.failWrite != nil {
		n, _ := t.TempFile.Write(p[:len(p)/2])
		return n, t.fs.failWrite
	}

	return t.TempFile.Write(p)
}

func (t *faultyTempFile) Sync() error {
	if t.fs.failSync != nil {
		return t.fs.failSync
	}

	return t.TempFile.Sync()
}

func (t *faultyTempFile) Close() error {
	err := t.TempFile.Close()
	if t.fs.failClose != nil {
		return t.fs.failClose
	}

	return err
}
