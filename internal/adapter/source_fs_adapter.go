// Package adapter contains infrastructure adapters for the rtrim CLI.
package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "github.com/mouse-blink/rtrim/internal/model"
)

var (
	// ErrSymlink is returned when a path turned out to be a symbolic link
	// at open time.
	ErrSymlink = errors.New("path is a symbolic link")
	// ErrNotRegular is returned when an opened path is not a regular file.
	ErrNotRegular = errors.New("path is not a regular file")
)

// TempFile is the write side of a freshly created file. *os.File satisfies it.
type TempFile interface {
	io.Writer
	Name() string
	Chmod(mode os.FileMode) error
	Sync() error
	Close() error
}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning and rewriting user files. It hides direct `os`
// access so the classify and commit logic can be tested with injected faults.
//
//nolint:interfacebloat // A richer interface keeps domain logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Lstat returns metadata for path without following a final symlink.
	Lstat(path m.Path) (os.FileInfo, error)

	// ReadRegularFile loads the full content of a regular file. It refuses to
	// follow a final symlink (ErrSymlink) and rejects anything that is not a
	// regular file once opened (ErrNotRegular). sizeHint pre-sizes the buffer.
	ReadRegularFile(path m.Path, sizeHint int64) ([]byte, error)

	// CreateExclusive creates path, failing if anything already exists there.
	CreateExclusive(path m.Path, perm os.FileMode) (TempFile, error)

	// Rename atomically replaces newPath with oldPath.
	Rename(oldPath, newPath m.Path) error

	// Remove deletes a single file.
	Remove(path m.Path) error

	// SyncDir flushes directory metadata (entries created or renamed) to disk.
	SyncDir(path m.Path) error

	// Walk traverses root without following symlinks.
	Walk(root m.Path, fn fs.WalkDirFunc) error

	// Abs returns an absolute, cleaned form of path.
	Abs(path m.Path) (m.Path, error)

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)
}

// LocalSourceFSAdapter implements SourceFSAdapter on top of the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Lstat returns file metadata without following symlinks.
func (a *LocalSourceFSAdapter) Lstat(path m.Path) (os.FileInfo, error) {
	return os.Lstat(string(path))
}

// ReadRegularFile opens path with symlink following disabled and reads it whole.
func (a *LocalSourceFSAdapter) ReadRegularFile(path m.Path, sizeHint int64) ([]byte, error) {
	// #nosec G304 - path comes from the traversal of user-provided roots
	f, err := openNoFollow(string(path))
	if err != nil {
		if isSymlinkError(err) {
			return nil, fmt.Errorf("%w: %s", ErrSymlink, path)
		}

		return nil, err
	}

	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}

	if sizeHint < 0 {
		sizeHint = 0
	}

	buf := bytes.NewBuffer(make([]byte, 0, int(sizeHint)+bytes.MinRead))
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// CreateExclusive creates a new file with O_EXCL so an existing entry, symlinks
// included, is never reused.
func (a *LocalSourceFSAdapter) CreateExclusive(path m.Path, perm os.FileMode) (TempFile, error) {
	// #nosec G304 - path is a sibling of a target we already inspected
	return os.OpenFile(string(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}

// Rename renames oldPath to newPath.
func (a *LocalSourceFSAdapter) Rename(oldPath, newPath m.Path) error {
	return os.Rename(string(oldPath), string(newPath))
}

// Remove deletes a file.
func (a *LocalSourceFSAdapter) Remove(path m.Path) error {
	return os.Remove(string(path))
}

// SyncDir fsyncs a directory.
func (a *LocalSourceFSAdapter) SyncDir(path m.Path) error {
	dir, err := os.Open(string(path))
	if err != nil {
		return err
	}

	defer func() { _ = dir.Close() }()

	return dir.Sync()
}

// Walk iterates over root with filepath.WalkDir, which never follows symlinks.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(string(root), fn)
}

// Abs returns the absolute form of path.
func (a *LocalSourceFSAdapter) Abs(path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}
