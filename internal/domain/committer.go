package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mouse-blink/rtrim/internal/adapter"
	m "github.com/mouse-blink/rtrim/internal/model"
)

// CommitStage names the step of the write-sync-rename protocol that failed.
type CommitStage string

// Commit stages in protocol order.
const (
	StageCreate CommitStage = "create"
	StageChmod  CommitStage = "chmod"
	StageWrite  CommitStage = "write"
	StageSync   CommitStage = "sync"
	StageClose  CommitStage = "close"
	StageRename CommitStage = "rename"
)

// CommitError reports a failed commit. The target is guaranteed untouched.
type CommitError struct {
	Path  m.Path
	Stage CommitStage
	Err   error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

const defaultPerm os.FileMode = 0o644

// Committer replaces file content atomically: the target either holds the
// complete new content with its original permissions, or is left as it was.
type Committer interface {
	// Commit rewrites an inspected candidate with content.
	Commit(target m.FileCandidate, content []byte) error
	// WriteAtomic writes path, which may not exist yet. An existing regular
	// file keeps its permission bits, otherwise perm is used.
	WriteAtomic(path m.Path, content []byte, perm os.FileMode) error
}

type committer struct {
	fs  adapter.SourceFSAdapter
	log m.Logger
	pid int
	now func() time.Time
}

// NewCommitter constructs a Committer writing through fs.
func NewCommitter(fsAdapter adapter.SourceFSAdapter, log m.Logger) Committer {
	return &committer{
		fs:  fsAdapter,
		log: log,
		pid: os.Getpid(),
		now: time.Now,
	}
}

// TempPath returns the sibling temp file used while committing target:
// .{name}.{pid}.{unix-nanos}.tmp in the same directory.
func TempPath(target m.Path, pid int, at time.Time) m.Path {
	name := fmt.Sprintf(".%s.%d.%d.tmp", target.Base(), pid, at.UnixNano())

	return m.Path(filepath.Join(string(target.Dir()), name))
}

func (c *committer) Commit(target m.FileCandidate, content []byte) error {
	return c.commit(target.Path, target.Perm(), content)
}

func (c *committer) WriteAtomic(path m.Path, content []byte, perm os.FileMode) error {
	info, err := c.fs.Lstat(path)

	switch {
	case err == nil && info.Mode().IsRegular():
		perm = m.FileCandidate{Mode: info.Mode()}.Perm()
	case err == nil:
		// rename replaces the entry itself, never what a symlink points at
	case errors.Is(err, fs.ErrNotExist):
	default:
		return &CommitError{Path: path, Stage: StageCreate, Err: err}
	}

	if perm == 0 {
		perm = defaultPerm
	}

	return c.commit(path, perm, content)
}

func (c *committer) commit(target m.Path, perm os.FileMode, content []byte) error {
	tmpPath := TempPath(target, c.pid, c.now())

	tmp, err := c.fs.CreateExclusive(tmpPath, perm)
	if err != nil {
		return &CommitError{Path: target, Stage: StageCreate, Err: err}
	}

	committed := false

	defer func() {
		if committed {
			return
		}

		if err := c.fs.Remove(tmpPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("failed to remove temporary file", "path", tmpPath, "error", err)
		}
	}()

	if stage, err := writeAndSync(tmp, perm, content); err != nil {
		return &CommitError{Path: target, Stage: stage, Err: err}
	}

	if err := c.fs.Rename(tmpPath, target); err != nil {
		return &CommitError{Path: target, Stage: StageRename, Err: err}
	}

	committed = true

	// content is already in place, a failed directory sync is only logged
	if err := c.fs.SyncDir(target.Dir()); err != nil {
		c.log.Warn("failed to sync directory", "dir", target.Dir(), "error", err)
	}

	return nil
}

// writeAndSync fills tmp and makes it durable. tmp is always closed.
func writeAndSync(tmp adapter.TempFile, perm os.FileMode, content []byte) (CommitStage, error) {
	closed := false

	defer func() {
		if !closed {
			_ = tmp.Close()
		}
	}()

	// explicit chmod, the umask applied at create time may have narrowed perm
	if err := tmp.Chmod(perm); err != nil {
		return StageChmod, err
	}

	if _, err := tmp.Write(content); err != nil {
		return StageWrite, err
	}

	if err := tmp.Sync(); err != nil {
		return StageSync, err
	}

	closed = true

	if err := tmp.Close(); err != nil {
		return StageClose, err
	}

	return "", nil
}
