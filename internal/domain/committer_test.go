package domain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/rtrim/internal/adapter"
	m "github.com/mouse-blink/rtrim/internal/model"
)

func candidateFor(t *testing.T, path string) m.FileCandidate {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err)

	return m.FileCandidate{Path: m.Path(path), Mode: info.Mode(), Size: info.Size()}
}

func TestTempPath(t *testing.T) {
	at := time.Unix(0, 1234567890)

	got := TempPath(m.Path(filepath.Join("dir", "notes.txt")), 42, at)

	assert.Equal(t, m.Path(filepath.Join("dir", ".notes.txt.42.1234567890.tmp")), got)
	assert.NotEqual(t, got, TempPath(m.Path(filepath.Join("dir", "notes.txt")), 42, at.Add(time.Nanosecond)))
	assert.NotEqual(t, got, TempPath(m.Path(filepath.Join("dir", "notes.txt")), 43, at))
}

func TestCommitter_Commit(t *testing.T) {
	t.Run("replaces content and keeps permission bits", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "script.sh")
		writeFile(t, target, "echo hi  \n", 0o754)

		committer := NewCommitter(adapter.NewLocalSourceFSAdapter(), adapter.NopLogger{})

		require.NoError(t, committer.Commit(candidateFor(t, target), []byte("echo hi\n")))

		assert.Equal(t, "echo hi\n", readFile(t, target))
		assert.Equal(t, os.FileMode(0o754), fileMode(t, target).Perm())
		assert.Equal(t, []string{"script.sh"}, dirEntries(t, dir))
	})

	t.Run("read-only target is replaced and stays read-only", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "ro.txt")
		writeFile(t, target, "x \n", 0o444)

		committer := NewCommitter(adapter.NewLocalSourceFSAdapter(), adapter.NopLogger{})

		require.NoError(t, committer.Commit(candidateFor(t, target), []byte("x\n")))

		assert.Equal(t, "x\n", readFile(t, target))
		assert.Equal(t, os.FileMode(0o444), fileMode(t, target).Perm())
	})

	t.Run("existing temp name is never reused", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "a.txt")
		writeFile(t, target, "a \n", 0o644)

		at := time.Unix(0, 99)
		squatter := string(TempPath(m.Path(target), 7, at))
		writeFile(t, squatter, "not mine", 0o600)

		c := &committer{
			fs:  adapter.NewLocalSourceFSAdapter(),
			log: adapter.NopLogger{},
			pid: 7,
			now: func() time.Time { return at },
		}

		err := c.Commit(candidateFor(t, target), []byte("a\n"))

		var commitErr *CommitError
		require.ErrorAs(t, err, &commitErr)
		assert.Equal(t, StageCreate, commitErr.Stage)
		assert.Equal(t, "a \n", readFile(t, target))
		assert.Equal(t, "not mine", readFile(t, squatter))
	})

	t.Run("failed directory sync does not fail the commit", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "a.txt")
		writeFile(t, target, "a \n", 0o644)

		faulty := newFaultyFS()
		faulty.failSyncDir = errors.New("sync not supported")

		committer := NewCommitter(faulty, adapter.NopLogger{})

		require.NoError(t, committer.Commit(candidateFor(t, target), []byte("a\n")))
		assert.Equal(t, "a\n", readFile(t, target))
	})
}

func TestCommitter_CommitFailureLeavesTargetUntouched(t *testing.T) {
	injected := errors.New("injected failure")

	tests := []struct {
		name   string
		inject func(*faultyFS)
		stage  CommitStage
	}{
		{name: "create", inject: func(f *faultyFS) { f.failCreate = injected }, stage: StageCreate},
		{name: "chmod", inject: func(f *faultyFS) { f.failChmod = injected }, stage: StageChmod},
		{name: "write", inject: func(f *faultyFS) { f.failWrite = injected }, stage: StageWrite},
		{name: "sync", inject: func(f *faultyFS) { f.failSync = injected }, stage: StageSync},
		{name: "close", inject: func(f *faultyFS) { f.failClose = injected }, stage: StageClose},
		{name: "rename", inject: func(f *faultyFS) { f.failRename = injected }, stage: StageRename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			target := filepath.Join(dir, "data.txt")
			writeFile(t, target, "keep me  \n", 0o640)

			faulty := newFaultyFS()
			tt.inject(faulty)

			committer := NewCommitter(faulty, adapter.NopLogger{})

			err := committer.Commit(candidateFor(t, target), []byte("keep me\n"))

			var commitErr *CommitError
			require.ErrorAs(t, err, &commitErr)
			assert.Equal(t, tt.stage, commitErr.Stage)
			assert.Equal(t, m.Path(target), commitErr.Path)
			require.ErrorIs(t, err, injected)

			assert.Equal(t, "keep me  \n", readFile(t, target))
			assert.Equal(t, os.FileMode(0o640), fileMode(t, target).Perm())
			assert.Equal(t, []string{"data.txt"}, dirEntries(t, dir), "temporary file left behind")
		})
	}
}

func TestCommitter_WriteAtomic(t *testing.T) {
	t.Run("creates a new file with the given permissions", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "report.yaml")

		committer := NewCommitter(adapter.NewLocalSourceFSAdapter(), adapter.NopLogger{})

		require.NoError(t, committer.WriteAtomic(m.Path(path), []byte("ok\n"), 0o600))

		assert.Equal(t, "ok\n", readFile(t, path))
		assert.Equal(t, os.FileMode(0o600), fileMode(t, path).Perm())
	})

	t.Run("zero permissions fall back to default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")

		committer := NewCommitter(adapter.NewLocalSourceFSAdapter(), adapter.NopLogger{})

		require.NoError(t, committer.WriteAtomic(m.Path(path), []byte("ok\n"), 0))
		assert.Equal(t, defaultPerm, fileMode(t, path).Perm())
	})

	t.Run("existing file keeps its permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		writeFile(t, path, "old\n", 0o640)

		committer := NewCommitter(adapter.NewLocalSourceFSAdapter(), adapter.NopLogger{})

		require.NoError(t, committer.WriteAtomic(m.Path(path), []byte("new\n"), 0o600))

		assert.Equal(t, "new\n", readFile(t, path))
		assert.Equal(t, os.FileMode(0o640), fileMode(t, path).Perm())
	})

	t.Run("symlink is replaced, never written through", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "target.yaml")
		writeFile(t, target, "target\n", 0o644)

		link := filepath.Join(dir, "link.yaml")
		require.NoError(t, os.Symlink(target, link))

		committer := NewCommitter(adapter.NewLocalSourceFSAdapter(), adapter.NopLogger{})

		require.NoError(t, committer.WriteAtomic(m.Path(link), []byte("report\n"), 0o644))

		assert.Equal(t, "target\n", readFile(t, target))
		assert.True(t, fileMode(t, link).IsRegular())
		assert.Equal(t, "report\n", readFile(t, link))
	})

	t.Run("missing directory fails at create", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "report.yaml")

		committer := NewCommitter(adapter.NewLocalSourceFSAdapter(), adapter.NopLogger{})

		err := committer.WriteAtomic(m.Path(path), []byte("x"), 0o644)

		var commitErr *CommitError
		require.ErrorAs(t, err, &commitErr)
		assert.Equal(t, StageCreate, commitErr.Stage)
	})
}

func TestCommitError(t *testing.T) {
	inner := errors.New("disk full")
	err := &CommitError{Path: "a.txt", Stage: StageWrite, Err: inner}

	assert.Equal(t, "commit a.txt: write: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
}
