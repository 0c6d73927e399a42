package domain

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/mouse-blink/rtrim/internal/adapter"
	m "github.com/mouse-blink/rtrim/internal/model"
)

// ReadError is an operational failure while inspecting or reading a file.
// Unlike a skip it is reported to the caller as a failure.
type ReadError struct {
	Path m.Path
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Classifier decides whether a file may be rewritten and computes its trimmed
// content. It never writes to the filesystem.
type Classifier interface {
	Classify(path m.Path) (m.FileCandidate, m.Classification, error)
}

type classifier struct {
	fs  adapter.SourceFSAdapter
	log m.Logger
}

// NewClassifier constructs a Classifier reading through fs.
func NewClassifier(fs adapter.SourceFSAdapter, log m.Logger) Classifier {
	return &classifier{fs: fs, log: log}
}

// Classify returns exactly one classification for path, or a *ReadError.
// The candidate carries the metadata snapshot the committer needs.
func (c *classifier) Classify(path m.Path) (m.FileCandidate, m.Classification, error) {
	info, err := c.fs.Lstat(path)
	if err != nil {
		return m.FileCandidate{}, nil, &ReadError{Path: path, Err: err}
	}

	candidate := m.FileCandidate{Path: path, Mode: info.Mode(), Size: info.Size()}

	if info.Mode()&os.ModeSymlink != 0 {
		return candidate, c.skip(path, m.SkipSymlink), nil
	}

	if !info.Mode().IsRegular() {
		return candidate, c.skip(path, m.SkipNotRegular), nil
	}

	content, err := c.fs.ReadRegularFile(path, info.Size())

	switch {
	case errors.Is(err, adapter.ErrSymlink):
		return candidate, c.skip(path, m.SkipSymlink), nil
	case errors.Is(err, adapter.ErrNotRegular):
		return candidate, c.skip(path, m.SkipNotRegular), nil
	case err != nil:
		return candidate, nil, &ReadError{Path: path, Err: err}
	}

	if !utf8.Valid(content) {
		return candidate, c.skip(path, m.SkipBinary), nil
	}

	trimmed := TrimTrailingWhitespace(content)
	if bytes.Equal(trimmed, content) {
		return candidate, m.Unchanged{}, nil
	}

	return candidate, m.Modified{Content: trimmed, Removed: len(content) - len(trimmed)}, nil
}

func (c *classifier) skip(path m.Path, reason m.SkipReason) m.Skip {
	c.log.Debug("skipping file", "path", path, "reason", reason)

	return m.Skip{Reason: reason}
}
