// Package model defines the data structures shared by the trim pipeline.
package model

import (
	"os"
	"path/filepath"
)

// Path represents a file system path.
type Path string

// Base returns the last element of the path.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// Dir returns all but the last element of the path.
func (p Path) Dir() Path {
	return Path(filepath.Dir(string(p)))
}

// FileCandidate is a path plus the metadata snapshot taken when it was
// inspected. It is owned by a single processing attempt.
type FileCandidate struct {
	Path Path
	Mode os.FileMode // full mode as reported by lstat
	Size int64       // byte length at inspection time, a hint only
}

// Perm returns the permission bits the committed file must carry,
// including setuid, setgid and sticky.
func (c FileCandidate) Perm() os.FileMode {
	return c.Mode & (os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky)
}
