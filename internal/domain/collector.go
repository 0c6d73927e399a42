package domain

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mouse-blink/rtrim/internal/adapter"
	m "github.com/mouse-blink/rtrim/internal/model"
)

// RootKind constrains what a root path given on the command line may be.
type RootKind int

// Available RootKind values.
const (
	RootAny RootKind = iota
	RootFile
	RootFolder
)

// Root is one user-supplied starting point.
type Root struct {
	Path m.Path
	Kind RootKind
}

// Collection is the ordered candidate list plus directories that could not be
// read during the walk.
type Collection struct {
	Paths    []m.Path
	Failures []m.FailedFile
}

// Collector applies the traversal policy: it validates roots, walks
// directories without following symlinks, prunes ignored directories and
// de-duplicates candidates.
type Collector interface {
	Collect(roots []Root, exclude []string) (Collection, error)
}

type collector struct {
	fs  adapter.SourceFSAdapter
	log m.Logger
}

// NewCollector constructs a Collector walking through fsAdapter.
func NewCollector(fsAdapter adapter.SourceFSAdapter, log m.Logger) Collector {
	return &collector{fs: fsAdapter, log: log}
}

// Collect returns an error only for fatal problems (bad pattern, missing root,
// root of the wrong kind), before any candidate is produced.
func (c *collector) Collect(roots []Root, exclude []string) (Collection, error) {
	policy, err := newIgnorePolicy(exclude)
	if err != nil {
		return Collection{}, err
	}

	dirs := make([]bool, len(roots))

	for i, root := range roots {
		isDir, err := c.checkRoot(root)
		if err != nil {
			return Collection{}, err
		}

		dirs[i] = isDir
	}

	var collection Collection

	seen := make(map[m.Path]struct{})
	add := func(path m.Path) {
		key, err := c.fs.Abs(path)
		if err != nil {
			key = path
		}

		if _, exists := seen[key]; exists {
			return
		}

		seen[key] = struct{}{}
		collection.Paths = append(collection.Paths, path)
	}

	for i, root := range roots {
		if !dirs[i] {
			add(root.Path)
			continue
		}

		if err := c.walk(root.Path, policy, add, &collection); err != nil {
			return Collection{}, err
		}
	}

	return collection, nil
}

func (c *collector) checkRoot(root Root) (bool, error) {
	info, err := c.fs.Lstat(root.Path)
	if err != nil {
		return false, fmt.Errorf("root path error: %w", err)
	}

	isDir := info.IsDir()
	isLink := info.Mode()&fs.ModeSymlink != 0

	switch root.Kind {
	case RootFile:
		if isDir {
			return false, fmt.Errorf("%s is a directory, not a file", root.Path)
		}
	case RootFolder:
		if !isDir && !isLink {
			return false, fmt.Errorf("%s is not a directory", root.Path)
		}
	case RootAny:
	}

	return isDir, nil
}

func (c *collector) walk(root m.Path, policy ignorePolicy, add func(m.Path), collection *Collection) error {
	rootStr := string(root)

	return c.fs.Walk(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			c.log.Warn("cannot read directory entry", "path", path, "error", err)
			collection.Failures = append(collection.Failures, m.FailedFile{Path: m.Path(path), Err: err})

			return nil
		}

		if path == rootStr {
			return nil
		}

		rel, relErr := c.fs.RelPath(root, m.Path(path))
		if relErr != nil {
			rel = m.Path(path)
		}

		slashRel := filepath.ToSlash(string(rel))

		if d.IsDir() {
			if policy.ignoresDir(d.Name(), slashRel) {
				c.log.Debug("skipping directory", "path", path)
				return fs.SkipDir
			}

			return nil
		}

		if policy.excludes(d.Name(), slashRel) {
			c.log.Debug("excluded file", "path", path)
			return nil
		}

		add(m.Path(path))

		return nil
	})
}
