package domain

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoredDirs are pruned from every directory walk. Hidden directories are
// pruned as well, see ignorePolicy.ignoresDir.
var IgnoredDirs = []string{
	".git",
	".svn",
	".hg",
	"node_modules",
	"target",
	"__pycache__",
	".venv",
	"venv",
	".idea",
	".vscode",
}

type ignorePolicy struct {
	dirs     map[string]struct{}
	patterns []string
}

// ValidateExcludePatterns checks every pattern is a well-formed doublestar glob.
func ValidateExcludePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if pattern == "" || !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return nil
}

func newIgnorePolicy(patterns []string) (ignorePolicy, error) {
	if err := ValidateExcludePatterns(patterns); err != nil {
		return ignorePolicy{}, err
	}

	dirs := make(map[string]struct{}, len(IgnoredDirs))
	for _, name := range IgnoredDirs {
		dirs[name] = struct{}{}
	}

	return ignorePolicy{dirs: dirs, patterns: patterns}, nil
}

// ignoresDir reports whether a directory below a walk root must be pruned.
func (p ignorePolicy) ignoresDir(name, rel string) bool {
	if _, ok := p.dirs[name]; ok {
		return true
	}

	if strings.HasPrefix(name, ".") {
		return true
	}

	return p.excludes(name, rel)
}

// excludes matches the slash-separated path relative to the walk root and
// the base name against the user's exclude globs.
func (p ignorePolicy) excludes(name, rel string) bool {
	for _, pattern := range p.patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}

		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}

	return false
}
