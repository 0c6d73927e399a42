//go:build !unix

package adapter

import (
	"os"
)

// openNoFollow falls back to a plain open; callers still lstat first.
func openNoFollow(name string) (*os.File, error) {
	return os.Open(name)
}

func isSymlinkError(error) bool {
	return false
}
