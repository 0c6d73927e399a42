//go:build unix

package adapter

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// openNoFollow opens name read-only and fails with ELOOP when the final
// component is a symlink. O_NONBLOCK keeps a fifo swapped in after lstat from
// blocking the open.
func openNoFollow(name string) (*os.File, error) {
	return os.OpenFile(name, os.O_RDONLY|unix.O_NOFOLLOW|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
}

func isSymlinkError(err error) bool {
	return errors.Is(err, unix.ELOOP)
}
