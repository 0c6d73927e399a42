package model

// SkipReason explains why a file was deliberately left alone.
type SkipReason string

const (
	// SkipSymlink marks symbolic links, which are never followed.
	SkipSymlink SkipReason = "symlink"
	// SkipNotRegular marks directories, sockets, devices and other special files.
	SkipNotRegular SkipReason = "not-a-regular-file"
	// SkipBinary marks content that is not valid UTF-8.
	SkipBinary SkipReason = "binary"
)

// Classification is the decision taken for one file. It is a closed set:
// Skip, Unchanged and Modified are the only implementations.
type Classification interface {
	classification()
}

// Skip means the file must not be touched.
type Skip struct {
	Reason SkipReason
}

// Unchanged means trimming would not alter a single byte.
type Unchanged struct{}

// Modified carries the trimmed content that should replace the file.
type Modified struct {
	Content []byte
	Removed int // bytes dropped by trimming
}

func (Skip) classification()      {}
func (Unchanged) classification() {}
func (Modified) classification()  {}
