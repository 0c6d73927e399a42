package domain

import (
	"bytes"
)

var (
	lf   = []byte("\n")
	cr   = []byte("\r")
	crlf = []byte("\r\n")
)

// isTrailingSpace reports whether b is ASCII whitespace that may be removed
// from the end of a line body. A carriage return only counts here when it is
// not the first half of a CRLF terminator.
func isTrailingSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// TrimTrailingWhitespace removes trailing ASCII whitespace from every line of
// content. Each line keeps its own terminator (CRLF or LF) and the final line
// keeps its terminated or unterminated state. The result is a new slice; the
// transform is idempotent.
func TrimTrailingWhitespace(content []byte) []byte {
	out := make([]byte, 0, len(content))

	for len(content) > 0 {
		line, rest, found := bytes.Cut(content, lf)
		content = rest

		var terminator []byte

		if found {
			terminator = lf

			if body, ok := bytes.CutSuffix(line, cr); ok {
				line = body
				terminator = crlf
			}
		}

		out = append(out, trimLineBody(line)...)
		out = append(out, terminator...)
	}

	return out
}

func trimLineBody(line []byte) []byte {
	end := len(line)
	for end > 0 && isTrailingSpace(line[end-1]) {
		end--
	}

	return line[:end]
}
