// Package indent prefixes every line of a block of text, the way the
// coil serializer nests a struct's body inside its enclosing braces.
package indent

import (
	"bytes"
	"io"
	"strings"
)

// String returns in with prefix inserted at the start of every non-empty
// line (a line is a run of text up to and including its trailing '\n').
func String(prefix, in string) string {
	if in == "" {
		return in
	}
	var b strings.Builder
	for _, line := range strings.SplitAfter(in, "\n") {
		if line == "" {
			continue
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}

// Bytes is String for []byte input.
func Bytes(prefix string, in []byte) []byte {
	return []byte(String(prefix, string(in)))
}

// NewWriter wraps w so every line written through it is prefixed.
func NewWriter(w io.Writer, prefix string) io.Writer {
	return &writer{w: w, prefix: prefix, atStart: true}
}

type writer struct {
	w       io.Writer
	prefix  string
	atStart bool
}

func (iw *writer) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		if iw.atStart {
			if _, err := iw.w.Write([]byte(iw.prefix)); err != nil {
				return written, err
			}
			iw.atStart = false
		}
		idx := bytes.IndexByte(p, '\n')
		if idx < 0 {
			n, err := iw.w.Write(p)
			written += n
			return written, err
		}
		n, err := iw.w.Write(p[:idx+1])
		written += n
		if err != nil {
			return written, err
		}
		iw.atStart = true
		p = p[idx+1:]
	}
	return written, nil
}
