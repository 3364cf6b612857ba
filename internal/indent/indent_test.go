// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package indent

import (
	"bytes"
	"errors"
	"testing"
)

var tests = []struct {
	prefix, in, out string
}{
	{
		"", "", "",
	}, {
		"--", "", "",
	}, {
		"", "x\nx", "x\nx",
	}, {
		"--", "x", "--x",
	}, {
		"--", "\n", "--\n",
	}, {
		"--", "\n\n", "--\n--\n",
	}, {
		"--", "x\n", "--x\n",
	}, {
		"--", "\nx", "--\n--x",
	}, {
		"--", "two\nlines\n", "--two\n--lines\n",
	}, {
		"--", "\nempty\nfirst\n", "--\n--empty\n--first\n",
	}, {
		"--", "empty\nlast\n\n", "--empty\n--last\n--\n",
	}, {
		"--", "empty\n\nmiddle\n", "--empty\n--\n--middle\n",
	},
}

func TestIndentString(t *testing.T) {
	for x, tt := range tests {
		out := String(tt.prefix, tt.in)
		if out != tt.out {
			t.Errorf("#%d: got %q, want %q", x, out, tt.out)
		}
		bout := string(Bytes(tt.prefix, []byte(tt.in)))
		if bout != out {
			t.Errorf("#%d: Bytes got %q\n String got %q", x, bout, out)
		}
	}
}

func TestIndentWriter(t *testing.T) {
Test:
	for x, tt := range tests {
		for size := 1; size < 64; size <<= 1 {
			var b bytes.Buffer
			w := NewWriter(&b, tt.prefix)
			data := []byte(tt.in)
			for len(data) > size {
				if _, err := w.Write(data[:size]); err != nil {
					t.Errorf("#%d: %v", x, err)
					continue Test
				}
				data = data[size:]
			}
			if _, err := w.Write(data); err != nil {
				t.Errorf("#%d/%d: %v", x, size, err)
				continue Test
			}

			out := b.String()
			if out != tt.out {
				t.Errorf("#%d/%d: got %q, want %q", x, size, out, tt.out)
			}
		}
	}
}

func TestIndentWrittenSize(t *testing.T) {
	for x, tt := range tests {
		var b bytes.Buffer
		w := NewWriter(&b, tt.prefix)
		data := []byte(tt.in)
		if n, _ := w.Write(data); n != len(data) {
			t.Errorf("#%d: got %d, want %d", x, n, len(data))
		}
	}
}

// failAfter is a writer that accepts the first n bytes written to it
// (across possibly several calls) and errors on everything after.
type failAfter struct {
	remaining int
}

func (w *failAfter) Write(buf []byte) (int, error) {
	if w.remaining <= 0 {
		return 0, errors.New("write budget exhausted")
	}
	if len(buf) <= w.remaining {
		w.remaining -= len(buf)
		return len(buf), nil
	}
	n := w.remaining
	w.remaining = 0
	return n, errors.New("write budget exhausted")
}

func TestIndentWriterStopsOnUnderlyingError(t *testing.T) {
	w := NewWriter(&failAfter{remaining: 3}, "--")
	n, err := w.Write([]byte("two\nlines\n"))
	if err == nil {
		t.Fatal("expected an error once the underlying writer's budget is exhausted")
	}
	if n < 0 || n > len("two\nlines\n") {
		t.Fatalf("written count %d out of range", n)
	}
}
