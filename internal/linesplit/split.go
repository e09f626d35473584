package linesplit

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"

	"nasutil/internal/failure"
)

const (
	initialBufferSize = 4 * 1024
	maxLineSize       = 1024 * 1024
)

// DecodeError reports a line whose bytes are not valid UTF-8.
type DecodeError struct {
	Line  int
	Bytes []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: invalid utf-8 (%d bytes)", e.Line, len(e.Bytes))
}

func (e *DecodeError) Unwrap() error {
	return failure.ErrDecode
}

// Split is a bufio.SplitFunc that ends a token at "\n", "\r", or "\r\n".
// A "\r" sitting at the end of the buffered data is held back until the
// next byte is known, so a "\r\n" pair split across two reads still counts
// as a single boundary.
func Split(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// NewScanner returns a scanner over r configured with Split and a bounded
// line buffer.
func NewScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialBufferSize), maxLineSize)
	scanner.Split(Split)
	return scanner
}

// Lines yields the decoded lines of r. Iteration blocks until the next line
// is available and stops at end of stream. A read failure or a line that is
// not valid UTF-8 is yielded once as a non-nil error, after which the
// sequence ends.
func Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := NewScanner(r)
		lineNo := 0
		for scanner.Scan() {
			lineNo++
			raw := scanner.Bytes()
			if !utf8.Valid(raw) {
				yield("", &DecodeError{Line: lineNo, Bytes: bytes.Clone(raw)})
				return
			}
			if !yield(string(raw), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", failure.Wrap(failure.ErrIO, "read stream", "", err))
		}
	}
}

// Collect drains r and returns every line. It is intended for tests and
// small inputs.
func Collect(r io.Reader) ([]string, error) {
	var out []string
	for line, err := range Lines(r) {
		if err != nil {
			return out, err
		}
		out = append(out, line)
	}
	return out, nil
}
