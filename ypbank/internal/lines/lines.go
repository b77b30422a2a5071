// Package lines reads newline-terminated text without a line length limit.
package lines

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Reader yields lines with their trailing "\n" or "\r\n" removed.
type Reader struct {
	r      *bufio.Reader
	number int
	done   bool
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next line and its 1-based number. It returns io.EOF once
// the input is exhausted; a final line without a terminator is still returned.
func (lr *Reader) Next() (string, int, error) {
	if lr.done {
		return "", lr.number, io.EOF
	}

	line, err := lr.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", lr.number, err
		}

		lr.done = true

		if line == "" {
			return "", lr.number, io.EOF
		}
	}

	lr.number++

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return line, lr.number, nil
}
