package util

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// IsEndOfInput reports whether err only means the command stream ran out.
func IsEndOfInput(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	if errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	if errors.Is(err, os.ErrClosed) {
		return true
	}
	return false
}

// IsLineTooLong reports whether a command line exceeded the scanner buffer.
func IsLineTooLong(err error) bool {
	return errors.Is(err, bufio.ErrTooLong)
}
