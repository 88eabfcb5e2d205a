package encode

import (
	"errors"
	"strings"
)

var (
	// ErrEncoderMissing indicates the ffmpeg binary could not be found.
	ErrEncoderMissing = errors.New("encode: ffmpeg not found")

	// ErrClosed indicates a write after Close.
	ErrClosed = errors.New("encode: encoder closed")
)

// ExecError reports a failed ffmpeg run with the tail of its stderr.
type ExecError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	msg := "encode: ffmpeg failed: " + e.Err.Error()
	if last := lastLine(e.Stderr); last != "" {
		msg += ": " + last
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
