package encode

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
)

// stderrLimit bounds the captured ffmpeg stderr.
const stderrLimit = 64 << 10

// FFmpeg streams PNG frames into an ffmpeg child process.
type FFmpeg struct {
	args   []string
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	buf    *bufio.Writer
	stderr *tailBuffer
	png    png.Encoder
	frames int
	closed bool
}

// StartFFmpeg launches ffmpeg writing to output. The process is killed if
// ctx is cancelled.
func StartFFmpeg(ctx context.Context, s Settings, output string) (*FFmpeg, error) {
	bin, err := exec.LookPath(s.binary())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEncoderMissing, s.binary())
	}

	args := BuildArgs(s, output)
	cmd := exec.CommandContext(ctx, bin, args[1:]...)

	stderr := &tailBuffer{limit: stderrLimit}
	if s.Verbose {
		cmd.Stderr = io.MultiWriter(stderr, os.Stderr)
	} else {
		cmd.Stderr = stderr
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, &ExecError{Args: args, Err: err}
	}

	return &FFmpeg{
		args:   args,
		cmd:    cmd,
		stdin:  stdin,
		buf:    bufio.NewWriterSize(stdin, 256<<10),
		stderr: stderr,
		png:    png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

// Args returns the command line ffmpeg was started with.
func (f *FFmpeg) Args() []string {
	return f.args
}

// Frames returns the number of frames written so far.
func (f *FFmpeg) Frames() int {
	return f.frames
}

func (f *FFmpeg) WriteFrame(img image.Image) error {
	if f.closed {
		return ErrClosed
	}
	if err := f.png.Encode(f.buf, img); err != nil {
		// A broken pipe means ffmpeg exited; its stderr says why.
		return f.abort(err)
	}
	f.frames++
	return nil
}

// Close flushes pending frames, closes stdin and waits for ffmpeg to
// finish writing the container.
func (f *FFmpeg) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	flushErr := f.buf.Flush()
	f.stdin.Close()
	if err := f.cmd.Wait(); err != nil {
		return &ExecError{Args: f.args, Stderr: f.stderr.String(), Err: err}
	}
	if flushErr != nil {
		return &ExecError{Args: f.args, Stderr: f.stderr.String(), Err: flushErr}
	}
	return nil
}

func (f *FFmpeg) abort(cause error) error {
	f.closed = true
	f.stdin.Close()
	if err := f.cmd.Wait(); err != nil {
		cause = err
	}
	return &ExecError{Args: f.args, Stderr: f.stderr.String(), Err: cause}
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	limit int
	buf   bytes.Buffer
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	t.buf.Write(p)
	if over := t.buf.Len() - t.limit; over > 0 {
		t.buf.Next(over)
	}
	return n, nil
}

func (t *tailBuffer) String() string {
	return t.buf.String()
}
