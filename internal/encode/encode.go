package encode

import (
	"context"
	"image"
	"path/filepath"
	"strings"
)

// Encoder receives frames in order and finalises the output on Close.
type Encoder interface {
	WriteFrame(img image.Image) error
	Close() error
}

// New returns a GIF encoder for .gif outputs and an ffmpeg encoder for
// everything else.
func New(ctx context.Context, s Settings, output string) (Encoder, error) {
	if strings.EqualFold(filepath.Ext(output), ".gif") {
		return NewGIF(output, s.Interval), nil
	}
	return StartFFmpeg(ctx, s, output)
}

// NeedsFFmpeg reports whether output is written through ffmpeg.
func NeedsFFmpeg(output string) bool {
	return !strings.EqualFold(filepath.Ext(output), ".gif")
}
