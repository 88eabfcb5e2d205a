package encode

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"time"
)

// GIF buffers frames and writes an animated GIF on Close.
type GIF struct {
	path    string
	delay   int
	palette color.Palette
	anim    gif.GIF
	closed  bool
}

// NewGIF returns a GIF encoder with one frame per interval. GIF delays are
// in hundredths of a second.
func NewGIF(path string, interval time.Duration) *GIF {
	delay := int(interval / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}
	return &GIF{
		path:    path,
		delay:   delay,
		palette: palette.Plan9,
		anim:    gif.GIF{LoopCount: 0},
	}
}

func (g *GIF) WriteFrame(img image.Image) error {
	if g.closed {
		return ErrClosed
	}
	b := img.Bounds()
	frame := image.NewPaletted(b, g.palette)
	draw.Draw(frame, b, img, b.Min, draw.Src)
	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	return nil
}

// Frames returns the number of buffered frames.
func (g *GIF) Frames() int {
	return len(g.anim.Image)
}

func (g *GIF) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true

	f, err := os.Create(g.path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &g.anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
