package viz

import (
	"math"

	"github.com/san-kum/orbitreel/internal/render"
	"github.com/san-kum/orbitreel/internal/trajectory"
)

// Projector maps viewport coordinates to canvas dots with equal scale on
// both axes, centring the viewport on the canvas.
type Projector struct {
	vp     render.Viewport
	scale  float64
	ox, oy float64
}

// NewProjector fits vp into a canvas of w by h dots. A Braille dot is
// roughly square on a typical terminal font.
func NewProjector(vp render.Viewport, w, h int) Projector {
	sx := float64(w-1) / vp.Width()
	sy := float64(h-1) / vp.Height()
	scale := math.Min(sx, sy)
	return Projector{
		vp:    vp,
		scale: scale,
		ox:    (float64(w-1) - scale*vp.Width()) / 2,
		oy:    (float64(h-1) - scale*vp.Height()) / 2,
	}
}

// Dot returns the canvas dot for p. y grows downwards on the canvas.
func (pr Projector) Dot(p trajectory.Point) (int, int) {
	x := pr.ox + (p.X-pr.vp.XMin)*pr.scale
	y := pr.oy + (pr.vp.YMax-p.Y)*pr.scale
	return int(math.Round(x)), int(math.Round(y))
}

// DrawTraces clips every trace to the viewport and draws it in its body's
// ink.
func DrawTraces(c *Canvas, pr Projector, traces []render.Trace) {
	for _, tr := range traces {
		for _, line := range pr.vp.Clip(tr.Points) {
			x0, y0 := pr.Dot(line[0])
			if len(line) == 1 {
				c.Set(x0, y0, tr.Body)
				continue
			}
			for _, p := range line[1:] {
				x1, y1 := pr.Dot(p)
				c.DrawLine(x0, y0, x1, y1, tr.Body)
				x0, y0 = x1, y1
			}
		}
	}
}
