package render

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitreel/internal/trajectory"
)

// Viewport is the fixed data window shown in every frame. Data outside it is
// clipped, never rescaled.
type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultViewport is the [-5,5] x [-5,5] square.
func DefaultViewport() Viewport {
	return Viewport{XMin: -5, XMax: 5, YMin: -5, YMax: 5}
}

func (v Viewport) Validate() error {
	for _, f := range []float64{v.XMin, v.XMax, v.YMin, v.YMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite bound in %+v", ErrViewport, v)
		}
	}
	if v.XMin >= v.XMax || v.YMin >= v.YMax {
		return fmt.Errorf("%w: got %+v", ErrViewport, v)
	}
	return nil
}

func (v Viewport) Width() float64  { return v.XMax - v.XMin }
func (v Viewport) Height() float64 { return v.YMax - v.YMin }

// Contains reports whether p lies inside or on the edge of v.
func (v Viewport) Contains(p trajectory.Point) bool {
	return p.X >= v.XMin && p.X <= v.XMax && p.Y >= v.YMin && p.Y <= v.YMax
}

// Clip cuts a polyline against v. A path that leaves and re-enters the
// viewport comes back as several polylines. A single visible point is
// returned as a one-point polyline.
func (v Viewport) Clip(pts []trajectory.Point) [][]trajectory.Point {
	if len(pts) == 1 {
		if v.Contains(pts[0]) {
			return [][]trajectory.Point{{pts[0]}}
		}
		return nil
	}

	var out [][]trajectory.Point
	var cur []trajectory.Point
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}

	for i := 1; i < len(pts); i++ {
		a, b, ok := v.clipSegment(pts[i-1], pts[i])
		if !ok {
			flush()
			continue
		}
		if len(cur) == 0 || cur[len(cur)-1] != a {
			flush()
			cur = append(cur, a)
		}
		cur = append(cur, b)
		if b != pts[i] {
			flush()
		}
	}
	flush()
	return out
}

// clipSegment is Liang-Barsky. Unclipped endpoints are returned unchanged
// so that consecutive segments join exactly.
func (v Viewport) clipSegment(p0, p1 trajectory.Point) (trajectory.Point, trajectory.Point, bool) {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, p0.X - v.XMin},
		{dx, v.XMax - p0.X},
		{-dy, p0.Y - v.YMin},
		{dy, v.YMax - p0.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return p0, p1, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return p0, p1, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return p0, p1, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}

	a, b := p0, p1
	if t0 > 0 {
		a = trajectory.Point{X: p0.X + t0*dx, Y: p0.Y + t0*dy}
	}
	if t1 < 1 {
		b = trajectory.Point{X: p0.X + t1*dx, Y: p0.Y + t1*dy}
	}
	return a, b, true
}
