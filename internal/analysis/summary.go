package analysis

import (
	"math"

	"github.com/san-kum/orbitreel/internal/render"
	"github.com/san-kum/orbitreel/internal/timeline"
	"github.com/san-kum/orbitreel/internal/trajectory"
)

// BodySummary describes the extent and motion of one body.
type BodySummary struct {
	Body       int
	XMin, XMax float64
	YMin, YMax float64
	// Inside is the fraction of samples within the viewport.
	Inside     float64
	PathLength float64
	// Period is the dominant period of x in time units, 0 if none was found.
	Period float64
}

type Summary struct {
	Samples  int
	Start    float64
	End      float64
	TimeStep float64
	Bodies   []BodySummary
}

// Span returns the simulated time covered by the table.
func (s Summary) Span() float64 {
	return s.End - s.Start
}

// Clipped reports whether any body leaves the viewport.
func (s Summary) Clipped() bool {
	for _, b := range s.Bodies {
		if b.Inside < 1 {
			return true
		}
	}
	return false
}

// Summarize computes per-body statistics of t against vp.
func Summarize(t *trajectory.Table, vp render.Viewport) Summary {
	s := Summary{Samples: t.Len()}
	if len(t.Times) > 0 {
		s.Start = t.Times[0]
		s.End = t.Times[len(t.Times)-1]
	}
	s.TimeStep = timeline.MedianSpacing(t.Times)

	for i, b := range t.Bodies {
		s.Bodies = append(s.Bodies, summarizeBody(i, b, vp, s.TimeStep))
	}
	return s
}

func summarizeBody(i int, b trajectory.Body, vp render.Viewport, dt float64) BodySummary {
	bs := BodySummary{
		Body: i,
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	n := len(b.X)
	if n == 0 {
		return BodySummary{Body: i}
	}

	inside := 0
	for j := 0; j < n; j++ {
		p := b.At(j)
		bs.XMin = math.Min(bs.XMin, p.X)
		bs.XMax = math.Max(bs.XMax, p.X)
		bs.YMin = math.Min(bs.YMin, p.Y)
		bs.YMax = math.Max(bs.YMax, p.Y)
		if vp.Contains(p) {
			inside++
		}
		if j > 0 {
			q := b.At(j - 1)
			bs.PathLength += math.Hypot(p.X-q.X, p.Y-q.Y)
		}
	}
	bs.Inside = float64(inside) / float64(n)
	bs.Period = DominantPeriod(b.X, dt)
	return bs
}

// Distances returns the distance of body i from the origin at every sample.
func Distances(t *trajectory.Table, i int) []float64 {
	b := t.Bodies[i]
	d := make([]float64, len(b.X))
	for j := range d {
		d[j] = math.Hypot(b.X[j], b.Y[j])
	}
	return d
}
