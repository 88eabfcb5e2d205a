package render

import (
	"fmt"

	"github.com/san-kum/orbitreel/internal/trajectory"
)

// Trace is the growing trail of one body up to the current frame.
type Trace struct {
	Body   int
	Points []trajectory.Point
}

// Traces returns, for each body, sampled columns 0 through frame inclusive.
// Successive frames only ever extend these prefixes.
func Traces(t *trajectory.Table, frame int) ([]Trace, error) {
	if frame < 0 || frame >= t.Len() {
		return nil, fmt.Errorf("%w: frame %d, %d samples", ErrFrameRange, frame, t.Len())
	}
	traces := make([]Trace, len(t.Bodies))
	for i, b := range t.Bodies {
		traces[i] = Trace{Body: i, Points: b.Points(frame + 1)}
	}
	return traces, nil
}
