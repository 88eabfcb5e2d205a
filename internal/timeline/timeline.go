package timeline

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/san-kum/orbitreel/internal/trajectory"
)

const (
	DefaultDuration = 20 * time.Second
	DefaultInterval = 40 * time.Millisecond
)

var (
	// ErrNoFrames indicates a non-positive frame count or interval.
	ErrNoFrames = errors.New("timeline: frame count must be positive")

	// ErrTooFewSamples indicates fewer samples than requested frames.
	ErrTooFewSamples = errors.New("timeline: fewer samples than frames")

	// ErrTimeStep indicates a sample spacing that cannot drive realtime playback.
	ErrTimeStep = errors.New("timeline: time step must be positive")

	// ErrMode indicates an unknown playback mode.
	ErrMode = errors.New("timeline: unknown playback mode")
)

type Mode string

const (
	Fixed    Mode = "fixed"
	Realtime Mode = "realtime"
)

// ParseMode accepts "fixed" or "realtime"; the empty string means fixed.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Fixed:
		return Fixed, nil
	case Realtime:
		return Realtime, nil
	}
	return "", fmt.Errorf("%w: %q", ErrMode, s)
}

// FrameRate returns frames per second for a frame interval.
func FrameRate(interval time.Duration) float64 {
	if interval <= 0 {
		return 0
	}
	return float64(time.Second) / float64(interval)
}

// FrameCount returns frame_rate * duration, rounded to the nearest frame.
func FrameCount(duration, interval time.Duration) int {
	return int(math.Round(FrameRate(interval) * duration.Seconds()))
}

// Stride returns total // frames.
func Stride(total, frames int) (int, error) {
	if frames <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrNoFrames, frames)
	}
	if total < frames {
		return 0, fmt.Errorf("%w: %d samples for %d frames", ErrTooFewSamples, total, frames)
	}
	return total / frames, nil
}

// SampledLen returns the number of columns kept when taking every step-th
// of total columns: ceil(total / step).
func SampledLen(total, step int) int {
	if step <= 0 || total <= 0 {
		return 0
	}
	return (total + step - 1) / step
}

// RealtimeStride returns the stride that makes one frame interval cover
// interval of simulated time at sample spacing dt.
func RealtimeStride(interval time.Duration, dt float64) (int, error) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return 0, fmt.Errorf("%w: got %g", ErrTimeStep, dt)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("%w: interval %v", ErrNoFrames, interval)
	}
	step := int(math.Round(interval.Seconds() / dt))
	if step < 1 {
		step = 1
	}
	return step, nil
}

// MedianSpacing returns the median difference between consecutive times.
// Upstream simulators may vary their step, so the median is used rather
// than the first difference.
func MedianSpacing(times []float64) float64 {
	if len(times) < 2 {
		return 0
	}
	diffs := make([]float64, len(times)-1)
	for i := 1; i < len(times); i++ {
		diffs[i-1] = times[i] - times[i-1]
	}
	sort.Float64s(diffs)
	mid := len(diffs) / 2
	if len(diffs)%2 == 0 {
		return (diffs[mid-1] + diffs[mid]) / 2
	}
	return diffs[mid]
}

// Decimate returns a new table holding columns 0, step, 2*step, ... of t.
func Decimate(t *trajectory.Table, step int) (*trajectory.Table, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: stride %d", ErrNoFrames, step)
	}
	out := &trajectory.Table{
		Times:  every(t.Times, step),
		Bodies: make([]trajectory.Body, len(t.Bodies)),
	}
	for i, b := range t.Bodies {
		out.Bodies[i] = trajectory.Body{X: every(b.X, step), Y: every(b.Y, step)}
	}
	return out, nil
}

func every(src []float64, step int) []float64 {
	dst := make([]float64, 0, SampledLen(len(src), step))
	for j := 0; j < len(src); j += step {
		dst = append(dst, src[j])
	}
	return dst
}
