package timeline

import (
	"fmt"
	"time"

	"github.com/san-kum/orbitreel/internal/trajectory"
)

// Settings selects how a table is mapped to frames.
type Settings struct {
	Mode     Mode
	Duration time.Duration
	Interval time.Duration
	// TimeStep overrides the sample spacing in realtime mode. Zero means
	// derive it from the time row.
	TimeStep float64
}

func DefaultSettings() Settings {
	return Settings{
		Mode:     Fixed,
		Duration: DefaultDuration,
		Interval: DefaultInterval,
	}
}

// Plan is the resolved frame schedule for one table.
type Plan struct {
	Mode     Mode
	Frames   int
	Step     int
	Samples  int
	Interval time.Duration
}

// FPS returns the output frame rate.
func (p Plan) FPS() float64 {
	return FrameRate(p.Interval)
}

// Length returns the playback length of the encoded video.
func (p Plan) Length() time.Duration {
	return time.Duration(p.Frames) * p.Interval
}

// NewPlan resolves settings against a table.
func NewPlan(t *trajectory.Table, s Settings) (Plan, error) {
	if s.Interval <= 0 {
		return Plan{}, fmt.Errorf("%w: interval %v", ErrNoFrames, s.Interval)
	}

	p := Plan{Mode: s.Mode, Samples: t.Len(), Interval: s.Interval}

	switch s.Mode {
	case Fixed, "":
		p.Mode = Fixed
		p.Frames = FrameCount(s.Duration, s.Interval)
		step, err := Stride(t.Len(), p.Frames)
		if err != nil {
			return Plan{}, err
		}
		p.Step = step

	case Realtime:
		dt := s.TimeStep
		if dt == 0 {
			dt = MedianSpacing(t.Times)
		}
		step, err := RealtimeStride(s.Interval, dt)
		if err != nil {
			return Plan{}, err
		}
		p.Step = step
		p.Frames = SampledLen(t.Len(), step)
		if p.Frames == 0 {
			return Plan{}, fmt.Errorf("%w: empty table", ErrNoFrames)
		}

	default:
		return Plan{}, fmt.Errorf("%w: %q", ErrMode, s.Mode)
	}

	return p, nil
}

// Apply decimates t by the plan's stride.
func (p Plan) Apply(t *trajectory.Table) (*trajectory.Table, error) {
	return Decimate(t, p.Step)
}
