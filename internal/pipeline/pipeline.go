package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/orbitreel/internal/config"
	"github.com/san-kum/orbitreel/internal/encode"
	"github.com/san-kum/orbitreel/internal/render"
	"github.com/san-kum/orbitreel/internal/timeline"
	"github.com/san-kum/orbitreel/internal/trajectory"
)

// Logger is the subset of the logging package the pipeline needs.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Debug(string, ...interface{})
}

// Prepared is a loaded and decimated table ready for rendering.
type Prepared struct {
	Table    *trajectory.Table
	Plan     timeline.Plan
	Viewport render.Viewport
	Palette  render.Palette
	Samples  int
	// Outside counts sampled positions that fall outside the viewport.
	Outside int
}

// Bodies returns the number of bodies in the table.
func (p *Prepared) Bodies() int {
	return p.Table.NumBodies()
}

// Prepare loads cfg.Input, checks every precondition and decimates it.
func Prepare(cfg *config.Config) (*Prepared, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := trajectory.LoadTable(cfg.Input)
	if err != nil {
		return nil, err
	}
	return PrepareTable(cfg, table)
}

// PrepareTable runs the checks and decimation of Prepare on a loaded table.
func PrepareTable(cfg *config.Config, table *trajectory.Table) (*Prepared, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	if err := palette.Check(table.NumBodies()); err != nil {
		return nil, err
	}

	settings, err := cfg.Timeline()
	if err != nil {
		return nil, err
	}
	plan, err := timeline.NewPlan(table, settings)
	if err != nil {
		return nil, err
	}
	sampled, err := plan.Apply(table)
	if err != nil {
		return nil, err
	}

	p := &Prepared{
		Table:    sampled,
		Plan:     plan,
		Viewport: cfg.View(),
		Palette:  palette,
		Samples:  table.Len(),
	}
	for _, b := range sampled.Bodies {
		for j := range b.X {
			if !p.Viewport.Contains(b.At(j)) {
				p.Outside++
			}
		}
	}
	return p, nil
}

// Render writes every planned frame of p to enc in order. It does not
// close enc.
func Render(ctx context.Context, p *Prepared, r render.Renderer, enc encode.Encoder, log Logger) error {
	frames := p.Plan.Frames
	report := frames / 10
	if report == 0 {
		report = 1
	}

	for f := 0; f < frames; f++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		traces, err := render.Traces(p.Table, f)
		if err != nil {
			return err
		}
		img, err := r.Render(traces)
		if err != nil {
			return fmt.Errorf("frame %d: %w", f, err)
		}
		if err := enc.WriteFrame(img); err != nil {
			return fmt.Errorf("frame %d: %w", f, err)
		}

		if (f+1)%report == 0 || f+1 == frames {
			log.Info("frame %d/%d (%.0f%%)", f+1, frames, 100*float64(f+1)/float64(frames))
		}
	}
	return nil
}

// Stats summarises one run.
type Stats struct {
	Input    string
	Output   string
	Snapshot string
	Bodies   int
	Samples  int
	Step     int
	Frames   int
	// Encoded is the frame count reported by the encoder, when it keeps one.
	Encoded int
	Mode     timeline.Mode
	Length   time.Duration
	Elapsed  time.Duration
}

// Run renders cfg.Input to cfg.Output.
func Run(ctx context.Context, cfg *config.Config, verbose bool, log Logger) (*Stats, error) {
	start := time.Now()

	p, err := Prepare(cfg)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Input:   cfg.Input,
		Output:  cfg.Output,
		Bodies:  p.Bodies(),
		Samples: p.Samples,
		Step:    p.Plan.Step,
		Frames:  p.Plan.Frames,
		Mode:    p.Plan.Mode,
		Length:  p.Plan.Length(),
	}

	log.Info("%s: %d bodies, %d samples", cfg.Input, stats.Bodies, stats.Samples)
	log.Info("%s playback: every %d samples, %d frames at %.4g fps", stats.Mode, stats.Step, stats.Frames, p.Plan.FPS())
	if p.Outside > 0 {
		total := p.Table.Len() * p.Bodies()
		log.Warn("%d of %d sampled positions fall outside the viewport and will not be drawn", p.Outside, total)
	}

	enc, err := encode.New(ctx, cfg.EncodeSettings(verbose), cfg.Output)
	if err != nil {
		return nil, err
	}

	if a, ok := enc.(interface{ Args() []string }); ok {
		log.Debug("%s", strings.Join(a.Args(), " "))
	}

	r := render.NewChartRenderer(p.Viewport, p.Palette, cfg.Size)
	if err := Render(ctx, p, r, enc, log); err != nil {
		closeErr := enc.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Join(err, closeErr)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	if f, ok := enc.(interface{ Frames() int }); ok {
		stats.Encoded = f.Frames()
		log.Debug("encoder received %d frames", stats.Encoded)
	}

	if cfg.Snapshot != "" {
		traces, err := render.Traces(p.Table, p.Plan.Frames-1)
		if err != nil {
			return nil, err
		}
		if err := render.Snapshot(cfg.Snapshot, r, traces); err != nil {
			return nil, err
		}
		stats.Snapshot = cfg.Snapshot
	}

	stats.Elapsed = time.Since(start)
	log.Success("wrote %s (%d frames, %v) in %v", cfg.Output, stats.Frames, stats.Length, stats.Elapsed.Round(time.Millisecond))
	return stats, nil
}
