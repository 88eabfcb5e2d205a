package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitreel/internal/config"
	"github.com/san-kum/orbitreel/internal/pipeline"
	"github.com/san-kum/orbitreel/internal/render"
	"github.com/san-kum/orbitreel/internal/timeline"
	"github.com/san-kum/orbitreel/internal/trajectory"
)

// nopLogger records lines prefixed with their level.
type nopLogger struct{ lines []string }

func (l *nopLogger) add(level, format string, args ...interface{}) {
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}
func (l *nopLogger) Info(f string, a ...interface{})    { l.add("INFO", f, a...) }
func (l *nopLogger) Success(f string, a ...interface{}) { l.add("SUCCESS", f, a...) }
func (l *nopLogger) Warn(f string, a ...interface{})    { l.add("WARN", f, a...) }
func (l *nopLogger) Debug(f string, a ...interface{})   { l.add("DEBUG", f, a...) }

// recorder keeps the point count of every trace it is asked to draw.
type recorder struct {
	frames [][]int
}

func (r *recorder) Render(traces []render.Trace) (image.Image, error) {
	counts := make([]int, len(traces))
	for i, tr := range traces {
		counts[i] = len(tr.Points)
	}
	r.frames = append(r.frames, counts)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	return img, nil
}

type sink struct {
	written int
	closed  bool
	failAt  int
}

func (s *sink) WriteFrame(image.Image) error {
	if s.failAt > 0 && s.written+1 == s.failAt {
		return errors.New("disk full")
	}
	s.written++
	return nil
}

func (s *sink) Close() error {
	s.closed = true
	return nil
}

// writeCSV writes samples records of t, x0, y0, ... for the given body count.
func writeCSV(dir string, samples, bodies int) string {
	var b strings.Builder
	for j := 0; j < samples; j++ {
		fmt.Fprintf(&b, "%g", float64(j)*0.01)
		for i := 0; i < bodies; i++ {
			x := float64(i+1) * 0.5
			y := float64(j) * 0.01
			fmt.Fprintf(&b, ", %g, %g", x, y)
		}
		b.WriteString("\n")
	}
	path := filepath.Join(dir, "data.csv")
	Expect(os.WriteFile(path, []byte(b.String()), 0644)).To(Succeed())
	return path
}

func smallConfig(input, output string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Input = input
	cfg.Output = output
	cfg.Duration = 1
	cfg.Size = 64
	return cfg
}

var _ = Describe("Prepare", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("decimates to the planned frame count", func() {
		cfg := smallConfig(writeCSV(dir, 100, 2), filepath.Join(dir, "out.gif"))

		p, err := pipeline.Prepare(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Bodies()).To(Equal(2))
		Expect(p.Samples).To(Equal(100))
		Expect(p.Plan.Frames).To(Equal(25))
		Expect(p.Plan.Step).To(Equal(4))
		Expect(p.Table.Len()).To(Equal(25))
		Expect(p.Outside).To(BeZero())
	})

	It("counts positions outside the viewport", func() {
		cfg := smallConfig(writeCSV(dir, 25, 1), filepath.Join(dir, "out.gif"))
		cfg.Viewport.XMax = 0.25

		p, err := pipeline.Prepare(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Outside).To(Equal(25))
	})

	It("rejects an even row count", func() {
		path := filepath.Join(dir, "even.csv")
		Expect(os.WriteFile(path, []byte("0, 1, 2, 3\n1, 1, 2, 3\n"), 0644)).To(Succeed())

		_, err := pipeline.Prepare(smallConfig(path, "out.gif"))
		Expect(errors.Is(err, trajectory.ErrRowParity)).To(BeTrue())
	})

	It("rejects more bodies than colours", func() {
		_, err := pipeline.Prepare(smallConfig(writeCSV(dir, 30, 6), "out.gif"))
		Expect(errors.Is(err, render.ErrTooManyBodies)).To(BeTrue())
	})

	It("rejects fewer samples than frames", func() {
		_, err := pipeline.Prepare(smallConfig(writeCSV(dir, 10, 1), "out.gif"))
		Expect(errors.Is(err, timeline.ErrTooFewSamples)).To(BeTrue())
	})

	It("reports a missing input", func() {
		_, err := pipeline.Prepare(smallConfig(filepath.Join(dir, "missing.csv"), "out.gif"))
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})
})

var _ = Describe("Render", func() {
	var (
		p   *pipeline.Prepared
		log *nopLogger
	)

	BeforeEach(func() {
		dir := GinkgoT().TempDir()
		var err error
		p, err = pipeline.Prepare(smallConfig(writeCSV(dir, 50, 2), "out.gif"))
		Expect(err).NotTo(HaveOccurred())
		log = &nopLogger{}
	})

	It("writes one frame per planned frame with growing traces", func() {
		r := &recorder{}
		enc := &sink{}

		Expect(pipeline.Render(context.Background(), p, r, enc, log)).To(Succeed())
		Expect(enc.written).To(Equal(p.Plan.Frames))
		Expect(enc.closed).To(BeFalse())
		Expect(r.frames).To(HaveLen(p.Plan.Frames))
		for f, counts := range r.frames {
			Expect(counts).To(Equal([]int{f + 1, f + 1}))
		}
	})

	It("reports progress at info level every tenth of the frames", func() {
		Expect(pipeline.Render(context.Background(), p, &recorder{}, &sink{}, log)).To(Succeed())

		var progress []string
		for _, l := range log.lines {
			if strings.HasPrefix(l, "INFO frame ") {
				progress = append(progress, l)
			}
		}
		Expect(progress).To(HaveLen(13))
		Expect(progress[0]).To(Equal("INFO frame 2/25 (8%)"))
		Expect(progress[len(progress)-1]).To(Equal("INFO frame 25/25 (100%)"))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		enc := &sink{}

		err := pipeline.Render(ctx, p, &recorder{}, enc, log)
		Expect(err).To(MatchError(context.Canceled))
		Expect(enc.written).To(BeZero())
	})

	It("names the frame an encoder error happened on", func() {
		enc := &sink{failAt: 3}

		err := pipeline.Render(context.Background(), p, &recorder{}, enc, log)
		Expect(err).To(MatchError(ContainSubstring("frame 2")))
		Expect(enc.written).To(Equal(2))
	})
})

var _ = Describe("Run", func() {
	It("renders a gif and a snapshot end to end", func() {
		dir := GinkgoT().TempDir()
		cfg := smallConfig(writeCSV(dir, 30, 2), filepath.Join(dir, "lines.gif"))
		cfg.Snapshot = filepath.Join(dir, "last.png")
		log := &nopLogger{}

		stats, err := pipeline.Run(context.Background(), cfg, false, log)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Frames).To(Equal(25))
		Expect(stats.Bodies).To(Equal(2))
		Expect(stats.Step).To(Equal(1))
		Expect(stats.Snapshot).To(Equal(cfg.Snapshot))
		Expect(stats.Encoded).To(Equal(25))

		f, err := os.Open(cfg.Output)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		g, err := gif.DecodeAll(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Image).To(HaveLen(25))
		Expect(g.Delay[0]).To(Equal(4))

		Expect(cfg.Snapshot).To(BeAnExistingFile())
	})

	It("does not create the output when preparation fails", func() {
		dir := GinkgoT().TempDir()
		cfg := smallConfig(writeCSV(dir, 5, 1), filepath.Join(dir, "lines.gif"))

		_, err := pipeline.Run(context.Background(), cfg, false, &nopLogger{})
		Expect(err).To(HaveOccurred())
		Expect(cfg.Output).NotTo(BeAnExistingFile())
	})
})
