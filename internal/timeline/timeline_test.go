package timeline_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitreel/internal/timeline"
	"github.com/san-kum/orbitreel/internal/trajectory"
)

// ramp builds a table with n bodies and T samples whose values encode
// their own column index, so decimation results can be checked directly.
func ramp(bodies, samples int, dt float64) *trajectory.Table {
	t := &trajectory.Table{
		Times:  make([]float64, samples),
		Bodies: make([]trajectory.Body, bodies),
	}
	for j := 0; j < samples; j++ {
		t.Times[j] = float64(j) * dt
	}
	for i := range t.Bodies {
		t.Bodies[i] = trajectory.Body{X: make([]float64, samples), Y: make([]float64, samples)}
		for j := 0; j < samples; j++ {
			t.Bodies[i].X[j] = float64(j)
			t.Bodies[i].Y[j] = -float64(j) - float64(i)
		}
	}
	return t
}

var _ = Describe("frame arithmetic", func() {
	It("runs at 25 fps for a 40ms interval", func() {
		Expect(timeline.FrameRate(40 * time.Millisecond)).To(BeNumerically("~", 25, 1e-9))
	})

	It("produces 500 frames for the default 20 seconds", func() {
		Expect(timeline.FrameCount(timeline.DefaultDuration, timeline.DefaultInterval)).To(Equal(500))
	})

	DescribeTable("stride",
		func(total, frames, step int) {
			got, err := timeline.Stride(total, frames)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(step))
		},
		Entry("halving", 1000, 500, 2),
		Entry("exact", 500, 500, 1),
		Entry("floor", 1499, 500, 2),
	)

	It("rejects fewer samples than frames", func() {
		_, err := timeline.Stride(499, 500)
		Expect(err).To(MatchError(timeline.ErrTooFewSamples))
	})

	It("rejects a zero frame count", func() {
		_, err := timeline.Stride(10, 0)
		Expect(err).To(MatchError(timeline.ErrNoFrames))
	})

	DescribeTable("sampled length is ceil(total / step)",
		func(total, step, want int) {
			Expect(timeline.SampledLen(total, step)).To(Equal(want))
		},
		Entry("even", 1000, 2, 500),
		Entry("odd", 1001, 2, 501),
		Entry("unit", 7, 1, 7),
		Entry("step larger than total", 3, 5, 1),
	)
})

var _ = Describe("Decimate", func() {
	It("keeps 500 columns of 1000 at 500 frames", func() {
		table := ramp(2, 1000, 0.01)
		step, err := timeline.Stride(table.Len(), 500)
		Expect(err).NotTo(HaveOccurred())

		sampled, err := timeline.Decimate(table, step)
		Expect(err).NotTo(HaveOccurred())
		Expect(sampled.Len()).To(Equal(500))
		Expect(sampled.Bodies[1].X[3]).To(Equal(6.0))
		Expect(sampled.Times[499]).To(BeNumerically("~", 9.98, 1e-9))
	})

	It("returns an equal table when samples equal frames", func() {
		table := ramp(3, 500, 0.01)
		step, err := timeline.Stride(table.Len(), 500)
		Expect(err).NotTo(HaveOccurred())
		Expect(step).To(Equal(1))

		sampled, err := timeline.Decimate(table, step)
		Expect(err).NotTo(HaveOccurred())
		Expect(sampled).To(Equal(table))
	})

	It("is deterministic", func() {
		table := ramp(2, 777, 0.01)
		a, err := timeline.Decimate(table, 3)
		Expect(err).NotTo(HaveOccurred())
		b, err := timeline.Decimate(table, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(b))
	})

	It("does not mutate its input", func() {
		table := ramp(1, 10, 1)
		sampled, err := timeline.Decimate(table, 2)
		Expect(err).NotTo(HaveOccurred())
		sampled.Bodies[0].X[1] = 99
		Expect(table.Bodies[0].X[2]).To(Equal(2.0))
	})

	It("rejects a zero stride", func() {
		_, err := timeline.Decimate(ramp(1, 10, 1), 0)
		Expect(err).To(MatchError(timeline.ErrNoFrames))
	})
})

var _ = Describe("NewPlan", func() {
	It("plans fixed playback with the defaults", func() {
		plan, err := timeline.NewPlan(ramp(2, 1000, 0.01), timeline.DefaultSettings())
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Mode).To(Equal(timeline.Fixed))
		Expect(plan.Frames).To(Equal(500))
		Expect(plan.Step).To(Equal(2))
		Expect(plan.Length()).To(Equal(20 * time.Second))
	})

	It("fails fixed playback on short series", func() {
		_, err := timeline.NewPlan(ramp(2, 100, 0.01), timeline.DefaultSettings())
		Expect(err).To(MatchError(timeline.ErrTooFewSamples))
	})

	It("plans realtime playback from the time row", func() {
		s := timeline.DefaultSettings()
		s.Mode = timeline.Realtime

		plan, err := timeline.NewPlan(ramp(1, 1000, 0.01), s)
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Step).To(Equal(4))
		Expect(plan.Frames).To(Equal(250))
	})

	It("prefers an explicit time step", func() {
		s := timeline.DefaultSettings()
		s.Mode = timeline.Realtime
		s.TimeStep = 0.04

		plan, err := timeline.NewPlan(ramp(1, 100, 0.01), s)
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Step).To(Equal(1))
		Expect(plan.Frames).To(Equal(100))
	})

	It("rejects realtime playback without a usable time step", func() {
		s := timeline.DefaultSettings()
		s.Mode = timeline.Realtime

		_, err := timeline.NewPlan(ramp(1, 1, 0), s)
		Expect(err).To(MatchError(timeline.ErrTimeStep))
	})

	It("rejects unknown modes", func() {
		s := timeline.DefaultSettings()
		s.Mode = "slowmo"
		_, err := timeline.NewPlan(ramp(1, 1000, 0.01), s)
		Expect(err).To(MatchError(timeline.ErrMode))
	})
})

var _ = Describe("MedianSpacing", func() {
	It("ignores an outlier step", func() {
		Expect(timeline.MedianSpacing([]float64{0, 0.1, 0.2, 5, 5.1})).To(BeNumerically("~", 0.1, 1e-9))
	})

	It("is zero for fewer than two samples", func() {
		Expect(timeline.MedianSpacing([]float64{1})).To(BeZero())
	})
})
