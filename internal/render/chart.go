package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/orbitreel/internal/trajectory"
)

const (
	DefaultSize      = 480
	DefaultPadding   = 40
	DefaultLineWidth = 1.5
	DefaultTicks     = 5

	minPadding = 8
	tickLength = 4
	fontSize   = 9
)

// Renderer turns one frame's traces into an image.
type Renderer interface {
	Render(traces []Trace) (image.Image, error)
}

// ChartRenderer draws frames with go-chart on a square canvas whose data
// window is the fixed viewport, so x and y share one scale.
type ChartRenderer struct {
	Viewport  Viewport
	Palette   Palette
	Size      int
	Padding   int
	LineWidth float64
	Ticks     int
}

func NewChartRenderer(vp Viewport, p Palette, size int) *ChartRenderer {
	if size <= 0 {
		size = DefaultSize
	}
	pad := size / 12
	if pad > DefaultPadding {
		pad = DefaultPadding
	}
	if pad < minPadding {
		pad = minPadding
	}
	return &ChartRenderer{
		Viewport:  vp,
		Palette:   p,
		Size:      size,
		Padding:   pad,
		LineWidth: DefaultLineWidth,
		Ticks:     DefaultTicks,
	}
}

// Render rasterises the traces to an RGBA image of Size x Size pixels.
func (c *ChartRenderer) Render(traces []Trace) (image.Image, error) {
	var buf bytes.Buffer
	if err := c.Write(&buf, chart.PNG, traces); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("render: decode frame: %w", err)
	}
	return img, nil
}

// Write renders the traces with the given go-chart provider (chart.PNG or
// chart.SVG) into w.
func (c *ChartRenderer) Write(w io.Writer, provider chart.RendererProvider, traces []Trace) error {
	ch, err := c.build(traces)
	if err != nil {
		return err
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (c *ChartRenderer) build(traces []Trace) (chart.Chart, error) {
	vp := c.Viewport

	// go-chart refuses a chart without series; a single point draws nothing.
	series := []chart.Series{
		chart.ContinuousSeries{
			XValues: []float64{vp.XMin},
			YValues: []float64{vp.YMin},
		},
	}

	for _, tr := range traces {
		if tr.Body >= len(c.Palette) {
			return chart.Chart{}, fmt.Errorf("%w: body %d, %d colours", ErrTooManyBodies, tr.Body, len(c.Palette))
		}
		style := chart.Style{
			StrokeColor: toDrawing(c.Palette[tr.Body]),
			StrokeWidth: c.LineWidth,
		}
		for _, line := range vp.Clip(tr.Points) {
			xs, ys := split(line)
			s := style
			// A lone point has no segment to stroke.
			if len(line) == 1 {
				s.DotColor = style.StrokeColor
				s.DotWidth = c.LineWidth
			}
			series = append(series, chart.ContinuousSeries{
				Name:    "body " + strconv.Itoa(tr.Body),
				XValues: xs,
				YValues: ys,
				Style:   s,
			})
		}
	}

	pad := c.Padding
	return chart.Chart{
		Width:  c.Size,
		Height: c.Size,
		Background: chart.Style{
			Padding:   chart.Box{Top: pad, Left: pad, Right: pad, Bottom: pad},
			FillColor: drawing.ColorWhite,
		},
		Canvas: chart.Style{FillColor: drawing.ColorWhite},
		XAxis: chart.XAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: vp.XMin, Max: vp.XMax},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: vp.YMin, Max: vp.YMax},
		},
		Series:   series,
		Elements: []chart.Renderable{c.frame},
	}, nil
}

// frame draws the plot border with tick marks and labels. go-chart's own
// axes would shrink the canvas by their label sizes and break the square.
func (c *ChartRenderer) frame(r chart.Renderer, box chart.Box, defaults chart.Style) {
	vp := c.Viewport

	r.SetStrokeColor(drawing.ColorBlack)
	r.SetStrokeWidth(1)
	r.MoveTo(box.Left, box.Top)
	r.LineTo(box.Right, box.Top)
	r.LineTo(box.Right, box.Bottom)
	r.LineTo(box.Left, box.Bottom)
	r.Close()
	r.Stroke()

	xs := ticks(vp.XMin, vp.XMax, c.Ticks)
	ys := ticks(vp.YMin, vp.YMax, c.Ticks)

	for _, v := range xs {
		x := box.Left + int(math.Round((v-vp.XMin)/vp.Width()*float64(box.Width())))
		r.MoveTo(x, box.Bottom)
		r.LineTo(x, box.Bottom+tickLength)
		r.Stroke()
	}
	for _, v := range ys {
		y := box.Bottom - int(math.Round((v-vp.YMin)/vp.Height()*float64(box.Height())))
		r.MoveTo(box.Left-tickLength, y)
		r.LineTo(box.Left, y)
		r.Stroke()
	}

	if defaults.Font == nil {
		return
	}
	r.SetFont(defaults.Font)
	r.SetFontSize(fontSize)
	r.SetFontColor(drawing.ColorBlack)

	for _, v := range xs {
		label := formatTick(v)
		tb := r.MeasureText(label)
		x := box.Left + int(math.Round((v-vp.XMin)/vp.Width()*float64(box.Width())))
		r.Text(label, x-tb.Width()/2, box.Bottom+tickLength+tb.Height()+2)
	}
	for _, v := range ys {
		label := formatTick(v)
		tb := r.MeasureText(label)
		y := box.Bottom - int(math.Round((v-vp.YMin)/vp.Height()*float64(box.Height())))
		r.Text(label, box.Left-tickLength-tb.Width()-3, y+tb.Height()/2)
	}
}

// ticks returns n evenly spaced values from lo to hi inclusive.
func ticks(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo, hi}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

func formatTick(v float64) string {
	if math.Abs(v) < 1e-12 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func split(pts []trajectory.Point) ([]float64, []float64) {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
