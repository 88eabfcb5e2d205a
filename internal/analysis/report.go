package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitreel/internal/render"
	"github.com/san-kum/orbitreel/internal/trajectory"
)

const (
	plotHeight = 8
	plotWidth  = 72
)

// Report writes a styled summary table followed by one distance plot per
// body. Colour is decided by w.
func Report(w io.Writer, s Summary, t *trajectory.Table, palette render.Palette) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	label := r.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	cell := r.NewStyle().Width(12).Align(lipgloss.Right)
	warn := r.NewStyle().Foreground(lipgloss.Color("220"))

	var b strings.Builder
	b.WriteString(header.Render("trajectory summary") + "\n")
	fmt.Fprintf(&b, "%s%d\n", label.Render("samples"), s.Samples)
	fmt.Fprintf(&b, "%s%.4g .. %.4g\n", label.Render("time"), s.Start, s.End)
	fmt.Fprintf(&b, "%s%.4g\n", label.Render("step"), s.TimeStep)
	fmt.Fprintf(&b, "%s%d\n\n", label.Render("bodies"), len(s.Bodies))

	cols := []string{"body", "x min", "x max", "y min", "y max", "inside", "path", "period"}
	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = cell.Render(c)
	}
	b.WriteString(header.Render(strings.Join(row, "")) + "\n")

	for _, bs := range s.Bodies {
		name := fmt.Sprintf("%d", bs.Body)
		if bs.Body < len(palette) {
			name = fmt.Sprintf("%d %s", bs.Body, palette.Hex(bs.Body))
		}
		period := "-"
		if bs.Period > 0 {
			period = fmt.Sprintf("%.4g", bs.Period)
		}
		vals := []string{
			name,
			fmt.Sprintf("%.3f", bs.XMin),
			fmt.Sprintf("%.3f", bs.XMax),
			fmt.Sprintf("%.3f", bs.YMin),
			fmt.Sprintf("%.3f", bs.YMax),
			fmt.Sprintf("%.1f%%", 100*bs.Inside),
			fmt.Sprintf("%.4g", bs.PathLength),
			period,
		}
		for i, v := range vals {
			style := cell
			if i == 0 && bs.Body < len(palette) {
				style = cell.Foreground(lipgloss.Color(palette.Hex(bs.Body)))
			}
			if i == 5 && bs.Inside < 1 {
				style = cell.Inherit(warn)
			}
			row[i] = style.Render(v)
		}
		b.WriteString(strings.Join(row, "") + "\n")
	}

	if s.Clipped() {
		b.WriteString("\n" + warn.Render("some bodies leave the viewport and are clipped") + "\n")
	}

	for i := range s.Bodies {
		d := Distances(t, i)
		if len(d) < 2 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(asciigraph.Plot(d,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("body %d distance from origin", i)),
		))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
