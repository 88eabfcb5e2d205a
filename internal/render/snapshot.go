package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Snapshot writes a single frame to path as PNG or SVG, chosen by the file
// extension.
func Snapshot(path string, c *ChartRenderer, traces []Trace) error {
	var provider chart.RendererProvider
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		provider = chart.PNG
	case ".svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("render: snapshot %s: unsupported extension (use .png or .svg)", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Write(f, provider, traces); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
