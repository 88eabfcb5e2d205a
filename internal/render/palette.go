package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette assigns one colour per body, in body order.
type Palette []color.RGBA

// Single-letter codes of the classic plotting shorthand.
var namedColors = map[string]color.RGBA{
	"b": {R: 0, G: 0, B: 255, A: 255},
	"g": {R: 0, G: 128, B: 0, A: 255},
	"r": {R: 255, G: 0, B: 0, A: 255},
	"c": {R: 0, G: 191, B: 191, A: 255},
	"m": {R: 191, G: 0, B: 191, A: 255},
	"y": {R: 191, G: 191, B: 0, A: 255},
	"k": {R: 0, G: 0, B: 0, A: 255},
}

// DefaultColors is the blue, yellow, red, green, magenta cycle.
var DefaultColors = []string{"b", "y", "r", "g", "m"}

func DefaultPalette() Palette {
	p, _ := ParsePalette(DefaultColors)
	return p
}

// ParsePalette accepts single-letter codes or #rrggbb strings.
func ParsePalette(specs []string) (Palette, error) {
	p := make(Palette, 0, len(specs))
	for _, s := range specs {
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 || hex == s {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Check fails when there are more bodies than colours.
func (p Palette) Check(bodies int) error {
	if bodies > len(p) {
		return fmt.Errorf("%w: %d bodies, %d colours", ErrTooManyBodies, bodies, len(p))
	}
	return nil
}

// Hex formats colour i as #rrggbb.
func (p Palette) Hex(i int) string {
	c := p[i]
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
