package trajectory

import "fmt"

// Raw is the loaded table in variable-major layout: Raw[0] is time and
// Raw[2i+1], Raw[2i+2] are the x and y series of body i.
type Raw [][]float64

// Rows returns the number of variables.
func (r Raw) Rows() int { return len(r) }

// Cols returns the number of time samples.
func (r Raw) Cols() int {
	if len(r) == 0 {
		return 0
	}
	return len(r[0])
}

// BodyCount derives the number of bodies from a row count. The row count
// must be odd and at least 3.
func BodyCount(rows int) (int, error) {
	if rows%2 == 0 {
		return 0, fmt.Errorf("%w: got %d rows", ErrRowParity, rows)
	}
	if rows < 3 {
		return 0, fmt.Errorf("%w: got %d rows", ErrNoBodies, rows)
	}
	return (rows - 1) / 2, nil
}

// Point is a planar position.
type Point struct {
	X, Y float64
}

// Body is the position series of one tracked mass.
type Body struct {
	X []float64
	Y []float64
}

// At returns the position at sample j.
func (b Body) At(j int) Point {
	return Point{X: b.X[j], Y: b.Y[j]}
}

// Points returns samples [0, n) as points.
func (b Body) Points(n int) []Point {
	pts := make([]Point, n)
	for j := 0; j < n; j++ {
		pts[j] = b.At(j)
	}
	return pts
}

// Table holds a time vector and one position series per body. All series
// share the length of Times.
type Table struct {
	Times  []float64
	Bodies []Body
}

// FromRaw splits the interleaved rows into named per-body series. The
// slices of the result share storage with raw.
func FromRaw(raw Raw) (*Table, error) {
	n, err := BodyCount(raw.Rows())
	if err != nil {
		return nil, err
	}
	cols := raw.Cols()
	for i, row := range raw {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, row 0 has %d", ErrRagged, i, len(row), cols)
		}
	}

	t := &Table{
		Times:  raw[0],
		Bodies: make([]Body, n),
	}
	for i := 0; i < n; i++ {
		t.Bodies[i] = Body{X: raw[2*i+1], Y: raw[2*i+2]}
	}
	return t, nil
}

// Raw converts the table back to the interleaved layout.
func (t *Table) Raw() Raw {
	raw := make(Raw, 1+2*len(t.Bodies))
	raw[0] = t.Times
	for i, b := range t.Bodies {
		raw[2*i+1] = b.X
		raw[2*i+2] = b.Y
	}
	return raw
}

// Len returns the number of time samples.
func (t *Table) Len() int {
	return len(t.Times)
}

// NumBodies returns the number of bodies.
func (t *Table) NumBodies() int {
	return len(t.Bodies)
}

// Column returns every body's position at sample j.
func (t *Table) Column(j int) []Point {
	pts := make([]Point, len(t.Bodies))
	for i, b := range t.Bodies {
		pts[i] = b.At(j)
	}
	return pts
}
