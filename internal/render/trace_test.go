package render

import (
	"errors"
	"testing"

	"github.com/san-kum/orbitreel/internal/trajectory"
)

func sampleTable() *trajectory.Table {
	return &trajectory.Table{
		Times: []float64{0, 1, 2, 3},
		Bodies: []trajectory.Body{
			{X: []float64{0, 1, 2, 3}, Y: []float64{0, -1, -2, -3}},
			{X: []float64{4, 3, 2, 1}, Y: []float64{1, 1, 1, 1}},
		},
	}
}

func TestTraces_Prefix(t *testing.T) {
	table := sampleTable()

	for f := 0; f < table.Len(); f++ {
		traces, err := Traces(table, f)
		if err != nil {
			t.Fatalf("frame %d: %v", f, err)
		}
		if len(traces) != 2 {
			t.Fatalf("frame %d: expected 2 traces, got %d", f, len(traces))
		}
		for i, tr := range traces {
			if tr.Body != i {
				t.Errorf("frame %d: expected body %d, got %d", f, i, tr.Body)
			}
			if len(tr.Points) != f+1 {
				t.Errorf("frame %d body %d: expected %d points, got %d", f, i, f+1, len(tr.Points))
			}
			for j, p := range tr.Points {
				if p != table.Bodies[i].At(j) {
					t.Errorf("frame %d body %d point %d: expected %v, got %v", f, i, j, table.Bodies[i].At(j), p)
				}
			}
		}
	}
}

func TestTraces_OutOfRange(t *testing.T) {
	table := sampleTable()

	for _, f := range []int{-1, 4} {
		if _, err := Traces(table, f); !errors.Is(err, ErrFrameRange) {
			t.Errorf("frame %d: expected ErrFrameRange, got %v", f, err)
		}
	}
}
