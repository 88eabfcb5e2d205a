package trajectory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultInput is the file read when no input path is given.
const DefaultInput = "data.csv"

// skippable reports whether a record is a whitespace-only line or an
// indented comment. csv.Reader only drops these when they start in column 0.
func skippable(record []string) bool {
	first := strings.TrimSpace(record[0])
	if len(record) == 1 && first == "" {
		return true
	}
	return strings.HasPrefix(first, "#")
}

// Read parses comma-delimited records, one per time sample, and returns them
// transposed so that row 0 is time and each following pair of rows is one
// body's x and y series.
func Read(r io.Reader) (Raw, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var raw Raw
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{Line: pe.Line, Field: pe.Column, Wrapped: pe.Err}
			}
			return nil, err
		}

		if skippable(record) {
			continue
		}

		line, _ := cr.FieldPos(0)
		if raw == nil {
			raw = make(Raw, len(record))
		} else if len(record) != len(raw) {
			return nil, &ParseError{
				Line:    line,
				Wrapped: fmt.Errorf("%w: expected %d fields, got %d", ErrRagged, len(raw), len(record)),
			}
		}

		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, &ParseError{Line: line, Field: i + 1, Value: field, Wrapped: err}
			}
			raw[i] = append(raw[i], v)
		}
	}

	if raw == nil {
		return nil, ErrEmpty
	}
	return raw, nil
}

// Load reads the table stored at path.
func Load(path string) (Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return raw, nil
}

// LoadTable reads path and converts it to the per-body layout.
func LoadTable(path string) (*Table, error) {
	raw, err := Load(path)
	if err != nil {
		return nil, err
	}
	return FromRaw(raw)
}
