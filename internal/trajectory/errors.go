package trajectory

import (
	"errors"
	"fmt"
	"strings"
)

const errPrefix = "trajectory: "

// Domain errors for loading position tables.
var (
	// ErrEmpty indicates an input with no data records.
	ErrEmpty = errors.New("trajectory: no data records")

	// ErrRowParity indicates a table whose row count is not 1 + 2*n.
	ErrRowParity = errors.New("trajectory: row count must be odd (time row plus x,y pairs)")

	// ErrNoBodies indicates a table holding only the time row.
	ErrNoBodies = errors.New("trajectory: table has no body rows")

	// ErrRagged indicates rows of unequal length.
	ErrRagged = errors.New("trajectory: rows have unequal length")
)

// ParseError wraps a field-level failure with its position in the input.
type ParseError struct {
	Line    int
	Field   int
	Value   string
	Wrapped error
}

func (e *ParseError) Error() string {
	msg := strings.TrimPrefix(e.Wrapped.Error(), errPrefix)
	if e.Field == 0 {
		return fmt.Sprintf("%sline %d: %s", errPrefix, e.Line, msg)
	}
	return fmt.Sprintf("%sline %d, field %d: %q: %s", errPrefix, e.Line, e.Field, e.Value, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}
