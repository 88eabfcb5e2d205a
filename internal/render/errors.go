package render

import "errors"

var (
	// ErrTooManyBodies indicates more bodies than distinguishable colours.
	ErrTooManyBodies = errors.New("render: more bodies than palette colours")

	// ErrFrameRange indicates a frame index outside the sampled table.
	ErrFrameRange = errors.New("render: frame index out of range")

	// ErrViewport indicates an empty or inverted viewport.
	ErrViewport = errors.New("render: viewport must have min < max on both axes")

	// ErrColor indicates an unparseable colour specification.
	ErrColor = errors.New("render: invalid colour")
)
