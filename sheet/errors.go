package sheet

import "errors"

var (
	// ErrEmptyInput is reported when an image holds no pixels with nonzero
	// alpha, so there are no frames to pack.
	ErrEmptyInput = errors.New("no opaque regions found")

	// ErrFrameCollapsed is reported when cropping or scaling produces a
	// frame with zero width or height.
	ErrFrameCollapsed = errors.New("frame collapsed to zero size")

	// ErrGridOverflow is reported when explicit columns and rows cannot
	// hold the replicated frame count.
	ErrGridOverflow = errors.New("grid too small for frame count")

	// ErrInvalidLayout is reported for layout values that are out of range
	// before any pixel work starts.
	ErrInvalidLayout = errors.New("invalid layout")
)
