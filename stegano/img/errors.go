package img

import "errors"

var (
	// ErrInsufficientCapacity is returned when the payload has more bits than
	// the carrier has samples. The carrier is left untouched.
	ErrInsufficientCapacity = errors.New("carrier is too small to hide the data")

	// ErrUnsupportedFormat is returned for carriers that can not be decoded or
	// output formats that can not be written.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrLayoutMismatch is returned when a sample buffer does not match its layout.
	ErrLayoutMismatch = errors.New("sample buffer does not match layout")
)
