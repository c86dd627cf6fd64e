package frame

import "errors"

var (
	// ErrPayloadTooLarge is returned when a field does not fit a 32-bit length.
	ErrPayloadTooLarge = errors.New("frame field exceeds 32-bit length")

	// ErrCorruptFrame is returned when a declared length runs past the
	// available data.
	ErrCorruptFrame = errors.New("corrupt frame: declared length exceeds available data")

	// ErrEmptyField is returned when a declared length is zero.
	ErrEmptyField = errors.New("frame field is empty")
)
