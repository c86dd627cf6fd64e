package protocol

import "errors"

var (
	// ErrEmptyMessage is returned when there is nothing to hide.
	ErrEmptyMessage = errors.New("secret message is empty")

	// ErrNoCarrier is returned when no carrier image is given.
	ErrNoCarrier = errors.New("carrier image is missing")

	// ErrKeyMismatch is returned when the key does not belong to the stego image.
	ErrKeyMismatch = errors.New("key does not match the hidden message")

	// ErrNoKey is returned when neither a key nor an embedded key is available.
	ErrNoKey = errors.New("no key available to reveal the message")
)
