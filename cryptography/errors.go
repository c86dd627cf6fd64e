package cryptography

import "errors"

var (
	// ErrInvalidKey is returned when the cipher is called with an empty key.
	ErrInvalidKey = errors.New("invalid key: key must not be empty")

	// ErrInvalidKeyText is returned when a textual key can not be decoded.
	ErrInvalidKeyText = errors.New("invalid key text")

	// ErrInvalidSealKey is returned when a sealing key has a wrong size.
	ErrInvalidSealKey = errors.New("invalid sealing key size")

	// ErrSealedTooShort is returned when sealed data is shorter than a nonce.
	ErrSealedTooShort = errors.New("sealed data is too short")
)
