package cryptography

import (
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// size of the key generated for a hide session. the cipher itself
	// accepts any non-empty key.
	KeySize = 16

	// sealing of local files (config, log, journal password)
	SymKeySize = chacha20poly1305.KeySize
	NonceSize  = chacha20poly1305.NonceSize
	SaltSize   = 16

	// amount of hex characters of the key hash used as fingerprint
	FingerprintSize = 16
)
