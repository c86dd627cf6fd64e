package cryptography

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// generate a random amount of bytes
func GenRandom(size uint) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("GenRandom: invalid size of random data")
	}
	data := make([]byte, size)
	if _, err := rand.Read(data); err != nil {
		return nil, err
	}
	return data, nil
}

// GenKey generates a fresh session key of KeySize bytes.
func GenKey() ([]byte, error) {
	return GenRandom(KeySize)
}

// calculate the hash of data
func Hash(data []byte) string {
	if data == nil {
		return ""
	}
	hash := sha512.Sum512(data)
	return hex.EncodeToString(hash[:])
}

// Fingerprint is a short, printable identifier of a key. It is what gets
// embedded next to the ciphertext by default, so the receiver can tell a
// wrong key from a damaged carrier.
func Fingerprint(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	return Hash(key)[:FingerprintSize]
}

// IsFingerprint tells whether text has the form of a key fingerprint.
// A fingerprint is also valid base64, so this has to be checked before
// treating text as an encoded key.
func IsFingerprint(text string) bool {
	if len(text) != FingerprintSize {
		return false
	}
	for _, c := range text {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

/*
 * textual form of a key, the one carried by the QR code.
 */
func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

func DecodeKey(text string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyText, err)
	}
	if len(key) == 0 {
		return nil, ErrInvalidKey
	}
	return key, nil
}

// chacha20poly1305 encryption+authentication of local files
func Seal(data, key []byte) ([]byte, error) {
	if len(key) != SymKeySize {
		return nil, ErrInvalidSealKey
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce, err := GenRandom(NonceSize)
	if err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, data, nil)
	return append(nonce, ct...), nil
}

func Open(data, key []byte) ([]byte, error) {
	if len(key) != SymKeySize {
		return nil, ErrInvalidSealKey
	}
	if len(data) < NonceSize {
		return nil, ErrSealedTooShort
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return aead.Open(nil, data[:NonceSize], data[NonceSize:], nil)
}

// format: <base64-encoded-salt>:<password>
func SplitWithSalt(password string) ([]byte, []byte, error) {
	parts := strings.SplitN(password, ":", 2)
	if len(parts) < 2 {
		return nil, nil, fmt.Errorf("no salt supplied")
	}
	saltBytes, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, nil, err
	}
	return []byte(parts[1]), saltBytes, nil
}

// derive encryption key from password. used for local configuration storage
func DeriveKey(password, saltBytes []byte) []byte {
	/*
	 * the draft RFC recommends time=3 and memory=32*1024 (32 MB) is a sensible number.
	 */
	threads := uint8(runtime.NumCPU())
	return argon2.IDKey(password, saltBytes, 3, 32*1024, threads, SymKeySize)
}

// Subkey derives an independent key for one purpose ("config", "log",
// "journal") from the password-derived master key.
func Subkey(master []byte, purpose string) []byte {
	r := hkdf.New(sha512.New, master, nil, []byte(purpose))
	key := make([]byte, SymKeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil
	}
	return key
}
