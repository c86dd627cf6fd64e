package cryptography

import (
	"stegqr/stegano/util"
)

/*
 * Repeating-key XOR. The key is stretched over the data by repeating it
 * end to end, so this is NOT a one-time pad: reusing a key for related
 * messages leaks their XOR. It only gives confidentiality, there is no
 * authentication of the ciphertext.
 */

// CipherBytes xors data with the repeated key. Applying it twice with the
// same key returns the original data.
func CipherBytes(data, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrInvalidKey
	}
	result := make([]byte, len(data))
	for i := range data {
		result[i] = data[i] ^ key[i%len(key)]
	}
	return result, nil
}

// Encrypt encodes text as UTF-8 and ciphers it.
func Encrypt(text string, key []byte) ([]byte, error) {
	return CipherBytes([]byte(text), key)
}

// Decrypt ciphers data back and decodes it as UTF-8. Invalid sequences
// become U+FFFD instead of failing.
func Decrypt(data, key []byte) (string, error) {
	pt, err := CipherBytes(data, key)
	if err != nil {
		return "", err
	}
	return util.DecodeText(pt), nil
}
