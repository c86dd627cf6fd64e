package util

import "golang.org/x/text/encoding/unicode"

// DecodeText decodes UTF-8, invalid sequences become U+FFFD.
func DecodeText(data []byte) string {
	decoded, _ := unicode.UTF8.NewDecoder().Bytes(data)
	return string(decoded)
}
