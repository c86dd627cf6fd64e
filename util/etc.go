package util

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// FixUnicode brings text typed at a terminal to NFC, so the same message
// always encrypts to the same bytes.
func FixUnicode(in string) string {
	return norm.NFC.String(in)
}

// StegoFilename picks the output name for a stego image made from carrier.
func StegoFilename(carrier, format string) string {
	base := filepath.Base(carrier)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "image"
	}
	return "stego_" + base + "." + format
}
