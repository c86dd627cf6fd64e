package img

import (
	"bytes"
	"fmt"

	"stegqr/stegano/frame"
)

const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
)

// DetectFormat guesses the carrier format from its magic bytes.
func DetectFormat(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}):
		return FormatPNG
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return FormatJPEG
	case bytes.HasPrefix(data, []byte("GIF")):
		return FormatGIF
	case bytes.HasPrefix(data, []byte("BM")):
		return FormatBMP
	case bytes.HasPrefix(data, []byte{'I', 'I', 0x2a, 0x00}),
		bytes.HasPrefix(data, []byte{'M', 'M', 0x00, 0x2a}):
		return FormatTIFF
	}
	return ""
}

// IsLossless reports whether a format keeps pixel LSBs intact on encoding.
func IsLossless(format string) bool {
	switch format {
	case FormatPNG, FormatBMP, FormatTIFF:
		return true
	}
	return false
}

// Hide embeds ciphertext and aux text into a carrier image and encodes the
// result as outFormat. Lossless formats go through the pixel plane, JPEG
// goes through DCT coefficients.
func Hide(carrier []byte, ciphertext []byte, aux string, outFormat string) ([]byte, error) {
	if DetectFormat(carrier) == "" {
		return nil, ErrUnsupportedFormat
	}
	if outFormat == FormatJPEG {
		return HideInJpeg(carrier, ciphertext, aux)
	}
	if !IsLossless(outFormat) {
		return nil, fmt.Errorf("%w: %q is not a lossless output", ErrUnsupportedFormat, outFormat)
	}

	pixels, layout, err := LoadPixels(carrier)
	if err != nil {
		return nil, err
	}
	stego, err := EmbedPayload(pixels, ciphertext, aux)
	if err != nil {
		return nil, err
	}
	return StorePixels(stego, layout, outFormat)
}

// Reveal extracts ciphertext and aux text from a stego image.
func Reveal(stego []byte) ([]byte, string, error) {
	switch DetectFormat(stego) {
	case "":
		return nil, "", ErrUnsupportedFormat
	case FormatJPEG:
		return RevealFromJpeg(stego)
	}
	pixels, _, err := LoadPixels(stego)
	if err != nil {
		return nil, "", err
	}
	return ExtractPayload(pixels)
}

// CarrierBits returns how many payload bits a carrier holds when written
// as outFormat: one per sample, or eight per usable DCT coefficient byte
// for JPEG.
func CarrierBits(carrier []byte, outFormat string) (int, error) {
	if outFormat == FormatJPEG {
		n, err := jpegCapacity(carrier)
		if err != nil {
			return 0, err
		}
		return n * 8, nil
	}
	pixels, _, err := LoadPixels(carrier)
	if err != nil {
		return 0, err
	}
	return Capacity(pixels), nil
}

// MessageCapacity returns how many ciphertext bytes a carrier can hold next
// to an aux text of auxLen bytes when written as outFormat.
func MessageCapacity(carrier []byte, auxLen int, outFormat string) (int, error) {
	bits, err := CarrierBits(carrier, outFormat)
	if err != nil {
		return 0, err
	}
	return MaxMessage(bits, auxLen), nil
}
