package img

import (
	"fmt"

	"stegqr/stegano/frame"
	"stegqr/stegano/util"
)

/*
 * LSB plane of a flat sample buffer (R,G,B,R,G,B,... in scan order).
 * Embedding and extraction walk the buffer with the same flat index, any
 * other order would silently shift the bit stream.
 */

// Capacity is the amount of bits a buffer can carry: one per sample.
func Capacity(pixels []uint8) int {
	return len(pixels)
}

// MaxMessage returns how many ciphertext bytes fit into a buffer of the
// given size next to an aux text of auxLen bytes.
func MaxMessage(samples, auxLen int) int {
	n := samples/8 - frame.Size(0, auxLen)
	if n < 0 {
		return 0
	}
	return n
}

// Embed replaces the low bit of pixels[i] with bits[i]. Samples past
// len(bits) are not touched. Nothing is written when the bits don't fit.
func Embed(pixels []uint8, bits []uint8) error {
	if len(bits) > len(pixels) {
		return fmt.Errorf("%w: %d bits > %d samples", ErrInsufficientCapacity, len(bits), len(pixels))
	}
	for i, b := range bits {
		pixels[i] = (pixels[i] & 0xfe) | (b & 1)
	}
	return nil
}

// ExtractAllBits returns the low bit of every sample.
func ExtractAllBits(pixels []uint8) []uint8 {
	bits := make([]uint8, len(pixels))
	for i, p := range pixels {
		bits[i] = p & 1
	}
	return bits
}

// EmbedPayload frames ciphertext and aux text and embeds them into a copy
// of pixels. The input buffer is never modified.
func EmbedPayload(pixels []uint8, ciphertext []byte, aux string) ([]uint8, error) {
	f, err := frame.Build(ciphertext, aux)
	if err != nil {
		return nil, err
	}
	if len(f)*8 > len(pixels) {
		return nil, fmt.Errorf("%w: need %d samples, have %d", ErrInsufficientCapacity, len(f)*8, len(pixels))
	}
	result := make([]uint8, len(pixels))
	copy(result, pixels)
	if err := Embed(result, util.ToBits(f)); err != nil {
		return nil, err
	}
	return result, nil
}

// ExtractPayload recovers ciphertext and aux text from a buffer.
func ExtractPayload(pixels []uint8) ([]byte, string, error) {
	return frame.ParseBits(ExtractAllBits(pixels))
}
