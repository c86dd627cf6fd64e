package util

import "errors"

// ErrTruncatedInput is returned when a bit sequence is not byte-aligned.
var ErrTruncatedInput = errors.New("bit sequence is not a multiple of 8")

/*
 * transform data from/to binary form. every element of a bit sequence is
 * either 0 or 1, bytes are expanded most significant bit first.
 */
func ToBits(data []byte) []uint8 {
	bits := make([]uint8, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1)
		}
	}
	return bits
}

// FromBits packs bits back into bytes. It fails when len(bits) is not a
// multiple of 8, this is the form used for extracted payloads.
func FromBits(bits []uint8) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, ErrTruncatedInput
	}
	return FromBitsTruncated(bits), nil
}

// FromBitsTruncated packs bits into bytes and silently drops a trailing
// partial byte. Only meant for reading a whole capacity-limited plane.
func FromBitsTruncated(bits []uint8) []byte {
	result := make([]byte, len(bits)/8)
	for i := range result {
		result[i] = FromBin(bits[i*8 : i*8+8])
	}
	return result
}

// FromBin packs exactly 8 bits, most significant first.
func FromBin(x []uint8) byte {
	result := byte(0)
	for i := 0; i < 8; i++ {
		result = result<<1 | x[i]&1
	}
	return result
}
