/*
Package frame builds and parses the payload hidden inside a carrier:

	[4-byte big-endian length][ciphertext][4-byte big-endian length][aux text]

Both lengths are strictly positive. Anything after the aux text is ignored,
a carrier plane is almost always longer than the frame it holds.
*/
package frame

import (
	"encoding/binary"
	"fmt"
	"math"

	"stegqr/stegano/util"
)

const (
	LengthSize = 4
	MaxField   = math.MaxUint32
)

// Size returns the length in bytes of a frame holding the given fields.
func Size(ciphertextLen, auxLen int) int {
	return 2*LengthSize + ciphertextLen + auxLen
}

// Build serializes the ciphertext and the auxiliary text.
func Build(ciphertext []byte, aux string) ([]byte, error) {
	auxBytes := []byte(aux)
	if uint64(len(ciphertext)) > MaxField || uint64(len(auxBytes)) > MaxField {
		return nil, ErrPayloadTooLarge
	}
	// such a frame could never be parsed back
	if len(ciphertext) == 0 || len(auxBytes) == 0 {
		return nil, ErrEmptyField
	}

	result := make([]byte, 0, Size(len(ciphertext), len(auxBytes)))
	result = binary.BigEndian.AppendUint32(result, uint32(len(ciphertext)))
	result = append(result, ciphertext...)
	result = binary.BigEndian.AppendUint32(result, uint32(len(auxBytes)))
	result = append(result, auxBytes...)
	return result, nil
}

// Parse reads a frame from the beginning of data.
func Parse(data []byte) ([]byte, string, error) {
	return parse(&byteSource{data: data})
}

// ParseBits reads a frame straight from an extracted bit plane, only
// packing the bits the declared lengths cover.
func ParseBits(bits []uint8) ([]byte, string, error) {
	return parse(&bitSource{bits: bits})
}

type source interface {
	// next returns the next n bytes or false if fewer are left
	next(n uint64) ([]byte, bool)
}

type byteSource struct {
	data []byte
	pos  uint64
}

func (s *byteSource) next(n uint64) ([]byte, bool) {
	if n > uint64(len(s.data))-s.pos {
		return nil, false
	}
	chunk := make([]byte, n)
	copy(chunk, s.data[s.pos:s.pos+n])
	s.pos += n
	return chunk, true
}

type bitSource struct {
	bits []uint8
	pos  uint64
}

func (s *bitSource) next(n uint64) ([]byte, bool) {
	left := uint64(len(s.bits)) - s.pos
	if n > left/8 {
		return nil, false
	}
	chunk := util.FromBitsTruncated(s.bits[s.pos : s.pos+n*8])
	s.pos += n * 8
	return chunk, true
}

func parse(src source) ([]byte, string, error) {
	ciphertext, err := readField(src, "ciphertext")
	if err != nil {
		return nil, "", err
	}
	aux, err := readField(src, "aux text")
	if err != nil {
		return nil, "", err
	}
	return ciphertext, util.DecodeText(aux), nil
}

func readField(src source, name string) ([]byte, error) {
	header, ok := src.next(LengthSize)
	if !ok {
		return nil, fmt.Errorf("%w: no room for %s length", ErrCorruptFrame, name)
	}
	length := binary.BigEndian.Uint32(header)
	if length == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyField, name)
	}
	field, ok := src.next(uint64(length))
	if !ok {
		return nil, fmt.Errorf("%w: %s needs %d bytes", ErrCorruptFrame, name, length)
	}
	return field, nil
}
