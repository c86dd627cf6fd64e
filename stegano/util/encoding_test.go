package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBitsOrder(t *testing.T) {
	assert.Equal(t, []uint8{1, 0, 0, 0, 0, 0, 0, 1}, ToBits([]byte{0x81}))
	assert.Equal(t,
		[]uint8{0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0},
		ToBits([]byte{0x01, 0xfe}))
	assert.Empty(t, ToBits(nil))
}

func TestBitsRoundTrip(t *testing.T) {
	tests := [][]byte{
		{},
		{0x00},
		{0xff},
		[]byte("Hello world!"),
		bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 512),
	}
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	tests = append(tests, all)

	for _, data := range tests {
		bits := ToBits(data)
		require.Len(t, bits, len(data)*8)
		dec, err := FromBits(bits)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, dec), "bit codec spoiled the data: %v != %v", data, dec)
	}
}

func TestFromBitsUnaligned(t *testing.T) {
	bits := append(ToBits([]byte("ab")), 1, 0, 1)
	_, err := FromBits(bits)
	assert.ErrorIs(t, err, ErrTruncatedInput)

	assert.Equal(t, []byte("ab"), FromBitsTruncated(bits))
	assert.Empty(t, FromBitsTruncated([]uint8{1, 1}))
}
