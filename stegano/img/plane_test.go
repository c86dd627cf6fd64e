package img

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stegqr/cryptography"
	"stegqr/stegano/frame"
	"stegqr/stegano/util"
)

func randomSamples(n int, seed int64) []uint8 {
	r := rand.New(rand.NewSource(seed))
	pixels := make([]uint8, n)
	r.Read(pixels)
	return pixels
}

func TestEmbedExtract(t *testing.T) {
	tests := [][]byte{
		{},
		[]byte("Hello world!"),
		bytes.Repeat([]byte("a"), 512),
	}
	for _, data := range tests {
		pixels := randomSamples(len(data)*8+37, 1)
		original := append([]uint8(nil), pixels...)
		bits := util.ToBits(data)

		require.NoError(t, Embed(pixels, bits))

		extracted := ExtractAllBits(pixels)
		require.Len(t, extracted, len(pixels))
		assert.Equal(t, bits, extracted[:len(bits)])

		for i := range pixels {
			assert.Equal(t, original[i]&0xfe, pixels[i]&0xfe, "high bits changed at %d", i)
			if i >= len(bits) {
				assert.Equal(t, original[i], pixels[i], "sample %d past the payload changed", i)
			}
		}
	}
}

func TestEmbedInsufficientCapacity(t *testing.T) {
	pixels := randomSamples(15, 2)
	original := append([]uint8(nil), pixels...)
	err := Embed(pixels, util.ToBits([]byte("ab")))
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Equal(t, original, pixels)

	// a frame of 17 bytes needs 136 samples
	pixels = randomSamples(135, 3)
	original = append([]uint8(nil), pixels...)
	_, err = EmbedPayload(pixels, []byte("hello"), "AAAA")
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Equal(t, original, pixels)
}

func TestEmbedPayloadKeepsInput(t *testing.T) {
	pixels := randomSamples(400, 4)
	original := append([]uint8(nil), pixels...)
	stego, err := EmbedPayload(pixels, []byte{0xff, 0xfe}, "aux")
	require.NoError(t, err)
	assert.Equal(t, original, pixels)
	assert.Len(t, stego, len(pixels))

	ct, aux, err := ExtractPayload(stego)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xfe}, ct)
	assert.Equal(t, "aux", aux)
}

func TestEndToEndScenario(t *testing.T) {
	key, err := cryptography.GenKey()
	require.NoError(t, err)

	ct, err := cryptography.Encrypt("hello", key)
	require.NoError(t, err)
	require.Len(t, ct, 5)

	f, err := frame.Build(ct, "AAAA")
	require.NoError(t, err)
	require.Len(t, f, 17)

	bits := util.ToBits(f)
	require.Len(t, bits, 136)

	pixels := randomSamples(200, 5)
	require.NoError(t, Embed(pixels, bits))

	extracted := ExtractAllBits(pixels)
	require.Len(t, extracted, 200)

	gotCt, gotAux, err := frame.ParseBits(extracted[:136])
	require.NoError(t, err)
	assert.Equal(t, ct, gotCt)
	assert.Equal(t, "AAAA", gotAux)

	pt, err := cryptography.Decrypt(gotCt, key)
	require.NoError(t, err)
	assert.Equal(t, "hello", pt)
}

func TestExtractFromCleanCarrier(t *testing.T) {
	// all low bits zero reads as a zero length
	_, _, err := ExtractPayload(make([]uint8, 1024))
	assert.ErrorIs(t, err, frame.ErrEmptyField)

	// all low bits set declares a length far past the plane
	_, _, err = ExtractPayload(bytes.Repeat([]uint8{1}, 1024))
	assert.ErrorIs(t, err, frame.ErrCorruptFrame)
}

func TestMaxMessage(t *testing.T) {
	assert.Equal(t, 5, MaxMessage(136, 4))
	assert.Equal(t, 0, MaxMessage(64, 4))
	assert.Equal(t, 200*3/8-8-16, MaxMessage(200*3, 16))
}
