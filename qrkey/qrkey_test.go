package qrkey

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stegqr/cryptography"
)

func TestRenderDecode(t *testing.T) {
	key, err := cryptography.GenKey()
	require.NoError(t, err)
	tests := []string{
		cryptography.EncodeKey(key),
		"hello",
	}
	for _, text := range tests {
		data, err := Render(text, 0)
		require.NoError(t, err)

		m, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, DefaultSize, m.Bounds().Dx())

		decoded, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, text, decoded)
	}
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render("", 128)
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestDecodeNoCode(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 64, 64))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	m.SetGray(10, 10, color.Gray{})
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, m))

	_, err := Decode(buf.Bytes())
	assert.ErrorIs(t, err, ErrNoCode)

	_, err = Decode([]byte("not an image"))
	assert.ErrorIs(t, err, ErrNoCode)
}
