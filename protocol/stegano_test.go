package protocol

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stegqr/config"
	"stegqr/cryptography"
	"stegqr/stegano/img"
)

func testCarrier(t *testing.T, w, h int) []byte {
	r := rand.New(rand.NewSource(42))
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, color.RGBA{uint8(r.Intn(256)), uint8(r.Intn(256)), uint8(r.Intn(256)), 0xff})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, m))
	return buf.Bytes()
}

func defaultOptions() Options {
	return OptionsFromConfig(config.Default(""))
}

func TestHideRevealWithQR(t *testing.T) {
	carrier := testCarrier(t, 64, 64)
	res, err := HideMessage(carrier, "hello", defaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Key, cryptography.KeySize)
	assert.Equal(t, img.FormatPNG, res.Format)
	assert.Equal(t, img.FormatPNG, img.DetectFormat(res.Stego))
	assert.Equal(t, cryptography.Fingerprint(res.Key), res.Fingerprint)

	key, err := KeyFromQR(res.QR)
	require.NoError(t, err)
	assert.Equal(t, res.Key, key)

	out, err := RevealMessage(res.Stego, key)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Message)
	assert.Equal(t, res.Fingerprint, out.Aux)
}

func TestRevealWrongKey(t *testing.T) {
	res, err := HideMessage(testCarrier(t, 32, 32), "secret", defaultOptions())
	require.NoError(t, err)

	other, err := cryptography.GenKey()
	require.NoError(t, err)
	_, err = RevealMessage(res.Stego, other)
	assert.ErrorIs(t, err, ErrKeyMismatch)

	// a fingerprint embedding does not give the key away
	_, err = RevealMessage(res.Stego, nil)
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestKeyMatches(t *testing.T) {
	key, err := cryptography.GenKey()
	require.NoError(t, err)
	other, err := cryptography.GenKey()
	require.NoError(t, err)

	fp := AuxText(key, config.AuxFingerprint)
	assert.True(t, KeyMatches(key, fp))
	assert.False(t, KeyMatches(other, fp))

	// the bytes a fingerprint decodes to as base64 are not a key
	bogus, err := cryptography.DecodeKey(fp)
	require.NoError(t, err)
	assert.False(t, KeyMatches(bogus, fp))

	embedded := AuxText(key, config.AuxKey)
	assert.True(t, KeyMatches(key, embedded))
	assert.False(t, KeyMatches(other, embedded))
	assert.False(t, KeyMatches(key, "AAAA"))
}

func TestEmbeddedKeyMode(t *testing.T) {
	opts := defaultOptions()
	opts.AuxMode = config.AuxKey
	opts.OutputFormat = img.FormatBMP

	res, err := HideMessage(testCarrier(t, 32, 32), "привет", opts)
	require.NoError(t, err)
	assert.Equal(t, img.FormatBMP, img.DetectFormat(res.Stego))

	out, err := RevealMessage(res.Stego, nil)
	require.NoError(t, err)
	assert.Equal(t, "привет", out.Message)
	assert.Equal(t, res.KeyText, out.Aux)

	out, err = RevealMessage(res.Stego, res.Key)
	require.NoError(t, err)
	assert.Equal(t, "привет", out.Message)
}

func TestHideValidation(t *testing.T) {
	_, err := HideMessage(nil, "msg", defaultOptions())
	assert.ErrorIs(t, err, ErrNoCarrier)
	_, err = HideMessage(testCarrier(t, 8, 8), "", defaultOptions())
	assert.ErrorIs(t, err, ErrEmptyMessage)
	_, err = RevealMessage(nil, []byte("k"))
	assert.ErrorIs(t, err, ErrNoCarrier)
}

func TestCapacity(t *testing.T) {
	carrier := testCarrier(t, 16, 16)
	opts := defaultOptions()
	n, err := Capacity(carrier, opts)
	require.NoError(t, err)
	assert.Equal(t, 16*16*3/8-8-cryptography.FingerprintSize, n)

	_, err = HideMessage(carrier, strings.Repeat("x", n), opts)
	assert.NoError(t, err)
	_, err = HideMessage(carrier, strings.Repeat("x", n+1), opts)
	assert.ErrorIs(t, err, img.ErrInsufficientCapacity)

	opts.AuxMode = config.AuxKey
	n2, err := Capacity(carrier, opts)
	require.NoError(t, err)
	assert.Equal(t, n-(24-cryptography.FingerprintSize), n2)

	room, err := Measure(carrier, opts)
	require.NoError(t, err)
	assert.Equal(t, Room{Bits: 16 * 16 * 3, MaxMessage: n2}, room)
}
