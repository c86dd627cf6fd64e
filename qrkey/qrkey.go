// Package qrkey carries a key text through a QR code image.
package qrkey

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	goqr "github.com/skip2/go-qrcode"
	_ "golang.org/x/image/bmp"
)

// DefaultSize is the side of the rendered QR image in pixels.
const DefaultSize = 256

var (
	// ErrNoCode is returned when no QR code can be found in an image.
	ErrNoCode = errors.New("no QR code found in image")

	// ErrEmptyText is returned when asked to render an empty text.
	ErrEmptyText = errors.New("nothing to encode")
)

// Render encodes text as a PNG QR code with the highest error correction.
func Render(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if size <= 0 {
		size = DefaultSize
	}
	return goqr.Encode(text, goqr.Highest, size)
}

// Decode reads the text of the first QR code in an encoded image.
func Decode(imgBytes []byte) (string, error) {
	m, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return "", fmt.Errorf("%w: not an image: %v", ErrNoCode, err)
	}
	return DecodeImage(m)
}

func DecodeImage(m image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(m)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoCode, err)
	}
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := zxqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoCode, err)
	}
	if result.GetText() == "" {
		return "", ErrNoCode
	}
	return result.GetText(), nil
}
