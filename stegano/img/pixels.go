package img

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Channels is the number of samples per pixel after normalization.
const Channels = 3

// Layout describes how a flat sample buffer maps onto an image.
type Layout struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	Channels int `json:"channels"`
}

// Samples is the buffer length the layout expects.
func (l Layout) Samples() int {
	return l.Width * l.Height * l.Channels
}

// LoadPixels decodes an image and normalizes it to 3-channel truecolor.
// Alpha is dropped, exactly like before hiding, so both directions see the
// same bit stream.
func LoadPixels(imgBytes []byte) ([]uint8, Layout, error) {
	m, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, Layout{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	pixels, layout := FromImage(m)
	return pixels, layout, nil
}

// FromImage flattens an image into R,G,B samples, row-major.
func FromImage(m image.Image) ([]uint8, Layout) {
	bounds := m.Bounds()
	layout := Layout{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: Channels,
	}
	pixels := make([]uint8, 0, layout.Samples())

	if rgba, ok := m.(*image.RGBA); ok && rgba.Opaque() {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := rgba.Pix[rgba.PixOffset(bounds.Min.X, y):rgba.PixOffset(bounds.Max.X, y)]
			for x := 0; x < len(row); x += 4 {
				pixels = append(pixels, row[x], row[x+1], row[x+2])
			}
		}
		return pixels, layout
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			pixels = append(pixels, c.R, c.G, c.B)
		}
	}
	return pixels, layout
}

// ToImage builds an opaque image from a sample buffer.
func ToImage(pixels []uint8, layout Layout) (*image.RGBA, error) {
	if layout.Channels != Channels || layout.Width <= 0 || layout.Height <= 0 ||
		len(pixels) != layout.Samples() {
		return nil, fmt.Errorf("%w: %d samples for %dx%dx%d",
			ErrLayoutMismatch, len(pixels), layout.Width, layout.Height, layout.Channels)
	}
	m := image.NewRGBA(image.Rect(0, 0, layout.Width, layout.Height))
	for i, j := 0, 0; i < len(pixels); i, j = i+Channels, j+4 {
		m.Pix[j] = pixels[i]
		m.Pix[j+1] = pixels[i+1]
		m.Pix[j+2] = pixels[i+2]
		m.Pix[j+3] = 0xff
	}
	return m, nil
}

// StorePixels encodes a sample buffer with a lossless format.
func StorePixels(pixels []uint8, layout Layout, format string) ([]byte, error) {
	m, err := ToImage(pixels, layout)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	switch format {
	case FormatPNG, "":
		err = png.Encode(buf, m)
	case FormatBMP:
		err = bmp.Encode(buf, m)
	case FormatTIFF:
		err = tiff.Encode(buf, m, &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, fmt.Errorf("%w: can not store pixels as %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
