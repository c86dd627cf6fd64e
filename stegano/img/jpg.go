package img

import (
	"bytes"
	"fmt"
	"image"

	"lukechampine.com/jsteg"

	"stegqr/stegano/frame"
)

/*
 * JPEG re-encoding destroys pixel LSBs, so for JPEG output the same frame
 * is hidden in the DCT coefficients instead.
 */

func HideInJpeg(carrier []byte, ciphertext []byte, aux string) ([]byte, error) {
	m, _, err := image.Decode(bytes.NewReader(carrier))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	f, err := frame.Build(ciphertext, aux)
	if err != nil {
		return nil, err
	}
	if n := jsteg.Capacity(m, nil); n < len(f) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrInsufficientCapacity, len(f), n)
	}
	out := new(bytes.Buffer)
	if err := jsteg.Hide(out, m, f, nil); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func RevealFromJpeg(stego []byte) ([]byte, string, error) {
	hidden, err := jsteg.Reveal(bytes.NewReader(stego))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", frame.ErrCorruptFrame, err)
	}
	return frame.Parse(hidden)
}

func jpegCapacity(carrier []byte) (int, error) {
	m, _, err := image.Decode(bytes.NewReader(carrier))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return jsteg.Capacity(m, nil), nil
}
