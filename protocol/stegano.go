package protocol

import (
	"bytes"
	"fmt"

	"stegqr/config"
	"stegqr/cryptography"
	"stegqr/qrkey"
	"stegqr/stegano/img"
)

/*
 * The two user actions: hiding a message in a carrier image (a fresh key
 * is generated and handed out as a QR code) and revealing it back with
 * that key.
 */
type Options struct {
	KeySize      int
	OutputFormat string
	AuxMode      string
	QRSize       int
}

func OptionsFromConfig(conf *config.FullConfig) Options {
	return Options{
		KeySize:      conf.StegConfig.KeySize,
		OutputFormat: conf.StegConfig.OutputFormat,
		AuxMode:      conf.StegConfig.AuxMode,
		QRSize:       conf.QRConfig.Size,
	}
}

type HideResult struct {
	Stego       []byte
	QR          []byte // PNG with the key text
	Key         []byte
	KeyText     string
	Fingerprint string
	Format      string
}

type RevealResult struct {
	Message string
	Aux     string
}

// AuxText is what gets framed next to the ciphertext for a key.
func AuxText(key []byte, mode string) string {
	if mode == config.AuxKey {
		return cryptography.EncodeKey(key)
	}
	return cryptography.Fingerprint(key)
}

func HideMessage(carrier []byte, message string, opts Options) (*HideResult, error) {
	if len(carrier) == 0 {
		return nil, ErrNoCarrier
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}
	keySize := opts.KeySize
	if keySize <= 0 {
		keySize = cryptography.KeySize
	}
	format := opts.OutputFormat
	if format == "" {
		format = img.FormatPNG
	}

	key, err := cryptography.GenRandom(uint(keySize))
	if err != nil {
		return nil, err
	}
	keyText := cryptography.EncodeKey(key)
	qr, err := qrkey.Render(keyText, opts.QRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render key QR: %w", err)
	}
	ct, err := cryptography.Encrypt(message, key)
	if err != nil {
		return nil, err
	}
	stego, err := img.Hide(carrier, ct, AuxText(key, opts.AuxMode), format)
	if err != nil {
		return nil, err
	}
	return &HideResult{
		Stego:       stego,
		QR:          qr,
		Key:         key,
		KeyText:     keyText,
		Fingerprint: cryptography.Fingerprint(key),
		Format:      format,
	}, nil
}

// RevealMessage extracts and decrypts the hidden message. With a nil key
// the key embedded by the "key" aux mode is used, if there is one.
func RevealMessage(stego []byte, key []byte) (*RevealResult, error) {
	if len(stego) == 0 {
		return nil, ErrNoCarrier
	}
	ct, aux, err := img.Reveal(stego)
	if err != nil {
		return nil, err
	}
	if key == nil {
		if cryptography.IsFingerprint(aux) {
			return nil, ErrNoKey
		}
		if key, err = cryptography.DecodeKey(aux); err != nil {
			return nil, ErrNoKey
		}
	}
	if !KeyMatches(key, aux) {
		return nil, ErrKeyMismatch
	}
	message, err := cryptography.Decrypt(ct, key)
	if err != nil {
		return nil, err
	}
	return &RevealResult{Message: message, Aux: aux}, nil
}

// KeyMatches tells whether aux was made for key, in either aux mode.
func KeyMatches(key []byte, aux string) bool {
	if cryptography.IsFingerprint(aux) {
		return aux == cryptography.Fingerprint(key)
	}
	embedded, err := cryptography.DecodeKey(aux)
	return err == nil && bytes.Equal(embedded, key)
}

// KeyFromQR reads a key out of a QR code image.
func KeyFromQR(qrImage []byte) ([]byte, error) {
	text, err := qrkey.Decode(qrImage)
	if err != nil {
		return nil, err
	}
	return cryptography.DecodeKey(text)
}

// Room is what a carrier offers: raw payload bits and the longest message
// in bytes that fits next to the aux text.
type Room struct {
	Bits       int
	MaxMessage int
}

// Measure reports the room of a carrier with opts.
func Measure(carrier []byte, opts Options) (Room, error) {
	keySize := opts.KeySize
	if keySize <= 0 {
		keySize = cryptography.KeySize
	}
	auxLen := cryptography.FingerprintSize
	if opts.AuxMode == config.AuxKey {
		auxLen = len(cryptography.EncodeKey(make([]byte, keySize)))
	}
	format := opts.OutputFormat
	if format == "" {
		format = img.FormatPNG
	}
	bits, err := img.CarrierBits(carrier, format)
	if err != nil {
		return Room{}, err
	}
	return Room{Bits: bits, MaxMessage: img.MaxMessage(bits, auxLen)}, nil
}

// Capacity reports how many message bytes a carrier holds with opts.
func Capacity(carrier []byte, opts Options) (int, error) {
	room, err := Measure(carrier, opts)
	if err != nil {
		return 0, err
	}
	return room.MaxMessage, nil
}
