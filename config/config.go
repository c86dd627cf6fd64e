package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stegqr/cryptography"
	"stegqr/util"
)

const (
	// what is stored next to the ciphertext
	AuxFingerprint = "fingerprint" // short hash of the key
	AuxKey         = "key"         // the base64 key itself, the QR text
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

/*
 * Configuration for steganography: how keys are generated, what is
 * embedded next to the ciphertext and in which format stego images are
 * written.
 */
type SteganoConfig struct {
	KeySize      int    `yaml:"key_size"`
	OutputFormat string `yaml:"output_format"` // png, bmp, tiff or jpeg
	AuxMode      string `yaml:"aux_mode"`
}

// rendering of the key QR code
type QRConfig struct {
	Size int `yaml:"size"`
}

/*
 * Server configuration - configuration of local API server.
 */
type ServerConfiguration struct {
	Address        string `yaml:"address"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

type FullConfig struct {
	StegConfig   SteganoConfig       `yaml:"stegano_config"`
	QRConfig     QRConfig            `yaml:"qr_config"`
	ServerConfig ServerConfiguration `yaml:"local_server_config"`
	Logger       util.LoggerInfo     `yaml:"logger_config"`
	DbFile       string              `yaml:"db_file"`
	DbPassword   string              `yaml:"db_password"`
	DbRowsLimit  uint                `yaml:"db_rows_limit"`
}

func (c *FullConfig) Validate() error {
	switch c.StegConfig.OutputFormat {
	case "png", "bmp", "tiff", "jpeg":
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.StegConfig.OutputFormat)
	}
	switch c.StegConfig.AuxMode {
	case AuxFingerprint, AuxKey:
	default:
		return fmt.Errorf("%w: unknown aux mode %q", ErrInvalidConfig, c.StegConfig.AuxMode)
	}
	if c.StegConfig.KeySize <= 0 {
		return fmt.Errorf("%w: key size must be positive", ErrInvalidConfig)
	}
	if c.QRConfig.Size <= 0 {
		return fmt.Errorf("%w: qr size must be positive", ErrInvalidConfig)
	}
	if c.ServerConfig.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max upload size must be positive", ErrInvalidConfig)
	}
	return nil
}

/*
 * Functions for loading and saving configuration in YAML format.
 */
func LoadConfig(filename string, key []byte) (*FullConfig, error) {
	data, err := LoadEncrypted(filename, key)
	if err != nil {
		return nil, err
	}

	var conf FullConfig
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func SaveConfig(filename string, key []byte, c *FullConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(*c)
	if err != nil {
		return err
	}
	return SaveEncrypted(filename, key, data)
}

/*
 * Functions for saving and loading encrypted files. A nil key means the
 * file is kept in plaintext.
 */
func LoadEncrypted(filename string, key []byte) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if len(key) == cryptography.SymKeySize {
		return cryptography.Open(data, key)
	}
	// return unencrypted data
	return data, nil
}

func SaveEncrypted(filename string, key, data []byte) error {
	var err error
	if len(key) == cryptography.SymKeySize {
		data, err = cryptography.Seal(data, key)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(filename, data, 0600)
}
