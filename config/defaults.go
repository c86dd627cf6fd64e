package config

import (
	"path/filepath"

	"stegqr/cryptography"
	"stegqr/util"
)

const (
	ConfigFilename = "config.yaml"
	LogFilename    = "log.log"
	DbFilename     = "journal.db"
)

// Default builds the configuration written on first run.
func Default(folder string) *FullConfig {
	return &FullConfig{
		StegConfig: SteganoConfig{
			KeySize:      cryptography.KeySize,
			OutputFormat: "png",
			AuxMode:      AuxFingerprint,
		},
		QRConfig: QRConfig{
			Size: 256,
		},
		ServerConfig: ServerConfiguration{
			Address:        "127.0.0.1:8080",
			MaxUploadBytes: 32 << 20,
		},
		Logger: util.LoggerInfo{
			Filename:  filepath.Join(folder, LogFilename),
			IsColored: true,
			SaveTime:  true,
			Mode:      util.Error | util.Warning,
		},
		DbFile:      filepath.Join(folder, DbFilename),
		DbPassword:  util.GenID(),
		DbRowsLimit: 10000,
	}
}
