package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainLogger(t *testing.T) {
	li := &LoggerInfo{
		Filename: filepath.Join(t.TempDir(), "log.log"),
		Mode:     Error | Info,
	}
	logger := NewLogger(li)
	logger.LogInfo("hidden a message")
	logger.LogWarning("filtered out")
	logger.LogError(errors.New("carrier is too small"))

	content, err := ReadLog(li)
	require.NoError(t, err)
	assert.Contains(t, content, "[INFO] hidden a message")
	assert.Contains(t, content, "[ERROR] carrier is too small")
	assert.NotContains(t, content, "filtered out")
}

func TestEncryptedLogger(t *testing.T) {
	salt, err := GenSalt()
	require.NoError(t, err)
	li := &LoggerInfo{
		Filename:    filepath.Join(t.TempDir(), "log.log"),
		Password:    salt + ":log-password",
		IsEncrypted: true,
		Mode:        Info,
	}
	logger := NewLogger(li)
	logger.LogInfo("first")
	logger.LogInfo("second")

	raw, err := os.ReadFile(li.Filename)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "first")

	content, err := ReadLog(li)
	require.NoError(t, err)
	assert.Contains(t, content, "[INFO] first\n")
	assert.Contains(t, content, "[INFO] second\n")

	li.Password = salt + ":wrong"
	_, err = ReadLog(li)
	assert.Error(t, err)
}

func TestStegoFilename(t *testing.T) {
	assert.Equal(t, "stego_cat.png", StegoFilename("/home/me/cat.jpg", "png"))
	assert.Equal(t, "stego_archive.tar.bmp", StegoFilename("archive.tar.gz", "bmp"))
	assert.Equal(t, "stego_image.png", StegoFilename("", "png"))
}

func TestFixUnicode(t *testing.T) {
	// e + combining acute -> precomposed é
	assert.Equal(t, "\u00e9", FixUnicode("e\u0301"))
}
