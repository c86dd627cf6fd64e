package util

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"

	"stegqr/cryptography"
)

const (
	TextEditor             = "/usr/bin/vi"
	TextEditorVariableName = "STEGQR_EDITOR"
	ShredCount             = 10
)

/*
 * user-related functions: editing the sealed configuration without
 * leaving a plaintext copy around.
 */
func EditConfig(conf string, key []byte) error {
	// open config, put it into temporary file, edit,
	// read, shred temporary file and seal the configuration back.
	te := TextEditor
	if v, ok := os.LookupEnv(TextEditorVariableName); ok && v != "" {
		te = v
	}

	data, err := os.ReadFile(conf)
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}
	pt := data
	if key != nil {
		pt, err = cryptography.Open(data, key)
		if err != nil {
			return fmt.Errorf("failed to decrypt configuration: %w; invalid password?", err)
		}
	}

	tmp, err := os.CreateTemp("", "stegqr-conf-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempFile := tmp.Name()
	defer ShredFile(tempFile)
	if _, err = tmp.Write(pt); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write into temporary file: %w", err)
	}
	tmp.Close()

	cmd := exec.Command(te, tempFile)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err = cmd.Run(); err != nil {
		return fmt.Errorf("failed to edit file using %v: %w", te, err)
	}

	pt, err = os.ReadFile(tempFile)
	if err != nil {
		return fmt.Errorf("failed to read temporary file: %w", err)
	}
	if key != nil {
		if pt, err = cryptography.Seal(pt, key); err != nil {
			return err
		}
	}
	return os.WriteFile(conf, pt, 0600)
}

// GenSalt returns a fresh base64 salt, the prefix of LoggerInfo.Password.
func GenSalt() (string, error) {
	saltBytes, err := cryptography.GenRandom(cryptography.SaltSize)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(saltBytes), nil
}

// overwrite the file with random data a few times, then remove it
func ShredFile(filename string) error {
	info, err := os.Stat(filename)
	if err != nil {
		return err
	}
	var finalError error
	if info.Size() > 0 {
		for i := 0; i < ShredCount; i++ {
			content, err := cryptography.GenRandom(uint(info.Size()))
			if err == nil {
				os.WriteFile(filename, content, 0600)
			} else {
				finalError = err
			}
		}
	}
	if err = os.Remove(filename); err != nil {
		finalError = err
	}
	return finalError
}
