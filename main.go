package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stegqr/config"
	"stegqr/cryptography"
	"stegqr/local"
	"stegqr/protocol"
	"stegqr/qrkey"
	"stegqr/util"
)

const (
	StegqrFolder  = ".stegqr"
	SaltFilename  = "salt.bin"
	QRKeyFilename = "secret_qr_key.png"
)

func main() {

	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		help()
		return
	}

	// commands which need neither configuration nor password
	switch os.Args[1] {
	case "gensalt":
		salt, err := util.GenSalt()
		if err != nil {
			fatal("Failed to generate salt:", err)
		}
		fmt.Println("[+] Generated salt:", salt)
		return
	case "genkey":
		if err := genKey(argOr(2, QRKeyFilename)); err != nil {
			fatal("Failed to generate key:", err)
		}
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fatal("Failed to get home directory:", err)
	}
	folder := filepath.Join(home, StegqrFolder)
	if err = os.MkdirAll(folder, 0700); err != nil {
		fatal("Failed to create stegqr directory in user's home folder:", err)
	}

	saltBytes, err := getSalt(folder)
	if err != nil {
		fatal("Failed to get salt bytes:", err)
	}
	password, err := util.GetPasswd("Password (empty for unencrypted configuration): ")
	if err != nil {
		fatal("Failed to read password from stdin:", err)
	}
	var key []byte
	if len(password) > 0 {
		key = cryptography.Subkey(cryptography.DeriveKey(password, saltBytes), "config")
	}

	configFile := filepath.Join(folder, config.ConfigFilename)
	// if the application is run for the first time, create the configuration
	if _, err := os.Stat(configFile); err != nil {
		if err = config.SaveConfig(configFile, key, config.Default(folder)); err != nil {
			fatal("Failed to save default configuration:", err)
		}
	}

	switch os.Args[1] {
	case "serve":
		if err = local.RunStegoServer(configFile, key); err != nil {
			fatal("Failed to run local server:", err)
		}
	case "editconf":
		if err = util.EditConfig(configFile, key); err != nil {
			fatal("Failed to edit configuration:", err)
		}
		if _, err = config.LoadConfig(configFile, key); err != nil {
			fatal("Configuration is broken after editing:", err)
		}
	default:
		conf, err := config.LoadConfig(configFile, key)
		if err != nil {
			fatal("Failed to load configuration:", err)
		}
		if err = runCommand(conf); err != nil {
			util.NewLogger(&conf.Logger).LogError(err)
			fatal(err)
		}
	}
}

func runCommand(conf *config.FullConfig) error {
	switch os.Args[1] {
	case "hide":
		if len(os.Args) < 3 {
			help()
			return nil
		}
		return hide(conf, os.Args[2], argOr(3, ""), argOr(4, QRKeyFilename))
	case "reveal":
		if len(os.Args) < 4 {
			help()
			return nil
		}
		return reveal(os.Args[2], os.Args[3])
	case "capacity":
		if len(os.Args) < 3 {
			help()
			return nil
		}
		return capacity(conf, os.Args[2])
	case "history":
		return history(conf, argOr(2, ""))
	case "readlog":
		logs, err := util.ReadLog(&conf.Logger)
		if err != nil {
			return fmt.Errorf("failed to read log file: %w", err)
		}
		fmt.Print(logs)
		return nil
	}
	help()
	return nil
}

func hide(conf *config.FullConfig, carrierFile, out, qrOut string) error {
	carrier, err := os.ReadFile(carrierFile)
	if err != nil {
		return err
	}
	message, err := util.ReadMessage("Secret message: ")
	if err != nil {
		return err
	}
	res, err := protocol.HideMessage(carrier, message, protocol.OptionsFromConfig(conf))
	if err != nil {
		return err
	}
	if out == "" {
		out = util.StegoFilename(carrierFile, res.Format)
	}
	if err = os.WriteFile(out, res.Stego, 0644); err != nil {
		return err
	}
	if err = os.WriteFile(qrOut, res.QR, 0600); err != nil {
		return err
	}

	journal, err := openJournal(conf)
	if err == nil {
		defer journal.Close()
		err = journal.AddSession(&util.Session{
			CarrierHash: cryptography.Hash(carrier),
			Fingerprint: res.Fingerprint,
			Format:      res.Format,
			Output:      out,
		})
	}
	if err != nil {
		util.NewLogger(&conf.Logger).LogWarning("session not journaled: " + err.Error())
	}

	fmt.Println("[+] Stego image:", out)
	fmt.Println("[+] Key QR code:", qrOut)
	fmt.Println("[+] Key:", res.KeyText)
	return nil
}

// keySource is a QR image file, a base64 key, or "-" for a key embedded
// in the stego image itself.
func reveal(stegoFile, keySource string) error {
	stego, err := os.ReadFile(stegoFile)
	if err != nil {
		return err
	}
	var key []byte
	util.DebugPrintln("revealing", stegoFile, "with key from", keySource)
	if keySource != "-" {
		if qr, readErr := os.ReadFile(keySource); readErr == nil {
			key, err = protocol.KeyFromQR(qr)
		} else {
			key, err = cryptography.DecodeKey(keySource)
		}
		if err != nil {
			return err
		}
	}
	res, err := protocol.RevealMessage(stego, key)
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	return nil
}

func capacity(conf *config.FullConfig, carrierFile string) error {
	carrier, err := os.ReadFile(carrierFile)
	if err != nil {
		return err
	}
	n, err := protocol.Capacity(carrier, protocol.OptionsFromConfig(conf))
	if err != nil {
		return err
	}
	fmt.Printf("[+] %s can hide up to %d bytes of UTF-8 text as %s\n",
		carrierFile, n, conf.StegConfig.OutputFormat)
	return nil
}

func history(conf *config.FullConfig, fingerprint string) error {
	journal, err := openJournal(conf)
	if err != nil {
		return err
	}
	defer journal.Close()
	var sessions []util.Session
	if fingerprint != "" {
		sessions, err = journal.FindByFingerprint(fingerprint)
	} else {
		sessions, err = journal.List(50)
	}
	if err != nil {
		return err
	}
	for _, s := range sessions {
		fmt.Printf("%s  %s  key %s  %s  %s\n",
			s.Created.Format(time.RFC3339), s.ID, s.Fingerprint, s.Format, s.Output)
	}
	return nil
}

func genKey(qrOut string) error {
	key, err := cryptography.GenKey()
	if err != nil {
		return err
	}
	text := cryptography.EncodeKey(key)
	qr, err := qrkey.Render(text, qrkey.DefaultSize)
	if err != nil {
		return err
	}
	if err = os.WriteFile(qrOut, qr, 0600); err != nil {
		return err
	}
	fmt.Println("[+] Key:", text)
	fmt.Println("[+] Key QR code:", qrOut)
	return nil
}

func openJournal(conf *config.FullConfig) (*util.DB, error) {
	journal, err := util.ConnectDB(conf.DbFile, conf.DbPassword, conf.DbRowsLimit)
	if err != nil {
		return nil, err
	}
	if err = journal.InitDB(); err != nil {
		journal.Close()
		return nil, err
	}
	return journal, nil
}

func getSalt(folder string) ([]byte, error) {
	saltFile := filepath.Join(folder, SaltFilename)
	salt, err := os.ReadFile(saltFile)
	if err != nil {
		salt, err = cryptography.GenRandom(cryptography.SaltSize)
		if err != nil {
			return nil, err
		}
		if err = os.WriteFile(saltFile, salt, 0600); err != nil {
			return nil, err
		}
	}
	return salt, nil
}

func argOr(i int, def string) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return def
}

func fatal(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func help() {
	line := `Usage: ./stegqr <command> [arguments]

The following commands are supported:
	hide <carrier> [out] [qr-out]	hide a message read from stdin, write stego image and key QR
	reveal <stego> <qr|key|->	reveal a message with a QR image, a base64 key or the embedded key
	capacity <carrier>		how much text a carrier can hold
	genkey [qr-out]			generate a key and its QR code
	serve				run the local API server
	history [fingerprint]		list journaled hide sessions
	editconf			edit configuration
	readlog				read log file
	gensalt				generate base64-encoded salt for the log password
`
	fmt.Printf("%s", line)
}
