package util

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"stegqr/cryptography"
)

/*
 * a custom logger. core packages never log, everything above them
 * (cli, local api) reports through this one.
 */
const (
	Error   = 1
	Warning = 2
	Info    = 4

	RedColor     = "\033[31m"
	YellowColor  = "\033[33m"
	GreenColor   = "\033[32m"
	CyanColor    = "\033[36m"
	BlueColor    = "\033[34m"
	MagentaColor = "\033[35m"
	ResetColor   = "\033[0m"
)

type LoggerInfo struct {
	Filename    string `json:"filename" yaml:"filename"`
	Password    string `json:"password" yaml:"password"` // <base64-salt>:<password>, used when encrypted
	IsEncrypted bool   `json:"is_encrypted" yaml:"is_encrypted"`
	IsColored   bool   `json:"is_colored" yaml:"is_colored"`
	SaveTime    bool   `json:"save_time" yaml:"save_time"`
	Mode        uint8  `json:"mode" yaml:"mode"`
}

type Logger struct {
	li  *LoggerInfo
	mtx sync.Mutex
}

func NewLogger(li *LoggerInfo) *Logger {
	return &Logger{li: li}
}

func (l *Logger) colorize(line string, color string) string {
	if l.li.IsColored {
		return color + line + ResetColor
	}
	return line
}

func (l *Logger) prepareString(str string, clr string) string {
	toWrite := l.colorize(str, clr) + " "
	if l.li.SaveTime {
		toWrite += time.Now().Format(time.RFC3339) + " "
	}
	return toWrite
}

func (l *Logger) LogString(s string) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	if !l.li.IsEncrypted {
		// just append line
		f, err := os.OpenFile(l.li.Filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err == nil {
			defer f.Close()
			f.WriteString(s + "\n")
		}
		return
	}
	key, err := logKey(l.li.Password)
	if err != nil {
		return
	}
	var current []byte
	data, err := os.ReadFile(l.li.Filename)
	if err == nil {
		if current, err = cryptography.Open(data, key); err != nil {
			// never overwrite a log we can't read
			return
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return
	}
	sealed, err := cryptography.Seal(append(current, []byte(s+"\n")...), key)
	if err == nil {
		os.WriteFile(l.li.Filename, sealed, 0600)
	}
}

func (l *Logger) LogError(err error) {
	if l.li.Mode&Error == Error {
		l.LogString(l.prepareString("[ERROR]", RedColor) + err.Error())
	}
}

func (l *Logger) LogWarning(warning string) {
	if l.li.Mode&Warning == Warning {
		l.LogString(l.prepareString("[WARNING]", YellowColor) + warning)
	}
}

func (l *Logger) LogInfo(info string) {
	if l.li.Mode&Info == Info {
		l.LogString(l.prepareString("[INFO]", CyanColor) + info)
	}
}

// ReadLog returns the content of the log, opening it when encrypted.
func ReadLog(li *LoggerInfo) (string, error) {
	data, err := os.ReadFile(li.Filename)
	if err != nil {
		return "", err
	}
	if !li.IsEncrypted {
		return string(data), nil
	}
	key, err := logKey(li.Password)
	if err != nil {
		return "", err
	}
	logs, err := cryptography.Open(data, key)
	if err != nil {
		return "", errors.New("failed to decrypt logs: invalid password")
	}
	return strings.TrimRight(string(logs), "\n") + "\n", nil
}

func logKey(password string) ([]byte, error) {
	pass, saltBytes, err := cryptography.SplitWithSalt(password)
	if err != nil {
		return nil, err
	}
	return cryptography.Subkey(cryptography.DeriveKey(pass, saltBytes), "log"), nil
}
