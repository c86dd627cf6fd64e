package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// just a wrapper for term...
func GetPasswd(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	bytepw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	return bytepw, err
}

// ReadMessage reads the secret message. On a terminal it is typed without
// echo, a piped stdin is read to the end.
func ReadMessage(prompt string) (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		msg, err := GetPasswd(prompt)
		return FixUnicode(string(msg)), err
	}
	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", err
	}
	return FixUnicode(strings.TrimSuffix(string(data), "\n")), nil
}
