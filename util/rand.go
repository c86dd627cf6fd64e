package util

import (
	"encoding/base64"
	"strconv"

	"stegqr/cryptography"
)

const (
	IDLength = 32
)

var (
	lastIDFailed = 0
)

func GenID() string {
	buffer, err := cryptography.GenRandom(uint(IDLength))
	if err != nil {
		lastIDFailed++
		return "gen-id-failed-" + strconv.Itoa(lastIDFailed)
	}
	return base64.StdEncoding.EncodeToString(buffer)
}
