package util

import (
	"log"
)

const (
	DebugMode = false
)

func DebugPrintln(args ...any) {
	if DebugMode {
		log.Println(args...)
	}
}

func DebugPrintf(format string, args ...any) {
	if DebugMode {
		log.Printf(format, args...)
	}
}
