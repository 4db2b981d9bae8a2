package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the auto|on|off value shared by --color and --ui.
type switchMode string

const (
	switchAuto switchMode = "auto"
	switchOn   switchMode = "on"
	switchOff  switchMode = "off"
)

func readSwitchMode(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on":
		return switchOn, nil
	case "off":
		return switchOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// resolve turns auto into "is f a terminal".
func (m switchMode) resolve(f *os.File) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	default:
		return isTerminal(f)
	}
}
