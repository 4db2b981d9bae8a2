package trace

import (
	"fmt"
	"strings"
)

// Level is how much of a script run gets traced. Each level includes the
// ones before it.
type Level uint8

const (
	LevelOff    Level = iota // nothing is traced
	LevelError               // nothing is streamed; the ring is dumped on an internal fault
	LevelPhase               // commands and lex/parse/check/execute
	LevelScript              // plus one span per script of a batch check
	LevelStep                // plus interpreter jumps
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelScript: "script",
	LevelStep:   "step",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case. "detail" and "debug" are
// kept as aliases of script and step.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(s)
	switch name {
	case "detail":
		return LevelScript, nil
	case "debug":
		return LevelStep, nil
	}
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|script|step)", s)
}

// ShouldEmit reports whether events of scope are recorded at level l.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelScript:
		return scope <= ScopeScript
	case LevelStep:
		return scope <= ScopeStmt
	default:
		// LevelError пишет только аварийный дамп
		return false
	}
}
