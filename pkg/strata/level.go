package strata

import (
	"fmt"
	"strings"
)

// Level names one configuration layer, or all of them.
type Level string

// Levels, lowest priority first.
const (
	LevelDefault Level = "default"
	LevelSystem  Level = "system"
	LevelUser    Level = "user"
	LevelAll     Level = "all"
)

// ParseLevel converts a case-insensitive level name. An empty string is LevelAll.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return LevelAll, nil
	case LevelDefault, LevelSystem, LevelUser, LevelAll:
		return l, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

func (l Level) includes(other Level) bool {
	return l == LevelAll || l == other
}

func (l Level) String() string { return string(l) }
