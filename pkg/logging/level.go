package logging

import (
	"github.com/pkg/errors"
)

// Level represents a log level. Levels are ordered so that a logger configured
// at a given level emits messages at that level and every level below it.
type Level uint

const (
	// LevelDisabled indicates that logging is completely disabled.
	LevelDisabled Level = iota
	// LevelError indicates that only fatal errors are logged.
	LevelError
	// LevelWarn indicates that both fatal and non-fatal errors are logged.
	LevelWarn
	// LevelInfo indicates that basic execution information is logged (in
	// addition to all errors).
	LevelInfo
	// LevelDebug indicates that advanced execution information is logged (in
	// addition to basic information and all errors).
	LevelDebug
	// LevelTrace indicates that low-level execution information, such as every
	// decoded watch event, is logged.
	LevelTrace
)

// levelNames maps levels to their textual names.
var levelNames = map[Level]string{
	LevelDisabled: "disabled",
	LevelError:    "error",
	LevelWarn:     "warn",
	LevelInfo:     "info",
	LevelDebug:    "debug",
	LevelTrace:    "trace",
}

// NameToLevel converts a string-based representation of a log level to the
// appropriate Level value. It returns a boolean indicating whether or not the
// conversion was valid. If the name is invalid, LevelDisabled is returned.
func NameToLevel(name string) (Level, bool) {
	for level, levelName := range levelNames {
		if levelName == name {
			return level, true
		}
	}
	return LevelDisabled, false
}

// String provides a human-readable representation of a log level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

// UnmarshalText implements encoding.TextUnmarshaler.UnmarshalText.
func (l *Level) UnmarshalText(text []byte) error {
	level, ok := NameToLevel(string(text))
	if !ok {
		return errors.Errorf("unknown log level: %s", string(text))
	}
	*l = level
	return nil
}
