package logging

import (
	"log/slog"
	"strings"
)

// Level is a log severity. Values line up with slog so a Level can be handed
// straight to slog.HandlerOptions or a slog.LevelVar.
type Level = slog.Level

const (
	LevelDebug    Level = slog.LevelDebug
	LevelInfo     Level = slog.LevelInfo
	LevelWarning  Level = slog.LevelWarn
	LevelError    Level = slog.LevelError
	LevelCritical Level = slog.LevelError + 4
)

// ParseLevel looks up a level name case-insensitively. Unknown names,
// including ones with surrounding whitespace, resolve to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARNING", "WARN":
		return LevelWarning
	case "ERROR":
		return LevelError
	case "CRITICAL", "FATAL":
		return LevelCritical
	default:
		return LevelInfo
	}
}

// LevelName returns the upper-case name used in rendered output. Levels that
// fall between the named ones round down, so slog.LevelWarn+1 is WARNING.
func LevelName(l Level) string {
	switch {
	case l >= LevelCritical:
		return "CRITICAL"
	case l >= LevelError:
		return "ERROR"
	case l >= LevelWarning:
		return "WARNING"
	case l >= LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
