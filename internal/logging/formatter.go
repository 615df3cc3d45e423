package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TimeLayout is the timestamp layout shared by both formatters.
const TimeLayout = "2006-01-02 15:04:05,000"

// Format names accepted by NewFormatter.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrFieldCollision is returned when an extra field reuses a fixed output key.
var ErrFieldCollision = errors.New("extra field collides with fixed key")

// fixedKeys are the keys the JSON formatter owns.
var fixedKeys = map[string]struct{}{
	"timestamp": {},
	"level":     {},
	"logger":    {},
	"message":   {},
	"module":    {},
	"function":  {},
	"line":      {},
	"exception": {},
}

// Formatter renders an Event as a single line without the trailing newline.
type Formatter interface {
	Format(e Event) (string, error)
}

// NewFormatter returns the JSON formatter for exactly "json" and the text
// formatter for anything else.
func NewFormatter(format string) Formatter {
	if format == FormatJSON {
		return JSONFormatter{}
	}
	return TextFormatter{}
}

// TextFormatter renders "<timestamp> - <logger> - <level> - <message>",
// followed by " - <error>" when an error is attached.
type TextFormatter struct{}

func (TextFormatter) Format(e Event) (string, error) {
	parts := []string{
		e.Time.Format(TimeLayout),
		e.Logger,
		LevelName(e.Level),
		e.Message,
	}
	if e.Err != nil {
		parts = append(parts, strings.ReplaceAll(e.Err.Error(), "\n", " "))
	}
	return strings.Join(parts, " - "), nil
}

// JSONFormatter renders an Event as a JSON object with the fixed keys
// timestamp, level, logger, message, module, function and line, an exception
// key when an error is attached, and the extra fields at the top level.
type JSONFormatter struct{}

func (JSONFormatter) Format(e Event) (string, error) {
	if err := checkCollisions(e.Extra); err != nil {
		return "", err
	}

	data := make(map[string]any, len(fixedKeys)+len(e.Extra))
	for k, v := range e.Extra {
		data[k] = v
	}
	data["timestamp"] = e.Time.Format(TimeLayout)
	data["level"] = LevelName(e.Level)
	data["logger"] = e.Logger
	data["message"] = e.Message
	data["module"] = e.Module
	data["function"] = e.Function
	data["line"] = e.Line
	if e.Err != nil {
		data["exception"] = fmt.Sprintf("%+v", e.Err)
	}

	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal log event: %w", err)
	}
	return string(b), nil
}

func checkCollisions(extra map[string]any) error {
	var clash []string
	for k := range extra {
		if _, ok := fixedKeys[k]; ok {
			clash = append(clash, k)
		}
	}
	if len(clash) == 0 {
		return nil
	}
	sort.Strings(clash)
	return fmt.Errorf("%w: %s", ErrFieldCollision, strings.Join(clash, ", "))
}
