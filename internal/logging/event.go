package logging

import "time"

// Event is one log occurrence after the sink has resolved it from a slog.Record.
type Event struct {
	Time     time.Time
	Level    Level
	Logger   string
	Message  string
	Module   string
	Function string
	Line     int

	// Err is the error attached under the "error" attribute, if any.
	Err error

	// Extra holds every other attribute. Keys must not collide with the
	// fixed output keys; see ErrFieldCollision.
	Extra map[string]any
}
