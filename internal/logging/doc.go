// Package logging renders log records for the service.
//
// A Pipeline owns one output stream and one Formatter. Loggers obtained from
// Pipeline.Logger are ordinary *slog.Logger values; their records are turned
// into an Event and rendered either as a JSON object or as the text line
//
//	<timestamp> - <logger> - <level> - <message>
//
// Per-logger levels let noisy subsystems (request logs, driver traces) be
// held at WARNING while the application logs at a lower level.
package logging
