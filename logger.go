package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"

	"microloans/internal/logging"
)

const (
	appLoggerName  = "microloans"
	httpLoggerName = "http"
	pgxLoggerName  = "pgx"
)

// noisyLoggers are held at WARNING whatever LOG_LEVEL says.
var noisyLoggers = []string{httpLoggerName, pgxLoggerName}

// setupLogging replaces the app's log output with a single stream sink at the
// configured level, rendering JSON when LOG_FORMAT is exactly "json" and text
// otherwise.
func setupLogging(app *App) {
	level := logging.ParseLevel(app.cfg.LogLevel)

	out := app.logOut
	if out == nil {
		out = os.Stdout
	}

	p := logging.NewPipeline(out, logging.NewFormatter(app.cfg.LogFormat), level, logging.WithMetrics(app.logMetrics))
	p.SetLevel(appLoggerName, level)
	for _, name := range noisyLoggers {
		p.SetLevel(name, logging.LevelWarning)
	}

	app.logs = p
	app.logger = p.Logger(appLoggerName)
}

// openPool creates the connection pool with driver tracing routed to l.
// The pool connects lazily.
func openPool(ctx context.Context, url string, l *slog.Logger) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	pcfg.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   pgxLogger{l: l},
		LogLevel: tracelog.LogLevelInfo,
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("db pool: %w", err)
	}
	return pool, nil
}

// pgxLogger adapts pgx trace output to a slog.Logger.
type pgxLogger struct {
	l *slog.Logger
}

func (p pgxLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	attrs := make([]slog.Attr, 0, len(data))
	for k, v := range data {
		if k == "err" {
			k = logging.ErrorKey
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	p.l.LogAttrs(ctx, pgxLevel(level), msg, attrs...)
}

func pgxLevel(l tracelog.LogLevel) slog.Level {
	switch l {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		return logging.LevelDebug
	case tracelog.LogLevelInfo:
		return logging.LevelInfo
	case tracelog.LogLevelWarn:
		return logging.LevelWarning
	default:
		return logging.LevelError
	}
}
