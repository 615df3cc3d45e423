package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Pipeline is one configured logging output: a writer, a formatter, a
// minimum level for the sink and optional per-logger level overrides. It is
// passed explicitly to whatever needs a logger; nothing here touches
// slog.Default.
type Pipeline struct {
	out       io.Writer
	writeMu   sync.Mutex
	formatter Formatter
	level     slog.LevelVar
	metrics   *Metrics

	levelsMu sync.RWMutex
	levels   map[string]*slog.LevelVar
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics counts written and rejected records on m.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// NewPipeline creates a stream sink on out that drops records below level.
func NewPipeline(out io.Writer, f Formatter, level Level, opts ...Option) *Pipeline {
	if f == nil {
		f = TextFormatter{}
	}
	p := &Pipeline{
		out:       out,
		formatter: f,
		levels:    make(map[string]*slog.LevelVar),
	}
	p.level.Set(level)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Formatter returns the formatter the sink renders with.
func (p *Pipeline) Formatter() Formatter {
	return p.formatter
}

// SinkLevel returns the minimum level the sink writes.
func (p *Pipeline) SinkLevel() Level {
	return p.level.Level()
}

// Logger returns a slog.Logger whose records carry name as the logger name.
func (p *Pipeline) Logger(name string) *slog.Logger {
	return slog.New(&Handler{p: p, name: name})
}

// SetLevel sets the minimum level for the named logger. Records still have to
// clear the sink level as well.
func (p *Pipeline) SetLevel(name string, l Level) {
	p.levelsMu.Lock()
	defer p.levelsMu.Unlock()
	v, ok := p.levels[name]
	if !ok {
		v = new(slog.LevelVar)
		p.levels[name] = v
	}
	v.Set(l)
}

// Level returns the effective minimum level for the named logger.
func (p *Pipeline) Level(name string) Level {
	sink := p.level.Level()
	p.levelsMu.RLock()
	v, ok := p.levels[name]
	p.levelsMu.RUnlock()
	if ok && v.Level() > sink {
		return v.Level()
	}
	return sink
}

// reportFailure writes a replacement line for an event the formatter
// rejected. Extras are dropped and the formatter error is attached, so the
// record still shows up in the stream with the reason it could not be
// rendered.
func (p *Pipeline) reportFailure(ev Event, cause error) {
	stub := Event{
		Time:     ev.Time,
		Level:    ev.Level,
		Logger:   ev.Logger,
		Message:  ev.Message,
		Module:   ev.Module,
		Function: ev.Function,
		Line:     ev.Line,
		Err:      errors.Join(fmt.Errorf("logging error: %w", cause), ev.Err),
	}
	line, err := p.formatter.Format(stub)
	if err != nil {
		line, _ = TextFormatter{}.Format(stub)
	}
	_ = p.write(line)
}

func (p *Pipeline) write(line string) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_, err := io.WriteString(p.out, line+"\n")
	return err
}
