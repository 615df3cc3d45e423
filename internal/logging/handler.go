package logging

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// ErrorKey is the attribute key whose error value becomes Event.Err.
const ErrorKey = "error"

// Handler is the slog.Handler side of a Pipeline. It is bound to one logger
// name and is created through Pipeline.Logger.
type Handler struct {
	p      *Pipeline
	name   string
	attrs  []groupedAttr
	groups []string
}

type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

// Enabled reports whether the logger's effective level admits l.
func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.p.Level(h.name)
}

// Handle renders r and writes it to the pipeline's output.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	ev := Event{
		Time:    r.Time,
		Level:   r.Level,
		Logger:  h.name,
		Message: r.Message,
	}
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	if r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		ev.Module = strings.TrimSuffix(filepath.Base(frame.File), ".go")
		ev.Function = shortFunc(frame.Function)
		ev.Line = frame.Line
	}

	extra := make(map[string]any)
	for _, ga := range h.attrs {
		addAttr(extra, ga.groups, ga.attr, &ev)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(extra, h.groups, a, &ev)
		return true
	})
	if len(extra) > 0 {
		ev.Extra = extra
	}

	line, err := h.p.formatter.Format(ev)
	if err != nil {
		h.p.metrics.failed(h.name)
		h.p.reportFailure(ev, err)
		return err
	}
	if err := h.p.write(line); err != nil {
		return err
	}
	h.p.metrics.written(h.name, ev.Level)
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, groupedAttr{groups: h.groups, attr: a})
	}
	return h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *Handler) clone() *Handler {
	return &Handler{
		p:      h.p,
		name:   h.name,
		attrs:  append([]groupedAttr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

// addAttr places a into m under the group path. The first top-level error
// attribute is lifted into ev.Err instead; later ones stay fields. Pass a nil
// ev to keep every attribute as a field.
func addAttr(m map[string]any, groups []string, a slog.Attr, ev *Event) {
	a.Value = a.Value.Resolve()
	if a.Key == "" && a.Value.Kind() != slog.KindGroup {
		return
	}
	if ev != nil && ev.Err == nil && len(groups) == 0 && a.Key == ErrorKey && a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			ev.Err = err
			return
		}
	}

	target := m
	for _, g := range groups {
		target = subMap(target, g)
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return
		}
		if a.Key != "" {
			target = subMap(target, a.Key)
		}
		for _, ga := range attrs {
			addAttr(target, nil, ga, nil)
		}
		return
	}
	target[a.Key] = attrValue(a.Value)
}

func subMap(m map[string]any, key string) map[string]any {
	if sub, ok := m[key].(map[string]any); ok {
		return sub
	}
	sub := make(map[string]any)
	m[key] = sub
	return sub
}

func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	default:
		return v.Any()
	}
}

// shortFunc trims the import path from a runtime function name, leaving
// "pkg.Func" or "pkg.(*Type).Method".
func shortFunc(fn string) string {
	if i := strings.LastIndex(fn, "/"); i >= 0 {
		return fn[i+1:]
	}
	return fn
}
