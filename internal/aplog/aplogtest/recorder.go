// Package aplogtest captures slog records so tests can assert on them.
package aplogtest

import (
	"context"
	"log/slog"
	"sync"
)

type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

type store struct {
	mu      sync.Mutex
	entries []Entry
}

// Recorder is a slog.Handler that keeps every record at or above its level.
// Handlers derived through WithAttrs share the same entries.
type Recorder struct {
	level slog.Level
	attrs []slog.Attr
	s     *store
}

func (h *Recorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Recorder) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Resolve().Any()
		return true
	})

	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	h.s.entries = append(h.s.entries, Entry{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

func (h *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)
	combined = append(combined, attrs...)
	return &Recorder{level: h.level, attrs: combined, s: h.s}
}

// WithGroup is not tracked; grouped attributes are recorded flat.
func (h *Recorder) WithGroup(_ string) slog.Handler {
	return h
}

// Entries returns a copy of everything recorded so far.
func (h *Recorder) Entries() []Entry {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return append([]Entry(nil), h.s.entries...)
}

// Messages returns the message of every recorded entry, in order.
func (h *Recorder) Messages() []string {
	entries := h.Entries()
	msgs := make([]string, 0, len(entries))
	for _, e := range entries {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// NewTestLogger returns a logger recording records at level and above.
func NewTestLogger(level slog.Level) (*slog.Logger, *Recorder) {
	handler := &Recorder{level: level, s: &store{}}
	return slog.New(handler), handler
}
