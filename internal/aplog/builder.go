package aplog

import (
	"log/slog"
)

type Builder interface {
	WithComponent(componentId string) Builder
	WithCommand(name string) Builder
	WithInput(path string) Builder
	With(args ...any) Builder
	Build() *slog.Logger
}

type builder struct {
	l *slog.Logger
}

func (b *builder) With(args ...any) Builder {
	return &builder{l: b.l.With(args...)}
}

func (b *builder) WithComponent(componentId string) Builder {
	return &builder{l: b.l.With("component", componentId)}
}

func (b *builder) WithCommand(name string) Builder {
	return &builder{l: b.l.With("command", name)}
}

// WithInput records where the filtered sequence was read from. An empty path
// or "-" is reported as stdin.
func (b *builder) WithInput(path string) Builder {
	if path == "" || path == "-" {
		path = "stdin"
	}
	return &builder{l: b.l.With("input", path)}
}

func (b *builder) Build() *slog.Logger {
	return b.l
}

func NewBuilder(l *slog.Logger) Builder {
	if l == nil {
		panic("cannot create log builder with nil log")
	}

	return &builder{l: l}
}

var _ Builder = &builder{}
