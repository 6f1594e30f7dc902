package aplog

import (
	"log/slog"
)

// NewNoopLogger returns a logger that drops every record.
func NewNoopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
