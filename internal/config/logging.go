package config

import (
	"io"
	"log/slog"
	"time"

	"github.com/filterkata/filter/internal/aplog"
	"github.com/lmittmann/tint"
)

type LoggingConfigType string

const (
	LoggingConfigTypeText LoggingConfigType = "text"
	LoggingConfigTypeJson LoggingConfigType = "json"
	LoggingConfigTypeTint LoggingConfigType = "tint"
	LoggingConfigTypeNone LoggingConfigType = "none"
)

type LoggingConfigLevel string

const (
	LevelDebug LoggingConfigLevel = "debug"
	LevelInfo  LoggingConfigLevel = "info"
	LevelWarn  LoggingConfigLevel = "warn"
	LevelError LoggingConfigLevel = "error"
)

func (l LoggingConfigLevel) String() string {
	return string(l)
}

func (l LoggingConfigLevel) Level() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type LoggingConfigOutput string

const (
	OutputStdout LoggingConfigOutput = "stdout"
	OutputStderr LoggingConfigOutput = "stderr"
)

// Output picks stdout or stderr. Anything unset goes to stderr so logs never
// mix with the filtered sequence by default.
func (l LoggingConfigOutput) Output(stdout, stderr io.Writer) io.Writer {
	switch l {
	case OutputStdout:
		return stdout
	default:
		return stderr
	}
}

type LoggingConfig struct {
	Type       LoggingConfigType   `json:"type,omitempty" yaml:"type,omitempty" jsonschema:"enum=text,enum=json,enum=tint,enum=none"`
	To         LoggingConfigOutput `json:"to,omitempty" yaml:"to,omitempty" jsonschema:"enum=stdout,enum=stderr"`
	Level      LoggingConfigLevel  `json:"level,omitempty" yaml:"level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Source     bool                `json:"source,omitempty" yaml:"source,omitempty"`
	NoColor    *bool               `json:"no_color,omitempty" yaml:"no_color,omitempty"`
	TimeFormat *string             `json:"time_format,omitempty" yaml:"time_format,omitempty"`
}

// GetRootLogger builds a logger writing to whichever of stdout and stderr is
// configured.
func (l *LoggingConfig) GetRootLogger(stdout, stderr io.Writer) *slog.Logger {
	if l == nil {
		return aplog.NewNoopLogger()
	}
	return l.NewLogger(l.To.Output(stdout, stderr))
}

// NewLogger builds a logger of the configured type writing to w.
func (l *LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	if l == nil {
		return aplog.NewNoopLogger()
	}

	switch l.Type {
	case LoggingConfigTypeText:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     l.Level.Level(),
			AddSource: l.Source,
		}))
	case LoggingConfigTypeJson:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     l.Level.Level(),
			AddSource: l.Source,
		}))
	case LoggingConfigTypeTint:
		noColor := false
		if l.NoColor != nil {
			noColor = *l.NoColor
		}

		timeFormat := time.Kitchen
		if l.TimeFormat != nil {
			timeFormat = *l.TimeFormat
		}

		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      l.Level.Level(),
			AddSource:  l.Source,
			NoColor:    noColor,
			TimeFormat: timeFormat,
		}))
	default:
		return aplog.NewNoopLogger()
	}
}
