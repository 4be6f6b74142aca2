package monitoring

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogFormat represents the output format for logs
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatText
)

// Environment variables read by NewLoggerFromEnv.
const (
	EnvLogLevel  = "CRYPTON_LOG_LEVEL"
	EnvLogFormat = "CRYPTON_LOG_FORMAT"
)

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	Level     slog.Level
	Format    LogFormat
	Output    io.Writer
	Component string
	Fields    map[string]any
}

// NewLogger builds a slog.Logger tagged with service and component fields.
func NewLogger(config LoggerConfig) *slog.Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level,
		AddSource: config.Level <= slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var handler slog.Handler
	switch config.Format {
	case FormatText:
		handler = slog.NewTextHandler(config.Output, opts)
	default:
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	attrs := []any{"service", "crypton"}
	if config.Component != "" {
		attrs = append(attrs, "component", config.Component)
	}
	for k, v := range config.Fields {
		attrs = append(attrs, k, v)
	}

	return slog.New(handler).With(attrs...)
}

// NewLoggerFromEnv creates a logger whose level and format come from
// CRYPTON_LOG_LEVEL and CRYPTON_LOG_FORMAT. Defaults are info and json.
func NewLoggerFromEnv(component string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv(EnvLogLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	format := FormatJSON
	if strings.ToLower(os.Getenv(EnvLogFormat)) == "text" {
		format = FormatText
	}

	return NewLogger(LoggerConfig{
		Level:     level,
		Format:    format,
		Component: component,
		Fields: map[string]any{
			"pid": os.Getpid(),
		},
	})
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}
