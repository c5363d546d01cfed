// Package logging configures the zerolog logger used across the client.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel   = "PARTYLINE_LOG_LEVEL"
	EnvLogNoColor = "PARTYLINE_LOG_NOCOLOR"
)

// Options controls logger construction.
type Options struct {
	App     string
	Level   string
	Out     io.Writer
	NoColor bool
}

// New builds a console logger and installs it as the global zerolog logger.
// The environment overrides Level and NoColor.
func New(opts Options) zerolog.Logger {
	if opts.Out == nil {
		opts.Out = os.Stderr
	}
	level, ok := ParseLevel(os.Getenv(EnvLogLevel))
	if !ok {
		level, _ = ParseLevel(opts.Level)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogNoColor)); v != "" && v != "0" && !strings.EqualFold(v, "false") {
		opts.NoColor = true
	}
	output := zerolog.ConsoleWriter{
		Out:        opts.Out,
		TimeFormat: time.RFC3339,
		NoColor:    opts.NoColor,
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", opts.App).Logger()
	log.Logger = logger
	return logger
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// return InfoLevel and false.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
