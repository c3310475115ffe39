// Package logging provides the zerolog-based global logger.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("session", id).Msg("loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("gemini call failed")
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	// Level is one of trace, debug, info, warn, error, fatal, disabled.
	Level string
	// Format is json or console.
	Format string
	Output io.Writer
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	initLogger(Config{})
}

// Init reconfigures the global logger. Safe to call more than once.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

func initLogger(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}
	log = zerolog.New(out).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}
