// Package log configures the zerolog logger shared by the binding.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the package logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", etc.)
	Output io.Writer // optional writer (defaults to os.Stderr)
}

var (
	mu   sync.RWMutex
	base = zerolog.Nop()
	once sync.Once
)

// Configure replaces the base logger. Without a call the binding stays silent
// unless VLC_LOG_LEVEL is set.
func Configure(cfg Config) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("lib", "vlc").
		Logger()

	mu.Lock()
	base = l
	mu.Unlock()
}

// Set installs an externally built logger.
func Set(l zerolog.Logger) {
	once.Do(func() {})
	mu.Lock()
	base = l
	mu.Unlock()
}

func logger() zerolog.Logger {
	once.Do(func() {
		if env := os.Getenv("VLC_LOG_LEVEL"); env != "" {
			Configure(Config{Level: env})
		}
	})
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	return logger()
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return logger().With().Str("component", component).Logger()
}
