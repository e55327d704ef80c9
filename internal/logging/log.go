package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/HexmosTech/htest/internal/config"
)

var (
	logger   *slog.Logger
	initOnce sync.Once
)

// Logger returns the library logger. It discards everything unless HTEST_LOG
// is set, so that test output stays clean by default.
func Logger() *slog.Logger {
	initOnce.Do(func() {
		logger = New(config.LogEnabled(), config.LogLevel(), os.Stderr)
	})
	return logger
}

func New(enabled bool, logLevel string, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}
	if !enabled {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
