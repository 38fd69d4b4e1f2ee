package internal

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	BufferSize int    `env:"BUFFER_SIZE,default=64"`
	DataDir    string `env:"DATA_DIR,default=./data"`
	LogLevel   string `env:"LOG_LEVEL,default=info"`
}

// NewLogger builds the process logger from a level name. Unknown names fall
// back to info rather than failing startup.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
