package config

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger routes the default slog logger to a rotated log file so
// that TUI output is never interleaved with diagnostics.
func InitLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	rotator := &lumberjack.Logger{
		Filename:   LogFilePath(),
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	logger := slog.New(slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)
}
