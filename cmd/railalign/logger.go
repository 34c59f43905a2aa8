package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger returns JSON logger writing to rotating file, or text logger on stderr when fname is empty
func newLogger(fname, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level\n", level)
	}

	var handler slog.Handler
	if fname == "" {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	} else {
		var w io.Writer = &lumberjack.Logger{
			Filename:   fname,
			MaxSize:    32, // MB
			MaxBackups: 1,
		}
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	logger := slog.New(handler)
	logger.Debug("System information",
		slog.Time("start", time.Now()),
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()))
	return logger
}
