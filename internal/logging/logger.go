package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Component constants for structured logging.
const (
	CompHistory  = "history"
	CompRegistry = "registry"
	CompPipeline = "pipeline"
	CompPlatform = "platform"
	CompServer   = "server"
	CompCLI      = "cli"
)

// Config holds logging configuration.
type Config struct {
	// Dir is the directory for debug.log. Empty discards logs unless Debug
	// is set, in which case Fallback is used.
	Dir string

	// Fallback is used as the log directory in debug mode when Dir is empty.
	Fallback string

	// Level is the minimum log level: "debug", "info", "warn", "error"
	Level string

	// Format is "json" (default) or "text"
	Format string

	// MaxSizeMB is the max size in MB before rotation (default: 5)
	MaxSizeMB int

	// MaxBackups is rotated files to keep (default: 3)
	MaxBackups int

	Debug bool
}

var (
	globalMu     sync.RWMutex
	globalLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	lumberjackW  *lumberjack.Logger
)

// Init initializes the global logger. Calling it again replaces the previous
// configuration and closes the previous log file.
func Init(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if lumberjackW != nil {
		_ = lumberjackW.Close()
		lumberjackW = nil
	}

	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 5
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}

	dir := cfg.Dir
	if dir == "" && cfg.Debug {
		dir = cfg.Fallback
	}
	if dir == "" {
		globalLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return
	}

	lumberjackW = &lumberjack.Logger{
		Filename:   filepath.Join(dir, "debug.log"),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}

	globalLogger = slog.New(newHandler(lumberjackW, cfg))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level, cfg.Debug)}
	if cfg.Format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(level string, debug bool) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	}
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Logger returns the global logger.
func Logger() *slog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// ForComponent returns a logger tagged with the given component name.
func ForComponent(comp string) *slog.Logger {
	return Logger().With("component", comp)
}

// SetOutput routes logs to w. Tests use it to capture log records.
func SetOutput(w io.Writer, cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = slog.New(newHandler(w, cfg))
}

// Shutdown flushes and closes the log file.
func Shutdown() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if lumberjackW != nil {
		_ = lumberjackW.Close()
		lumberjackW = nil
	}
}
