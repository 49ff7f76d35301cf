package logging

import (
	"log/slog"
	"os"
)

// EnvVar selects the library log level: 0=Error, 1=Warn (default), 2=Info, 3=Debug.
const EnvVar = "DRILLDASH_DEBUG"

var (
	logLevel = new(slog.LevelVar)
	logger   *slog.Logger
)

func init() {
	logLevel.Set(parseLogLevel(os.Getenv(EnvVar)))

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	logger = slog.New(handler)
}

// Logger returns the global logger instance.
func Logger() *slog.Logger {
	return logger
}

// SetLogLevel sets the global log level for the entire library.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// Level returns the current global log level.
func Level() slog.Level {
	return logLevel.Level()
}

// parseLogLevel converts DRILLDASH_DEBUG values to slog levels.
// Default: Warn if not set or invalid
func parseLogLevel(envVal string) slog.Level {
	switch envVal {
	case "0":
		return slog.LevelError
	case "1":
		return slog.LevelWarn
	case "2":
		return slog.LevelInfo
	case "3":
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}
