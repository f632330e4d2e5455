package common

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	loggerOnce sync.Once
	logger     *log.Logger
)

// Logger returns the process-wide structured logger, creating it on first use.
//
// Returns:
//   - *log.Logger: the shared logger
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "oxy-shadow",
			Level:           log.InfoLevel,
		})
	})
	return logger
}

// SetLogLevel parses a level name ("debug", "info", "warn", "error") and applies it to the shared logger.
//
// Parameters:
//   - level: the level name
//
// Returns:
//   - error: error if the level name is not recognised
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger().SetLevel(lvl)
	return nil
}

func LogDebug(msg string, keyvals ...any) {
	Logger().Helper()
	Logger().Debug(msg, keyvals...)
}

func LogInfo(msg string, keyvals ...any) {
	Logger().Helper()
	Logger().Info(msg, keyvals...)
}

func LogWarn(msg string, keyvals ...any) {
	Logger().Helper()
	Logger().Warn(msg, keyvals...)
}

func LogError(msg string, keyvals ...any) {
	Logger().Helper()
	Logger().Error(msg, keyvals...)
}

// LogFatal logs at fatal level and exits the process with status 1.
func LogFatal(msg string, keyvals ...any) {
	Logger().Helper()
	Logger().Fatal(msg, keyvals...)
}
