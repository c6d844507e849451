// Package logging owns the conversion run log.
//
// The run log is the side channel of a conversion: which pages were renamed,
// which links dangle, which pages have no detectable title. It is a thin
// layer over charmbracelet/log providing a package default for command
// plumbing, explicit constructors, and the shared field-name constants.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide default logger, set once.
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

// New returns a run logger writing to stderr at the named level. Unknown
// level names mean info.
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))

	return logger
}

// NewInteractive returns a logger for commands that talk to the user instead
// of reporting a run, such as config scaffolding. It writes to stdout at info
// level.
func NewInteractive() *log.Logger {
	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.InfoLevel)

	return logger
}

// Default returns the package-level logger, creating it on first use.
func Default() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New("info")
	})

	return defaultLogger
}

// SetDefault replaces the package-level logger. A replacement installed
// before the first Default call wins over the lazy construction.
func SetDefault(logger *log.Logger) {
	defaultLoggerOnce.Do(func() {})
	defaultLogger = logger
}

// SetLevel updates the default logger's level.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}

// parseLevel maps a level name to its log level. "warning" is accepted as an
// alias; anything unrecognized means info.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
