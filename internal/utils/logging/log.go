// Package logging prints leveled, colored console output and mirrors it to a structured log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"
	"time"

	"tubetag/internal/domain/consts"

	"github.com/rs/zerolog"
)

var (
	// Level is the debug level; D messages at or above it are dropped.
	Level int = 0

	// Console receives the colored terminal output.
	Console io.Writer = os.Stdout

	fileLog  = zerolog.Nop()
	logFile  *os.File
	loggable bool
	mu       sync.Mutex
)

// Regular expression to match ANSI escape codes
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// SetupLogging creates and/or opens the log file at logFilePath.
func SetupLogging(logFilePath string) error {
	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, consts.PermsLogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}

	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	fileLog = zerolog.New(f).With().Timestamp().Logger()
	loggable = true

	fileLog.Info().Msgf("=========== %v ===========", time.Now().Format(time.RFC1123Z))
	return nil
}

// Close flushes and closes the log file, if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	loggable = false
	fileLog = zerolog.Nop()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// writeLog mirrors a console message into the structured log file.
//
// Caller must hold mu.
func writeLog(msg string, lvl zerolog.Level, debugLevel int) {
	if !loggable {
		return
	}
	ev := fileLog.WithLevel(lvl)
	if lvl == zerolog.DebugLevel {
		ev = ev.Int("debug_level", debugLevel)
	}
	ev.Msg(stripAnsiCodes(msg))
}

// stripAnsiCodes removes ANSI escape codes from a string
func stripAnsiCodes(input string) string {
	return ansiEscape.ReplaceAllString(input, "")
}
