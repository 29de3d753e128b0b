// Package appcli provides the logging utility shared by csv-qsniffer's
// command-line front-end. The detection core in internal/dialect takes
// no logger at all — it is a pure function of its inputs — so logging
// lives only at this ambient layer.
package appcli

import (
	"fmt"
	"log"
	"os"
)

// SimpleLogger writes leveled diagnostic lines to stderr via the
// standard log package. It never writes to stdout: csv-qsniffer's
// stdout is reserved for the detected Dialect in the user's chosen
// format, and nothing else may appear there (spec.md §7).
type SimpleLogger struct {
	debug bool
}

// NewLogger creates a SimpleLogger. Debug messages are suppressed
// unless debug is true.
func NewLogger(debug bool) *SimpleLogger {
	return &SimpleLogger{debug: debug}
}

// Info logs an info message.
func (l *SimpleLogger) Info(msg string, fields ...any) {
	log.Printf("[INFO] %s%s", msg, formatFields(fields...))
}

// Error logs an error message.
func (l *SimpleLogger) Error(msg string, fields ...any) {
	log.Printf("[ERROR] %s%s", msg, formatFields(fields...))
}

// Debug logs a debug message if debug mode is enabled.
func (l *SimpleLogger) Debug(msg string, fields ...any) {
	if l.debug {
		log.Printf("[DEBUG] %s%s", msg, formatFields(fields...))
	}
}

// Fatal logs a fatal message and exits with status 2 (usage/runtime
// error, per spec.md §6 exit codes).
func (l *SimpleLogger) Fatal(msg string, fields ...any) {
	log.Printf("[FATAL] %s%s", msg, formatFields(fields...))
	os.Exit(2)
}

func formatFields(fields ...any) string {
	if len(fields) == 0 {
		return ""
	}

	var result string
	for i := 0; i+1 < len(fields); i += 2 {
		result += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	return result
}
