package logger

import (
	"fmt"
	"strings"
	"testing"

	"github.com/edugzlez/electosim/types"
)

// TestLogger writes through testing.TB so messages show up next to the
// failing test. It also keeps every line for assertions.
type TestLogger struct {
	t     testing.TB
	lines []string
}

var _ types.Logger = (*TestLogger)(nil)

// NewTest creates a logger bound to t.
//
// Example:
//
//	log := logger.NewTest(t)
//	cfg := district.NewMulti(district.WithLogger(log))
func NewTest(t testing.TB) *TestLogger {
	return &TestLogger{t: t}
}

// Debug logs a debug-level message.
func (l *TestLogger) Debug(msg string, keysAndValues ...any) {
	l.log("DEBUG", msg, keysAndValues)
}

// Info logs an info-level message.
func (l *TestLogger) Info(msg string, keysAndValues ...any) {
	l.log("INFO", msg, keysAndValues)
}

// Warn logs a warning-level message.
func (l *TestLogger) Warn(msg string, keysAndValues ...any) {
	l.log("WARN", msg, keysAndValues)
}

// Error logs an error-level message.
func (l *TestLogger) Error(msg string, keysAndValues ...any) {
	l.log("ERROR", msg, keysAndValues)
}

// Fatal logs the message and fails the test immediately.
func (l *TestLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Helper()
	l.t.Fatalf("FATAL: %s %s", msg, formatKeyValues(keysAndValues))
}

// Lines returns every logged line as "LEVEL: msg k=v ...".
func (l *TestLogger) Lines() []string {
	return append([]string(nil), l.lines...)
}

// Contains reports whether any logged line contains substr.
func (l *TestLogger) Contains(substr string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}

	return false
}

func (l *TestLogger) log(level, msg string, keysAndValues []any) {
	line := strings.TrimSpace(fmt.Sprintf("%s: %s %s", level, msg, formatKeyValues(keysAndValues)))
	l.lines = append(l.lines, line)
	l.t.Log(line)
}

func formatKeyValues(keysAndValues []any) string {
	var b strings.Builder
	for i := 0; i < len(keysAndValues); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i+1 < len(keysAndValues) {
			fmt.Fprintf(&b, "%v=%v", keysAndValues[i], keysAndValues[i+1])
		} else {
			fmt.Fprintf(&b, "%v=<missing>", keysAndValues[i])
		}
	}

	return b.String()
}
