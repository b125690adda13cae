package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal logging interface used throughout the harness. *log.Logger satisfies it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards everything.
func NullLogger() Logger { return nullLogger{} }

// NewLogger returns a Logger that writes timestamped lines to out.
func NewLogger(out io.Writer, prefix string) Logger {
	return log.New(out, prefix, log.LstdFlags)
}

// StderrLogger returns a Logger that writes timestamped lines to standard error.
func StderrLogger(prefix string) Logger {
	return NewLogger(os.Stderr, prefix)
}

// OpenFileLogger returns a Logger that appends to the specified file. The returned io.Closer must
// be closed when the caller is done logging.
func OpenFileLogger(path string, prefix string) (Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("can't open log file: %w", err)
	}
	return log.New(f, prefix, log.LstdFlags|log.Lmicroseconds), f, nil
}

// CapturedMessage is one line of a test case's debug output.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is the debug output of one test case, oldest line first.
type CapturedOutput []CapturedMessage

// CapturingLogger buffers the debug output of a test case, so that the console logger can
// decide once the case has finished whether to show it. It is safe for concurrent use.
type CapturingLogger struct {
	mu       sync.Mutex
	messages CapturedOutput
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	line := CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, line)
}

// Output returns a copy of everything captured so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append(CapturedOutput(nil), l.messages...)
}

// Dump writes one line per message, each starting with prefix and a timestamp.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n", prefix, m.Time.Format(timestampFormat), m.Message)
	}
}
