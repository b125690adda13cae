package daemon

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultReadyTimeout = time.Second * 10
	defaultPollInterval = time.Millisecond * 100
)

// PIDFileDaemon is a daemon that detaches from its launcher and writes its process ID to a
// file. It is ready as soon as the file contains the ID of a running process; a pidfile left
// behind by an earlier instance does not count.
type PIDFileDaemon struct {
	Base
	Args         []string
	PIDFile      string
	ReadyTimeout time.Duration
	PollInterval time.Duration
	// Output, if set, receives a dot for every unsuccessful readiness poll.
	Output io.Writer
	// Alive reports whether a process is running; ProcessExists if nil.
	Alive func(pid int) bool
}

func NewPIDFileDaemon(args []string, pidFile string) *PIDFileDaemon {
	return &PIDFileDaemon{Args: args, PIDFile: pidFile}
}

func (d *PIDFileDaemon) Arguments() []string {
	return append([]string(nil), d.Args...)
}

// PID reads the pidfile. It returns UnknownPID if the file does not exist, is not valid, or
// names a process that is not running.
func (d *PIDFileDaemon) PID() int {
	return livePIDFromFile(d.PIDFile, d.Alive)
}

// IsReady waits up to ReadyTimeout for the pidfile to be written.
func (d *PIDFileDaemon) IsReady() bool {
	return pollUntil(d.ReadyTimeout, d.PollInterval, d.Output, func() bool {
		return d.PID() != UnknownPID
	})
}

// Cleanup removes the pidfile, in case the daemon did not remove it on exit.
func (d *PIDFileDaemon) Cleanup() {
	_ = os.Remove(d.PIDFile)
}

// ReadPIDFile parses a file containing a single decimal process ID.
func ReadPIDFile(path string) (int, error) {
	if path == "" {
		return UnknownPID, fmt.Errorf("no pidfile configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return UnknownPID, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return UnknownPID, fmt.Errorf("malformed pidfile %s: %w", path, err)
	}
	if pid <= 0 {
		return UnknownPID, fmt.Errorf("invalid process ID %d in pidfile %s", pid, path)
	}
	return pid, nil
}

func livePIDFromFile(path string, alive func(int) bool) int {
	pid, err := ReadPIDFile(path)
	if err != nil {
		return UnknownPID
	}
	if alive == nil {
		alive = ProcessExists
	}
	if !alive(pid) {
		return UnknownPID
	}
	return pid
}

// pollUntil calls check until it returns true or the timeout elapses. The check is always
// made at least once.
func pollUntil(timeout, interval time.Duration, output io.Writer, check func() bool) bool {
	if timeout <= 0 {
		timeout = defaultReadyTimeout
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if check() {
		return true
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if output != nil {
			fmt.Fprint(output, ".")
		}
		select {
		case <-deadline.C:
			return check()
		case <-ticker.C:
			if check() {
				return true
			}
		}
	}
}
