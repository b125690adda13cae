//go:build unix

package process

import (
	"github.com/launchdarkly/process-test-harness/daemon"

	"golang.org/x/sys/unix"
)

type unixSignaller struct{}

// OSSignaller returns the Signaller for the current platform.
func OSSignaller() Signaller {
	return unixSignaller{}
}

func (unixSignaller) Terminate(pid int) error {
	return unix.Kill(pid, unix.SIGTERM)
}

func (unixSignaller) Kill(pid int) error {
	return unix.Kill(pid, unix.SIGKILL)
}

func (unixSignaller) Alive(pid int) bool {
	return daemon.ProcessExists(pid)
}

// killProcessGroup kills a launched program together with anything it started. The launcher
// puts the program in its own process group, whose ID is the program's pid.
func killProcessGroup(pid int) error {
	return unix.Kill(-pid, unix.SIGKILL)
}
