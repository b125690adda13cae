//go:build !unix

package process

import (
	"os"

	"github.com/launchdarkly/process-test-harness/daemon"
)

// Without POSIX signals there is no termination request that a process can handle, so
// Terminate and Kill both end the process.
type processSignaller struct{}

// OSSignaller returns the Signaller for the current platform.
func OSSignaller() Signaller {
	return processSignaller{}
}

func (processSignaller) Terminate(pid int) error {
	return processSignaller{}.Kill(pid)
}

func (processSignaller) Kill(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	defer p.Release()
	return p.Kill()
}

func (processSignaller) Alive(pid int) bool {
	return daemon.ProcessExists(pid)
}

func killProcessGroup(pid int) error {
	return processSignaller{}.Kill(pid)
}
