//go:build !unix

package daemon

import "os"

// ProcessExists reports whether a process with this ID exists. os.FindProcess fails for a
// process that no longer exists.
func ProcessExists(pid int) bool {
	if pid <= 0 {
		return false
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = p.Release()
	return true
}
