//go:build unix

package daemon

import "golang.org/x/sys/unix"

// ProcessExists reports whether a process with this ID exists, by sending it signal 0.
func ProcessExists(pid int) bool {
	return pid > 0 && unix.Kill(pid, 0) == nil
}
