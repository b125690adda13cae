//go:build unix && !linux

package process

import "syscall"

// sysProcAttr puts the launched program in its own process group. Pdeathsig is not available
// outside Linux.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid: true,
	}
}
