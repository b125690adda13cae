package process

import "syscall"

// sysProcAttr puts the launched program in its own process group, so that a Ctrl-C aimed at the
// harness does not reach the daemon before the harness has stopped it. Pdeathsig asks the kernel
// to send SIGTERM to the direct child if the harness dies unexpectedly.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGTERM,
	}
}
