package process

// Signaller delivers termination requests to a process and probes whether it is still alive.
type Signaller interface {
	// Terminate asks the process to exit (SIGTERM).
	Terminate(pid int) error
	// Kill forces the process to exit (SIGKILL).
	Kill(pid int) error
	// Alive reports whether the process still exists (signal 0).
	Alive(pid int) bool
}
