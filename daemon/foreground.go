package daemon

// ForegroundDaemon is a daemon that does not detach: the launched program is the daemon itself,
// so its process ID is the one reported by the launcher.
type ForegroundDaemon struct {
	Base
	Args []string
}

func NewForegroundDaemon(args []string) *ForegroundDaemon {
	return &ForegroundDaemon{Args: args}
}

func (d *ForegroundDaemon) Arguments() []string {
	return append([]string(nil), d.Args...)
}

func (d *ForegroundDaemon) PID() int {
	return d.LaunchedPID()
}

func (d *ForegroundDaemon) RunsInForeground() bool {
	return true
}
