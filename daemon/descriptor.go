// Package daemon describes external processes that a ProcessTest can launch, wait for, and
// shut down.
//
// A Descriptor only says how to start the daemon, how to tell when it is ready, and how to find
// its process ID; everything else about the process lifecycle is handled by the process package.
// Concrete descriptors usually embed Base, which supplies the optional parts.
package daemon

import "errors"

// UnknownPID is returned by Descriptor.PID before the daemon's process ID is known.
const UnknownPID = 0

// ErrFlagsFrozen is returned when trying to change Flags after the daemon was launched.
var ErrFlagsFrozen = errors.New("daemon flags cannot be changed after launch")

// Descriptor is implemented by every kind of daemon under test.
type Descriptor interface {
	// Arguments returns the command line used to launch the daemon. The first element is the
	// path of the executable. An empty result means the daemon cannot be launched.
	Arguments() []string

	// PID returns the process ID of the running daemon, or UnknownPID.
	PID() int

	// IsReady reports whether the daemon can accept test traffic. It may wait, but must
	// return within a bounded time.
	IsReady() bool

	// Flags returns the behavior toggles for this daemon.
	Flags() *Flags
}

// Cleaner is implemented by descriptors that have something to clean up, such as a pidfile,
// once the daemon has been stopped. Cleanup is not called when NoCleanup is set.
type Cleaner interface {
	Cleanup()
}

// LaunchObserver is implemented by descriptors that want to know the process ID of the
// launched program.
type LaunchObserver interface {
	Launched(pid int)
}

// Foreground is implemented by descriptors whose program stays in the foreground instead of
// detaching. The launcher then does not wait for the program to exit.
type Foreground interface {
	RunsInForeground() bool
}

// Flags are the runtime toggles of a daemon. They can be changed until the daemon is launched.
type Flags struct {
	verbose   bool
	debug     bool
	noCleanup bool
	frozen    bool
}

func (f *Flags) IsVerbose() bool { return f.verbose }
func (f *Flags) IsDebug() bool   { return f.debug }
func (f *Flags) NoCleanup() bool { return f.noCleanup }

func (f *Flags) SetVerbose(state bool) error {
	return f.set(&f.verbose, state)
}

func (f *Flags) SetDebug(state bool) error {
	return f.set(&f.debug, state)
}

// SetNoCleanup controls whether the daemon is left running after the tests, so that it can be
// inspected.
func (f *Flags) SetNoCleanup(state bool) error {
	return f.set(&f.noCleanup, state)
}

// Freeze makes the flags read-only. It is called when the daemon is launched.
func (f *Flags) Freeze() {
	f.frozen = true
}

func (f *Flags) set(field *bool, state bool) error {
	if f.frozen {
		return ErrFlagsFrozen
	}
	*field = state
	return nil
}

// Base provides default implementations of the optional parts of a Descriptor. It is meant to
// be embedded.
type Base struct {
	flags       Flags
	launchedPID int
}

// IsReady always returns true.
func (b *Base) IsReady() bool {
	return true
}

func (b *Base) Flags() *Flags {
	return &b.flags
}

// Launched records the process ID of the launched program.
func (b *Base) Launched(pid int) {
	b.launchedPID = pid
}

// LaunchedPID returns the process ID passed to Launched, or UnknownPID.
func (b *Base) LaunchedPID() int {
	return b.launchedPID
}
