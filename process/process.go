// Package process runs a UnitTest against a daemon running in a separate process.
//
// A ProcessTest launches the daemon described by a daemon.Descriptor, checks that it is ready,
// runs the test cases, and then stops the daemon: first with a termination request, then, if the
// daemon is still alive after a bounded number of liveness polls, by killing it.
package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/launchdarkly/process-test-harness/daemon"
	"github.com/launchdarkly/process-test-harness/framework"
	"github.com/launchdarkly/process-test-harness/logging"
)

// SetupFailed is returned by Run when the tests could not be attempted at all. It is never a
// failure count.
const SetupFailed = -1

const (
	DefaultShutdownPolls        = 50
	DefaultShutdownPollInterval = time.Millisecond * 100
)

// Config controls a single ProcessTest.Run.
type Config struct {
	// Unit is passed to UnitTest.Run.
	Unit framework.Config

	// Verbose prints a progress dot for every shutdown poll that finds the daemon alive.
	Verbose bool

	// Debug prints the daemon command line before launching it.
	Debug bool

	// ShutdownPolls is the maximum number of liveness polls after the termination request.
	ShutdownPolls int

	// ShutdownPollInterval is the delay between liveness polls.
	ShutdownPollInterval time.Duration
}

func (c Config) shutdownPolls() int {
	if c.ShutdownPolls <= 0 {
		return DefaultShutdownPolls
	}
	return c.ShutdownPolls
}

func (c Config) shutdownPollInterval() time.Duration {
	if c.ShutdownPollInterval <= 0 {
		return DefaultShutdownPollInterval
	}
	return c.ShutdownPollInterval
}

// ProcessTest runs a UnitTest against an external daemon.
type ProcessTest struct {
	daemon    daemon.Descriptor
	unit      *framework.UnitTest
	launcher  Launcher
	signaller Signaller
	output    io.Writer
	errOutput io.Writer
	logger    logging.Logger
	state     State
}

// Option customizes a ProcessTest.
type Option func(*ProcessTest)

// WithLauncher replaces the default launcher, which starts the daemon as an OS process.
func WithLauncher(l Launcher) Option {
	return func(p *ProcessTest) { p.launcher = l }
}

// WithSignaller replaces the default OS signal implementation.
func WithSignaller(s Signaller) Option {
	return func(p *ProcessTest) { p.signaller = s }
}

// WithOutput sets the writers for the run transcript and for error messages. They default to
// standard output and standard error.
func WithOutput(output, errOutput io.Writer) Option {
	return func(p *ProcessTest) {
		p.output = output
		p.errOutput = errOutput
	}
}

// WithLogger sets the logger for diagnostic messages.
func WithLogger(logger logging.Logger) Option {
	return func(p *ProcessTest) { p.logger = logger }
}

// New creates a ProcessTest. The ProcessTest takes ownership of the descriptor.
func New(d daemon.Descriptor, unit *framework.UnitTest, options ...Option) *ProcessTest {
	p := &ProcessTest{
		daemon:    d,
		unit:      unit,
		output:    os.Stdout,
		errOutput: os.Stderr,
		logger:    logging.NullLogger(),
		state:     StateInit,
	}
	for _, o := range options {
		o(p)
	}
	if p.launcher == nil {
		p.launcher = NewOSLauncher(p.logger)
	}
	if p.signaller == nil {
		p.signaller = OSSignaller()
	}
	return p
}

// State returns the current state of the run.
func (p *ProcessTest) State() State {
	return p.state
}

// Run launches the daemon, runs the test cases if the daemon becomes ready, and stops the
// daemon. It returns the number of failed test cases, or SetupFailed if the daemon could not
// be launched or never became ready.
//
// Run always returns in bounded time once the test cases have finished, however the daemon
// reacts to being stopped. Cancelling ctx cuts short the wait for the launcher and the wait
// for the daemon to exit.
func (p *ProcessTest) Run(ctx context.Context, config Config) int {
	args := p.daemon.Arguments()
	if len(args) == 0 {
		fmt.Fprintln(p.errOutput, "## ERROR: daemon has no command line, cannot launch it")
		p.setState(StateSetupFailed)
		return SetupFailed
	}

	flags := p.daemon.Flags()
	flags.Freeze()
	verbose := config.Verbose || flags.IsVerbose()

	p.setState(StateSpawning)
	fmt.Fprintln(p.output, "## Starting daemon")
	if config.Debug || flags.IsDebug() || flags.IsVerbose() {
		fmt.Fprintln(p.output, commandLine(args))
	}

	foreground := false
	if f, ok := p.daemon.(daemon.Foreground); ok {
		foreground = f.RunsInForeground()
	}
	pid, err := p.launcher.Launch(ctx, args, foreground)
	if err != nil {
		fmt.Fprintf(p.errOutput, "## ERROR: daemon launch failed: %s\n", err)
		p.setState(StateSetupFailed)
		return SetupFailed
	}
	if o, ok := p.daemon.(daemon.LaunchObserver); ok {
		o.Launched(pid)
	}

	result := SetupFailed

	p.setState(StateAwaitingReadiness)
	if p.daemon.IsReady() {
		fmt.Fprintln(p.output, "## Daemon ready, running test cases")
		p.setState(StateRunningTests)
		result = p.unit.Run(config.Unit)
	} else {
		fmt.Fprintln(p.errOutput, "## ERROR: Daemon not ready, test cases will not be run")
	}

	p.setState(StateTerminating)
	p.shutdown(ctx, config, verbose)
	p.setState(StateDone)

	return result
}

func (p *ProcessTest) setState(s State) {
	p.logger.Printf("ProcessTest: %s -> %s", p.state, s)
	p.state = s
}

func (p *ProcessTest) shutdown(ctx context.Context, config Config, verbose bool) {
	if p.daemon.Flags().NoCleanup() {
		fmt.Fprintln(p.output, "## Leaving daemon running (no cleanup)")
		return
	}

	if pid := p.daemon.PID(); pid != daemon.UnknownPID {
		p.stop(ctx, pid, config, verbose)
	} else {
		p.logger.Printf("Daemon process ID is unknown, not stopping it")
	}

	if c, ok := p.daemon.(daemon.Cleaner); ok {
		c.Cleanup()
	}
}

// stop sends the termination request, polls for the daemon to exit, and kills it if it is still
// alive afterwards. The kill is not confirmed.
func (p *ProcessTest) stop(ctx context.Context, pid int, config Config, verbose bool) {
	fmt.Fprint(p.output, "## Stopping daemon")

	if err := p.signaller.Terminate(pid); err != nil {
		fmt.Fprintf(p.errOutput, "\nterminate(%d) failed: %s\n", pid, err)
	} else {
		interval := config.shutdownPollInterval()
		for polls := config.shutdownPolls(); polls > 0 && p.signaller.Alive(pid); polls-- {
			if verbose {
				fmt.Fprint(p.output, ".")
			}
			if !sleep(ctx, interval) {
				p.logger.Printf("Shutdown wait cancelled: %s", ctx.Err())
				break
			}
		}
	}
	fmt.Fprintln(p.output)

	if p.signaller.Alive(pid) {
		fmt.Fprintln(p.errOutput, "Resorting to SIGKILL...")
		if err := p.signaller.Kill(pid); err != nil {
			p.logger.Printf("kill(%d) failed: %s", pid, err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
