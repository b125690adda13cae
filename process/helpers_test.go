package process

import (
	"bytes"
	"context"
	"errors"

	"github.com/launchdarkly/process-test-harness/daemon"
	"github.com/launchdarkly/process-test-harness/framework"
)

type fakeDaemon struct {
	daemon.Base
	args        []string
	pid         int
	ready       bool
	foreground  bool
	cleanups    int
	readyChecks int
}

func (d *fakeDaemon) Arguments() []string   { return d.args }
func (d *fakeDaemon) PID() int               { return d.pid }
func (d *fakeDaemon) RunsInForeground() bool { return d.foreground }
func (d *fakeDaemon) Cleanup()               { d.cleanups++ }

func (d *fakeDaemon) IsReady() bool {
	d.readyChecks++
	return d.ready
}

func newFakeDaemon() *fakeDaemon {
	return &fakeDaemon{args: []string{"/usr/sbin/fake-daemon", "--flag"}, pid: 1234, ready: true}
}

type fakeLauncher struct {
	pid        int
	err        error
	calls      int
	args       []string
	foreground bool
}

func (l *fakeLauncher) Launch(ctx context.Context, args []string, foreground bool) (int, error) {
	l.calls++
	l.args = args
	l.foreground = foreground
	return l.pid, l.err
}

type fakeSignaller struct {
	terminateErr   error
	aliveProbes    int
	aliveUntil     int // Alive returns true for this many probes; negative means forever
	terminateCalls []int
	killCalls      []int
	events         []string
	onProbe        func(n int)
}

func (s *fakeSignaller) Terminate(pid int) error {
	s.terminateCalls = append(s.terminateCalls, pid)
	s.events = append(s.events, "terminate")
	return s.terminateErr
}

func (s *fakeSignaller) Kill(pid int) error {
	s.killCalls = append(s.killCalls, pid)
	s.events = append(s.events, "kill")
	return nil
}

func (s *fakeSignaller) Alive(pid int) bool {
	s.aliveProbes++
	if s.onProbe != nil {
		s.onProbe(s.aliveProbes)
	}
	return s.aliveUntil < 0 || s.aliveProbes <= s.aliveUntil
}

var errLaunch = errors.New("exec format error")

type fixture struct {
	daemon    *fakeDaemon
	unit      *framework.UnitTest
	launcher  *fakeLauncher
	signaller *fakeSignaller
	output    bytes.Buffer
	errOutput bytes.Buffer
	executed  []string
}

func newFixture() *fixture {
	f := &fixture{
		daemon:    newFakeDaemon(),
		unit:      framework.NewUnitTest(),
		launcher:  &fakeLauncher{pid: 999},
		signaller: &fakeSignaller{},
	}
	return f
}

func (f *fixture) register(name string, action func(*framework.T)) {
	f.unit.Register(name, func(t *framework.T) {
		f.executed = append(f.executed, name)
		action(t)
	})
}

func (f *fixture) processTest() *ProcessTest {
	return New(f.daemon, f.unit,
		WithLauncher(f.launcher),
		WithSignaller(f.signaller),
		WithOutput(&f.output, &f.errOutput),
	)
}

func (f *fixture) config() Config {
	return Config{
		Unit:                 framework.Config{TestLogger: framework.NullTestLogger()},
		ShutdownPolls:        5,
		ShutdownPollInterval: 1,
	}
}
