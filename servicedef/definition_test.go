package servicedef

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/launchdarkly/process-test-harness/daemon"
	"github.com/launchdarkly/process-test-harness/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDefinition = `
name: mydaemon
command: ["/usr/sbin/mydaemon", "--pidfile", "/tmp/my.pid"]
pidfile: /tmp/my.pid
status_url: http://localhost:8080/status
ready_timeout: 10s
shutdown_polls: 20
shutdown_poll_interval: 250ms
checks:
  - name: status endpoint
    http_get: http://localhost:8080/status
    expect_status: 204
  - name: process alive
    process_alive: true
`

func TestParseFullDefinition(t *testing.T) {
	def, err := Parse([]byte(fullDefinition))
	require.NoError(t, err)

	assert.Equal(t, "mydaemon", def.Name)
	assert.Equal(t, []string{"/usr/sbin/mydaemon", "--pidfile", "/tmp/my.pid"}, def.Command)
	assert.Equal(t, "/tmp/my.pid", def.PIDFile)
	assert.Equal(t, time.Second*10, def.ReadyTimeout)
	assert.Equal(t, 20, def.ShutdownPolls)
	assert.Equal(t, time.Millisecond*250, def.ShutdownPollInterval)
	require.Len(t, def.Checks, 2)
	assert.Equal(t, Check{Name: "status endpoint", HTTPGet: "http://localhost:8080/status", ExpectStatus: 204}, def.Checks[0])
	assert.True(t, def.Checks[1].ProcessAlive)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullDefinition), 0644))

	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mydaemon", def.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidationErrors(t *testing.T) {
	for name, content := range map[string]string{
		"empty command":      "pidfile: /tmp/x.pid\n",
		"blank executable":   "command: [\"\"]\npidfile: /tmp/x.pid\n",
		"no way to find pid": "command: [/bin/d]\n",
		"negative polls":     "command: [/bin/d]\nforeground: true\nshutdown_polls: -1\n",
		"empty check":        "command: [/bin/d]\nforeground: true\nchecks:\n  - name: nothing\n",
		"two kinds in check": "command: [/bin/d]\nforeground: true\nchecks:\n  - http_get: http://x\n    process_alive: true\n",
		"malformed yaml":     "command: [/bin/d\n",
		"bad duration":       "command: [/bin/d]\nforeground: true\nready_timeout: soon\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestDescriptorKinds(t *testing.T) {
	def := &Definition{Command: []string{"/bin/d"}, Foreground: true}
	_, ok := def.Descriptor(nil).(*daemon.ForegroundDaemon)
	assert.True(t, ok)

	def = &Definition{Command: []string{"/bin/d"}, StatusURL: "http://localhost/status", PIDFile: "/tmp/d.pid",
		ReadyTimeout: time.Second}
	sd, ok := def.Descriptor(nil).(*daemon.HTTPStatusDaemon)
	require.True(t, ok)
	assert.Equal(t, "/tmp/d.pid", sd.PIDFile)
	assert.Equal(t, time.Second, sd.ReadyTimeout)

	def = &Definition{Command: []string{"/bin/d"}, PIDFile: "/tmp/d.pid"}
	pd, ok := def.Descriptor(nil).(*daemon.PIDFileDaemon)
	require.True(t, ok)
	assert.Equal(t, []string{"/bin/d"}, pd.Arguments())
}

func TestDescriptorUsesLivenessProbeForPIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.pid")
	require.NoError(t, os.WriteFile(path, []byte("4194000"), 0644))
	def := &Definition{Command: []string{"/bin/d"}, PIDFile: path, ReadyTimeout: time.Millisecond * 100}

	stale := def.Descriptor(func(int) bool { return false })
	assert.Equal(t, daemon.UnknownPID, stale.PID())
	assert.False(t, stale.IsReady())

	live := def.Descriptor(func(pid int) bool { return pid == 4194000 })
	assert.Equal(t, 4194000, live.PID())
	assert.True(t, live.IsReady())
}

type fixedPIDDaemon struct {
	daemon.Base
	pid int
}

func (d *fixedPIDDaemon) Arguments() []string { return []string{"/bin/d"} }
func (d *fixedPIDDaemon) PID() int            { return d.pid }

func runChecks(t *testing.T, def *Definition, d daemon.Descriptor, env CheckEnv) *framework.UnitTest {
	unit := framework.NewUnitTest()
	def.RegisterChecks(unit, d, env)
	unit.Run(framework.Config{TestLogger: framework.NullTestLogger()})
	return unit
}

func TestHTTPGetCheck(t *testing.T) {
	handler := httphelpers.SequentialHandler(
		httphelpers.HandlerWithStatus(200),
		httphelpers.HandlerWithStatus(503),
	)
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		def := &Definition{Checks: []Check{
			{Name: "first", HTTPGet: server.URL},
			{HTTPGet: server.URL, ExpectStatus: 200},
		}}
		unit := runChecks(t, def, &fixedPIDDaemon{pid: 1}, CheckEnv{})

		results := unit.Results()
		require.Len(t, results.Cases, 2)
		assert.Equal(t, framework.OutcomePassed, results.Cases[0].Outcome)
		assert.Equal(t, "check 2", results.Cases[1].ID.Name)
		assert.Equal(t, framework.OutcomeFailed, results.Cases[1].Outcome)
	})
}

func TestHTTPGetCheckAbortsWhenUnreachable(t *testing.T) {
	def := &Definition{Checks: []Check{{Name: "unreachable", HTTPGet: "http://127.0.0.1:1/status"}}}
	unit := runChecks(t, def, &fixedPIDDaemon{pid: 1}, CheckEnv{})
	assert.Equal(t, framework.OutcomeAborted, unit.Results().Cases[0].Outcome)
}

func TestProcessAliveCheck(t *testing.T) {
	def := &Definition{Checks: []Check{{Name: "alive", ProcessAlive: true}}}
	var probed []int
	env := CheckEnv{Alive: func(pid int) bool {
		probed = append(probed, pid)
		return pid == 77
	}}

	unit := runChecks(t, def, &fixedPIDDaemon{pid: 77}, env)
	assert.Equal(t, framework.OutcomePassed, unit.Results().Cases[0].Outcome)
	assert.Equal(t, []int{77}, probed)

	unit = runChecks(t, def, &fixedPIDDaemon{pid: 78}, env)
	assert.Equal(t, framework.OutcomeFailed, unit.Results().Cases[0].Outcome)

	unit = runChecks(t, def, &fixedPIDDaemon{pid: daemon.UnknownPID}, env)
	assert.Equal(t, framework.OutcomeAborted, unit.Results().Cases[0].Outcome)
}
