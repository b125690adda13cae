package servicedef

import (
	"fmt"
	"net/http"

	"github.com/launchdarkly/process-test-harness/daemon"
	"github.com/launchdarkly/process-test-harness/framework"
)

// CheckEnv provides what the declared checks need at run time.
type CheckEnv struct {
	// Client is used for http_get checks; http.DefaultClient if nil.
	Client *http.Client

	// Alive reports whether a process is running; it is required for process_alive checks.
	Alive func(pid int) bool
}

// RegisterChecks adds one test case per declared check, in file order.
func (d *Definition) RegisterChecks(unit *framework.UnitTest, descriptor daemon.Descriptor, env CheckEnv) {
	client := env.Client
	if client == nil {
		client = http.DefaultClient
	}
	for i, c := range d.Checks {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("check %d", i+1)
		}
		switch {
		case c.HTTPGet != "":
			unit.Register(name, httpGetCheck(client, c.HTTPGet, c.ExpectStatus))
		case c.ProcessAlive:
			unit.Register(name, processAliveCheck(descriptor, env.Alive))
		}
	}
}

func httpGetCheck(client *http.Client, url string, expectStatus int) func(*framework.T) {
	if expectStatus == 0 {
		expectStatus = http.StatusOK
	}
	return func(t *framework.T) {
		var resp *http.Response
		t.AssertNoThrow(func() (err error) {
			resp, err = client.Get(url)
			return err
		}, "http_get")
		defer resp.Body.Close()
		t.Debug("GET %s: %s", url, resp.Status)
		t.Equal(resp.StatusCode, expectStatus, "expect_status")
	}
}

func processAliveCheck(descriptor daemon.Descriptor, alive func(int) bool) func(*framework.T) {
	return func(t *framework.T) {
		pid := descriptor.PID()
		t.AssertNotEqual(pid, daemon.UnknownPID, "pid_known")
		t.AssertTrue(alive != nil, "liveness_probe_configured")
		t.True(alive(pid), "process_alive")
	}
}
