package daemon

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/launchdarkly/process-test-harness/logging"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const statusRequestTimeout = time.Second * 2

// HTTPStatusDaemon is a daemon that exposes a status resource over HTTP. It is ready once a GET
// request to StatusURL succeeds.
//
// If the status response is a JSON object with a numeric "pid" property, that is used as the
// process ID; otherwise the process ID is read from PIDFile, if any, as long as that process
// is running.
type HTTPStatusDaemon struct {
	Base
	Args         []string
	StatusURL    string
	PIDFile      string
	ReadyTimeout time.Duration
	PollInterval time.Duration
	Client       *http.Client
	Output       io.Writer
	Logger       logging.Logger
	// Alive reports whether the process named by PIDFile is running; ProcessExists if nil.
	Alive func(pid int) bool

	status ldvalue.Value
	lock   sync.Mutex
}

func NewHTTPStatusDaemon(args []string, statusURL string) *HTTPStatusDaemon {
	return &HTTPStatusDaemon{Args: args, StatusURL: statusURL}
}

func (d *HTTPStatusDaemon) Arguments() []string {
	return append([]string(nil), d.Args...)
}

func (d *HTTPStatusDaemon) PID() int {
	d.lock.Lock()
	pidValue := d.status.GetByKey("pid")
	d.lock.Unlock()
	if pidValue.IsInt() && pidValue.IntValue() > 0 {
		return pidValue.IntValue()
	}
	if d.PIDFile != "" {
		return livePIDFromFile(d.PIDFile, d.Alive)
	}
	return UnknownPID
}

// IsReady polls the status resource until it answers with a 2xx status or ReadyTimeout elapses.
func (d *HTTPStatusDaemon) IsReady() bool {
	if d.Output != nil {
		fmt.Fprintf(d.Output, "Connecting to daemon status resource at %s", d.StatusURL)
		defer fmt.Fprintln(d.Output)
	}
	return pollUntil(d.ReadyTimeout, d.PollInterval, d.Output, func() bool {
		status, err := d.queryStatus()
		if err != nil {
			d.logger().Printf("Status query failed: %s", err)
			return false
		}
		d.lock.Lock()
		d.status = status
		d.lock.Unlock()
		return true
	})
}

// Status returns the most recent status document, or ldvalue.Null() if none was received.
func (d *HTTPStatusDaemon) Status() ldvalue.Value {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.status
}

// Cleanup removes the pidfile, if one is configured.
func (d *HTTPStatusDaemon) Cleanup() {
	if d.PIDFile != "" {
		_ = os.Remove(d.PIDFile)
	}
}

func (d *HTTPStatusDaemon) queryStatus() (ldvalue.Value, error) {
	client := d.Client
	if client == nil {
		client = &http.Client{Timeout: statusRequestTimeout}
	}
	resp, err := client.Get(d.StatusURL)
	if err != nil {
		return ldvalue.Null(), err
	}
	var body []byte
	if resp.Body != nil {
		body, err = ioutil.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return ldvalue.Null(), err
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ldvalue.Null(), fmt.Errorf("daemon returned status code %d", resp.StatusCode)
	}
	if len(body) == 0 {
		d.logger().Printf("Status query successful, but daemon provided no metadata")
		return ldvalue.Null(), nil
	}
	d.logger().Printf("Status query returned metadata: %s", string(body))
	return ldvalue.Parse(body), nil
}

func (d *HTTPStatusDaemon) logger() logging.Logger {
	if d.Logger == nil {
		return logging.NullLogger()
	}
	return d.Logger
}
