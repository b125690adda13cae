// Package servicedef loads daemon definition files: YAML documents that say how to launch a
// daemon, how to tell when it is ready, and which checks to run against it.
package servicedef

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/launchdarkly/process-test-harness/daemon"

	"gopkg.in/yaml.v3"
)

// Definition is the content of a daemon definition file.
type Definition struct {
	Name                 string        `yaml:"name"`
	Command              []string      `yaml:"command"`
	PIDFile              string        `yaml:"pidfile"`
	StatusURL            string        `yaml:"status_url"`
	Foreground           bool          `yaml:"foreground"`
	ReadyTimeout         time.Duration `yaml:"ready_timeout"`
	ShutdownPolls        int           `yaml:"shutdown_polls"`
	ShutdownPollInterval time.Duration `yaml:"shutdown_poll_interval"`
	Checks               []Check       `yaml:"checks"`
}

// Check is a test case declared in a definition file. Exactly one kind of check must be
// specified.
type Check struct {
	Name string `yaml:"name"`

	// HTTPGet is a URL that must respond to a GET request with ExpectStatus (default 200).
	HTTPGet      string `yaml:"http_get"`
	ExpectStatus int    `yaml:"expect_status"`

	// ProcessAlive requires the daemon's process to be running.
	ProcessAlive bool `yaml:"process_alive"`
}

// Load reads and validates a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read daemon definition: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates the YAML content of a definition file.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse daemon definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) Validate() error {
	if len(d.Command) == 0 || d.Command[0] == "" {
		return errors.New("command is required")
	}
	if !d.Foreground && d.PIDFile == "" && d.StatusURL == "" {
		return errors.New("a daemon that is not in the foreground needs a pidfile or a status_url")
	}
	if d.ShutdownPolls < 0 {
		return fmt.Errorf("shutdown_polls must not be negative, got %d", d.ShutdownPolls)
	}
	for i, c := range d.Checks {
		kinds := 0
		if c.HTTPGet != "" {
			kinds++
		}
		if c.ProcessAlive {
			kinds++
		}
		if kinds != 1 {
			return fmt.Errorf("check %d (%s) must specify exactly one of http_get or process_alive", i+1, c.Name)
		}
	}
	return nil
}

// Descriptor builds the daemon descriptor matching the definition: a foreground daemon, a
// daemon with a status resource, or a daemon that writes a pidfile. alive decides whether the
// process named in the pidfile is running; if nil, daemon.ProcessExists is used.
func (d *Definition) Descriptor(alive func(pid int) bool) daemon.Descriptor {
	switch {
	case d.Foreground:
		return daemon.NewForegroundDaemon(d.Command)
	case d.StatusURL != "":
		sd := daemon.NewHTTPStatusDaemon(d.Command, d.StatusURL)
		sd.PIDFile = d.PIDFile
		sd.ReadyTimeout = d.ReadyTimeout
		sd.Alive = alive
		return sd
	default:
		pd := daemon.NewPIDFileDaemon(d.Command, d.PIDFile)
		pd.ReadyTimeout = d.ReadyTimeout
		pd.Alive = alive
		return pd
	}
}
