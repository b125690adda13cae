// Command daemontest runs the checks declared in a daemon definition file against a freshly
// launched daemon.
//
//	daemontest --config mydaemon.yaml [--verbose] [--no-cleanup] [--run regex] [--skip regex]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/launchdarkly/process-test-harness/framework"
	"github.com/launchdarkly/process-test-harness/harness"
	"github.com/launchdarkly/process-test-harness/process"
	"github.com/launchdarkly/process-test-harness/servicedef"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	var configPath string
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		EnvVars:     []string{harness.EnvVarPrefix + "_CONFIG"},
		Usage:       "Path to the daemon definition file (eg. 'mydaemon.yaml')",
		Destination: &configPath,
	}

	r := &harness.Runner{Output: os.Stdout, ErrOutput: os.Stderr, ExtraFlags: []cli.Flag{configFlag}}
	opts, err := r.Parse(args)
	switch {
	case errors.Is(err, harness.ErrHelpRequested):
		return 0
	case err != nil:
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		return process.SetupFailed
	case configPath == "":
		fmt.Fprintln(os.Stderr, "--config is required")
		return process.SetupFailed
	}

	def, err := servicedef.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Daemon definition error: %s\n", err)
		return process.SetupFailed
	}

	alive := process.OSSignaller().Alive
	descriptor := def.Descriptor(alive)
	unit := framework.NewUnitTest()
	def.RegisterChecks(unit, descriptor, servicedef.CheckEnv{Alive: alive})

	if def.Name != "" {
		fmt.Printf("Testing daemon %q\n", def.Name)
	}

	// Values from the definition file are the defaults for the shutdown options.
	if opts.ShutdownPolls == 0 {
		opts.ShutdownPolls = def.ShutdownPolls
	}
	if opts.ShutdownPollInterval == 0 {
		opts.ShutdownPollInterval = def.ShutdownPollInterval
	}
	return r.RunProcessOptions(ctx, opts, descriptor, unit)
}
