// Package harness is the command-line entry point for test programs.
//
// A test program registers its cases on a framework.UnitTest and then calls RunUnit, or
// RunProcess if the cases need a daemon running; the returned value is meant to be the exit
// code of the program.
package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/launchdarkly/process-test-harness/daemon"
	"github.com/launchdarkly/process-test-harness/framework"
	"github.com/launchdarkly/process-test-harness/logging"
	"github.com/launchdarkly/process-test-harness/process"

	"github.com/urfave/cli/v2"
)

// ErrHelpRequested is returned by Parse when the usage text was printed instead of parsing
// options.
var ErrHelpRequested = errors.New("help requested")

// Options are the parsed command-line options.
type Options struct {
	Verbose              bool
	Debug                bool
	NoCleanup            bool
	LogFile              string
	Filters              framework.CaseFilters
	HaltOnPanic          bool
	Summary              bool
	ShutdownPolls        int
	ShutdownPollInterval time.Duration
}

// Runner runs test programs with its own output streams. The package-level functions use
// standard output and standard error.
type Runner struct {
	Output    io.Writer
	ErrOutput io.Writer

	// ExtraFlags are accepted in addition to Flags. They should use Destination to receive
	// their values.
	ExtraFlags []cli.Flag
}

func defaultRunner() *Runner {
	return &Runner{Output: os.Stdout, ErrOutput: os.Stderr}
}

// Parse parses the command line; args[0] is the program name. ErrHelpRequested is returned
// if --help was given.
func Parse(args []string, extraFlags ...cli.Flag) (Options, error) {
	r := defaultRunner()
	r.ExtraFlags = extraFlags
	return r.Parse(args)
}

// RunUnit parses the command line and runs the test cases. It returns the number of failed
// cases, 0 if only help was requested, or process.SetupFailed if the command line was invalid.
func RunUnit(args []string, unit *framework.UnitTest) int {
	return defaultRunner().RunUnit(args, unit)
}

// RunProcess parses the command line and runs the test cases against the daemon. The daemon's
// flags are set from the options before it is launched.
func RunProcess(ctx context.Context, args []string, d daemon.Descriptor, unit *framework.UnitTest,
	opts ...process.Option) int {
	return defaultRunner().RunProcess(ctx, args, d, unit, opts...)
}

func (r *Runner) Parse(args []string) (Options, error) {
	var opts Options
	if len(args) == 0 {
		args = []string{"test"}
	}
	helpRequested := true
	app := &cli.App{
		Name:                      filepath.Base(args[0]),
		Usage:                     "run the registered test cases",
		Flags:                     append(NewFlags(), r.ExtraFlags...),
		HideVersion:               true,
		HideHelpCommand:           true,
		DisableSliceFlagSeparator: true,
		Writer:                    r.Output,
		ErrWriter:                 r.ErrOutput,
		Action: func(c *cli.Context) error {
			helpRequested = false
			if c.NArg() > 0 {
				return fmt.Errorf("unexpected argument %q", c.Args().First())
			}
			var err error
			opts, err = optionsFromContext(c)
			return err
		},
	}
	if err := app.Run(args); err != nil {
		return Options{}, err
	}
	if helpRequested {
		return Options{}, ErrHelpRequested
	}
	return opts, nil
}

func optionsFromContext(c *cli.Context) (Options, error) {
	opts := Options{
		Verbose:              c.Bool(VerboseFlag) || c.Bool(DebugFlag),
		Debug:                c.Bool(DebugFlag),
		NoCleanup:            c.Bool(NoCleanupFlag),
		LogFile:              c.String(LogFileFlag),
		HaltOnPanic:          c.Bool(HaltOnPanicFlag),
		Summary:              c.Bool(SummaryFlag),
		ShutdownPolls:        c.Int(ShutdownPollsFlag),
		ShutdownPollInterval: c.Duration(ShutdownPollIntervalFlag),
	}
	for _, p := range c.StringSlice(RunFlag) {
		if err := opts.Filters.Run.Set(p); err != nil {
			return opts, fmt.Errorf("--%s %q: %w", RunFlag, p, err)
		}
	}
	for _, p := range c.StringSlice(SkipFlag) {
		if err := opts.Filters.Skip.Set(p); err != nil {
			return opts, fmt.Errorf("--%s %q: %w", SkipFlag, p, err)
		}
	}
	return opts, nil
}

// UnitConfig returns the configuration for UnitTest.Run, with a console logger writing to out.
func (o Options) UnitConfig(out io.Writer) framework.Config {
	config := framework.Config{
		Verbose:     o.Verbose,
		HaltOnPanic: o.HaltOnPanic,
		TestLogger: &framework.ConsoleTestLogger{
			Output:               out,
			Verbose:              o.Verbose,
			DebugOutputOnFailure: o.Verbose,
			DebugOutputOnSuccess: o.Debug,
		},
	}
	if o.Filters.Active() {
		config.Filter = o.Filters.Allows
	}
	return config
}

// ProcessConfig returns the configuration for ProcessTest.Run.
func (o Options) ProcessConfig(out io.Writer) process.Config {
	return process.Config{
		Unit:                 o.UnitConfig(out),
		Verbose:              o.Verbose,
		Debug:                o.Debug,
		ShutdownPolls:        o.ShutdownPolls,
		ShutdownPollInterval: o.ShutdownPollInterval,
	}
}

// ApplyTo merges the daemon-related options into the daemon's flags. Verbose and debug mode set
// on the descriptor are kept; the no-cleanup option always comes from the command line.
func (o Options) ApplyTo(flags *daemon.Flags) error {
	if err := flags.SetVerbose(o.Verbose || flags.IsVerbose()); err != nil {
		return err
	}
	if err := flags.SetDebug(o.Debug || flags.IsDebug()); err != nil {
		return err
	}
	return flags.SetNoCleanup(o.NoCleanup)
}

func (r *Runner) RunUnit(args []string, unit *framework.UnitTest) int {
	opts, ok, result := r.parseOrExit(args)
	if !ok {
		return result
	}
	logger, closer, err := opts.logger(r.ErrOutput)
	if err != nil {
		fmt.Fprintln(r.ErrOutput, err)
		return process.SetupFailed
	}
	if closer != nil {
		defer closer.Close()
	}

	framework.PrintFilterDescription(r.Output, opts.Filters)

	logger.Printf("UnitTest: running %d test case(s)", unit.Len())
	failed := unit.Run(opts.UnitConfig(r.Output))
	logger.Printf("UnitTest: run %s finished, %d failed", unit.Results().RunID, failed)
	r.printSummary(opts, unit)
	return failed
}

func (r *Runner) RunProcess(ctx context.Context, args []string, d daemon.Descriptor, unit *framework.UnitTest,
	opts ...process.Option) int {
	options, ok, result := r.parseOrExit(args)
	if !ok {
		return result
	}
	return r.RunProcessOptions(ctx, options, d, unit, opts...)
}

// RunProcessOptions is RunProcess for options that were already parsed.
func (r *Runner) RunProcessOptions(ctx context.Context, options Options, d daemon.Descriptor, unit *framework.UnitTest,
	opts ...process.Option) int {
	if err := options.ApplyTo(d.Flags()); err != nil {
		fmt.Fprintf(r.ErrOutput, "Invalid parameters: %s\n", err)
		return process.SetupFailed
	}

	logger, closer, err := options.logger(r.ErrOutput)
	if err != nil {
		fmt.Fprintln(r.ErrOutput, err)
		return process.SetupFailed
	}
	if closer != nil {
		defer closer.Close()
	}

	framework.PrintFilterDescription(r.Output, options.Filters)

	all := append([]process.Option{process.WithOutput(r.Output, r.ErrOutput), process.WithLogger(logger)}, opts...)
	failed := process.New(d, unit, all...).Run(ctx, options.ProcessConfig(r.Output))
	r.printSummary(options, unit)
	return failed
}

func (r *Runner) parseOrExit(args []string) (Options, bool, int) {
	opts, err := r.Parse(args)
	switch {
	case errors.Is(err, ErrHelpRequested):
		return opts, false, 0
	case err != nil:
		fmt.Fprintf(r.ErrOutput, "Invalid parameters: %s\n", err)
		return opts, false, process.SetupFailed
	}
	return opts, true, 0
}

func (r *Runner) printSummary(opts Options, unit *framework.UnitTest) {
	if !opts.Summary {
		return
	}
	fmt.Fprintln(r.Output)
	framework.PrintResults(r.Output, unit.Results())
}

// logger returns the diagnostics logger selected by the options. The io.Closer is nil unless a
// log file was opened.
func (o Options) logger(errOutput io.Writer) (logging.Logger, io.Closer, error) {
	if o.LogFile != "" {
		return logging.OpenFileLogger(o.LogFile, "[harness] ")
	}
	if o.Debug {
		return logging.NewLogger(errOutput, "[harness] "), nil, nil
	}
	return logging.NullLogger(), nil, nil
}
