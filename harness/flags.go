package harness

import (
	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "PROCESS_TEST"

// Flag names.
const (
	VerboseFlag              = "verbose"
	DebugFlag                = "debug"
	NoCleanupFlag            = "no-cleanup"
	LogFileFlag              = "logfile"
	RunFlag                  = "run"
	SkipFlag                 = "skip"
	HaltOnPanicFlag          = "halt-on-panic"
	SummaryFlag              = "summary"
	ShutdownPollsFlag        = "shutdown-polls"
	ShutdownPollIntervalFlag = "shutdown-poll-interval"
)

func prefixEnvVar(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

// NewFlags returns the command-line flags understood by the harness. urfave/cli stores values
// read from the environment in the flag structs, so every parse gets its own set.
func NewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    VerboseFlag,
			Aliases: []string{"v"},
			EnvVars: prefixEnvVar("VERBOSE"),
			Usage:   "Trace every assertion and show debug output of failed test cases",
		},
		&cli.BoolFlag{
			Name:    DebugFlag,
			Aliases: []string{"d"},
			EnvVars: prefixEnvVar("DEBUG"),
			Usage:   "Enable debug logging of the harness itself (implies --verbose)",
		},
		&cli.StringFlag{
			Name:    LogFileFlag,
			EnvVars: prefixEnvVar("LOGFILE"),
			Usage:   "Append debug log messages to this file instead of standard error",
		},
		&cli.StringSliceFlag{
			Name:  RunFlag,
			Usage: "Regex pattern(s) to select test cases to run",
		},
		&cli.StringSliceFlag{
			Name:  SkipFlag,
			Usage: "Regex pattern(s) to select test cases not to run",
		},
		&cli.BoolFlag{
			Name:    HaltOnPanicFlag,
			EnvVars: prefixEnvVar("HALT_ON_PANIC"),
			Usage:   "Stop the run when a test case panics, as if it had failed an Assert check",
		},
		&cli.BoolFlag{
			Name:    SummaryFlag,
			EnvVars: prefixEnvVar("SUMMARY"),
			Usage:   "Print a table of all test case results at the end of the run",
		},
		&cli.BoolFlag{
			Name:    NoCleanupFlag,
			EnvVars: prefixEnvVar("NO_CLEANUP"),
			Usage:   "Leave the daemon running after the test cases, so that it can be inspected",
		},
		&cli.IntFlag{
			Name:    ShutdownPollsFlag,
			EnvVars: prefixEnvVar("SHUTDOWN_POLLS"),
			Usage:   "Number of times to check whether the daemon has exited before killing it",
		},
		&cli.DurationFlag{
			Name:    ShutdownPollIntervalFlag,
			EnvVars: prefixEnvVar("SHUTDOWN_POLL_INTERVAL"),
			Usage:   "Delay between checks for the daemon having exited (e.g. '100ms')",
		},
	}
}
