package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/launchdarkly/process-test-harness/logging"

	"github.com/fatih/color"
)

// ConsoleTestLogger writes one row per test case:
//
//	1   - Basic                                                       - PASS
//
// In verbose mode every assertion is traced under the row, along with the details of
// any failure.
type ConsoleTestLogger struct {
	Output               io.Writer
	Verbose              bool
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	NoColor              bool
}

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Fprintf(c.Output, "%-3d - %-59s - ", id.Index, id.Name)
}

func (c *ConsoleTestLogger) AssertionStarted(id TestID, name string) {
	if c.Verbose {
		fmt.Fprintf(c.Output, "\n\t... %s", name)
	}
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	if !c.Verbose {
		return
	}
	fmt.Fprintln(c.Output)
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Output, "\t%s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id TestID, result CaseResult, debugOutput logging.CapturedOutput) {
	switch result.Outcome {
	case OutcomeAborted:
		c.colorize(color.FgRed).Fprintln(c.Output, "ASSERTION FAILED")
	case OutcomePanicked:
		c.colorize(color.FgRed).Fprintf(c.Output, "FAIL: %s\n", id.Name)
		fmt.Fprintf(c.Output, "\t%s\n", result.Err)
	default:
		if c.Verbose {
			fmt.Fprintln(c.Output)
		}
		if result.Outcome == OutcomeFailed {
			c.colorize(color.FgRed).Fprintln(c.Output, "FAIL")
		} else {
			c.colorize(color.FgGreen).Fprintln(c.Output, "PASS")
		}
	}

	failed := result.Outcome.Failed()
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Output, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	fmt.Fprintf(c.Output, "%-3d - %-59s - ", id.Index, id.Name)
	if reason == "" {
		c.colorize(color.FgYellow).Fprintln(c.Output, "SKIPPED")
	} else {
		c.colorize(color.FgYellow).Fprintf(c.Output, "SKIPPED (%s)\n", reason)
	}
}

func (c *ConsoleTestLogger) colorize(attr color.Attribute) *color.Color {
	col := color.New(attr)
	if c.NoColor {
		col.DisableColor()
	}
	return col
}
