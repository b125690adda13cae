package framework

import (
	"os"

	"github.com/google/uuid"
)

// Config controls a single UnitTest.Run.
type Config struct {
	// Verbose enables per-assertion tracing in the default console logger.
	Verbose bool

	// HaltOnPanic makes a case that panics stop the run the same way an aborted case does.
	// By default a panicking case is recorded as failed and the run continues.
	HaltOnPanic bool

	// Filter, if set, decides which cases are run. Excluded cases are reported as skipped.
	Filter Filter

	// TestLogger receives all progress output. If nil, a ConsoleTestLogger writing to
	// standard output is used.
	TestLogger TestLogger
}

type testCase struct {
	name   string
	action func(*T)
}

// UnitTest is an ordered list of named test cases.
type UnitTest struct {
	cases   []testCase
	results Results
}

// NewUnitTest creates an empty UnitTest.
func NewUnitTest() *UnitTest {
	return &UnitTest{}
}

// Register appends a test case. Cases run in the order they were registered. Names do not
// need to be unique.
func (u *UnitTest) Register(name string, action func(*T)) {
	u.cases = append(u.cases, testCase{name: name, action: action})
}

// Len returns the number of registered cases.
func (u *UnitTest) Len() int {
	return len(u.cases)
}

// Run executes the registered cases one at a time and returns the number of cases that failed.
//
// Each case gets its own *T and Ledger. A case fails if any of its assertions failed, if it
// panicked, or if it was aborted. An abort also ends the run: the remaining cases are not
// executed.
func (u *UnitTest) Run(config Config) int {
	testLogger := config.TestLogger
	if testLogger == nil {
		testLogger = &ConsoleTestLogger{Output: os.Stdout, Verbose: config.Verbose, DebugOutputOnFailure: config.Verbose}
	}

	u.results = Results{RunID: uuid.NewString()}
	for i, c := range u.cases {
		id := TestID{Index: i + 1, Name: c.name}
		if config.Filter != nil && !config.Filter(id) {
			testLogger.TestSkipped(id, "excluded by filter parameters")
			u.results.add(CaseResult{ID: id, Outcome: OutcomeSkipped})
			continue
		}

		testLogger.TestStarted(id)
		t := newT(id, testLogger)
		result := t.run(c.action)
		u.results.add(result)
		testLogger.TestFinished(id, result, t.debugLogger.Output())

		if result.Outcome == OutcomeAborted ||
			(result.Outcome == OutcomePanicked && config.HaltOnPanic) {
			break
		}
	}

	return u.results.FailureCount()
}

// Results returns the results of the most recent Run.
func (u *UnitTest) Results() Results {
	return u.results
}
