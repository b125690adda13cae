package framework

import (
	"fmt"
	"runtime/debug"

	"github.com/launchdarkly/process-test-harness/logging"
)

// T is the context passed to a test case. It is used similarly to *testing.T: assertions are
// made through it, and it implements require.TestingT so that the assert and require packages
// from testify also work with it.
//
// A T only exists for the duration of its case, and must not be used from other goroutines.
type T struct {
	id          TestID
	ledger      *Ledger
	testLogger  TestLogger
	debugLogger logging.CapturingLogger
}

func newT(id TestID, testLogger TestLogger) *T {
	return &T{
		id:         id,
		ledger:     NewLedger(id.Name),
		testLogger: testLogger,
	}
}

func (t *T) run(action func(*T)) (result CaseResult) {
	result.ID = t.id
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*T); ok {
				result.Outcome = OutcomeAborted
			} else {
				result.Outcome = OutcomePanicked
				result.Err = fmt.Errorf("unexpected panic in test: %+v", r)
				t.Debug("%s", debug.Stack())
			}
		} else if t.ledger.FailuresCount() > 0 {
			result.Outcome = OutcomeFailed
		} else {
			result.Outcome = OutcomePassed
		}
		result.Failures = t.ledger.FailuresCount()
		result.Entries = t.ledger.Entries()
	}()

	action(t)
	return
}

// ID returns the identifier of the running case.
func (t *T) ID() TestID {
	return t.id
}

// Name returns the display name of the running case.
func (t *T) Name() string {
	return t.id.Name
}

// Failed reports whether any assertion in this case has failed so far.
func (t *T) Failed() bool {
	return t.ledger.FailuresCount() > 0
}

// Ledger returns the outcomes recorded so far.
func (t *T) Ledger() *Ledger {
	return t.ledger
}

// Errorf is called by testify assertions to log a failure. It records a failed outcome but
// does not stop the case.
func (t *T) Errorf(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	t.ledger.Record("error", false)
	t.testLogger.TestError(t.id, err)
}

// FailNow raises the abort signal: the case ends immediately and no further cases are run.
// The methods in testify's require package call FailNow.
func (t *T) FailNow() {
	panic(t)
}

// Debug adds a message to the debug output of the case, which the test logger may show if the
// case fails.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to the debug output of the case.
func (t *T) DebugLogger() logging.Logger {
	return &t.debugLogger
}

func (t *T) begin(defaultName string, name []string) string {
	n := defaultName
	if len(name) > 0 && name[0] != "" {
		n = name[0]
	}
	t.testLogger.AssertionStarted(t.id, n)
	return n
}

func (t *T) record(name string, passed bool, failure error) bool {
	if !passed && failure != nil {
		t.testLogger.TestError(t.id, failure)
	}
	t.ledger.Record(name, passed)
	return passed
}
