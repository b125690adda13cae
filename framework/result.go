package framework

import (
	"fmt"
)

// Outcome is the final state of one test case.
type Outcome int

const (
	// OutcomePassed means the case finished and every assertion passed.
	OutcomePassed Outcome = iota
	// OutcomeFailed means the case finished but at least one assertion failed.
	OutcomeFailed
	// OutcomeAborted means an Assert* check or FailNow stopped the case, and the run.
	OutcomeAborted
	// OutcomePanicked means the case panicked with something other than an abort.
	OutcomePanicked
	// OutcomeSkipped means the case was excluded by a filter and never ran.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "PASS"
	case OutcomeFailed:
		return "FAIL"
	case OutcomeAborted:
		return "ASSERTION FAILED"
	case OutcomePanicked:
		return "PANIC"
	case OutcomeSkipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// Failed is true for every outcome that counts towards the failure total.
func (o Outcome) Failed() bool {
	return o == OutcomeFailed || o == OutcomeAborted || o == OutcomePanicked
}

// TestID identifies a registered case by its 1-based position and display name. Names do not
// have to be unique.
type TestID struct {
	Index int
	Name  string
}

func (t TestID) String() string {
	return t.Name
}

// CaseResult describes how one test case ended.
type CaseResult struct {
	ID       TestID
	Outcome  Outcome
	Failures int
	Entries  []LedgerEntry
	Err      error
}

// Results accumulates the results of one UnitTest.Run.
type Results struct {
	RunID  string
	Cases  []CaseResult
	Failed []string
}

func (r Results) OK() bool {
	return len(r.Failed) == 0
}

// FailureCount is the number of failed case names, which is also the value returned by Run.
func (r Results) FailureCount() int {
	return len(r.Failed)
}

func (r *Results) add(result CaseResult) {
	r.Cases = append(r.Cases, result)
	if result.Outcome.Failed() {
		r.Failed = append(r.Failed, result.ID.Name)
	}
}

// ComparisonFailure is reported to the TestLogger when Equal or NotEqual fails.
type ComparisonFailure struct {
	Name     string
	Result   interface{}
	Expected interface{}
}

func (f ComparisonFailure) Error() string {
	return fmt.Sprintf("> Failed case: '%s'\nRESULT: %v\nEXPECT: %v", displayName(f.Name), f.Result, f.Expected)
}

// AssertionFailure is reported to the TestLogger when any other check fails.
type AssertionFailure struct {
	Name   string
	Reason string
}

func (f AssertionFailure) Error() string {
	return fmt.Sprintf("> Failed case: '%s'\n> Reason: %s", displayName(f.Name), f.Reason)
}

func displayName(name string) string {
	if name == "" {
		return "..."
	}
	return name
}
