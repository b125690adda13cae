package framework

import "github.com/launchdarkly/process-test-harness/logging"

// TestLogger receives progress notifications from UnitTest.Run. It is responsible for all
// human-facing output of a test run.
type TestLogger interface {
	TestStarted(id TestID)
	AssertionStarted(id TestID, name string)
	TestError(id TestID, err error)
	TestFinished(id TestID, result CaseResult, debugOutput logging.CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                      {}
func (n nullTestLogger) AssertionStarted(TestID, string)                         {}
func (n nullTestLogger) TestError(TestID, error)                                 {}
func (n nullTestLogger) TestFinished(TestID, CaseResult, logging.CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                              {}

// NullTestLogger returns a TestLogger that produces no output.
func NullTestLogger() TestLogger { return nullTestLogger{} }
