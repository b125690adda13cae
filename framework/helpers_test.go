package framework

import (
	"github.com/launchdarkly/process-test-harness/logging"
)

type loggedEvent struct {
	kind string
	id   TestID
	text string
}

type recordingTestLogger struct {
	events  []loggedEvent
	results []CaseResult
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, loggedEvent{kind: "started", id: id})
}

func (r *recordingTestLogger) AssertionStarted(id TestID, name string) {
	r.events = append(r.events, loggedEvent{kind: "assertion", id: id, text: name})
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, loggedEvent{kind: "error", id: id, text: err.Error()})
}

func (r *recordingTestLogger) TestFinished(id TestID, result CaseResult, debugOutput logging.CapturedOutput) {
	r.events = append(r.events, loggedEvent{kind: "finished", id: id})
	r.results = append(r.results, result)
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, loggedEvent{kind: "skipped", id: id, text: reason})
}

func (r *recordingTestLogger) errors() []string {
	var ret []string
	for _, e := range r.events {
		if e.kind == "error" {
			ret = append(ret, e.text)
		}
	}
	return ret
}

// runSingle runs one case in isolation and returns its result.
func runSingle(action func(*T)) (CaseResult, *recordingTestLogger) {
	logger := &recordingTestLogger{}
	u := NewUnitTest()
	u.Register("case", action)
	u.Run(Config{TestLogger: logger})
	return u.Results().Cases[0], logger
}
