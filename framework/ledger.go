package framework

import "fmt"

// Ledger records the named boolean outcomes of the assertions made by one test case.
//
// Every outcome gets a unique key, made by appending a counter to the assertion name, so
// repeating the same assertion in a loop produces separate entries. The counter belongs to
// the ledger, so ledgers of different cases never affect each other.
type Ledger struct {
	prefix  string
	results map[string]bool
	order   []string
	counter int
}

// LedgerEntry is one recorded outcome.
type LedgerEntry struct {
	Name   string
	Passed bool
}

// NewLedger creates an empty ledger. The prefix is used to name outcomes that were recorded
// without an assertion name.
func NewLedger(prefix string) *Ledger {
	return &Ledger{prefix: prefix, results: make(map[string]bool)}
}

// Record stores an outcome and returns the key it was stored under.
func (l *Ledger) Record(name string, passed bool) string {
	if l.results == nil {
		l.results = make(map[string]bool)
	}
	if name == "" {
		name = l.prefix + "test"
	}
	l.counter++
	key := fmt.Sprintf("%s_%d", name, l.counter)
	l.results[key] = passed
	l.order = append(l.order, key)
	return key
}

// FailuresCount returns the number of false outcomes.
func (l *Ledger) FailuresCount() int {
	failures := 0
	for _, passed := range l.results {
		if !passed {
			failures++
		}
	}
	return failures
}

func (l *Ledger) Len() int {
	return len(l.results)
}

// Entries returns the recorded outcomes in the order they were recorded.
func (l *Ledger) Entries() []LedgerEntry {
	ret := make([]LedgerEntry, 0, len(l.order))
	for _, key := range l.order {
		ret = append(ret, LedgerEntry{Name: key, Passed: l.results[key]})
	}
	return ret
}
