// Package framework contains the in-process half of the test harness: named test cases, the
// ledger that records their assertion outcomes, and the runner that executes them in order.
//
// The general model is:
//
// 1. A UnitTest holds an ordered list of named test cases. Each case is a function that
// receives a *T, which is similar to Go's *testing.T.
//
// 2. Every assertion made through the *T records exactly one named boolean outcome in that
// case's Ledger. A failed assertion is just data: the case keeps running, and fails at the end
// if its ledger contains any false outcomes.
//
// 3. The Assert* variants, and FailNow, abort the case immediately. An abort also stops the
// whole run: no case registered after it is executed.
//
// Because *T implements the same Errorf/FailNow methods as *testing.T, the assert and require
// packages from github.com/stretchr/testify can be used inside test cases.
package framework
