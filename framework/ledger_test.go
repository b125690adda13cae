package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerFailuresCount(t *testing.T) {
	l := NewLedger("case")
	for _, outcome := range []bool{true, false, true, false, false} {
		l.Record("equal", outcome)
	}
	assert.Equal(t, 3, l.FailuresCount())
	assert.Equal(t, 5, l.Len())
}

func TestLedgerKeysAreUniquePerRecord(t *testing.T) {
	l := NewLedger("case")
	k1 := l.Record("equal", true)
	k2 := l.Record("equal", false)
	assert.Equal(t, "equal_1", k1)
	assert.Equal(t, "equal_2", k2)
	assert.Equal(t, []LedgerEntry{{Name: "equal_1", Passed: true}, {Name: "equal_2", Passed: false}}, l.Entries())
}

func TestLedgerCountersAreIndependent(t *testing.T) {
	a := NewLedger("a")
	b := NewLedger("b")
	a.Record("x", true)
	a.Record("x", true)
	assert.Equal(t, "x_1", b.Record("x", true))
}

func TestLedgerUnnamedOutcomeUsesPrefix(t *testing.T) {
	l := NewLedger("Basic")
	assert.Equal(t, "Basictest_1", l.Record("", true))
}

func TestLedgerZeroValueIsUsable(t *testing.T) {
	var l Ledger
	l.Record("x", false)
	assert.Equal(t, 1, l.FailuresCount())
}
