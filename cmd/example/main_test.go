package main

import (
	"testing"

	"github.com/launchdarkly/process-test-harness/framework"

	"github.com/stretchr/testify/assert"
)

func TestExampleUnit(t *testing.T) {
	unit := exampleUnit()
	assert.Equal(t, 1, unit.Run(framework.Config{TestLogger: framework.NullTestLogger()}))

	results := unit.Results()
	assert.Equal(t, []string{"Failing"}, results.Failed)
	assert.Equal(t, 2, len(results.Cases[0].Entries))
	assert.Equal(t, 3, results.Cases[2].Failures)
}
