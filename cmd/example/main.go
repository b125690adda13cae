// Command example shows how a test program registers and runs test cases.
package main

import (
	"os"

	"github.com/launchdarkly/process-test-harness/framework"
	"github.com/launchdarkly/process-test-harness/harness"
)

func main() {
	os.Exit(harness.RunUnit(os.Args, exampleUnit()))
}

func exampleUnit() *framework.UnitTest {
	unit := framework.NewUnitTest()

	unit.Register("Basic", func(t *framework.T) {
		payload := "some text"
		expected := payload
		t.Equal(payload, expected, "strings are equal")

		expected = "different text"
		t.NotEqual(payload, expected, "strings are different")
	})

	value := 100

	unit.Register("Integer", func(t *framework.T) {
		for _, v := range []int{10, 20, 30} {
			t.NotEqual(v, value)
		}
	})

	unit.Register("Failing", func(t *framework.T) {
		for _, v := range []int{10, 20, 30} {
			t.Equal(v, value)
		}
	})

	return unit
}
