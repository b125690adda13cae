package framework

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// PrintResults writes a summary table of a run, followed by the list of failed cases.
func PrintResults(out io.Writer, results Results) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Run " + results.RunID)
	t.AppendHeader(table.Row{"#", "Test case", "Result", "Assertions", "Failed"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	passed := 0
	for _, c := range results.Cases {
		if c.Outcome == OutcomePassed {
			passed++
		}
		t.AppendRow(table.Row{c.ID.Index, c.ID.Name, c.Outcome.String(), len(c.Entries), c.Failures})
	}
	t.AppendFooter(table.Row{"", "Total", fmt.Sprintf("%d passed", passed), "", len(results.Failed)})
	t.Render()

	if results.OK() {
		fmt.Fprintln(out, "All tests passed")
		return
	}
	fmt.Fprintf(out, "%d test case(s) failed:\n", results.FailureCount())
	for _, name := range results.Failed {
		fmt.Fprintf(out, "  %s\n", name)
	}
}
