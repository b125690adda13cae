package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter decides whether a registered case is run. Cases it rejects are reported as skipped.
type Filter func(TestID) bool

// CaseFilters select cases by name, as given by the --run and --skip options. A case runs if it
// matches any Run pattern (or there are none) and no Skip pattern.
type CaseFilters struct {
	Run  Patterns
	Skip Patterns
}

// Allows is a Filter.
func (f CaseFilters) Allows(id TestID) bool {
	if f.Skip.Match(id.Name) {
		return false
	}
	return f.Run.Len() == 0 || f.Run.Match(id.Name)
}

// Active is true if any pattern was added.
func (f CaseFilters) Active() bool {
	return f.Run.Len()+f.Skip.Len() > 0
}

// Patterns is a list of case name patterns; it implements flag.Value.
type Patterns []*regexp.Regexp

// Set compiles a pattern and adds it to the list.
func (p *Patterns) Set(pattern string) error {
	rx, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid case name pattern: %w", err)
	}
	*p = append(*p, rx)
	return nil
}

func (p Patterns) Len() int { return len(p) }

// Match is true if any pattern matches the name.
func (p Patterns) Match(name string) bool {
	for _, rx := range p {
		if rx.MatchString(name) {
			return true
		}
	}
	return false
}

func (p Patterns) String() string {
	quoted := make([]string, len(p))
	for i, rx := range p {
		quoted[i] = fmt.Sprintf("%q", rx.String())
	}
	return strings.Join(quoted, " or ")
}

// PrintFilterDescription tells the user which cases the filters will leave out. It prints
// nothing if no filters are active.
func PrintFilterDescription(out io.Writer, filters CaseFilters) {
	if !filters.Active() {
		return
	}
	fmt.Fprintln(out, "Some test cases will be skipped:")
	if filters.Run.Len() > 0 {
		fmt.Fprintf(out, "  cases whose names do not match %s\n", filters.Run)
	}
	if filters.Skip.Len() > 0 {
		fmt.Fprintf(out, "  cases whose names match %s\n", filters.Skip)
	}
	fmt.Fprintln(out)
}
