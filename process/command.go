package process

import (
	"strings"

	"github.com/alessio/shellescape"
)

// commandLine formats an argument vector so that it can be pasted into a shell.
type commandLine []string

func (c commandLine) String() string {
	quoted := make([]string, 0, len(c))
	for _, a := range c {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}
