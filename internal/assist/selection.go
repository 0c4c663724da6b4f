package assist

import (
	"regexp"
	"strings"
)

// selectionPattern matches one ASCII digit 1-6, optional whitespace, then the
// remainder of the line.
var selectionPattern = regexp.MustCompile(`^([1-6])\s*(.*)$`)

// selection is a parsed component choice: which field to upgrade and,
// optionally, the replacement value given in the same turn.
type selection struct {
	index    int
	newValue string
}

// parseSelection interprets a single line as "(component index)(optional new
// value)". Returns ok=false when no leading digit 1-6 is found.
func parseSelection(text string) (selection, bool) {
	m := selectionPattern.FindStringSubmatch(text)
	if m == nil {
		return selection{}, false
	}
	return selection{
		index:    int(m[1][0] - '0'),
		newValue: strings.TrimSpace(m[2]),
	}, true
}
