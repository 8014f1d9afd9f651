package board

import (
	"fmt"
	"strings"
)

// UnknownNodeError is returned when a user-supplied path matches no node.
type UnknownNodeError struct {
	Path        string
	Suggestions []string
}

func (e UnknownNodeError) Error() string {
	msg := fmt.Sprintf("no theme or item matches %q", e.Path)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean: " + strings.Join(e.Suggestions, "; ") + "?)"
	}
	return msg
}
