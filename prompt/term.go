package prompt

import (
	"io"

	"golang.org/x/term"
)

const defaultWidth = 80

// TerminalWidth returns the column count of w when it is a terminal
func TerminalWidth(w io.Writer) (int, bool) {
	type fdProvider interface {
		Fd() uintptr
	}
	if v, ok := w.(fdProvider); ok {
		if cols, _, err := term.GetSize(int(v.Fd())); err == nil && cols > 0 {
			return cols, true
		}
	}
	return 0, false
}
