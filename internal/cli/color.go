package cli

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// colorDisabled decides whether tables are rendered without color: when
// asked to, when NO_COLOR is set, or when stdout is not a terminal.
func colorDisabled(noColor bool, stdout io.Writer) bool {
	if noColor {
		return true
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return true
	}
	return !isTerminal(stdout)
}

// defaultIsTerminal inspects stdout for TTY support.
func defaultIsTerminal(stdout io.Writer) bool {
	if stdout == nil {
		return false
	}
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
