// Package diagnostic renders staged compiler errors as a red,
// source-context-annotated block with a caret under the offending
// column.
package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"github.com/jstankevicius/albatross-jit/token"
)

const (
	redBegin = "\033[1;31m"
	redEnd   = "\033[0m"

	contextUp   = 2
	contextDown = 2
)

// Print writes err's diagnostic block for src to w.
func Print(w io.Writer, src string, err *token.Error) {
	lines := strings.Split(src, "\n")
	line, col := err.Pos.Line, err.Pos.Col

	fmt.Fprint(w, redBegin)
	fmt.Fprintln(w, strings.Repeat("~", 47))
	fmt.Fprintf(w, "Error on line %d, column %d:\n", line, col)

	for i, text := range lines {
		srcLine := i + 1
		if srcLine < line-contextUp || srcLine > line+contextDown {
			continue
		}
		prefix := "   "
		if srcLine == line {
			prefix = ">> "
		}
		fmt.Fprintf(w, "%s%s\n", prefix, text)
		if srcLine == line {
			fmt.Fprintf(w, "%s^\n", strings.Repeat(" ", col+2))
		}
	}

	fmt.Fprintf(w, "Message: %s\n", err.Message)
	for _, n := range err.Notes {
		fmt.Fprintf(w, "         %s\n", n)
	}
	fmt.Fprint(w, redEnd)
}

// PrintIOError writes a plain (uncoloured, no source excerpt) I/O
// diagnostic to w.
func PrintIOError(w io.Writer, message string) {
	fmt.Fprintf(w, "Error: %s\n", message)
}
