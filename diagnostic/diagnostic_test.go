package diagnostic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jstankevicius/albatross-jit/token"
)

func TestPrintIncludesContextAndCaret(t *testing.T) {
	src := "line1\nline2\nbadline\nline4\nline5"
	err := token.NewError(token.LexStage, token.Pos{Line: 3, Col: 4}, "unrecognized character")

	var buf bytes.Buffer
	Print(&buf, src, err)
	out := buf.String()

	for _, want := range []string{
		"Error on line 3, column 4:",
		">> badline",
		"Message: unrecognized character",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q; got:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "line1") || !strings.Contains(out, "line5") {
		t.Errorf("output missing 2-line context window; got:\n%s", out)
	}
	// ">> badline" has 'l' (column 4) at byte offset 6, so the caret
	// line must have exactly 6 leading spaces.
	if !strings.Contains(out, "\n      ^\n") {
		t.Errorf("caret not aligned under column 4; got:\n%s", out)
	}
}

func TestPrintIncludesNotes(t *testing.T) {
	src := "x"
	err := token.NewError(token.ParseStage, token.Pos{Line: 1, Col: 1}, "bad token").
		Note("expected a semicolon")

	var buf bytes.Buffer
	Print(&buf, src, err)
	if !strings.Contains(buf.String(), "expected a semicolon") {
		t.Errorf("output missing note; got:\n%s", buf.String())
	}
}

func TestPrintIOErrorHasNoColorOrExcerpt(t *testing.T) {
	var buf bytes.Buffer
	PrintIOError(&buf, "no such file or directory")
	if got := buf.String(); got != "Error: no such file or directory\n" {
		t.Errorf("PrintIOError output = %q", got)
	}
}
