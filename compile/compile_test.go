package compile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jstankevicius/albatross-jit/token"
)

func TestRunFullPipelineSucceeds(t *testing.T) {
	src := `
fun fact int(n int) {
  if n <= 1 { return 1; }
  return n * fact(n - 1);
}
var r int := fact(5);
`
	result, err := Run(src, Options{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Prog) != 2 {
		t.Errorf("len(result.Prog) = %d, want 2", len(result.Prog))
	}
}

func TestRunLexErrorReturnsExitCode201(t *testing.T) {
	_, err := Run("var x int := \"unterminated;", Options{})
	assertExitCode(t, err, 201)
}

func TestRunParseErrorReturnsExitCode202(t *testing.T) {
	_, err := Run("var x int 1;", Options{})
	assertExitCode(t, err, 202)
}

func TestRunResolveErrorReturnsExitCode203(t *testing.T) {
	_, err := Run("var x int := y;", Options{})
	assertExitCode(t, err, 203)
}

func TestRunTypeErrorReturnsExitCode204(t *testing.T) {
	_, err := Run(`var x int := "s";`, Options{})
	assertExitCode(t, err, 204)
}

func assertExitCode(t *testing.T, err error, want int) {
	t.Helper()
	terr, ok := err.(*token.Error)
	if !ok {
		t.Fatalf("error = %v (%T), want *token.Error", err, err)
	}
	if got := terr.Stage.ExitCode(); got != want {
		t.Errorf("ExitCode() = %d, want %d", got, want)
	}
}

func TestRunLexerStageDump(t *testing.T) {
	var buf bytes.Buffer
	// "int" (a TypeName) precedes the parameter name "x" (an
	// Identifier), so the NAME/TYPE compatibility quirk fires for it.
	_, err := Run("fun f int(x int) { return x; }", Options{Stage: StageLexer, Dump: &buf})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "NAME x TYPE int") {
		t.Errorf("dump missing NAME/TYPE pairing; got:\n%s", out)
	}
	if !strings.Contains(out, "RETURN") {
		t.Errorf("dump missing RETURN label; got:\n%s", out)
	}
}

func TestRunParserStageDump(t *testing.T) {
	var buf bytes.Buffer
	src := `
var x int := 1 + 2;
if x { y := 3; } else { }
f(1, 2);
`
	_, err := Run(src, Options{Stage: StageParser, Dump: &buf})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"((1)+(2))\n",
		"(x)\n",
		"f((1),(2))",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q; got:\n%s", want, out)
		}
	}
}

func TestRunStopsAfterRequestedStage(t *testing.T) {
	// A program that fails type checking should still succeed when we
	// only ask for the resolver stage.
	result, err := Run(`var x int := "s";`, Options{Stage: StageResolve})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Prog == nil {
		t.Errorf("result.Prog is nil")
	}
}
