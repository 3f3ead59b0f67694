package simplify

import (
	"testing"

	"github.com/jstankevicius/albatross-jit/ast"
	"github.com/jstankevicius/albatross-jit/lexer"
	"github.com/jstankevicius/albatross-jit/parser"
	"github.com/jstankevicius/albatross-jit/resolve"
	"github.com/jstankevicius/albatross-jit/types"
)

func compile(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) returned error: %v", src, err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	if err := resolve.Resolve(prog); err != nil {
		t.Fatalf("Resolve(%q) returned error: %v", src, err)
	}
	if err := types.Check(prog); err != nil {
		t.Fatalf("Check(%q) returned error: %v", src, err)
	}
	return prog
}

// S2 — parse precedence, then constant folding.
func TestSimplifyFoldsArithmetic(t *testing.T) {
	prog := compile(t, "var r int := 1 + 2 * 3;")
	out, err := Simplify(prog)
	if err != nil {
		t.Fatalf("Simplify returned error: %v", err)
	}
	decl := out[0].(*ast.VarDecl)
	lit, ok := decl.Init.(*ast.IntLit)
	if !ok || lit.Value != 7 {
		t.Errorf("decl.Init = %#v, want IntLit(7)", decl.Init)
	}
}

// S3 — unary minus vs binary minus, folded.
func TestSimplifyFoldsUnaryMinus(t *testing.T) {
	prog := compile(t, "var a int := -3 - -4;")
	out, err := Simplify(prog)
	if err != nil {
		t.Fatalf("Simplify returned error: %v", err)
	}
	decl := out[0].(*ast.VarDecl)
	lit, ok := decl.Init.(*ast.IntLit)
	if !ok || lit.Value != 1 {
		t.Errorf("decl.Init = %#v, want IntLit(1)", decl.Init)
	}
}

// S5 — DCE of unreachable branch.
func TestSimplifyDCEIfBranch(t *testing.T) {
	prog := compile(t, `
fun g int(n int) {
  if 0 { return 99; } else { return n; }
}`)
	out, err := Simplify(prog)
	if err != nil {
		t.Fatalf("Simplify returned error: %v", err)
	}
	fn := out[0].(*ast.FunDecl)
	if len(fn.Body) != 1 {
		t.Fatalf("fn.Body = %#v, want exactly one statement", fn.Body)
	}
	ret, ok := fn.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("fn.Body[0] = %T, want *ast.Return", fn.Body[0])
	}
	ref, ok := ret.Value.(*ast.VarRef)
	if !ok || ref.Name != "n" {
		t.Errorf("ret.Value = %#v, want VarRef(n)", ret.Value)
	}
}

// S6 — return-after-return DCE.
func TestSimplifyDCEAfterReturn(t *testing.T) {
	prog := compile(t, "fun h int() { return 1; return 2; }")
	out, err := Simplify(prog)
	if err != nil {
		t.Fatalf("Simplify returned error: %v", err)
	}
	fn := out[0].(*ast.FunDecl)
	if len(fn.Body) != 1 {
		t.Fatalf("fn.Body = %#v, want exactly one statement", fn.Body)
	}
}

func TestSimplifyWhileFalseDeletedOtherwiseNotLifted(t *testing.T) {
	prog := compile(t, `
fun f int() {
  var x int := 0;
  while 0 {
    x := 1;
  } otherwise {
    x := 2;
  }
  return x;
}`)
	out, err := Simplify(prog)
	if err != nil {
		t.Fatalf("Simplify returned error: %v", err)
	}
	fn := out[0].(*ast.FunDecl)
	// The while statement is deleted outright; the otherwise block is
	// NOT spliced into the body.
	for _, s := range fn.Body {
		if _, ok := s.(*ast.While); ok {
			t.Errorf("fn.Body still contains a While statement: %#v", fn.Body)
		}
	}
	if len(fn.Body) != 2 {
		t.Errorf("fn.Body = %#v, want VarDecl + Return only", fn.Body)
	}
}

func TestSimplifyDivideByZeroFoldFails(t *testing.T) {
	prog := compile(t, "var x int := 1 / 0;")
	if _, err := Simplify(prog); err == nil {
		t.Errorf("Simplify succeeded, want fold-time division-by-zero error")
	}
}

func TestSimplifyModuloByZeroFoldFails(t *testing.T) {
	prog := compile(t, "var x int := 1 % 0;")
	if _, err := Simplify(prog); err == nil {
		t.Errorf("Simplify succeeded, want fold-time modulo-by-zero error")
	}
}

func TestSimplifyLogicalOperators(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"var x int := 1 || 0;", 1},
		{"var x int := 0 || 0;", 0},
		{"var x int := 1 && 0;", 0},
		{"var x int := 3 == 3;", 1},
		{"var x int := 3 <> 3;", 0},
		{"var x int := !0;", 1},
		{"var x int := !5;", 0},
	}
	for _, test := range tests {
		prog := compile(t, test.src)
		out, err := Simplify(prog)
		if err != nil {
			t.Fatalf("Simplify(%q) returned error: %v", test.src, err)
		}
		decl := out[0].(*ast.VarDecl)
		lit, ok := decl.Init.(*ast.IntLit)
		if !ok || lit.Value != test.want {
			t.Errorf("Simplify(%q) = %#v, want IntLit(%d)", test.src, decl.Init, test.want)
		}
	}
}
