package resolve

import (
	"testing"

	"github.com/jstankevicius/albatross-jit/ast"
	"github.com/jstankevicius/albatross-jit/lexer"
	"github.com/jstankevicius/albatross-jit/parser"
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
	return prog
}

func TestResolveVarRefBinding(t *testing.T) {
	prog := compile(t, "var x int := 1; var y int := x;")
	if err := Resolve(prog); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	y := prog[1].(*ast.VarDecl)
	ref := y.Init.(*ast.VarRef)
	if ref.Binding == nil {
		t.Fatalf("ref.Binding is nil")
	}
	if ref.Binding.Type != ast.Int || ref.Binding.Index != 0 {
		t.Errorf("ref.Binding = %+v, want {Int, 0}", ref.Binding)
	}
}

func TestResolveOwnNameNotVisibleInInitializer(t *testing.T) {
	prog := compile(t, "var x int := x;")
	if err := Resolve(prog); err == nil {
		t.Errorf("Resolve succeeded, want error (x used in its own initializer)")
	}
}

func TestResolveTwoNamespaces(t *testing.T) {
	// A function and a variable may share a name; they live in
	// separate namespaces.
	prog := compile(t, `
fun f int(x int) { return x + 1; }
var f int := 2;
var y int := f;
`)
	if err := Resolve(prog); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	y := prog[2].(*ast.VarDecl)
	ref := y.Init.(*ast.VarRef)
	if ref.Binding == nil || ref.Binding.Type != ast.Int {
		t.Fatalf("y's initializer should bind to the variable f, got %+v", ref.Binding)
	}
}

func TestResolveIfBranchesIndependentFrames(t *testing.T) {
	prog := compile(t, `
if 1 {
  var a int := 1;
} else {
  var a int := 2;
}
`)
	if err := Resolve(prog); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
}

func TestResolveRedeclarationInSameScopeFails(t *testing.T) {
	prog := compile(t, "var x int := 1; var x int := 2;")
	if err := Resolve(prog); err == nil {
		t.Errorf("Resolve succeeded, want error (redeclared x)")
	}
}

func TestResolveUndeclaredVariableFails(t *testing.T) {
	prog := compile(t, "var x int := y;")
	if err := Resolve(prog); err == nil {
		t.Errorf("Resolve succeeded, want error (y undeclared)")
	}
}

func TestResolveUndeclaredFunctionFails(t *testing.T) {
	prog := compile(t, "f(1);")
	if err := Resolve(prog); err == nil {
		t.Errorf("Resolve succeeded, want error (f undeclared)")
	}
}

func TestResolveFunctionVisibleForRecursion(t *testing.T) {
	prog := compile(t, "fun fact int(n int) { return n * fact(n - 1); }")
	if err := Resolve(prog); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
}

func TestResolveWhileBodyAndOtherwiseIndependentFrames(t *testing.T) {
	prog := compile(t, `
while 1 {
  var a int := 1;
} otherwise {
  var a int := 2;
}
`)
	if err := Resolve(prog); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
}
