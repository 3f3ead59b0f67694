// Package types implements the value-type checker, which walks a
// resolved AST assigning and validating every expression's type.
package types

import (
	"fmt"
	"io"

	"github.com/jstankevicius/albatross-jit/ast"
	"github.com/jstankevicius/albatross-jit/token"
)

// A Checker walks a resolved AST, filling in every expression's
// ValueType and validating every statement. When Dump is non-nil, it
// also writes a human-readable trace line for each declaration, read,
// write, and call it checks.
type Checker struct {
	Dump io.Writer

	// retStack tracks the active enclosing function's return type; an
	// empty stack means module scope, which requires Int returns.
	retStack []ast.Type
}

// New returns a Checker. Pass a non-nil w to enable dump tracing.
func New(w io.Writer) *Checker {
	return &Checker{Dump: w}
}

// Check type-checks prog, or returns the first type error.
func Check(prog []ast.Stmt) error {
	return New(nil).Check(prog)
}

func (c *Checker) Check(prog []ast.Stmt) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if terr, ok := rec.(*token.Error); ok {
				err = terr
				return
			}
			panic(rec)
		}
	}()

	for _, s := range prog {
		c.stmt(s)
	}
	return nil
}

func fail(pos token.Pos, format string, args ...interface{}) {
	panic(token.NewError(token.TypeStage, pos, format, args...))
}

func (c *Checker) printf(format string, args ...interface{}) {
	if c.Dump == nil {
		return
	}
	fmt.Fprintf(c.Dump, format+"\n", args...)
}

// enclosingReturnType returns the return type in effect (module scope
// requires Int).
func (c *Checker) enclosingReturnType() ast.Type {
	if len(c.retStack) == 0 {
		return ast.Int
	}
	return c.retStack[len(c.retStack)-1]
}

func (c *Checker) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarDecl:
		it := c.expr(s.Init)
		if it != s.Type {
			fail(s.Pos(), "cannot initialize %q of type %s with value of type %s", s.Name, s.Type, it)
		}
		c.printf("Variable declared %q type %s", s.Name, s.Type)

	case *ast.Assign:
		ref, ok := s.Target.(*ast.VarRef)
		if !ok {
			fail(s.Target.Pos(), "assignment target must be a variable")
		}
		if ref.Binding == nil {
			fail(ref.Pos(), "internal error: unresolved variable %q", ref.Name)
		}
		lt := ref.Binding.Type
		ast.SetValueType(ref, lt)
		rt := c.expr(s.Value)
		if lt != rt {
			fail(s.Pos(), "cannot assign value of type %s to %q of type %s", rt, ref.Name, lt)
		}
		c.printf("Variable written %q type %s", ref.Name, lt)

	case *ast.If:
		if t := c.expr(s.Cond); t != ast.Int {
			fail(s.Cond.Pos(), "if condition must be int, found %s", t)
		}
		for _, st := range s.Then {
			c.stmt(st)
		}
		for _, st := range s.Else {
			c.stmt(st)
		}

	case *ast.While:
		if t := c.expr(s.Cond); t != ast.Int {
			fail(s.Cond.Pos(), "while condition must be int, found %s", t)
		}
		for _, st := range s.Body {
			c.stmt(st)
		}
		for _, st := range s.Otherwise {
			c.stmt(st)
		}

	case *ast.Repeat:
		if t := c.expr(s.Cond); t != ast.Int {
			fail(s.Cond.Pos(), "repeat condition must be int, found %s", t)
		}
		for _, st := range s.Body {
			c.stmt(st)
		}

	case *ast.CallStmt:
		c.checkCall(s.Pos(), s.Callee, s.Binding, s.Args)

	case *ast.FunDecl:
		c.printf("Function declared %q returns %s", s.Name, s.ReturnType)
		for i, p := range s.Params {
			c.printf("\tArgument %q type %s position %d", p.Name, p.Type, i)
		}
		c.retStack = append(c.retStack, s.ReturnType)
		for _, st := range s.Body {
			c.stmt(st)
		}
		c.retStack = c.retStack[:len(c.retStack)-1]

	case *ast.Return:
		want := c.enclosingReturnType()
		got := ast.Void
		if s.Value != nil {
			got = c.expr(s.Value)
		}
		if got != want {
			fail(s.Pos(), "return type mismatch: expected %s, found %s", want, got)
		}

	default:
		fail(s.Pos(), "internal error: unhandled statement type %T", s)
	}
}

func (c *Checker) checkCall(pos token.Pos, callee string, binding *ast.FunInfo, args []ast.Expr) ast.Type {
	if binding == nil {
		fail(pos, "internal error: unresolved call to %q", callee)
	}
	if len(args) != len(binding.Params) {
		fail(pos, "function %q expects %d argument(s), found %d", callee, len(binding.Params), len(args))
	}
	for i, a := range args {
		at := c.expr(a)
		pt := binding.Params[i].Type
		if at != pt {
			fail(a.Pos(), "argument %d to %q must be %s, found %s", i, callee, pt, at)
		}
	}
	c.printf("Function called %q returns %s", callee, binding.ReturnType)
	return binding.ReturnType
}

func (c *Checker) expr(e ast.Expr) ast.Type {
	var t ast.Type
	switch e := e.(type) {
	case *ast.IntLit:
		t = ast.Int

	case *ast.StrLit:
		t = ast.String

	case *ast.VarRef:
		if e.Binding == nil {
			fail(e.Pos(), "internal error: unresolved variable %q", e.Name)
		}
		t = e.Binding.Type
		c.printf("Variable read %q type %s", e.Name, t)

	case *ast.BinOp:
		lt := c.expr(e.Left)
		rt := c.expr(e.Right)
		if lt != ast.Int || rt != ast.Int {
			fail(e.Pos(), "operands of binary operator must be int, found %s and %s", lt, rt)
		}
		t = ast.Int

	case *ast.UnOp:
		if e.Op == ast.Subscript {
			// Subscripting is parsed but not realised in the type
			// system; its operand still type-checks.
			c.expr(e.Operand)
			t = ast.Int
			break
		}
		ot := c.expr(e.Operand)
		if ot != ast.Int {
			fail(e.Pos(), "operand of unary operator must be int, found %s", ot)
		}
		t = ast.Int

	case *ast.Call:
		t = c.checkCall(e.Pos(), e.Callee, e.Binding, e.Args)

	default:
		fail(e.Pos(), "internal error: unhandled expression type %T", e)
	}
	ast.SetValueType(e, t)
	return t
}
