// Package resolve implements lexical scoping: it walks the AST once,
// binding every VarRef, Call, and CallStmt to the declaration it
// refers to.
package resolve

import (
	"github.com/jstankevicius/albatross-jit/ast"
	"github.com/jstankevicius/albatross-jit/token"
)

// A Resolver walks a program once, annotating VarRef/Call/CallStmt
// nodes with their resolved bindings.
type Resolver struct {
	vars *varStack
	funs *funStack
}

// New returns a Resolver with fresh, empty namespaces.
func New() *Resolver {
	return &Resolver{vars: newVarStack(), funs: newFunStack()}
}

// Resolve resolves prog in place, or returns the first resolution
// error.
func Resolve(prog []ast.Stmt) error {
	return New().Resolve(prog)
}

// Resolve runs the resolver over prog.
func (r *Resolver) Resolve(prog []ast.Stmt) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if rerr, ok := rec.(*token.Error); ok {
				err = rerr
				return
			}
			panic(rec)
		}
	}()

	for _, s := range prog {
		r.stmt(s)
	}
	return nil
}

func fail(pos token.Pos, format string, args ...interface{}) {
	panic(token.NewError(token.ResolveStage, pos, format, args...))
}

func (r *Resolver) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarDecl:
		r.expr(s.Init) // own name is not visible in its own initializer
		if r.vars.declaredInCurrentScope(s.Name) {
			fail(s.Pos(), "variable %q already declared in this scope", s.Name)
		}
		r.vars.add(s.Name, s.Type)

	case *ast.Assign:
		if _, ok := s.Target.(*ast.VarRef); !ok {
			fail(s.Target.Pos(), "assignment target must be a variable")
		}
		r.expr(s.Target)
		r.expr(s.Value)

	case *ast.If:
		r.expr(s.Cond)
		r.vars.enterScope()
		for _, st := range s.Then {
			r.stmt(st)
		}
		r.vars.exitScope()
		r.vars.enterScope()
		for _, st := range s.Else {
			r.stmt(st)
		}
		r.vars.exitScope()

	case *ast.While:
		r.expr(s.Cond)
		r.vars.enterScope()
		for _, st := range s.Body {
			r.stmt(st)
		}
		r.vars.exitScope()
		r.vars.enterScope()
		for _, st := range s.Otherwise {
			r.stmt(st)
		}
		r.vars.exitScope()

	case *ast.Repeat:
		r.expr(s.Cond)
		r.vars.enterScope()
		for _, st := range s.Body {
			r.stmt(st)
		}
		r.vars.exitScope()

	case *ast.CallStmt:
		info, ok := r.funs.find(s.Callee)
		if !ok {
			fail(s.Pos(), "call to undeclared function %q", s.Callee)
		}
		s.Binding = &info
		for _, a := range s.Args {
			r.expr(a)
		}

	case *ast.FunDecl:
		if r.funs.declaredInCurrentScope(s.Name) {
			fail(s.Pos(), "function %q already declared in this scope", s.Name)
		}
		info := r.funs.add(s.Name, s.ReturnType, s.Params)
		s.Index = info.Index

		r.vars.enterScope()
		for _, p := range s.Params {
			r.vars.add(p.Name, p.Type)
		}
		for _, st := range s.Body {
			r.stmt(st)
		}
		r.vars.exitScope()

	case *ast.Return:
		if s.Value != nil {
			r.expr(s.Value)
		}

	default:
		fail(s.Pos(), "internal error: unhandled statement type %T", s)
	}
}

func (r *Resolver) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.IntLit, *ast.StrLit:
		// no references to resolve

	case *ast.VarRef:
		info, ok := r.vars.find(e.Name)
		if !ok {
			fail(e.Pos(), "reference to undeclared variable %q", e.Name)
		}
		e.Binding = &info

	case *ast.BinOp:
		r.expr(e.Left)
		r.expr(e.Right)

	case *ast.UnOp:
		r.expr(e.Operand)

	case *ast.Call:
		info, ok := r.funs.find(e.Callee)
		if !ok {
			fail(e.Pos(), "call to undeclared function %q", e.Callee)
		}
		e.Binding = &info
		for _, a := range e.Args {
			r.expr(a)
		}

	default:
		fail(e.Pos(), "internal error: unhandled expression type %T", e)
	}
}
