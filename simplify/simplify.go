// Package simplify implements the fixpoint constant-folding and
// dead-code-elimination pass that runs after type checking.
package simplify

import (
	"github.com/jstankevicius/albatross-jit/ast"
	"github.com/jstankevicius/albatross-jit/token"
)

// Simplify runs fold+DCE to a fixpoint over prog, mutating it in
// place, and returns the simplified statement list (folding an *If*
// or deleting a loop can replace or remove top-level statements, so
// the caller must use the returned slice) or the first fold-time
// error (currently only a constant division or modulo by zero).
func Simplify(prog []ast.Stmt) (out []ast.Stmt, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if ferr, ok := rec.(*token.Error); ok {
				out, err = nil, ferr
				return
			}
			panic(rec)
		}
	}()

	for {
		changed := false
		prog, changed = passOverBlock(prog, changed)
		if !changed {
			return prog, nil
		}
	}
}

// passOverBlock runs one fold+DCE pass over a statement list,
// reporting whether anything changed.
func passOverBlock(stmts []ast.Stmt, changed bool) ([]ast.Stmt, bool) {
	out := make([]ast.Stmt, 0, len(stmts))

	for i := 0; i < len(stmts); i++ {
		s := stmts[i]
		s, stmtChanged := foldStmt(s)
		changed = changed || stmtChanged

		switch st := s.(type) {
		case *ast.If:
			if lit, ok := asConstInt(st.Cond); ok {
				changed = true
				branch := st.Else
				if lit != 0 {
					branch = st.Then
				}
				// Splice the taken branch in place and re-scan from
				// its first statement so folding/DCE applies
				// transitively.
				stmts = append(stmts[:i], append(append([]ast.Stmt{}, branch...), stmts[i+1:]...)...)
				i--
				continue
			}
			var thenChanged, elseChanged bool
			st.Then, thenChanged = passOverBlock(st.Then, false)
			st.Else, elseChanged = passOverBlock(st.Else, false)
			changed = changed || thenChanged || elseChanged
			out = append(out, st)

		case *ast.While:
			if lit, ok := asConstInt(st.Cond); ok && lit == 0 {
				// The body never runs. The otherwise block is
				// intentionally NOT lifted into the enclosing list;
				// only If's branches get that treatment.
				changed = true
				continue
			}
			var bodyChanged, otherwiseChanged bool
			st.Body, bodyChanged = passOverBlock(st.Body, false)
			st.Otherwise, otherwiseChanged = passOverBlock(st.Otherwise, false)
			changed = changed || bodyChanged || otherwiseChanged
			out = append(out, st)

		case *ast.Repeat:
			if lit, ok := asConstInt(st.Cond); ok && lit == 0 {
				changed = true
				continue
			}
			var bodyChanged bool
			st.Body, bodyChanged = passOverBlock(st.Body, false)
			changed = changed || bodyChanged
			out = append(out, st)

		case *ast.FunDecl:
			var bodyChanged bool
			st.Body, bodyChanged = passOverBlock(st.Body, false)
			changed = changed || bodyChanged
			out = append(out, st)

		case *ast.Return:
			out = append(out, st)
			if i+1 < len(stmts) {
				changed = true
			}
			// Delete anything after a Return in this block.
			return out, changed

		default:
			out = append(out, st)
		}
	}

	return out, changed
}

// foldStmt folds the expression children of a single statement
// in place, reporting whether anything changed.
func foldStmt(s ast.Stmt) (ast.Stmt, bool) {
	changed := false
	switch st := s.(type) {
	case *ast.VarDecl:
		st.Init, changed = foldExpr(st.Init)
	case *ast.Assign:
		var c1, c2 bool
		st.Target, c1 = foldExpr(st.Target)
		st.Value, c2 = foldExpr(st.Value)
		changed = c1 || c2
	case *ast.If:
		st.Cond, changed = foldExpr(st.Cond)
	case *ast.While:
		st.Cond, changed = foldExpr(st.Cond)
	case *ast.Repeat:
		st.Cond, changed = foldExpr(st.Cond)
	case *ast.CallStmt:
		for i, a := range st.Args {
			var c bool
			st.Args[i], c = foldExpr(a)
			changed = changed || c
		}
	case *ast.Return:
		if st.Value != nil {
			st.Value, changed = foldExpr(st.Value)
		}
	}
	return s, changed
}

// foldExpr folds e bottom-up, returning the (possibly replaced)
// expression and whether anything changed.
func foldExpr(e ast.Expr) (ast.Expr, bool) {
	switch e := e.(type) {
	case *ast.IntLit, *ast.StrLit, *ast.VarRef:
		return e, false

	case *ast.BinOp:
		left, lc := foldExpr(e.Left)
		right, rc := foldExpr(e.Right)
		e.Left, e.Right = left, right
		changed := lc || rc

		l, lok := e.Left.(*ast.IntLit)
		r, rok := e.Right.(*ast.IntLit)
		if lok && rok {
			v := evalBinOp(e.Pos(), e.Op, l.Value, r.Value)
			lit := ast.NewIntLit(e.Pos(), v)
			ast.SetValueType(lit, ast.Int)
			return lit, true
		}
		return e, changed

	case *ast.UnOp:
		if e.Op == ast.Subscript {
			operand, changed := foldExpr(e.Operand)
			e.Operand = operand
			return e, changed
		}
		operand, changed := foldExpr(e.Operand)
		e.Operand = operand
		if lit, ok := operand.(*ast.IntLit); ok {
			v := 0
			switch e.Op {
			case ast.Not:
				if lit.Value == 0 {
					v = 1
				}
			case ast.Neg:
				v = -lit.Value
			}
			out := ast.NewIntLit(e.Pos(), v)
			ast.SetValueType(out, ast.Int)
			return out, true
		}
		return e, changed

	case *ast.Call:
		changed := false
		for i, a := range e.Args {
			var c bool
			e.Args[i], c = foldExpr(a)
			changed = changed || c
		}
		return e, changed

	default:
		return e, false
	}
}

// evalBinOp evaluates op on two already-folded integer operands.
// Division and modulo by a literal zero raise a fold-time error
// rather than silently deferring to a runtime trap.
func evalBinOp(pos token.Pos, op ast.BinOperator, l, r int) int {
	toBool := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	switch op {
	case ast.Or:
		return toBool(l != 0 || r != 0)
	case ast.And:
		return toBool(l != 0 && r != 0)
	case ast.Bor:
		return l | r
	case ast.Xor:
		return l ^ r
	case ast.Band:
		return l & r
	case ast.Ne:
		return toBool(l != r)
	case ast.Eq:
		return toBool(l == r)
	case ast.Gt:
		return toBool(l > r)
	case ast.Ge:
		return toBool(l >= r)
	case ast.Lt:
		return toBool(l < r)
	case ast.Le:
		return toBool(l <= r)
	case ast.Plus:
		return l + r
	case ast.Minus:
		return l - r
	case ast.Times:
		return l * r
	case ast.Div:
		if r == 0 {
			panic(token.NewError(token.TypeStage, pos, "division by zero in constant expression"))
		}
		return l / r
	case ast.Rem:
		if r == 0 {
			panic(token.NewError(token.TypeStage, pos, "modulo by zero in constant expression"))
		}
		return l % r
	default:
		panic(token.NewError(token.TypeStage, pos, "internal error: unhandled binary operator %d", op))
	}
}

// asConstInt reports whether e is (now) an IntLit, and its value.
func asConstInt(e ast.Expr) (int, bool) {
	if lit, ok := e.(*ast.IntLit); ok {
		return lit.Value, true
	}
	return 0, false
}
