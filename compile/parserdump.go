package compile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jstankevicius/albatross-jit/ast"
)

// dumpParserStage writes the parser-stage trace: as each statement's
// controlling expression would have been parsed, its parenthesized
// textual form is written on its own line. A call statement's dump
// has no trailing newline, matching a long-standing quirk of the
// reference test corpus. Function declarations contribute no line of
// their own; only their body statements do, recursively.
func dumpParserStage(w io.Writer, prog []ast.Stmt) {
	for _, s := range prog {
		dumpParserStmt(w, s)
	}
}

func dumpParserStmt(w io.Writer, s ast.Stmt) {
	switch st := s.(type) {
	case *ast.VarDecl:
		fmt.Fprintf(w, "%s\n", exprToStr(st.Init))

	case *ast.Assign:
		fmt.Fprintf(w, "%s\n", exprToStr(st.Value))

	case *ast.Return:
		if st.Value != nil {
			fmt.Fprintf(w, "%s\n", exprToStr(st.Value))
		}

	case *ast.If:
		fmt.Fprintf(w, "%s\n", exprToStr(st.Cond))
		for _, c := range st.Then {
			dumpParserStmt(w, c)
		}
		for _, c := range st.Else {
			dumpParserStmt(w, c)
		}

	case *ast.While:
		fmt.Fprintf(w, "%s\n", exprToStr(st.Cond))
		for _, c := range st.Body {
			dumpParserStmt(w, c)
		}
		for _, c := range st.Otherwise {
			dumpParserStmt(w, c)
		}

	case *ast.Repeat:
		fmt.Fprintf(w, "%s\n", exprToStr(st.Cond))
		for _, c := range st.Body {
			dumpParserStmt(w, c)
		}

	case *ast.CallStmt:
		fmt.Fprintf(w, "%s(%s)", st.Callee, joinExprStrs(st.Args))

	case *ast.FunDecl:
		for _, c := range st.Body {
			dumpParserStmt(w, c)
		}
	}
}

// exprToStr renders e the way the original parser's per-node to_str()
// did: every node parenthesized, operators written as their surface
// lexeme.
func exprToStr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.IntLit:
		return "(" + strconv.Itoa(e.Value) + ")"

	case *ast.StrLit:
		return "(\"" + e.Value + "\")"

	case *ast.VarRef:
		return "(" + e.Name + ")"

	case *ast.BinOp:
		return "(" + exprToStr(e.Left) + binOpStr(e.Op) + exprToStr(e.Right) + ")"

	case *ast.UnOp:
		if e.Op == ast.Subscript {
			return exprToStr(e.Operand) + "[]"
		}
		return "(" + unOpStr(e.Op) + exprToStr(e.Operand) + ")"

	case *ast.Call:
		return e.Callee + "(" + joinExprStrs(e.Args) + ")"

	default:
		return ""
	}
}

func joinExprStrs(args []ast.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = exprToStr(a)
	}
	return strings.Join(parts, ",")
}

func binOpStr(op ast.BinOperator) string {
	switch op {
	case ast.Or:
		return "||"
	case ast.And:
		return "&&"
	case ast.Bor:
		return "|"
	case ast.Xor:
		return "^"
	case ast.Band:
		return "&"
	case ast.Ne:
		return "<>"
	case ast.Eq:
		return "=="
	case ast.Gt:
		return ">"
	case ast.Ge:
		return ">="
	case ast.Lt:
		return "<"
	case ast.Le:
		return "<="
	case ast.Plus:
		return "+"
	case ast.Minus:
		return "-"
	case ast.Times:
		return "*"
	case ast.Div:
		return "/"
	case ast.Rem:
		return "%"
	default:
		return "?"
	}
}

func unOpStr(op ast.UnOperator) string {
	switch op {
	case ast.Not:
		return "!"
	case ast.Neg:
		return "-"
	default:
		return "?"
	}
}
