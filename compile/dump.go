package compile

import (
	"fmt"
	"io"

	"github.com/jstankevicius/albatross-jit/token"
)

// dumpTokens writes the lexer-stage trace: one line per token in the
// "<col> <line> <label> [payload...]" format, including a NAME/TYPE
// compatibility quirk -- a prior TYPE token's name is echoed alongside
// any later NAME token on the same running stream, until superseded.
func dumpTokens(w io.Writer, toks []token.Token) {
	typeStr := ""
	for _, t := range toks {
		if t.Kind == token.EOF {
			continue
		}
		fmt.Fprintf(w, "%d %d ", t.Pos.Col, t.Pos.Line)
		switch t.Kind {
		case token.Identifier, token.KeywordVar:
			if typeStr != "" {
				fmt.Fprintf(w, "NAME %s TYPE %s\n", t.Lexeme, typeStr)
			} else {
				fmt.Fprintf(w, "NAME %s\n", t.Lexeme)
			}
		case token.IntLiteral:
			fmt.Fprintf(w, "INT %s\n", t.Lexeme)
		case token.StrLiteral:
			fmt.Fprintf(w, "STRING %d %s\n", len(t.Lexeme), t.Lexeme)
		case token.TypeName:
			typeStr = t.Lexeme
			fmt.Fprintf(w, "TYPE %s\n", t.Lexeme)
		case token.Semicolon:
			fmt.Fprintln(w, "SEMICOLON")
		case token.Comma:
			fmt.Fprintln(w, "COMMA")
		case token.Assign:
			fmt.Fprintln(w, "ASSIGN")
		default:
			fmt.Fprintln(w, tokenLabel(t))
		}
	}
}

var opLabels = map[token.Kind]string{
	token.OpOr:    "OR",
	token.OpAnd:   "AND",
	token.OpBor:   "BOR",
	token.OpXor:   "XOR",
	token.OpBand:  "BAND",
	token.OpNe:    "NE",
	token.OpEq:    "EQ",
	token.OpGt:    "GT",
	token.OpGe:    "GE",
	token.OpLt:    "LT",
	token.OpLe:    "LE",
	token.OpPlus:  "PLUS",
	token.OpMinus: "MINUS",
	token.OpStar:  "MUL",
	token.OpSlash: "DIV",
	token.OpRem:   "REM",
	token.OpNot:   "NOT",
}

// tokenLabel handles the remaining "just uppercase the lexeme" group:
// parens/braces/brackets echoed verbatim, keywords upper-cased.
func tokenLabel(t token.Token) string {
	if lbl, ok := opLabels[t.Kind]; ok {
		return lbl
	}
	switch t.Kind {
	case token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket:
		return t.Lexeme
	case token.KeywordIf:
		return "IF"
	case token.KeywordElse:
		return "ELSE"
	case token.KeywordWhile:
		return "WHILE"
	case token.KeywordReturn:
		return "RETURN"
	case token.KeywordOtherwise:
		return "OTHERWISE"
	case token.KeywordRepeat:
		return "REPEAT"
	case token.KeywordFun:
		return "FUN"
	default:
		return t.Kind.String()
	}
}
