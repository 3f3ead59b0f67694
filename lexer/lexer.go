// Package lexer turns source text into a finite token slice terminated
// by a single EOF token.
package lexer

import (
	"strconv"
	"strings"

	"github.com/jstankevicius/albatross-jit/source"
	"github.com/jstankevicius/albatross-jit/token"
)

func isAlpha(r rune) bool {
	return ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isAlnum(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

func isPunct(r rune) bool {
	switch r {
	case '(', ')', '{', '}', '[', ']', ';', ',':
		return true
	}
	return false
}

// A Lexer scans a Cursor into tokens.
type Lexer struct {
	cur *source.Cursor
}

// New returns a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{cur: source.New(src)}
}

// Lex tokenizes src in one pass, returning the token slice terminated
// by a single token.EOF sentinel, or the first lexical error.
func Lex(src string) ([]token.Token, error) {
	return New(src).Lex()
}

// Lex runs the lexer to completion.
func (l *Lexer) Lex() ([]token.Token, error) {
	var tokens []token.Token

	l.cur.SkipWhitespace()
	for !l.cur.Done() {
		var tok token.Token
		var err error

		switch c := l.cur.Current(); {
		case isDigit(c):
			tok, err = l.lexNumber()
		case c == '"':
			tok, err = l.lexString()
		case c == '#':
			l.skipComment()
			l.cur.SkipWhitespace()
			continue
		case isPunct(c):
			tok, err = l.lexPunct()
		case isAlpha(c):
			tok = l.lexIdentOrKeyword()
		default:
			tok, err = l.lexOperator()
		}

		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
		l.cur.SkipWhitespace()
	}

	tokens = append(tokens, token.Token{Kind: token.EOF, Pos: l.cur.Pos()})
	return tokens, nil
}

// skipComment discards a "#" line comment up to and including the
// line terminator, correctly treating a "\r\n" pair as one break.
func (l *Lexer) skipComment() {
	l.cur.Advance() // '#'
	for l.cur.Current() != '\n' && !(l.cur.Current() == '\r' && l.cur.PeekOneAhead() == '\n') && !l.cur.Done() {
		l.cur.Advance()
	}
	if !l.cur.Done() {
		l.cur.Advance() // consumes "\n" or "\r\n" as one break
	}
}

func (l *Lexer) lexIdentOrKeyword() token.Token {
	pos := l.cur.Pos()
	var s strings.Builder
	for isAlnum(l.cur.Current()) || l.cur.Current() == '_' {
		s.WriteRune(l.cur.Next())
	}
	name := s.String()
	kind := token.Identifier
	if k, ok := token.Keywords[name]; ok {
		kind = k
	}
	return token.Token{Kind: kind, Lexeme: name, Pos: pos}
}

func (l *Lexer) lexNumber() (token.Token, error) {
	pos := l.cur.Pos()

	base := 10
	var raw strings.Builder
	if l.cur.Current() == '0' {
		if l.cur.PeekOneAhead() == 'x' {
			base = 16
			l.cur.Advance()
			l.cur.Advance()
		} else {
			base = 8
		}
	}

	if l.cur.Current() == '_' {
		return token.Token{}, token.NewError(token.LexStage, pos,
			"integer literal cannot start with an underscore")
	}

	for isAlnum(l.cur.Current()) {
		c := l.cur.Current()
		if !validDigit(c, base) {
			return token.Token{}, token.NewError(token.LexStage, l.cur.Pos(),
				"illegal digit %q for base %d integer literal", c, base)
		}
		raw.WriteRune(l.cur.Next())
		for l.cur.Current() == '_' {
			l.cur.Advance()
		}
	}

	n, err := strconv.ParseInt(raw.String(), base, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return token.Token{}, token.NewError(token.LexStage, pos,
				"integer literal %q is out of range", raw.String())
		}
		return token.Token{}, token.NewError(token.LexStage, pos,
			"illegal integer literal %q", raw.String())
	}
	if n > 1<<31-1 {
		return token.Token{}, token.NewError(token.LexStage, pos,
			"integer literal %q is out of range", raw.String())
	}

	return token.Token{Kind: token.IntLiteral, Lexeme: strconv.FormatInt(n, 10), Pos: pos}, nil
}

func validDigit(c rune, base int) bool {
	u := c
	if 'a' <= u && u <= 'z' {
		u -= 'a' - 'A'
	}
	switch base {
	case 8:
		return '0' <= u && u <= '7'
	case 16:
		return ('0' <= u && u <= '9') || ('A' <= u && u <= 'F')
	default:
		return '0' <= u && u <= '9'
	}
}

func (l *Lexer) lexString() (token.Token, error) {
	pos := l.cur.Pos()
	l.cur.Advance() // opening quote

	var s strings.Builder
	for l.cur.Current() != '"' && !l.cur.Done() {
		if l.cur.Current() == '\\' {
			switch l.cur.PeekOneAhead() {
			case 'n':
				s.WriteRune('\n')
				l.cur.Advance()
				l.cur.Advance()
			case 't':
				s.WriteRune('\t')
				l.cur.Advance()
				l.cur.Advance()
			case '\\':
				s.WriteRune('\\')
				l.cur.Advance()
				l.cur.Advance()
			case '"':
				s.WriteRune('"')
				l.cur.Advance()
				l.cur.Advance()
			default:
				return token.Token{}, token.NewError(token.LexStage, l.cur.Pos(),
					"invalid escape sequence")
			}
			continue
		}
		if l.cur.Current() == '\n' {
			return token.Token{}, token.NewError(token.LexStage, l.cur.Pos(),
				"no matching quote")
		}
		s.WriteRune(l.cur.Next())
	}

	if l.cur.Current() != '"' {
		return token.Token{}, token.NewError(token.LexStage, l.cur.Pos(), "no matching quote")
	}
	l.cur.Advance() // closing quote

	return token.Token{Kind: token.StrLiteral, Lexeme: s.String(), Pos: pos}, nil
}

func (l *Lexer) lexPunct() (token.Token, error) {
	pos := l.cur.Pos()
	c := l.cur.Next()
	var kind token.Kind
	switch c {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	default:
		return token.Token{}, token.NewError(token.LexStage, pos, "unrecognized character %q", c)
	}
	return token.Token{Kind: kind, Lexeme: string(c), Pos: pos}, nil
}

func (l *Lexer) lexOperator() (token.Token, error) {
	pos := l.cur.Pos()
	c := l.cur.Current()
	next := l.cur.PeekOneAhead()

	one := func(k token.Kind) (token.Token, error) {
		return token.Token{Kind: k, Lexeme: string(l.cur.Next()), Pos: pos}, nil
	}
	two := func(k token.Kind, first, second rune) (token.Token, error) {
		l.cur.Advance()
		l.cur.Advance()
		return token.Token{Kind: k, Lexeme: string([]rune{first, second}), Pos: pos}, nil
	}

	switch c {
	case '+':
		return one(token.OpPlus)
	case '-':
		return one(token.OpMinus)
	case '*':
		return one(token.OpStar)
	case '/':
		return one(token.OpSlash)
	case '%':
		return one(token.OpRem)
	case '!':
		return one(token.OpNot)
	case '&':
		if next == '&' {
			return two(token.OpAnd, '&', '&')
		}
		return one(token.OpBand)
	case '|':
		if next == '|' {
			return two(token.OpOr, '|', '|')
		}
		return one(token.OpBor)
	case '^':
		return one(token.OpXor)
	case '<':
		if next == '=' {
			return two(token.OpLe, '<', '=')
		}
		if next == '>' {
			return two(token.OpNe, '<', '>')
		}
		return one(token.OpLt)
	case '>':
		if next == '=' {
			return two(token.OpGe, '>', '=')
		}
		return one(token.OpGt)
	case '=':
		if next == '=' {
			return two(token.OpEq, '=', '=')
		}
		return token.Token{}, token.NewError(token.LexStage, pos, "unrecognized character %q", c)
	case ':':
		if next == '=' {
			return two(token.Assign, ':', '=')
		}
		return token.Token{}, token.NewError(token.LexStage, pos, "unrecognized character %q", c)
	default:
		return token.Token{}, token.NewError(token.LexStage, pos, "unrecognized character %q", c)
	}
}
