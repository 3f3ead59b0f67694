// Package parser implements the recursive-descent statement grammar
// plus a Pratt expression climber for the albatross front end.
package parser

import (
	"github.com/jstankevicius/albatross-jit/ast"
	"github.com/jstankevicius/albatross-jit/token"
)

// A Parser consumes a finite token slice (always EOF-terminated) and
// builds a slice of top-level statements.
type Parser struct {
	toks []token.Token
	pos  int
}

// New returns a Parser over toks.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse parses toks into a program, or returns the first syntax error.
func Parse(toks []token.Token) ([]ast.Stmt, error) {
	return New(toks).Parse()
}

// Parse runs the parser to completion, returning the top-level
// statement list.
func (p *Parser) Parse() (prog []ast.Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(*token.Error); ok {
				prog, err = nil, perr
				return
			}
			panic(r)
		}
	}()

	var stmts []ast.Stmt
	for p.cur().Kind != token.EOF {
		stmts = append(stmts, p.statement())
	}
	return stmts, nil
}

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) fail(pos token.Pos, format string, args ...interface{}) {
	panic(token.NewError(token.ParseStage, pos, format, args...))
}

// expect consumes the current token if it has kind k, otherwise raises
// a parse error naming what was expected.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.cur().Kind != k {
		p.fail(p.cur().Pos, "expected %s, found %s", k, p.cur().Kind)
	}
	return p.advance()
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

// typeName consumes a type-name token and resolves it to an ast.Type.
func (p *Parser) typeName() ast.Type {
	tok := p.expect(token.TypeName)
	t, ok := ast.TypeFromName(tok.Lexeme)
	if !ok {
		p.fail(tok.Pos, "unknown type name %q", tok.Lexeme)
	}
	return t
}

// block parses a brace-delimited statement list.
func (p *Parser) block() []ast.Stmt {
	p.expect(token.LBrace)
	var stmts []ast.Stmt
	for !p.at(token.RBrace) {
		stmts = append(stmts, p.statement())
	}
	p.expect(token.RBrace)
	return stmts
}

// statement dispatches on the leading token.
func (p *Parser) statement() ast.Stmt {
	switch p.cur().Kind {
	case token.KeywordVar:
		return p.varDecl()
	case token.KeywordIf:
		return p.ifStmt()
	case token.KeywordWhile:
		return p.whileStmt()
	case token.KeywordRepeat:
		return p.repeatStmt()
	case token.KeywordFun:
		return p.funDecl()
	case token.KeywordReturn:
		return p.returnStmt()
	case token.Identifier:
		return p.identLedStmt()
	default:
		p.fail(p.cur().Pos, "unexpected token %s", p.cur().Kind)
		panic("unreachable")
	}
}

// varDecl parses `var name type := expr;`.
func (p *Parser) varDecl() ast.Stmt {
	pos := p.expect(token.KeywordVar).Pos
	name := p.expect(token.Identifier)
	typ := p.typeName()
	p.expect(token.Assign)
	init := p.expression()
	p.expect(token.Semicolon)
	return ast.NewVarDecl(pos, name.Lexeme, typ, init)
}

// identLedStmt disambiguates an assignment from a call statement, both
// of which begin with an identifier.
func (p *Parser) identLedStmt() ast.Stmt {
	name := p.expect(token.Identifier)
	if p.at(token.LParen) {
		args := p.argList()
		p.expect(token.Semicolon)
		return ast.NewCallStmt(name.Pos, name.Lexeme, args)
	}
	p.expect(token.Assign)
	value := p.expression()
	p.expect(token.Semicolon)
	target := ast.NewVarRef(name.Pos, name.Lexeme)
	return ast.NewAssign(name.Pos, target, value)
}

func (p *Parser) argList() []ast.Expr {
	p.expect(token.LParen)
	var args []ast.Expr
	for !p.at(token.RParen) {
		args = append(args, p.expression())
		if !p.at(token.RParen) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RParen)
	return args
}

func (p *Parser) ifStmt() ast.Stmt {
	pos := p.expect(token.KeywordIf).Pos
	cond := p.expression()
	then := p.block()
	var els []ast.Stmt
	if p.at(token.KeywordElse) {
		p.advance()
		els = p.block()
	}
	return ast.NewIf(pos, cond, then, els)
}

func (p *Parser) whileStmt() ast.Stmt {
	pos := p.expect(token.KeywordWhile).Pos
	cond := p.expression()
	body := p.block()
	var otherwise []ast.Stmt
	if p.at(token.KeywordOtherwise) {
		p.advance()
		otherwise = p.block()
	}
	return ast.NewWhile(pos, cond, body, otherwise)
}

func (p *Parser) repeatStmt() ast.Stmt {
	pos := p.expect(token.KeywordRepeat).Pos
	cond := p.expression()
	body := p.block()
	return ast.NewRepeat(pos, cond, body)
}

func (p *Parser) returnStmt() ast.Stmt {
	pos := p.expect(token.KeywordReturn).Pos
	if p.at(token.Semicolon) {
		p.advance()
		return ast.NewReturn(pos, nil)
	}
	value := p.expression()
	p.expect(token.Semicolon)
	return ast.NewReturn(pos, value)
}

// funDecl parses `fun name rettype (p1 t1, ...) { body }`.
func (p *Parser) funDecl() ast.Stmt {
	pos := p.expect(token.KeywordFun).Pos
	name := p.expect(token.Identifier)
	ret := p.typeName()
	p.expect(token.LParen)
	var params []ast.Param
	for !p.at(token.RParen) {
		pname := p.expect(token.Identifier)
		ptyp := p.typeName()
		params = append(params, ast.Param{Name: pname.Lexeme, Type: ptyp})
		if !p.at(token.RParen) {
			p.expect(token.Comma)
		}
	}
	p.expect(token.RParen)
	body := p.block()
	return ast.NewFunDecl(pos, name.Lexeme, ret, params, body)
}
