package parser

import (
	"strconv"

	"github.com/jstankevicius/albatross-jit/ast"
	"github.com/jstankevicius/albatross-jit/token"
)

// bindingPower is the (left, right) binding power pair for an infix
// or postfix operator.
type bindingPower struct {
	left, right int
}

var infixBP = map[token.Kind]bindingPower{
	token.OpOr:    {85, 90},
	token.OpAnd:   {95, 100},
	token.OpBor:   {105, 110},
	token.OpXor:   {115, 120},
	token.OpBand:  {125, 130},
	token.OpEq:    {135, 140},
	token.OpNe:    {135, 140},
	token.OpLt:    {145, 150},
	token.OpLe:    {145, 150},
	token.OpGt:    {145, 150},
	token.OpGe:    {145, 150},
	token.OpPlus:  {165, 170},
	token.OpMinus: {165, 170},
	token.OpStar:  {175, 180},
	token.OpSlash: {175, 180},
	token.OpRem:   {175, 180},
}

// prefixRBP is the right binding power of a prefix operator.
const prefixRBP = 190

// postfixLBP is the left binding power of postfix `[`.
const postfixLBP = 200

var binOpOf = map[token.Kind]ast.BinOperator{
	token.OpOr:    ast.Or,
	token.OpAnd:   ast.And,
	token.OpBor:   ast.Bor,
	token.OpXor:   ast.Xor,
	token.OpBand:  ast.Band,
	token.OpEq:    ast.Eq,
	token.OpNe:    ast.Ne,
	token.OpLt:    ast.Lt,
	token.OpLe:    ast.Le,
	token.OpGt:    ast.Gt,
	token.OpGe:    ast.Ge,
	token.OpPlus:  ast.Plus,
	token.OpMinus: ast.Minus,
	token.OpStar:  ast.Times,
	token.OpSlash: ast.Div,
	token.OpRem:   ast.Rem,
}

// expression parses a full expression (min binding power 0).
func (p *Parser) expression() ast.Expr {
	return p.expBP(0)
}

// expBP is the precedence-climbing core: it parses a left-hand side
// then repeatedly folds in infix/postfix operators whose binding
// power clears minBP.
func (p *Parser) expBP(minBP int) ast.Expr {
	lhs := p.expLHS()

	for {
		k := p.cur().Kind

		if k == token.LBracket {
			if postfixLBP < minBP {
				break
			}
			pos := p.advance().Pos
			// The index expression is parsed fully, so a well-formed
			// program never fails to parse merely for exercising
			// this form, and is then discarded: the resulting UnOp
			// keeps only the subscripted operand.
			p.expression()
			p.expect(token.RBracket)
			lhs = ast.NewUnOp(pos, ast.Subscript, lhs)
			continue
		}

		bp, ok := infixBP[k]
		if !ok || bp.left < minBP {
			break
		}
		pos := p.advance().Pos
		rhs := p.expBP(bp.right)
		lhs = ast.NewBinOp(pos, binOpOf[k], lhs, rhs)
	}

	return lhs
}

// expLHS parses a primary expression or a prefix-operator expression.
func (p *Parser) expLHS() ast.Expr {
	tok := p.cur()

	switch tok.Kind {
	case token.OpNot:
		p.advance()
		operand := p.expBP(prefixRBP)
		return ast.NewUnOp(tok.Pos, ast.Not, operand)

	case token.OpMinus:
		p.advance()
		operand := p.expBP(prefixRBP)
		return ast.NewUnOp(tok.Pos, ast.Neg, operand)

	case token.LParen:
		p.advance()
		e := p.expBP(0)
		p.expect(token.RParen)
		return e

	case token.IntLiteral:
		p.advance()
		n, _ := strconv.Atoi(tok.Lexeme)
		return ast.NewIntLit(tok.Pos, n)

	case token.StrLiteral:
		p.advance()
		return ast.NewStrLit(tok.Pos, tok.Lexeme)

	case token.Identifier:
		p.advance()
		if p.at(token.LParen) {
			args := p.argList()
			return ast.NewCall(tok.Pos, tok.Lexeme, args)
		}
		return ast.NewVarRef(tok.Pos, tok.Lexeme)

	default:
		p.fail(tok.Pos, "expected an expression, found %s", tok.Kind)
		panic("unreachable")
	}
}
