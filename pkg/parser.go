package dicer

import (
	"fmt"
	"strconv"
)

type Parser struct {
	tokenizer Tokenizer
	buf       *Token
}

func NewParser(tokenizer Tokenizer) *Parser {
	return &Parser{
		tokenizer: tokenizer,
	}
}

// Run parses a single expression. Syntax errors do not stop the parser,
// they are left in the tree as BadExpr nodes. The tokenizer is always
// drained before Run returns.
func (p *Parser) Run() Expr {
	go p.tokenizer.Do()
	defer p.drain()

	expr := p.expr()

	if tok := p.peek(); tok.Typ != TokenEOF && !hasBadExpr(expr) {
		return p.unexpected(tok, "end of input")
	}

	return expr
}

func (p *Parser) drain() {
	for tok := p.next(); tok.isValid(); tok = p.next() {
	}
}

func (p *Parser) peek() Token {
	if p.buf == nil {
		temp := p.next()
		p.buf = &temp
	}

	return *p.buf
}

func (p *Parser) next() Token {
	if p.buf != nil {
		if !p.buf.isValid() {
			// If an invalid token is buffered, don't try to get more tokens
			return *p.buf
		}

		temp := p.buf
		p.buf = nil

		return *temp
	}

	tok := p.tokenizer.Get()
	if !tok.isValid() {
		// Error and EOF stay buffered since no more valid tokens are expected
		p.buf = &tok
	}

	return tok
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Typ == typ
}

func (p *Parser) errorf(l *Location, format string, args ...interface{}) Expr {
	return &BadExpr{l, fmt.Sprintf(format, args...)}
}

func (p *Parser) unexpected(tok Token, want string) Expr {
	return p.errorf(tok.Loc, "%s", unexpectedMessage(tok, want))
}

func unexpectedMessage(tok Token, want string) string {
	switch tok.Typ {
	case TokenError:
		return tok.Value
	case TokenEOF:
		return "unexpected end of input, expected " + want
	default:
		return fmt.Sprintf("unexpected '%s', expected %s", tok.Value, want)
	}
}

func (p *Parser) expr() Expr {
	return p.additiveExpr()
}

func (p *Parser) additiveExpr() Expr {
	lhs := p.multiplicativeExpr()

	for {
		tok := p.peek()
		if tok.Typ != TokenPlus && tok.Typ != TokenMinus {
			return lhs
		}

		p.next()
		lhs = &BinaryExpr{
			Loc:       tok.Loc,
			Operation: BinaryOp(tok.Value),
			Op1:       lhs,
			Op2:       p.multiplicativeExpr(),
		}
	}
}

func (p *Parser) multiplicativeExpr() Expr {
	lhs := p.unaryExpr()

	for {
		tok := p.peek()
		if tok.Typ != TokenMulti && tok.Typ != TokenDiv {
			return lhs
		}

		p.next()
		lhs = &BinaryExpr{
			Loc:       tok.Loc,
			Operation: BinaryOp(tok.Value),
			Op1:       lhs,
			Op2:       p.unaryExpr(),
		}
	}
}

func (p *Parser) unaryExpr() Expr {
	if p.check(TokenMinus) { // Unary negative
		tok := p.next()

		return &UnaryExpr{
			Loc:       tok.Loc,
			Operation: UnaryNegative,
			Operand:   p.unaryExpr(),
		}
	}

	return p.diceOrPrimary()
}

func (p *Parser) diceOrPrimary() Expr {
	if p.check(TokenDice) { // dS rolls a single die
		tok := p.next()
		return p.diceSides(tok.Loc, nil)
	}

	count := p.primary()
	if !p.check(TokenDot) {
		return count
	}

	dot := p.next()
	if tok := p.next(); tok.Typ != TokenDice {
		return p.unexpected(tok, "'d' after '.'")
	}

	return p.diceSides(dot.Loc, count)
}

func (p *Parser) diceSides(loc *Location, count Expr) Expr {
	tok := p.next()
	if tok.Typ != TokenNumber {
		return p.unexpected(tok, "number of sides")
	}

	sides, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return p.errorf(tok.Loc, "number of sides %s out of range", tok.Value)
	}

	return &DiceExpr{
		Loc:   loc,
		Count: count,
		Sides: sides,
	}
}

func (p *Parser) primary() Expr {
	if p.check(TokenOpenParentheses) {
		return p.parenthesisedExpression()
	}

	return p.literal()
}

func (p *Parser) parenthesisedExpression() Expr {
	open := p.next()

	exp := p.expr()
	if hasBadExpr(exp) {
		return exp
	}

	if tok := p.next(); tok.Typ != TokenCloseParentheses {
		return p.errorf(open.Loc, "unbalanced parentheses: %s", unexpectedMessage(tok, "')'"))
	}

	return exp
}

func (p *Parser) literal() Expr {
	tok := p.peek()
	if tok.Typ != TokenNumber {
		return p.unexpected(tok, "number or '('")
	}

	p.next()
	v, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return p.errorf(tok.Loc, "integer literal %s out of range", tok.Value)
	}

	return &LiteralExpr{
		Loc:   tok.Loc,
		Value: v,
	}
}

func hasBadExpr(expr Expr) bool {
	found := false
	Walk(expr, func(e Expr) bool {
		if _, bad := e.(*BadExpr); bad {
			found = true
		}

		return !found
	})

	return found
}
