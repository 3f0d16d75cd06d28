package parser

import (
	"solfmt/internal/diag"
	"solfmt/internal/token"
)

// Binary precedence, higher binds tighter. Assignment and the ternary are
// handled above this table.
var binaryPrec = map[token.Kind]int{
	token.OrOr:     1,
	token.AndAnd:   2,
	token.EqEq:     3,
	token.BangEq:   3,
	token.Lt:       4,
	token.Gt:       4,
	token.LtEq:     4,
	token.GtEq:     4,
	token.Pipe:     5,
	token.Caret:    6,
	token.Amp:      7,
	token.Shl:      8,
	token.Shr:      8,
	token.Sar:      8,
	token.Plus:     9,
	token.Minus:    9,
	token.Star:     10,
	token.Slash:    10,
	token.Percent:  10,
	token.StarStar: 11,
}

var assignOps = map[token.Kind]bool{
	token.Assign: true, token.PlusAssign: true, token.MinusAssign: true,
	token.StarAssign: true, token.SlashAssign: true, token.PercentAssign: true,
	token.AmpAssign: true, token.PipeAssign: true, token.CaretAssign: true,
	token.ShlAssign: true, token.ShrAssign: true, token.SarAssign: true,
}

var etherUnits = map[string]bool{
	"wei": true, "gwei": true, "ether": true,
	"seconds": true, "minutes": true, "hours": true, "days": true, "weeks": true, "years": true,
}

func (p *Parser) parseExpression() *Node {
	lhs := p.parseTernary()
	if lhs == nil {
		return nil
	}
	if assignOps[p.peek().Kind] {
		op := p.advance()
		rhs := p.parseExpression()
		return newNode(TypeAssignment, lhs, op, rhs)
	}
	return lhs
}

func (p *Parser) parseTernary() *Node {
	cond := p.parseBinary(1)
	if cond == nil || !p.at(token.Question) {
		return cond
	}
	n := newNode(TypeTernary, cond, p.advance(), p.parseTernary())
	n.add(p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in conditional expression"))
	return n.add(p.parseTernary())
}

// parseBinary is precedence climbing over binaryPrec; ** is right
// associative, everything else left.
func (p *Parser) parseBinary(minPrec int) *Node {
	lhs := p.parseUnary()
	if lhs == nil {
		return nil
	}
	for {
		prec, ok := binaryPrec[p.peek().Kind]
		if !ok || prec < minPrec {
			return lhs
		}
		op := p.advance()
		next := prec + 1
		if op.Token.Kind == token.StarStar {
			next = prec
		}
		rhs := p.parseBinary(next)
		if rhs == nil {
			p.err(diag.SynExpectExpression, "expected expression after "+op.Token.Text)
			return newNode(TypeBinary, lhs, op)
		}
		lhs = newNode(TypeBinary, lhs, op, rhs)
	}
}

func (p *Parser) parseUnary() *Node {
	switch p.peek().Kind {
	case token.Bang, token.Tilde, token.Minus, token.Plus, token.PlusPlus, token.MinusMinus, token.KwDelete:
		op := p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return newNode(TypeUnary, op, operand)
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() *Node {
	n := p.parsePrimary()
	if n == nil {
		return nil
	}
	for {
		switch p.peek().Kind {
		case token.Dot:
			dot := p.advance()
			tok := p.peek()
			if tok.Kind != token.Ident && !tok.IsKeyword() {
				p.err(diag.SynExpectIdentifier, "expected member name after '.'")
				return newNode(TypeMember, n, dot)
			}
			n = newNode(TypeMember, n, dot, p.advance())
		case token.LBracket:
			n = p.parseIndex(n)
		case token.LParen:
			n = newNode(TypeCall, n, p.parseArgumentList())
		case token.LBrace:
			if p.peekN(1).Kind != token.Ident || p.peekN(2).Kind != token.Colon {
				return n
			}
			n = newNode(TypeCallOptions, n, p.parseNamedArgumentList())
		case token.PlusPlus, token.MinusMinus:
			n = newNode(TypePostfix, n, p.advance())
		default:
			return n
		}
	}
}

// parseIndex covers a[i], a[] (type expressions such as abi.decode's
// second argument) and the slice forms a[i:j], a[:j], a[i:].
func (p *Parser) parseIndex(base *Node) *Node {
	n := newNode(TypeIndex, base, p.advance())
	if !p.at(token.RBracket) && !p.at(token.Colon) {
		n.add(p.parseExpression())
	}
	if p.at(token.Colon) {
		n.Type = TypeIndexRange
		n.add(p.advance())
		if !p.at(token.RBracket) {
			n.add(p.parseExpression())
		}
	}
	return n.add(p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close index"))
}

// parseArgumentList parses `(a, b)` or `({x: 1, y: 2})`.
func (p *Parser) parseArgumentList() *Node {
	n := newNode(TypeArgumentList, p.advance())
	if p.at(token.LBrace) {
		n.add(p.parseNamedArgumentList())
	} else {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			arg := p.parseExpression()
			if arg == nil {
				break
			}
			n.add(arg)
			c := p.eat(token.Comma)
			if c == nil {
				break
			}
			n.add(c)
		}
	}
	return n.add(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close argument list, found "+p.describe()))
}

func (p *Parser) parseNamedArgumentList() *Node {
	n := newNode(TypeNamedArgumentList, p.advance())
	for p.at(token.Ident) {
		arg := newNode(TypeNamedArgument, p.advance())
		arg.add(p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after argument name"))
		arg.add(p.parseExpression())
		n.add(arg)
		c := p.eat(token.Comma)
		if c == nil {
			break
		}
		n.add(c)
	}
	return n.add(p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close named arguments, found "+p.describe()))
}

func (p *Parser) parsePrimary() *Node {
	tok := p.peek()
	switch tok.Kind {
	case token.NumberLit:
		n := newNode(TypeLiteral, p.advance())
		if p.at(token.Ident) && etherUnits[p.peek().Text] {
			n.add(p.advance())
		}
		return n
	case token.StringLit, token.HexStringLit:
		// adjacent string literals concatenate
		n := newNode(TypeLiteral, p.advance())
		for p.atOr(token.StringLit, token.HexStringLit) {
			n.add(p.advance())
		}
		return n
	case token.KwTrue, token.KwFalse:
		return newNode(TypeLiteral, p.advance())
	case token.Ident:
		if IsElementaryTypeName(tok.Text) && tok.Text == "address" && p.peekN(1).Kind == token.KwPayable {
			return newNode(TypeElementaryType, p.advance(), p.advance())
		}
		return p.advance()
	case token.KwPayable, token.KwType:
		// payable(x) and type(T) read as calls
		return p.advance()
	case token.KwNew:
		n := newNode(TypeNew, p.advance())
		ty := p.parseType()
		if ty == nil {
			return nil
		}
		return n.add(ty)
	case token.LParen:
		return p.parseTuple()
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.KwMapping, token.KwFunction:
		return p.parseType()
	}
	p.err(diag.SynExpectExpression, "expected expression, found "+p.describe())
	return nil
}

// parseTuple parses `(a)`, `(a, b)` and tuples with empty slots such as
// `(, b)`.
func (p *Parser) parseTuple() *Node {
	n := newNode(TypeTuple, p.advance())
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if !p.at(token.Comma) {
			e := p.parseExpression()
			if e == nil {
				break
			}
			n.add(e)
		}
		c := p.eat(token.Comma)
		if c == nil {
			break
		}
		n.add(c)
	}
	return n.add(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple, found "+p.describe()))
}

func (p *Parser) parseArrayLiteral() *Node {
	n := newNode(TypeArrayLiteral, p.advance())
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		e := p.parseExpression()
		if e == nil {
			break
		}
		n.add(e)
		c := p.eat(token.Comma)
		if c == nil {
			break
		}
		n.add(c)
	}
	return n.add(p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close array literal"))
}
