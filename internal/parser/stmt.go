package parser

import (
	"solfmt/internal/diag"
	"solfmt/internal/token"
)

func (p *Parser) parseBlock() *Node {
	n := newNode(TypeBlock, p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{', found "+p.describe()))
	if len(n.Children) == 0 {
		return n
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.pos
		n.add(p.parseStatement())
		if p.pos == start {
			n.add(p.recover(token.Semicolon))
		}
	}
	n.add(p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block"))
	return n
}

func (p *Parser) parseStatement() *Node {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwUnchecked:
		return newNode(TypeUncheckedBlock, p.advance(), p.parseBlock())
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		n := newNode(TypeWhile, p.advance())
		p.parseParenCondition(n)
		return n.add(p.parseStatement())
	case token.KwDo:
		n := newNode(TypeDoWhile, p.advance(), p.parseStatement())
		n.add(p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body"))
		p.parseParenCondition(n)
		return n.add(p.expectSemicolon())
	case token.KwReturn:
		n := newNode(TypeReturn, p.advance())
		if !p.at(token.Semicolon) {
			n.add(p.parseExpression())
		}
		return n.add(p.expectSemicolon())
	case token.KwEmit:
		n := newNode(TypeEmit, p.advance(), p.parseExpression())
		return n.add(p.expectSemicolon())
	case token.KwBreak:
		return newNode(TypeBreak, p.advance(), p.expectSemicolon())
	case token.KwContinue:
		return newNode(TypeContinue, p.advance(), p.expectSemicolon())
	case token.KwTry:
		return p.parseTry()
	case token.KwAssembly:
		return p.parseAssembly()
	case token.Ident:
		switch {
		case p.atIdent("_") && p.peekN(1).Kind == token.Semicolon:
			return newNode(TypePlaceholder, p.advance(), p.advance())
		case p.atIdent("revert") && p.peekN(1).Kind == token.Ident:
			n := newNode(TypeRevert, p.advance(), p.parseExpression())
			return n.add(p.expectSemicolon())
		}
	case token.LParen:
		if decl := p.speculate(p.parseTupleDeclaration); decl != nil {
			return decl
		}
	}
	if p.atOr(token.Ident, token.KwMapping, token.KwFunction) {
		if decl := p.speculate(p.parseVarDeclStatement); decl != nil {
			return decl
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) expectSemicolon() *Node {
	return p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';', found "+p.describe())
}

func (p *Parser) parseExpressionStatement() *Node {
	e := p.parseExpression()
	if e == nil {
		return nil
	}
	return newNode(TypeExprStatement, e, p.expectSemicolon())
}

// parseParenCondition appends `( expr )` to n.
func (p *Parser) parseParenCondition(n *Node) {
	n.add(p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(', found "+p.describe()))
	n.add(p.parseExpression())
	n.add(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')', found "+p.describe()))
}

func (p *Parser) parseIf() *Node {
	n := newNode(TypeIf, p.advance())
	p.parseParenCondition(n)
	n.add(p.parseStatement())
	if p.at(token.KwElse) {
		n.add(p.advance(), p.parseStatement())
	}
	return n
}

func (p *Parser) parseFor() *Node {
	n := newNode(TypeFor, p.advance())
	n.add(p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after for"))
	if p.at(token.Semicolon) {
		n.add(p.advance())
	} else {
		n.add(p.parseStatement())
	}
	if p.at(token.Semicolon) {
		n.add(p.advance())
	} else {
		n.add(p.parseExpressionStatement())
	}
	if !p.at(token.RParen) {
		n.add(p.parseExpression())
	}
	n.add(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close for header"))
	return n.add(p.parseStatement())
}

// parseVarDeclaration: type [location] name.
func (p *Parser) parseVarDeclaration() *Node {
	ty := p.parseType()
	if ty == nil {
		return nil
	}
	n := newNode(TypeVarDecl, ty)
	if p.peek().Kind.DataLocation() {
		n.add(p.advance())
	}
	name := p.expectIdent()
	if name == nil {
		return nil
	}
	return n.add(name)
}

func (p *Parser) parseVarDeclStatement() *Node {
	decl := p.parseVarDeclaration()
	if decl == nil {
		return nil
	}
	n := newNode(TypeVarDeclStatement, decl)
	if p.at(token.Assign) {
		n.add(p.advance(), p.parseExpression())
	}
	return n.add(p.expectSemicolon())
}

// parseTupleDeclaration: `(uint a, , bool b) = expr;`. Only succeeds when
// at least one slot is a declaration and '=' follows the closing paren.
func (p *Parser) parseTupleDeclaration() *Node {
	tuple := newNode(TypeVarDeclTuple, p.advance())
	decls := 0
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if !p.at(token.Comma) {
			d := p.parseVarDeclaration()
			if d == nil {
				return nil
			}
			tuple.add(d)
			decls++
		}
		c := p.eat(token.Comma)
		if c == nil {
			break
		}
		tuple.add(c)
	}
	closing := p.eat(token.RParen)
	if closing == nil || decls == 0 || !p.at(token.Assign) {
		return nil
	}
	tuple.add(closing)
	n := newNode(TypeVarDeclStatement, tuple, p.advance(), p.parseExpression())
	return n.add(p.expectSemicolon())
}

func (p *Parser) parseTry() *Node {
	n := newNode(TypeTry, p.advance(), p.parseExpression())
	if p.at(token.KwReturns) {
		n.add(newNode(TypeReturnParameters, p.advance(), p.parseParameterList()))
	}
	n.add(p.parseBlock())
	if !p.at(token.KwCatch) {
		p.err(diag.SynUnexpectedToken, "expected 'catch' after try block")
	}
	for p.at(token.KwCatch) {
		c := newNode(TypeCatch, p.advance())
		if p.at(token.Ident) {
			c.add(p.advance())
		}
		if p.at(token.LParen) {
			c.add(p.parseParameterList())
		}
		n.add(c.add(p.parseBlock()))
	}
	return n
}

// parseAssembly keeps the whole `{ ... }` body as a single verbatim leaf.
// Yul is not reshaped.
func (p *Parser) parseAssembly() *Node {
	n := newNode(TypeAssembly, p.advance())
	if p.at(token.StringLit) {
		n.add(p.advance())
	}
	if p.at(token.LParen) {
		flags := newNode(TypeAssemblyFlags, p.advance())
		for p.at(token.StringLit) {
			flags.add(p.advance())
			c := p.eat(token.Comma)
			if c == nil {
				break
			}
			flags.add(c)
		}
		flags.add(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close assembly flags"))
		n.add(flags)
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' after assembly")
		return n
	}
	first, depth := p.pos, 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		p.pos++
		if depth == 0 {
			return n.add(p.verbatim(first, p.pos))
		}
	}
	n.add(p.verbatim(first, p.pos))
	p.err(diag.SynUnclosedDelimiter, "expected '}' to close assembly block")
	return n
}
