package parser

import (
	"solfmt/internal/diag"
	"solfmt/internal/token"
)

// parseFunction covers function, constructor, fallback and receive. The
// header ends at the body block or at ';' for declarations without one.
func (p *Parser) parseFunction() *Node {
	n := newNode(TypeFunction, p.advance())
	if p.at(token.Ident) {
		n.add(p.advance())
	}
	n.add(p.parseParameterList())
	p.parseFunctionAttributes(n)
	if p.at(token.KwReturns) {
		n.add(newNode(TypeReturnParameters, p.advance(), p.parseParameterList()))
	}
	n.add(p.parseBodyOrSemicolon())
	return n
}

func (p *Parser) parseModifier() *Node {
	n := newNode(TypeModifierDefinition, p.advance(), p.expectIdent())
	if p.at(token.LParen) {
		n.add(p.parseParameterList())
	}
	p.parseFunctionAttributes(n)
	n.add(p.parseBodyOrSemicolon())
	return n
}

func (p *Parser) parseBodyOrSemicolon() *Node {
	if p.at(token.Semicolon) {
		return p.advance()
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' or ';' after function header, found "+p.describe())
		return nil
	}
	return p.parseBlock()
}

func (p *Parser) parseFunctionAttributes(n *Node) {
	for {
		switch {
		case p.atOr(token.KwExternal, token.KwPublic, token.KwInternal, token.KwPrivate,
			token.KwPure, token.KwView, token.KwPayable, token.KwVirtual):
			n.add(p.advance())
		case p.at(token.KwOverride):
			n.add(p.parseOverride())
		case p.at(token.Ident):
			n.add(p.parseModifierInvocation())
		default:
			return
		}
	}
}

func (p *Parser) parseModifierInvocation() *Node {
	n := newNode(TypeModifierInvocation, p.parseIdentifierPath())
	if p.at(token.LParen) {
		n.add(p.parseArgumentList())
	}
	return n
}

// parseOverride: `override` or `override(A, B.C)`.
func (p *Parser) parseOverride() *Node {
	n := newNode(TypeOverride, p.advance())
	if !p.at(token.LParen) {
		return n
	}
	list := newNode(TypeOverrideList, p.advance())
	for p.at(token.Ident) {
		list.add(p.parseIdentifierPath())
		c := p.eat(token.Comma)
		if c == nil {
			break
		}
		list.add(c)
	}
	list.add(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close override list"))
	return n.add(list)
}

// parseParameterList parses `( [param {, param}] )`. A parameter is a type,
// an optional data location, an optional `indexed` (events) and an
// optional name.
func (p *Parser) parseParameterList() *Node {
	open := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(', found "+p.describe())
	n := newNode(TypeParameterList, open)
	if open == nil {
		return n
	}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param := p.parseParameter()
		if param == nil {
			n.add(p.skipUntil(token.Comma, token.RParen)...)
		} else {
			n.add(param)
		}
		c := p.eat(token.Comma)
		if c == nil {
			break
		}
		n.add(c)
	}
	n.add(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list"))
	return n
}

func (p *Parser) parseParameter() *Node {
	ty := p.parseType()
	if ty == nil {
		return nil
	}
	n := newNode(TypeParameter, ty)
	if p.peek().Kind.DataLocation() {
		n.add(p.advance())
	}
	if p.atIdent("indexed") {
		n.add(p.advance())
	}
	if p.at(token.Ident) {
		n.add(p.advance())
	}
	return n
}
