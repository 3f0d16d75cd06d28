package parser

import (
	"strconv"
	"strings"

	"solfmt/internal/diag"
	"solfmt/internal/token"
)

// IsElementaryTypeName reports whether name spells a built-in value or
// byte-array type (uint256, bytes32, address, string, ...). Elementary type
// names are ordinary identifiers to the lexer.
func IsElementaryTypeName(name string) bool {
	switch name {
	case "address", "bool", "string", "bytes", "byte", "int", "uint", "fixed", "ufixed":
		return true
	}
	for _, prefix := range []string{"uint", "int", "bytes"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || rest[0] == '0' {
			return false
		}
		if prefix == "bytes" {
			return n >= 1 && n <= 32
		}
		return n >= 8 && n <= 256 && n%8 == 0
	}
	for _, prefix := range []string{"ufixed", "fixed"} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			m, frac, found := strings.Cut(rest, "x")
			if !found {
				return false
			}
			_, err1 := strconv.Atoi(m)
			_, err2 := strconv.Atoi(frac)
			return err1 == nil && err2 == nil
		}
	}
	return false
}

func (p *Parser) parseType() *Node {
	var base *Node
	switch {
	case p.at(token.KwMapping):
		base = p.parseMapping()
	case p.at(token.KwFunction):
		base = p.parseFunctionType()
	case p.at(token.Ident) && IsElementaryTypeName(p.peek().Text):
		base = newNode(TypeElementaryType, p.advance())
		if base.Children[0].Token.Text == "address" && p.at(token.KwPayable) {
			base.add(p.advance())
		}
	case p.at(token.Ident):
		base = p.parseIdentifierPath()
	default:
		p.err(diag.SynExpectType, "expected type, found "+p.describe())
		return nil
	}
	for p.at(token.LBracket) {
		arr := newNode(TypeArrayType, base, p.advance())
		if !p.at(token.RBracket) {
			arr.add(p.parseExpression())
		}
		arr.add(p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' in array type"))
		base = arr
	}
	return base
}

// parseIdentifierPath parses `a.b.c`.
func (p *Parser) parseIdentifierPath() *Node {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectIdentifier, "expected identifier, found "+p.describe())
		return nil
	}
	n := newNode(TypeIdentifierPath, p.advance())
	for p.at(token.Dot) && p.peekN(1).Kind == token.Ident {
		n.add(p.advance(), p.advance())
	}
	return n
}

// parseMapping: mapping(Key [name] => Value [name]).
func (p *Parser) parseMapping() *Node {
	n := newNode(TypeMappingType, p.advance())
	n.add(p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after mapping"))
	n.add(p.parseType())
	if p.at(token.Ident) {
		n.add(p.advance())
	}
	n.add(p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in mapping, found "+p.describe()))
	n.add(p.parseType())
	if p.at(token.Ident) {
		n.add(p.advance())
	}
	n.add(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close mapping"))
	return n
}

func (p *Parser) parseFunctionType() *Node {
	n := newNode(TypeFunctionType, p.advance(), p.parseParameterList())
	for p.atOr(token.KwInternal, token.KwExternal, token.KwPure, token.KwView, token.KwPayable) {
		n.add(p.advance())
	}
	if p.at(token.KwReturns) {
		n.add(newNode(TypeReturnParameters, p.advance(), p.parseParameterList()))
	}
	return n
}
