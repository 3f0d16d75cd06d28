package parser

import (
	"solfmt/internal/diag"
	"solfmt/internal/token"
)

// TypeErrorNode wraps tokens skipped during recovery. It never reaches the
// adapter because Parse reports a failure whenever one is built.
const TypeErrorNode = "ERROR"

func (p *Parser) parseSourceUnit() *Node {
	root := &Node{Type: TypeSourceUnit}
	for !p.at(token.EOF) {
		start := p.pos
		item := p.parseSourceItem()
		root.add(item)
		if p.pos == start {
			p.err(diag.SynUnexpectedTopItem, "unexpected "+p.describe()+" at top level")
			root.add(p.recover(token.Semicolon))
		}
	}
	root.add(p.advance())
	return root
}

// recover skips to the next sync token (consumed) and returns what was
// skipped as an error node. At least one token is always consumed.
func (p *Parser) recover(sync token.Kind) *Node {
	n := &Node{Type: TypeErrorNode}
	n.add(p.skipUntil(sync)...)
	if p.at(sync) || (len(n.Children) == 0 && !p.at(token.EOF)) {
		n.add(p.advance())
	}
	if len(n.Children) == 0 {
		return nil
	}
	return n
}

func (p *Parser) parseSourceItem() *Node {
	switch p.peek().Kind {
	case token.KwPragma:
		return p.parsePragma()
	case token.KwImport:
		return p.parseImport()
	case token.KwAbstract, token.KwContract, token.KwInterface, token.KwLibrary:
		return p.parseContract()
	case token.KwStruct:
		return p.parseStruct()
	case token.KwEnum:
		return p.parseEnum()
	case token.KwEvent:
		return p.parseEvent()
	case token.KwFunction:
		return p.parseFunction()
	case token.KwUsing:
		return p.parseUsing()
	case token.KwType:
		return p.parseUserType()
	}
	if p.atErrorDefinition() {
		return p.parseErrorDefinition()
	}
	if p.at(token.Ident) || p.at(token.KwMapping) {
		// file-level constants
		return p.parseStateVariable()
	}
	return nil
}

// parsePragma keeps everything between the keyword and ';' as one verbatim
// leaf; version expressions have no grammar worth reshaping.
func (p *Parser) parsePragma() *Node {
	n := newNode(TypePragma, p.advance())
	n.add(p.verbatimUntil(token.Semicolon))
	n.add(p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after pragma"))
	return n
}

// verbatimUntil folds the tokens up to (not including) stop into one leaf
// whose text is the exact source slice.
func (p *Parser) verbatimUntil(stop token.Kind) *Node {
	first := p.pos
	for !p.at(token.EOF) && !p.at(stop) {
		p.pos++
	}
	return p.verbatim(first, p.pos)
}

func (p *Parser) verbatim(from, to int) *Node {
	if from >= to {
		return nil
	}
	head, last := p.toks[from], p.toks[to-1]
	sp := head.Span.Cover(last.Span)
	p.lastSpan = last.Span
	tok := token.Token{
		Kind:    head.Kind,
		Span:    sp,
		Text:    p.file.Text(sp),
		Leading: head.Leading,
	}
	return &Node{Type: TypeVerbatim, Span: sp, Token: &tok}
}

func (p *Parser) parseImport() *Node {
	n := newNode(TypeImport, p.advance())
	switch {
	case p.at(token.StringLit):
		n.add(p.advance())
		if p.at(token.KwAs) {
			n.add(p.advance(), p.expectIdent())
		}
	case p.at(token.Star):
		n.add(p.advance())
		n.add(p.expect(token.KwAs, diag.SynUnexpectedToken, "expected 'as' after '*'"))
		n.add(p.expectIdent())
		n.add(p.parseFrom()...)
	case p.at(token.LBrace):
		n.add(p.parseImportList())
		n.add(p.parseFrom()...)
	case p.at(token.Ident):
		n.add(p.advance())
		n.add(p.parseFrom()...)
	default:
		p.err(diag.SynUnexpectedToken, "expected import path, found "+p.describe())
		return n.add(p.recover(token.Semicolon))
	}
	n.add(p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after import"))
	return n
}

// parseFrom returns the `from "path"` pair; both are children of the
// directive itself.
func (p *Parser) parseFrom() []*Node {
	if !p.atIdent("from") {
		p.err(diag.SynUnexpectedToken, "expected 'from', found "+p.describe())
		return nil
	}
	from := p.advance()
	path := p.expect(token.StringLit, diag.SynUnexpectedToken, "expected import path, found "+p.describe())
	return []*Node{from, path}
}

func (p *Parser) parseImportList() *Node {
	n := newNode(TypeImportList, p.advance())
	for p.at(token.Ident) {
		sym := newNode(TypeImportSymbol, p.advance())
		if p.at(token.KwAs) {
			sym.add(p.advance(), p.expectIdent())
		}
		n.add(sym)
		if c := p.eat(token.Comma); c != nil {
			n.add(c)
			continue
		}
		break
	}
	n.add(p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close import list"))
	return n
}

func (p *Parser) parseContract() *Node {
	n := &Node{Type: TypeContract}
	if p.at(token.KwAbstract) {
		n.add(p.advance())
	}
	if !p.atOr(token.KwContract, token.KwInterface, token.KwLibrary) {
		p.err(diag.SynUnexpectedToken, "expected 'contract' after 'abstract'")
		return n
	}
	n.add(p.advance())
	n.add(p.expectIdent())
	if p.at(token.KwIs) {
		n.add(p.advance())
		n.add(p.parseInheritanceList())
	}
	n.add(p.parseContractBody())
	return n
}

func (p *Parser) parseInheritanceList() *Node {
	n := &Node{Type: TypeInheritanceList}
	for {
		path := p.parseIdentifierPath()
		if path == nil {
			break
		}
		spec := newNode(TypeInheritanceSpecifier, path)
		if p.at(token.LParen) {
			spec.add(p.parseArgumentList())
		}
		n.add(spec)
		c := p.eat(token.Comma)
		if c == nil {
			break
		}
		n.add(c)
	}
	return n
}

func (p *Parser) parseContractBody() *Node {
	n := newNode(TypeContractBody, p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open contract body, found "+p.describe()))
	if len(n.Children) == 0 {
		return n
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.pos
		n.add(p.parseContractMember())
		if p.pos == start {
			p.err(diag.SynUnexpectedMember, "unexpected "+p.describe()+" in contract body")
			n.add(p.recover(token.Semicolon))
		}
	}
	n.add(p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close contract body"))
	return n
}

func (p *Parser) parseContractMember() *Node {
	switch p.peek().Kind {
	case token.KwFunction, token.KwConstructor:
		return p.parseFunction()
	case token.KwModifier:
		return p.parseModifier()
	case token.KwStruct:
		return p.parseStruct()
	case token.KwEnum:
		return p.parseEnum()
	case token.KwEvent:
		return p.parseEvent()
	case token.KwUsing:
		return p.parseUsing()
	case token.KwType:
		return p.parseUserType()
	case token.Ident:
		if (p.atIdent("fallback") || p.atIdent("receive")) && p.peekN(1).Kind == token.LParen {
			return p.parseFunction()
		}
		if p.atErrorDefinition() {
			return p.parseErrorDefinition()
		}
		return p.parseStateVariable()
	case token.KwMapping:
		return p.parseStateVariable()
	}
	return nil
}

func (p *Parser) parseStruct() *Node {
	n := newNode(TypeStruct, p.advance(), p.expectIdent())
	body := newNode(TypeStructBody, p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after struct name"))
	if len(body.Children) == 0 {
		return n
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		ty := p.parseType()
		if ty == nil {
			body.add(p.recover(token.Semicolon))
			continue
		}
		m := newNode(TypeStructMember, ty, p.expectIdent())
		m.add(p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after struct member"))
		body.add(m)
	}
	body.add(p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close struct"))
	return n.add(body)
}

func (p *Parser) parseEnum() *Node {
	n := newNode(TypeEnum, p.advance(), p.expectIdent())
	body := newNode(TypeEnumBody, p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name"))
	if len(body.Children) == 0 {
		return n
	}
	for p.at(token.Ident) {
		body.add(p.advance())
		c := p.eat(token.Comma)
		if c == nil {
			break
		}
		body.add(c)
	}
	body.add(p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close enum"))
	return n.add(body)
}

func (p *Parser) parseEvent() *Node {
	n := newNode(TypeEvent, p.advance(), p.expectIdent())
	n.add(p.parseParameterList())
	if p.atIdent("anonymous") {
		n.add(p.advance())
	}
	n.add(p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after event"))
	return n
}

// atErrorDefinition: "error" is not reserved, so `error Name(` is told
// apart from a state variable of a type called error by lookahead.
func (p *Parser) atErrorDefinition() bool {
	return p.atIdent("error") && p.peekN(1).Kind == token.Ident && p.peekN(2).Kind == token.LParen
}

func (p *Parser) parseErrorDefinition() *Node {
	n := newNode(TypeError, p.advance(), p.expectIdent())
	n.add(p.parseParameterList())
	n.add(p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after error"))
	return n
}

func (p *Parser) parseUserType() *Node {
	n := newNode(TypeUserType, p.advance(), p.expectIdent())
	n.add(p.expect(token.KwIs, diag.SynUnexpectedToken, "expected 'is' in type definition"))
	n.add(p.parseType())
	n.add(p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after type definition"))
	return n
}

func (p *Parser) parseUsing() *Node {
	n := newNode(TypeUsing, p.advance())
	if p.at(token.LBrace) {
		list := newNode(TypeUsingList, p.advance())
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			path := p.parseIdentifierPath()
			if path == nil {
				break
			}
			sym := newNode(TypeUsingSymbol, path)
			if p.at(token.KwAs) {
				sym.add(p.advance())
				if p.peek().IsPunctOrOp() {
					sym.add(p.advance())
				} else {
					p.err(diag.SynUnexpectedToken, "expected operator after 'as'")
				}
			}
			list.add(sym)
			c := p.eat(token.Comma)
			if c == nil {
				break
			}
			list.add(c)
		}
		list.add(p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close using list"))
		n.add(list)
	} else {
		n.add(p.parseIdentifierPath())
	}
	n.add(p.expect(token.KwFor, diag.SynUnexpectedToken, "expected 'for' in using directive"))
	if p.at(token.Star) {
		n.add(p.advance())
	} else {
		n.add(p.parseType())
	}
	if p.atIdent("global") {
		n.add(p.advance())
	}
	n.add(p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after using directive"))
	return n
}

// parseStateVariable: type, attributes, name, optional initializer.
func (p *Parser) parseStateVariable() *Node {
	ty := p.parseType()
	if ty == nil {
		return nil
	}
	n := newNode(TypeStateVariable, ty)
	for {
		switch {
		case p.atOr(token.KwPublic, token.KwPrivate, token.KwInternal, token.KwConstant, token.KwImmutable):
			n.add(p.advance())
			continue
		case p.at(token.KwOverride):
			n.add(p.parseOverride())
			continue
		case p.atIdent("transient") && p.peekN(1).Kind == token.Ident:
			n.add(p.advance())
			continue
		}
		break
	}
	n.add(p.expectIdent())
	if p.at(token.Assign) {
		n.add(p.advance(), p.parseExpression())
	}
	n.add(p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after state variable"))
	return n
}
