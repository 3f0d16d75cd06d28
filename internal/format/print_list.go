package format

import (
	"solfmt/internal/align"
	"solfmt/internal/layout"
	"solfmt/internal/syntax"
	"solfmt/internal/token"
)

// body prints a brace-delimited block with one member per line.
func (p *printer) body(id syntax.NodeID, rule layout.Rule) {
	ch := p.tree.Children(id)
	if len(ch) < 2 || !isOpening(p.tree.Tok(ch[0])) {
		p.join(ch)
		return
	}
	closeID := ch[len(ch)-1]
	if len(ch) == 2 && !hasComment(p.triv.Leading(closeID)) {
		p.node(ch[0])
		p.node(closeID)
		return
	}
	p.brokenList(id, rule)
}

// list prints a delimited list flat when it fits and one item per line
// otherwise.
func (p *printer) list(id syntax.NodeID, rule layout.Rule) {
	ch := p.tree.Children(id)
	if len(ch) < 2 || !isOpening(p.tree.Tok(ch[0])) || !isClosing(p.tree.Tok(ch[len(ch)-1])) {
		p.join(ch)
		return
	}
	inner := ch[1 : len(ch)-1]
	if len(inner) == 0 || p.hasEmptySlot(inner) || p.flat > 0 || p.fits(1, id) {
		p.flatList(ch)
		return
	}
	p.brokenList(id, rule)
}

// hasEmptySlot reports tuple components left out, as in (, b) or (a, , c).
// Such lists never break.
func (p *printer) hasEmptySlot(inner []syntax.NodeID) bool {
	for i, c := range inner {
		if !p.isComma(c) {
			continue
		}
		if i == 0 || i == len(inner)-1 || p.isComma(inner[i-1]) {
			return true
		}
	}
	return false
}

func (p *printer) flatList(ch []syntax.NodeID) {
	if len(ch) < 2 {
		p.join(ch)
		return
	}
	p.node(ch[0])
	inner := ch[1 : len(ch)-1]
	for i, c := range inner {
		switch {
		case p.isComma(c):
			if i > 0 && p.isComma(inner[i-1]) {
				p.w.Space()
			}
		case i > 0:
			p.w.Space()
		}
		p.node(c)
	}
	p.node(ch[len(ch)-1])
}

// brokenList prints the open bracket, every item on its own line followed
// by its comma, and the close bracket on a line of its own. Comments in
// front of the close bracket stay at the inner indentation.
func (p *printer) brokenList(id syntax.NodeID, rule layout.Rule) {
	ch := p.tree.Children(id)
	openID, closeID := ch[0], ch[len(ch)-1]
	p.node(openID)
	p.indent(rule.Indent)
	for _, c := range ch[1 : len(ch)-1] {
		if p.isComma(c) {
			p.node(c)
			continue
		}
		p.w.Newline()
		p.node(c)
	}
	if closeID != p.skipLeading {
		if hasComment(p.triv.Leading(closeID)) {
			p.w.Newline()
		}
		p.leading(closeID)
	}
	p.dedent(rule.Indent)
	p.w.Newline()
	p.w.WriteString(p.tree.Tok(closeID).Text)
	if closeID != p.skipTrailing {
		p.trailing(closeID)
	}
	if pad := p.table.PadAfter(closeID); pad > 0 {
		p.w.Pad(pad)
	}
}

// argumentList hugs a struct literal argument: f({ ... }).
func (p *printer) argumentList(id syntax.NodeID) {
	ch := p.tree.Children(id)
	if len(ch) == 3 && p.tree.Kind(ch[1]) == syntax.NamedArgumentList {
		p.flatList(ch)
		return
	}
	p.list(id, layout.RuleFor(syntax.ArgumentList))
}

// namedArguments prints call options flat. A struct literal with more than
// one field always gets one field per line.
func (p *printer) namedArguments(id syntax.NodeID) {
	ch := p.tree.Children(id)
	if len(ch) < 2 {
		p.join(ch)
		return
	}
	fields := align.Fields(p.tree, id)
	switch {
	case !align.IsStructLiteral(p.tree, id), len(fields) == 0:
		p.flatList(ch)
	case len(fields) == 1 && (p.flat > 0 || p.fits(1, id)):
		p.flatList(ch)
	default:
		p.brokenList(id, layout.RuleFor(syntax.NamedArgumentList))
	}
}

func (p *printer) namedArgument(id syntax.NodeID) {
	ch := p.tree.Children(id)
	if len(ch) != 3 {
		p.join(ch)
		return
	}
	p.node(ch[0])
	p.node(ch[1])
	p.w.Space()
	p.node(ch[2])
}

func (p *printer) unary(id syntax.NodeID) {
	ch := p.tree.Children(id)
	if len(ch) != 2 {
		p.join(ch)
		return
	}
	op := p.tree.Tok(ch[0])
	p.node(ch[0])
	if next := p.tree.Tok(p.tree.FirstLeaf(ch[1])); op != nil && next != nil && unarySpace(op.Kind, next.Kind) {
		p.w.Space()
	}
	p.node(ch[1])
}

// unarySpace keeps "delete x" apart and stops "- -x" from fusing into a
// decrement.
func unarySpace(op, next token.Kind) bool {
	switch op {
	case token.KwDelete:
		return true
	case token.Minus:
		return next == token.Minus || next == token.MinusMinus
	case token.Plus:
		return next == token.Plus || next == token.PlusPlus
	}
	return false
}
