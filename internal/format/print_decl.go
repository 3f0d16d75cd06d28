package format

import (
	"strings"

	"solfmt/internal/layout"
	"solfmt/internal/syntax"
	"solfmt/internal/token"
)

func (p *printer) sourceUnit(id syntax.NodeID) {
	for i, c := range p.tree.Children(id) {
		if i > 0 {
			p.w.Newline()
		}
		p.node(c)
	}
}

func (p *printer) pragma(id syntax.NodeID) {
	ch := p.tree.Children(id)
	for i, c := range ch {
		if i > 0 && p.spaceBetween(ch[i-1], c) {
			p.w.Space()
		}
		if p.tree.Kind(c) == syntax.Verbatim {
			p.leafText(c, pragmaValue(p.tree.Tok(c).Text))
			continue
		}
		p.node(c)
	}
}

// pragmaValue collapses runs of whitespace in a pragma value. A value with
// comments in it is kept as written.
func pragmaValue(text string) string {
	if strings.Contains(text, "//") || strings.Contains(text, "/*") {
		return text
	}
	return strings.Join(strings.Fields(text), " ")
}

// function prints a function or modifier header on one line when it fits,
// otherwise with its parameter list broken one parameter per line.
func (p *printer) function(id syntax.NodeID) {
	ch := p.tree.Children(id)
	if len(ch) == 0 {
		return
	}
	header, body := ch, syntax.NoNode
	last := ch[len(ch)-1]
	if p.tree.Kind(last) == syntax.Block || p.isToken(last, token.Semicolon) {
		header, body = ch[:len(ch)-1], last
	}
	extra := 0
	switch {
	case p.tree.Kind(body) == syntax.Block:
		extra = 2
	case body != syntax.NoNode:
		extra = 1
	}

	if p.flat > 0 || p.fits(extra, header...) {
		p.join(header)
	} else {
		p.brokenHeader(header)
	}

	if body == syntax.NoNode {
		return
	}
	if p.tree.Kind(body) == syntax.Block {
		p.w.Space()
	}
	p.node(body)
}

func (p *printer) brokenHeader(header []syntax.NodeID) {
	broken := false
	for i, c := range header {
		if i > 0 && p.spaceBetween(header[i-1], c) {
			p.w.Space()
		}
		if !broken && p.tree.Kind(c) == syntax.ParameterList && len(p.tree.Children(c)) > 2 {
			p.brokenList(c, layout.RuleFor(syntax.ParameterList))
			broken = true
			continue
		}
		p.node(c)
	}
}

// preserve keeps the line breaks the source had between children. A
// continuation line is indented once.
func (p *printer) preserve(id syntax.NodeID, rule layout.Rule) {
	ch := p.tree.Children(id)
	indented := false
	for i, c := range ch {
		if i > 0 {
			if p.flat == 0 && p.startsLine(ch[i-1], c) {
				if !indented {
					p.indent(rule.Indent)
					indented = true
				}
				p.w.Newline()
			} else if p.spaceBetween(ch[i-1], c) {
				p.w.Space()
			}
		}
		p.node(c)
	}
	if indented {
		p.dedent(rule.Indent)
	}
}

// startsLine reports whether b began on a later source line than a ended.
func (p *printer) startsLine(a, b syntax.NodeID) bool {
	file := p.tree.File
	prev, next := p.tree.Tok(p.tree.LastLeaf(a)), p.tree.Tok(p.tree.FirstLeaf(b))
	if file == nil || prev == nil || next == nil {
		return false
	}
	return file.LineOf(next.Span.Start) > file.LineOf(prev.Span.End)
}
