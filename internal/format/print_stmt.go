package format

import (
	"solfmt/internal/syntax"
)

// ifStatement keeps "else if" chains flat and gives every other branch a
// block.
func (p *printer) ifStatement(id syntax.NodeID) {
	ch := p.tree.Children(id)
	// if ( cond ) then [else otherwise]
	if len(ch) < 5 {
		p.join(ch)
		return
	}
	p.hold(ch[3], ch[4])
	p.join(ch[:4])
	p.controlBody(ch[4])
	if len(ch) < 7 {
		return
	}
	p.w.Space()
	if p.tree.Kind(ch[6]) == syntax.IfStatement {
		p.node(ch[5])
		p.w.Space()
		p.node(ch[6])
		return
	}
	p.hold(ch[5], ch[6])
	p.node(ch[5])
	p.controlBody(ch[6])
}

func (p *printer) loop(id syntax.NodeID) {
	ch := p.tree.Children(id)
	if len(ch) < 2 {
		p.join(ch)
		return
	}
	p.hold(ch[len(ch)-2], ch[len(ch)-1])
	p.join(ch[:len(ch)-1])
	p.controlBody(ch[len(ch)-1])
}

func (p *printer) doWhile(id syntax.NodeID) {
	ch := p.tree.Children(id)
	if len(ch) < 3 {
		p.join(ch)
		return
	}
	p.hold(ch[0], ch[1])
	p.node(ch[0])
	p.controlBody(ch[1])
	p.w.Space()
	p.join(ch[2:])
}

// hold defers the trailing comments of the header part before body until
// the body's opening brace is printed. A brace that carries comments of its
// own leaves the header comments where they are.
func (p *printer) hold(header, body syntax.NodeID) {
	last := p.tree.LastLeaf(header)
	if !hasComment(p.triv.Trailing(last)) {
		return
	}
	if p.tree.Kind(body) == syntax.Block {
		brace := p.tree.FirstLeaf(body)
		if hasComment(p.triv.Leading(brace)) || hasComment(p.triv.Trailing(brace)) {
			return
		}
		p.carryTo = brace
	}
	p.held = last
}

// controlBody prints the body of a control statement. A single statement
// is wrapped in braces.
func (p *printer) controlBody(stmt syntax.NodeID) {
	p.w.Space()
	if p.tree.Kind(stmt) == syntax.Block {
		p.node(stmt)
		return
	}
	p.w.WriteString("{")
	if p.held != syntax.NoNode {
		p.trailingComments(p.held)
		p.held = syntax.NoNode
	}
	p.w.IndentPush()
	p.w.Newline()
	p.node(stmt)
	p.w.IndentPop()
	p.w.Newline()
	p.w.WriteString("}")
}
