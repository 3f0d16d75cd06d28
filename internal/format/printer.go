package format

import (
	"solfmt/internal/align"
	"solfmt/internal/layout"
	"solfmt/internal/syntax"
	"solfmt/internal/token"
	"solfmt/internal/trivia"
)

type printer struct {
	tree  *syntax.Tree
	triv  *trivia.Map
	table *align.Table
	opt   Options
	w     *Writer

	// flat > 0 renders every list on one line.
	flat int

	// Outer trivia of a measured fragment is not part of its width.
	skipLeading  syntax.NodeID
	skipTrailing syntax.NodeID

	// Trailing comments of held are printed after carryTo instead, so a
	// comment after a control header lands behind the body's brace.
	held    syntax.NodeID
	carryTo syntax.NodeID

	// nextLeaf maps each leaf to the one printed after it.
	nextLeaf map[syntax.NodeID]syntax.NodeID
}

// Print renders tree with the trivia in triv and the padding in table.
// table may be nil.
func Print(tree *syntax.Tree, triv *trivia.Map, table *align.Table, opt Options) []byte {
	opt = opt.withDefaults()
	if triv == nil {
		triv = trivia.NewMap()
	}
	p := &printer{tree: tree, triv: triv, table: table, opt: opt, w: NewWriter(opt)}
	leaves := tree.Leaves(tree.Root)
	p.nextLeaf = make(map[syntax.NodeID]syntax.NodeID, len(leaves))
	for i := 1; i < len(leaves); i++ {
		p.nextLeaf[leaves[i-1]] = leaves[i]
	}
	p.node(tree.Root)
	return p.w.Bytes()
}

func (p *printer) node(id syntax.NodeID) {
	if id == syntax.NoNode {
		return
	}
	grouped := false
	if g := p.table.Group(id); g != nil && g.Kind != align.StructFieldGroup {
		grouped = true
		p.flat++
	}

	switch k := p.tree.Kind(id); k {
	case syntax.Identifier, syntax.Token, syntax.Verbatim:
		p.leaf(id)
	case syntax.SourceUnit:
		p.sourceUnit(id)
	case syntax.PragmaDirective:
		p.pragma(id)
	case syntax.FunctionDefinition, syntax.ModifierDefinition:
		p.function(id)
	case syntax.IfStatement:
		p.ifStatement(id)
	case syntax.ForStatement, syntax.WhileStatement:
		p.loop(id)
	case syntax.DoWhileStatement:
		p.doWhile(id)
	case syntax.UnaryExpression:
		p.unary(id)
	case syntax.PostfixExpression, syntax.IndexRangeExpression, syntax.CallOptions:
		p.tight(p.tree.Children(id))
	case syntax.ArgumentList:
		p.argumentList(id)
	case syntax.NamedArgumentList:
		p.namedArguments(id)
	case syntax.NamedArgument:
		p.namedArgument(id)
	default:
		rule := layout.RuleFor(k)
		switch rule.Break {
		case layout.Always:
			p.body(id, rule)
		case layout.Fit:
			p.list(id, rule)
		case layout.Preserve:
			p.preserve(id, rule)
		default:
			p.join(p.tree.Children(id))
		}
	}

	if pad := p.table.PadAfter(id); pad > 0 {
		p.w.Pad(pad)
	}
	if grouped {
		p.flat--
	}
}

func (p *printer) leaf(id syntax.NodeID) {
	tok := p.tree.Tok(id)
	if tok == nil {
		return
	}
	p.leafText(id, tok.Text)
}

// leafText prints a leaf with its trivia, substituting text for the token.
func (p *printer) leafText(id syntax.NodeID, text string) {
	if id != p.skipLeading {
		p.leading(id)
	}
	p.w.WriteString(text)
	if id == p.carryTo {
		p.carryTo = syntax.NoNode
		p.trailingComments(p.held)
		p.held = syntax.NoNode
	}
	if id != p.skipTrailing && id != p.held {
		p.trailing(id)
	}
}

func (p *printer) leading(id syntax.NodeID) {
	closing := isClosing(p.tree.Tok(id))
	for _, tr := range p.triv.Leading(id) {
		switch {
		case tr.Kind == trivia.BlankLine:
			if !closing {
				p.w.BlankLine()
			}
		case tr.OwnLine:
			p.w.Newline()
			p.w.WriteString(tr.Text)
			p.w.EndLine()
		default:
			// An inline comment that lands at a line start keeps the line to
			// itself, which is how it reads back on the next run.
			atStart := p.w.atLineStart || p.w.needNewline
			if !atStart && !p.w.follows('(', '[') {
				p.w.Space()
			}
			p.w.WriteString(tr.Text)
			switch {
			case atStart || tr.EndsLine():
				p.w.EndLine()
			case spaceAfterComment(p.tree.Tok(id)):
				p.w.Space()
			}
		}
	}
}

func (p *printer) trailing(id syntax.NodeID) {
	if p.trailingComments(id) && p.continues(id) {
		p.w.Continue()
	}
}

// trailingComments writes the comments after leaf id and ends the line.
func (p *printer) trailingComments(id syntax.NodeID) bool {
	list := p.triv.Trailing(id)
	for _, tr := range list {
		p.w.Space()
		p.w.WriteString(tr.Text)
	}
	if len(list) == 0 {
		return false
	}
	p.w.EndLine()
	return true
}

// continues reports whether the line broken by a comment after leaf goes
// on with the same construct, as in `a = b // note` followed by `+ c;`.
func (p *printer) continues(leaf syntax.NodeID) bool {
	next, ok := p.nextLeaf[leaf]
	if !ok {
		return false
	}
	if tok := p.tree.Tok(leaf); tok != nil {
		switch tok.Kind {
		case token.Comma, token.Semicolon, token.LParen, token.LBracket, token.LBrace, token.RBrace:
			return false
		}
	}
	if tok := p.tree.Tok(next); tok != nil {
		switch tok.Kind {
		case token.Comma, token.Semicolon, token.RParen, token.RBracket, token.LBrace, token.RBrace, token.EOF:
			return false
		}
	}
	return true
}

func (p *printer) join(ids []syntax.NodeID) {
	for i, id := range ids {
		if i > 0 && p.spaceBetween(ids[i-1], id) {
			p.w.Space()
		}
		p.node(id)
	}
}

func (p *printer) tight(ids []syntax.NodeID) {
	for _, id := range ids {
		p.node(id)
	}
}

func (p *printer) indent(n int) {
	for range n {
		p.w.IndentPush()
	}
}

func (p *printer) dedent(n int) {
	for range n {
		p.w.IndentPop()
	}
}

// measure renders ids on one line in a scratch writer. ok is false when
// the rendering needs more than one line.
func (p *printer) measure(ids ...syntax.NodeID) (width int, ok bool) {
	if len(ids) == 0 {
		return 0, true
	}
	sub := &printer{
		tree:         p.tree,
		triv:         p.triv,
		table:        p.table,
		opt:          p.opt,
		w:            NewWriter(p.opt),
		flat:         1,
		skipLeading:  p.tree.FirstLeaf(ids[0]),
		skipTrailing: p.tree.LastLeaf(ids[len(ids)-1]),
	}
	sub.join(ids)
	return sub.w.col, !sub.w.HasNewline()
}

// fits reports whether ids, followed by extra columns, end within the
// line width when printed from the current column.
func (p *printer) fits(extra int, ids ...syntax.NodeID) bool {
	width, ok := p.measure(ids...)
	return ok && p.w.Col()+width+extra <= p.opt.MaxWidth
}

func measurer(tree *syntax.Tree, triv *trivia.Map, opt Options) align.Measure {
	return func(id syntax.NodeID) (int, bool) {
		p := &printer{tree: tree, triv: triv, opt: opt}
		return p.measure(id)
	}
}

func (p *printer) spaceBetween(a, b syntax.NodeID) bool {
	prev := p.tree.Tok(p.tree.LastLeaf(a))
	next := p.tree.Tok(p.tree.FirstLeaf(b))
	if prev == nil || next == nil {
		return true
	}
	return tokenSpace(prev.Kind, next.Kind)
}

// tokenSpace decides whether two adjacent tokens are separated by a space.
func tokenSpace(prev, next token.Kind) bool {
	switch next {
	case token.RParen, token.RBracket, token.Comma, token.Semicolon, token.Dot, token.EOF:
		return false
	case token.LParen:
		switch prev {
		case token.Ident, token.RParen, token.RBracket, token.RBrace,
			token.KwMapping, token.KwFunction, token.KwType, token.KwPayable,
			token.KwOverride, token.KwConstructor:
			return false
		}
	case token.LBracket:
		switch prev {
		case token.Ident, token.RParen, token.RBracket:
			return false
		}
	}
	switch prev {
	case token.LParen, token.LBracket, token.Dot:
		return false
	}
	return true
}

// spaceAfterComment reports whether an inline comment and the token it
// precedes are separated by a space.
func spaceAfterComment(tok *token.Token) bool {
	if tok == nil {
		return true
	}
	switch tok.Kind {
	case token.RParen, token.RBracket, token.Comma, token.Semicolon, token.Dot, token.EOF:
		return false
	}
	return true
}

func isClosing(tok *token.Token) bool {
	if tok == nil {
		return false
	}
	switch tok.Kind {
	case token.RParen, token.RBrace, token.RBracket:
		return true
	}
	return false
}

func isOpening(tok *token.Token) bool {
	if tok == nil {
		return false
	}
	switch tok.Kind {
	case token.LParen, token.LBrace, token.LBracket:
		return true
	}
	return false
}

func (p *printer) isComma(id syntax.NodeID) bool {
	tok := p.tree.Tok(id)
	return tok != nil && tok.Kind == token.Comma
}

func (p *printer) isToken(id syntax.NodeID, k token.Kind) bool {
	tok := p.tree.Tok(id)
	return tok != nil && tok.Kind == k
}

func hasComment(list []trivia.Trivia) bool {
	for _, tr := range list {
		if tr.IsComment() {
			return true
		}
	}
	return false
}
