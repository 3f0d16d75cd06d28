package parser

import (
	"errors"
	"fmt"
	"slices"

	"solfmt/internal/diag"
	"solfmt/internal/lexer"
	"solfmt/internal/source"
	"solfmt/internal/token"
)

// ErrParseFailure is returned when the file does not parse into a complete
// tree. The diagnostics explaining why are in the Reporter's sink.
var ErrParseFailure = errors.New("parse failure")

type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint // 0 means unlimited
}

// Parser holds the state for one file. The whole token stream is lexed up
// front so that declarations can be told apart from expressions by bounded
// speculation.
type Parser struct {
	file     *source.File
	toks     []token.Token
	pos      int
	opts     Options
	errors   uint
	quiet    int  // > 0 while speculating; reports are suppressed
	failed   bool // set by a suppressed report
	lastSpan source.Span
}

// Parse builds the raw tree of file. When any syntax or lexical error is
// reported it returns the (partial) tree together with an error wrapping
// ErrParseFailure and the first message.
func Parse(file *source.File, opts Options) (*Node, error) {
	bag := diag.NewBag(0)
	fan := fanout{diag.BagReporter{Bag: bag}, opts.Reporter}
	p := &Parser{
		file: file,
		opts: opts,
	}
	p.opts.Reporter = diag.NewDedupReporter(fan)
	p.toks = lexer.Tokenize(file, lexer.Options{Reporter: p.opts.Reporter})

	root := p.parseSourceUnit()
	if first, ok := bag.FirstError(); ok {
		return root, fmt.Errorf("%w: %s: %s", ErrParseFailure, first.Code.ID(), first.Message)
	}
	return root, nil
}

type fanout []diag.Reporter

func (f fanout) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	for _, r := range f {
		if r != nil {
			r.Report(code, sev, sp, msg, notes)
		}
	}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN looks n tokens ahead; past the end it yields EOF.
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atIdent reports whether the next token is the contextual keyword text.
func (p *Parser) atIdent(text string) bool {
	return p.peek().Is(text)
}

// advance consumes the current token and returns it as a leaf.
func (p *Parser) advance() *Node {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return leafNode(tok)
}

// eat consumes the token when it has kind k.
func (p *Parser) eat(k token.Kind) *Node {
	if p.at(k) {
		return p.advance()
	}
	return nil
}

// expect consumes a token of kind k or reports code and returns nil.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) *Node {
	if p.at(k) {
		return p.advance()
	}
	p.err(code, msg)
	return nil
}

func (p *Parser) expectIdent() *Node {
	return p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier, found "+p.describe())
}

func (p *Parser) describe() string {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", tok.Text)
}

func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

func (p *Parser) err(code diag.Code, msg string) {
	if p.quiet > 0 {
		p.failed = true
		return
	}
	p.errors++
	if p.opts.MaxErrors != 0 && p.errors > p.opts.MaxErrors {
		return
	}
	diag.ReportError(p.opts.Reporter, code, p.diagSpan(), msg).Emit()
}

// speculate runs fn with reports suppressed. If fn fails (returns nil or
// reports anything) the position is restored and nil is returned.
func (p *Parser) speculate(fn func() *Node) *Node {
	save, saveFailed := p.pos, p.failed
	p.quiet++
	p.failed = false
	n := fn()
	ok := n != nil && !p.failed
	p.quiet--
	p.failed = saveFailed
	if !ok {
		p.pos = save
		return nil
	}
	return n
}

// skipUntil consumes tokens until one of kinds (not consumed), a closing
// brace at depth zero, or EOF. Skipped tokens are returned as leaves so
// that nothing of the file is lost from the tree.
func (p *Parser) skipUntil(kinds ...token.Kind) []*Node {
	var out []*Node
	depth := 0
	for !p.at(token.EOF) {
		k := p.peek().Kind
		if depth == 0 && (slices.Contains(kinds, k) || k == token.RBrace) {
			break
		}
		switch k {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			if depth > 0 {
				depth--
			}
		}
		out = append(out, p.advance())
	}
	return out
}
