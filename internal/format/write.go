package format

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Writer accumulates formatted output. It tracks the display column so the
// printer can decide whether a construct fits, and it owns every decision
// about spaces and newlines between tokens.
type Writer struct {
	opt          Options
	buf          []byte
	indentLevel  int
	col          int
	atLineStart  bool
	pendingSpace bool
	needNewline  bool
	lastBlank    bool
	cont         bool
}

// NewWriter creates a new formatting writer.
func NewWriter(opt Options) *Writer {
	return &Writer{
		opt:         opt.withDefaults(),
		atLineStart: true,
	}
}

// Bytes returns the output with exactly one trailing newline, or nothing for
// an empty document.
func (w *Writer) Bytes() []byte {
	out := bytes.TrimRight(w.buf, " \t\n")
	if len(out) == 0 {
		return []byte{}
	}
	res := make([]byte, len(out)+1)
	copy(res, out)
	res[len(out)] = '\n'
	return res
}

// Col is the display column the next token would start at.
func (w *Writer) Col() int {
	switch {
	case w.atLineStart || w.needNewline:
		return w.indentWidth()
	case w.pendingSpace:
		return w.col + 1
	default:
		return w.col
	}
}

// HasNewline reports whether anything written so far spans lines.
func (w *Writer) HasNewline() bool {
	return w.needNewline || bytes.IndexByte(w.buf, '\n') >= 0
}

func (w *Writer) level() int {
	if w.cont {
		return w.indentLevel + 1
	}
	return w.indentLevel
}

func (w *Writer) indentWidth() int {
	return w.level() * w.opt.IndentWidth
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for range w.level() {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for range w.indentWidth() {
			w.buf = append(w.buf, ' ')
		}
	}
	w.col = w.indentWidth()
	w.atLineStart = false
	w.cont = false
}

// WriteString writes s, preceded by indentation at line start or by a pending
// space otherwise.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	if w.needNewline {
		w.Newline()
	}
	if w.atLineStart {
		w.writeIndent()
	} else if w.pendingSpace {
		w.buf = append(w.buf, ' ')
		w.col++
	}
	w.pendingSpace = false
	w.buf = append(w.buf, s...)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.col = runewidth.StringWidth(s[i+1:])
	} else {
		w.col += runewidth.StringWidth(s)
	}
	w.lastBlank = false
}

// Space requests a single space before the next token. It is dropped at line
// start.
func (w *Writer) Space() {
	if w.atLineStart || w.needNewline {
		return
	}
	w.pendingSpace = true
}

// follows reports whether the last byte written is one of bs, with no
// space pending after it.
func (w *Writer) follows(bs ...byte) bool {
	if w.pendingSpace || w.atLineStart || len(w.buf) == 0 {
		return false
	}
	return bytes.IndexByte(bs, w.buf[len(w.buf)-1]) >= 0
}

// Pad writes n spaces right away. Alignment padding is never dropped.
func (w *Writer) Pad(n int) {
	if n <= 0 || w.atLineStart || w.needNewline {
		return
	}
	for range n {
		w.buf = append(w.buf, ' ')
	}
	w.col += n
}

// EndLine makes the next token start on a fresh line. Used after line
// comments.
func (w *Writer) EndLine() {
	if w.atLineStart {
		return
	}
	w.needNewline = true
	w.pendingSpace = false
}

// Continue indents the line started by a pending EndLine one level deeper
// than the current block.
func (w *Writer) Continue() {
	if w.needNewline {
		w.cont = true
	}
}

// Newline ends the current line. It never produces an empty line.
func (w *Writer) Newline() {
	w.needNewline = false
	w.pendingSpace = false
	if w.atLineStart {
		return
	}
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
	w.col = 0
}

// BlankLine emits one empty line when the writer sits at a line start. Runs
// collapse to one, and nothing is emitted at the top of the document or
// right after an opening bracket.
func (w *Writer) BlankLine() {
	if w.needNewline {
		w.Newline()
	}
	if !w.atLineStart || w.lastBlank || len(w.buf) < 2 {
		return
	}
	switch w.buf[len(w.buf)-2] {
	case '{', '(', '[':
		return
	}
	w.buf = append(w.buf, '\n')
	w.lastBlank = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}
