package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"solfmt/internal/diag"
	"solfmt/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes every diagnostic in bag as a header line followed by the
// offending source line and a caret underline:
//
//	contracts/A.sol:3:11: ERROR SYN2003: expected ';' after state variable
//	   3 | uint256 x
//	     |          ^
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(f.Path, opts.PathMode), start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)

	gutterWidth := len(strconv.FormatUint(uint64(start.Line), 10))
	first := start.Line
	if opts.Context > 0 {
		back := uint32(opts.Context)
		if back >= first {
			back = first - 1
		}
		first -= back
	}
	for line := first; line <= start.Line; line++ {
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth+3, line), f.GetLine(line))
	}

	text := f.GetLine(start.Line)
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = max(runewidth.StringWidth(sliceCols(text, start.Col, end.Col)), 1)
	} else if end.Line > start.Line {
		width = max(runewidth.StringWidth(sliceCols(text, start.Col, uint32(len(text))+1)), 1)
	}
	fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth+3, ""),
		caretIndent(text, start.Col),
		pal.caret.Sprint(strings.Repeat("^", width)))

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		if nf == nil {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
			displayPath(nf.Path, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

// sliceCols returns text between the 1-based byte columns [from, to).
func sliceCols(text string, from, to uint32) string {
	lo := min(int(from)-1, len(text))
	hi := min(int(to)-1, len(text))
	if lo < 0 || hi < lo {
		return ""
	}
	return text[lo:hi]
}

// caretIndent blanks out the text before col, keeping tabs so the caret
// lines up with the source line in a terminal.
func caretIndent(text string, col uint32) string {
	var sb strings.Builder
	for _, r := range sliceCols(text, 1, col) {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
