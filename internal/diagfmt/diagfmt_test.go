package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"solfmt/internal/diag"
	"solfmt/internal/lexer"
	"solfmt/internal/parser"
	"solfmt/internal/source"
	"solfmt/internal/syntax"
	"solfmt/internal/trivia"
)

const missingSemi = "pragma solidity ^0.8.0;\ncontract A {\n    uint256 x\n}\n"

func bagWithMissingSemi(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("A.sol", []byte(missingSemi))
	start := uint32(strings.Index(missingSemi, "x\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectSemicolon,
		Message:  "expected ';'",
		Primary:  source.Span{File: id, Start: start, End: start + 1},
		Notes: []diag.Note{{
			Span: source.Span{File: id, Start: 24, End: 32},
			Msg:  "in this contract",
		}},
	})
	return bag, fs
}

func TestPrettyUnderlinesSpan(t *testing.T) {
	bag, fs := bagWithMissingSemi(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	want := "A.sol:3:13: ERROR SYN2003: expected ';'\n" +
		"   3 |     uint256 x\n" +
		"     | " + strings.Repeat(" ", 12) + "^\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output\nwant %q\ngot  %q", want, got)
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	bag, fs := bagWithMissingSemi(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 5, ShowNotes: true})

	got := buf.String()
	for _, want := range []string{
		"   1 | pragma solidity ^0.8.0;\n",
		"   2 | contract A {\n",
		"  note: A.sol:2:1: in this contract\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output misses %q\ngot %q", want, got)
		}
	}
}

func TestPrettyWithoutColorHasNoEscapes(t *testing.T) {
	bag, fs := bagWithMissingSemi(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("escape sequence in uncoloured output: %q", buf.String())
	}
}

func TestCaretIndentKeepsTabs(t *testing.T) {
	if got := caretIndent("\tab x", 5); got != "\t   " {
		t.Fatalf("want %q, got %q", "\t   ", got)
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := bagWithMissingSemi(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("want one diagnostic, got %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN2003" || d.Severity != "ERROR" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Location.File != "A.sol" || d.Location.StartLine != 3 || d.Location.StartCol != 13 {
		t.Fatalf("unexpected location %+v", d.Location)
	}
	if d.Notes != nil {
		t.Fatalf("notes must be omitted unless requested, got %+v", d.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	bag, fs := bagWithMissingSemi(t)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.FmtAmbiguousComment, Message: "second"})
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("want 1 diagnostic, got %d", out.Count)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sol", []byte("// hi\nuint x;"))
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("want %d lines, got %d:\n%s", len(toks), len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "line-comment") {
		t.Fatalf("first token should list its comment: %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "EOF") {
		t.Fatalf("last line should be EOF: %q", lines[len(lines)-1])
	}
}

func TestFormatTreeAnnotatesTrivia(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sol", []byte("// owner\ncontract A {}\n"))
	raw, err := parser.Parse(fs.Get(id), parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tree, err := syntax.Adapt(raw, fs.Get(id))
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}

	var buf bytes.Buffer
	if err := FormatTree(&buf, tree, trivia.Classify(tree)); err != nil {
		t.Fatalf("FormatTree: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, syntax.SourceUnit.String()) {
		t.Fatalf("outline should start at the root: %q", out)
	}
	if !strings.Contains(out, "[lead: line]") {
		t.Fatalf("leading comment not annotated: %q", out)
	}
}
