package format

import "testing"

func TestWriterNewlinesAndBlankLines(t *testing.T) {
	w := NewWriter(DefaultOptions())
	w.Newline()
	w.BlankLine()
	w.WriteString("a")
	w.Newline()
	w.Newline()
	w.BlankLine()
	w.BlankLine()
	w.WriteString("b {")
	w.Newline()
	w.BlankLine()
	w.IndentPush()
	w.WriteString("c")
	w.Space()
	w.Pad(2)
	w.WriteString("d")
	w.IndentPop()
	w.Newline()
	w.WriteString("}")
	w.Space()
	w.Newline()

	want := "a\n\nb {\n    c   d\n}\n"
	if got := string(w.Bytes()); got != want {
		t.Fatalf("writer output\nwant %q\ngot  %q", want, got)
	}
}

func TestWriterColumnTracksWideRunes(t *testing.T) {
	w := NewWriter(DefaultOptions())
	w.WriteString(`"日本"`)
	if got := w.Col(); got != 6 {
		t.Fatalf("want column 6, got %d", got)
	}
	w.WriteString("/* x\n   yz */")
	if got := w.Col(); got != 8 {
		t.Fatalf("want column 8 after a multi-line token, got %d", got)
	}
	w.Space()
	if got := w.Col(); got != 9 {
		t.Fatalf("pending space counts, want 9, got %d", got)
	}
}

func TestWriterEndLine(t *testing.T) {
	w := NewWriter(DefaultOptions())
	w.WriteString("x;")
	w.Space()
	w.WriteString("// note")
	w.EndLine()
	w.Space()
	w.WriteString("y;")
	want := "x; // note\ny;\n"
	if got := string(w.Bytes()); got != want {
		t.Fatalf("writer output\nwant %q\ngot  %q", want, got)
	}
}

func TestTokenSpace(t *testing.T) {
	got := formatString(t, "contract C { function f() public { x = a[i] + b(c).d - -e; delete m[k]; y = type(uint).max; } }", DefaultOptions())
	want := lines(
		"contract C {",
		"    function f() public {",
		"        x = a[i] + b(c).d - -e;",
		"        delete m[k];",
		"        y = type(uint).max;",
		"    }",
		"}",
	)
	if got != want {
		t.Fatalf("format mismatch\nwant %q\ngot  %q", want, got)
	}
}

func TestWriterContinueIndentsOneLine(t *testing.T) {
	w := NewWriter(DefaultOptions())
	w.Continue()
	w.WriteString("x = y")
	w.WriteString("// c")
	w.EndLine()
	w.Continue()
	if got := w.Col(); got != 4 {
		t.Fatalf("want continuation column 4, got %d", got)
	}
	w.WriteString("+ z;")
	w.Newline()
	w.WriteString("next;")

	want := "x = y// c\n    + z;\nnext;\n"
	if got := string(w.Bytes()); got != want {
		t.Fatalf("writer output\nwant %q\ngot  %q", want, got)
	}
}
