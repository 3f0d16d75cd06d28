package diag

import (
	"testing"

	"solfmt/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("contracts/Vault.sol", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     FmtAmbiguousComment,
			Message:  "another",
			Primary:  source.Span{File: id, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: id, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: id, Start: 2, End: 3}, Msg: "note line"}},
		},
	}

	want := "error SYN2001 contracts/Vault.sol:1:1 first line second\n" +
		"warning FMT3002 contracts/Vault.sol:2:1 another\n" +
		"note SYN2001 contracts/Vault.sol:2:1 note line"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("short diagnostics mismatch:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	b := NewBag(3)
	sp := func(s uint32) source.Span { return source.Span{Start: s, End: s + 1} }
	b.Add(Diagnostic{Severity: SevWarning, Code: SynExpectSemicolon, Primary: sp(5)})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: sp(1)})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: sp(1)})
	if b.Add(Diagnostic{Severity: SevError, Primary: sp(9)}) {
		t.Fatalf("limit not enforced")
	}
	b.Sort()
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	if b.Items()[0].Primary.Start != 1 {
		t.Fatalf("sort order wrong: %+v", b.Items())
	}
	first, ok := b.FirstError()
	if !ok || first.Code != SynUnexpectedToken {
		t.Fatalf("FirstError = %+v,%v", first, ok)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("severity queries wrong")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 3 {
		ReportError(r, SynUnclosedDelimiter, source.Span{Start: 4, End: 5}, "missing ')'").Emit()
	}
	if bag.Len() != 1 {
		t.Fatalf("dedup reporter forwarded %d diagnostics", bag.Len())
	}
	if got := SynUnclosedDelimiter.ID(); got != "SYN2002" {
		t.Fatalf("ID = %s", got)
	}
}
