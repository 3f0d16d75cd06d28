package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Token.sol", []byte("contract A {}"), 0)
	id2 := fs.Add("Token.sol", []byte("contract B {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("Token.sol")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "contract A {}" {
		t.Errorf("old content lost: %q", got)
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "A.sol")
	raw := []byte("\xEF\xBB\xBFcontract A {\r\n}\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if want := "contract A {\n}\n"; string(f.Content) != want {
		t.Fatalf("content mismatch:\nwant %q\ngot  %q", want, f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
}

func TestResolveAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.sol", []byte("ab\ncde\n\nf"))
	f := fs.Get(id)

	start, end := fs.Resolve(Span{File: id, Start: 4, End: 9})
	if start != (LineCol{Line: 2, Col: 2}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 4, Col: 2}) {
		t.Errorf("end = %+v", end)
	}

	cases := map[uint32]string{1: "ab", 2: "cde", 3: "", 4: "f", 5: ""}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
	if f.Flags&FileVirtual == 0 {
		t.Errorf("virtual flag missing")
	}
}
