package normalize_test

import (
	"slices"
	"testing"

	"solfmt/internal/normalize"
	"solfmt/internal/parser"
	"solfmt/internal/source"
	"solfmt/internal/syntax"
	"solfmt/internal/trivia"
)

func build(t *testing.T, input string) (*syntax.Tree, *trivia.Map) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.sol", []byte(input)))
	raw, err := parser.Parse(file, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tree, err := syntax.Adapt(raw, file)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	return tree, trivia.Classify(tree)
}

func firstOfKind(tree *syntax.Tree, k syntax.Kind) syntax.NodeID {
	found := syntax.NoNode
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		if found == syntax.NoNode && tree.Kind(id) == k {
			found = id
		}
		return found == syntax.NoNode
	})
	return found
}

const sample = `enum Mode { A, B }
struct S { uint256 x; }
contract C {
    function f(uint storage a, address[] memory b, Mode memory m, Unknown memory u, S memory s, string calldata t) internal {
        bool memory flag = true;
        bytes memory raw = "";
    }
}
`

func TestNormalizeRemovesOnlyValueQualifiers(t *testing.T) {
	tree, triv := build(t, sample)
	out, _, rewrites := normalize.Normalize(tree, triv)

	params := firstOfKind(out, syntax.ParameterList)
	want := "(uint a, address[] memory b, Mode m, Unknown memory u, S memory s, string calldata t)"
	if got := out.Text(params); got != want {
		t.Fatalf("parameters\nwant %q\ngot  %q", want, got)
	}

	var names []string
	for _, rw := range rewrites {
		names = append(names, rw.Name+":"+rw.Qualifier)
	}
	wantNames := []string{"a:storage", "m:memory", "flag:memory"}
	if !slices.Equal(names, wantNames) {
		t.Fatalf("rewrites: want %v, got %v", wantNames, names)
	}

	body := firstOfKind(out, syntax.Block)
	if got := out.Text(body); got != `{ bool flag = true; bytes memory raw = ""; }` {
		t.Fatalf("body: got %q", got)
	}
}

func TestNormalizeIsPureAndIdempotent(t *testing.T) {
	tree, triv := build(t, sample)
	before := tree.Text(tree.Root)

	out, outTriv, _ := normalize.Normalize(tree, triv)
	if tree.Text(tree.Root) != before {
		t.Fatalf("input tree was modified")
	}
	again, _, rewrites := normalize.Normalize(out, outTriv)
	if len(rewrites) != 0 {
		t.Fatalf("second pass rewrote %d declarations", len(rewrites))
	}
	if again != out {
		t.Fatalf("second pass should return the same tree when nothing changes")
	}
}

func TestNormalizeMovesCommentsToNextLeaf(t *testing.T) {
	tree, triv := build(t, "function f(uint /* a */ memory /* b */ x) {}")
	out, outTriv, rewrites := normalize.Normalize(tree, triv)
	if len(rewrites) != 1 {
		t.Fatalf("want 1 rewrite, got %d", len(rewrites))
	}
	var x syntax.NodeID
	for _, leaf := range out.Leaves(out.Root) {
		if out.Tok(leaf).Text == "x" {
			x = leaf
		}
	}
	var got []string
	for _, tr := range outTriv.Leading(x) {
		got = append(got, tr.Text)
	}
	if !slices.Equal(got, []string{"/* a */", "/* b */"}) {
		t.Fatalf("comments on x: %q", got)
	}
	if !slices.Equal(outTriv.CommentTexts(), triv.CommentTexts()) {
		t.Fatalf("comment multiset changed")
	}
}

func TestClassify(t *testing.T) {
	tree, _ := build(t, `enum E { A }
struct S { uint x; }
type Price is uint128;
contract K {
    function f(uint a, string memory b, E c, S memory d, Price e, K k, function() external g, mapping(uint => uint) storage h, uint[] memory i, Other j) {}
}`)
	decls := normalize.CollectDecls(tree)
	want := map[string]normalize.Category{
		"a": normalize.Value, "b": normalize.Reference, "c": normalize.Value,
		"d": normalize.Reference, "e": normalize.Value, "k": normalize.Value,
		"g": normalize.Value, "h": normalize.Reference, "i": normalize.Reference,
		"j": normalize.Reference,
	}
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		if tree.Kind(id) != syntax.Parameter {
			return true
		}
		name := tree.Tok(tree.LastLeaf(id)).Text
		ty := tree.Children(id)[0]
		if got := normalize.Classify(tree, ty, decls); got != want[name] {
			t.Errorf("%s: got %v, want %v", name, got, want[name])
		}
		return false
	})
}
