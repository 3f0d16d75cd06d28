package parser_test

import (
	"errors"
	"strings"
	"testing"

	"solfmt/internal/diag"
	"solfmt/internal/parser"
	"solfmt/internal/source"
)

func parse(t *testing.T, input string) (*parser.Node, *diag.Bag, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sol", []byte(input))
	bag := diag.NewBag(0)
	root, err := parser.Parse(fs.Get(id), parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return root, bag, err
}

func mustParse(t *testing.T, input string) *parser.Node {
	t.Helper()
	root, bag, err := parse(t, input)
	if err != nil {
		t.Fatalf("parse failed: %v (%d diagnostics)", err, bag.Len())
	}
	return root
}

func find(root *parser.Node, typ string) []*parser.Node {
	var out []*parser.Node
	root.Walk(func(n *parser.Node) {
		if n.Type == typ {
			out = append(out, n)
		}
	})
	return out
}

func childTypes(n *parser.Node) string {
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		if c.IsLeaf() {
			parts[i] = c.Token.Text
		} else {
			parts[i] = c.Type
		}
	}
	return strings.Join(parts, " ")
}

func TestParseFunctionHeader(t *testing.T) {
	root := mustParse(t, `contract C {
    function f(uint a, address[] memory b) external view onlyOwner returns (uint) {
        return a;
    }
}`)
	fns := find(root, parser.TypeFunction)
	if len(fns) != 1 {
		t.Fatalf("want 1 function, got %d", len(fns))
	}
	want := "function f parameter_list external view modifier_invocation return_parameters block"
	if got := childTypes(fns[0]); got != want {
		t.Fatalf("function children mismatch\nwant %q\ngot  %q", want, got)
	}
	params := find(fns[0], parser.TypeParameter)
	if len(params) != 3 {
		t.Fatalf("want 3 parameters (2 + 1 return), got %d", len(params))
	}
	if got := childTypes(params[1]); got != "array_type memory b" {
		t.Fatalf("second parameter: got %q", got)
	}
}

func TestParseDeclarationVersusExpression(t *testing.T) {
	root := mustParse(t, `function f() {
    uint x = 1;
    x = 2;
    a[i] = 3;
    (uint y, , bool z) = g();
    (p, q) = g();
    mapping(address => uint) storage m = balances;
}`)
	block := find(root, parser.TypeBlock)[0]
	var got []string
	for _, c := range block.Children {
		if !c.IsLeaf() {
			got = append(got, c.Type)
		}
	}
	want := []string{
		parser.TypeVarDeclStatement,
		parser.TypeExprStatement,
		parser.TypeExprStatement,
		parser.TypeVarDeclStatement,
		parser.TypeExprStatement,
		parser.TypeVarDeclStatement,
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("statement kinds\nwant %v\ngot  %v", want, got)
	}
}

func TestParseStructLiteralAndCallOptions(t *testing.T) {
	root := mustParse(t, `function f() {
    p = Point({x: 1, y: 2});
    target.call{value: 1 ether}("");
}`)
	named := find(root, parser.TypeNamedArgumentList)
	if len(named) != 2 {
		t.Fatalf("want 2 named argument lists, got %d", len(named))
	}
	if got := len(find(named[0], parser.TypeNamedArgument)); got != 2 {
		t.Fatalf("want 2 fields in struct literal, got %d", got)
	}
	if len(find(root, parser.TypeCallOptions)) != 1 {
		t.Fatalf("call options not recognised")
	}
	lits := find(root, parser.TypeLiteral)
	var unit bool
	for _, l := range lits {
		if childTypes(l) == "1 ether" {
			unit = true
		}
	}
	if !unit {
		t.Fatalf("number with unit not parsed as one literal")
	}
}

func TestParsePragmaAndAssemblyAreVerbatim(t *testing.T) {
	root := mustParse(t, `pragma solidity  ^0.8.0;
contract C {
    function f() {
        assembly { let x := add(1, 2) }
    }
}`)
	pragma := find(root, parser.TypePragma)[0]
	if got := childTypes(pragma); got != "pragma solidity  ^0.8.0 ;" {
		t.Fatalf("pragma: got %q", got)
	}
	verb := find(root, parser.TypeAssembly)[0].Children[1]
	if verb.Type != parser.TypeVerbatim || verb.Token.Text != "{ let x := add(1, 2) }" {
		t.Fatalf("assembly body: got %s %q", verb.Type, verb.Token.Text)
	}
}

// Every byte of the input is reachable as leaf text or leaf trivia.
func TestParseKeepsEveryByte(t *testing.T) {
	input := `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.20;

import {A as B, C} from "./x.sol";

/// @notice doc
abstract contract Vault is Base(1), Other {
    using SafeMath for uint256;
    uint256 public constant MAX = 10 ** 18; // cap
    mapping(address user => uint256) internal balances;
    event Moved(address indexed from, uint256 amount);
    error Nope(uint256 code);
    enum State { Open, Closed }
    struct Pos { uint256 a; bytes32 b; }

    modifier only() virtual { _; }

    function move(address to, uint256 amt) external payable override(Base) returns (bool ok) {
        unchecked { balances[to] += amt; }
        for (uint256 i = 0; i < 3; i++) if (i == 1) continue; else break;
        try this.x{gas: 100}() returns (uint256 v) { ok = v > 0; } catch Error(string memory r) { revert Nope(1); } catch {}
        do { amt--; } while (amt > 0);
        emit Moved(to, amt);
        uint256[] memory xs = new uint256[](2);
        (bool s, ) = to.call("");
        bytes memory d = abi.encode(xs[0:1], type(uint256).max, payable(to));
        return s ? true : !false;
    }
}
`
	root := mustParse(t, input)
	var sb strings.Builder
	root.Walk(func(n *parser.Node) {
		if !n.IsLeaf() {
			return
		}
		for _, tr := range n.Token.Leading {
			sb.WriteString(tr.Text)
		}
		sb.WriteString(n.Token.Text)
	})
	if sb.String() != input {
		t.Fatalf("leaves do not reproduce input\nwant %q\ngot  %q", input, sb.String())
	}
}

func TestParseFailureWrapsFirstDiagnostic(t *testing.T) {
	_, bag, err := parse(t, "contract C { function f() { uint x = ; } }")
	if !errors.Is(err, parser.ErrParseFailure) {
		t.Fatalf("want ErrParseFailure, got %v", err)
	}
	if !bag.HasErrors() {
		t.Fatalf("want diagnostics in the bag")
	}
	if !strings.Contains(err.Error(), "SYN") {
		t.Fatalf("error should carry the diagnostic code: %v", err)
	}
}

func TestParseRecoversFromStrayTokens(t *testing.T) {
	root, _, err := parse(t, "} contract C { uint x; } )")
	if !errors.Is(err, parser.ErrParseFailure) {
		t.Fatalf("want ErrParseFailure, got %v", err)
	}
	if len(find(root, parser.TypeContract)) != 1 {
		t.Fatalf("contract after stray brace should still parse")
	}
}

func TestIsElementaryTypeName(t *testing.T) {
	tests := map[string]bool{
		"uint256":      true,
		"uint":         true,
		"int8":         true,
		"bytes32":      true,
		"bytes":        true,
		"string":       true,
		"address":      true,
		"bool":         true,
		"ufixed128x18": true,
		"uint7":        false,
		"bytes33":      false,
		"int0":         false,
		"Token":        false,
		"internalFoo":  false,
	}
	for name, want := range tests {
		if got := parser.IsElementaryTypeName(name); got != want {
			t.Errorf("IsElementaryTypeName(%q) = %v, want %v", name, got, want)
		}
	}
}
