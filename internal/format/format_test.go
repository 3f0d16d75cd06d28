package format

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"solfmt/internal/parser"
	"solfmt/internal/source"
	"solfmt/internal/syntax"
	"solfmt/internal/trivia"
)

func formatString(t *testing.T, src string, opt Options) string {
	t.Helper()
	out, err := FormatSource(context.Background(), "test.sol", []byte(src), opt)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	return string(out)
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func TestFormatScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "header collapse",
			in: lines(
				"contract C {",
				"  function setFeeRecipient(address newRec)",
				"    external",
				"    {",
				"  recipient = newRec;",
				"  }",
				"}",
			),
			want: lines(
				"contract C {",
				"    function setFeeRecipient(address newRec) external {",
				"        recipient = newRec;",
				"    }",
				"}",
			),
		},
		{
			name: "aligned requires",
			in: lines(
				"contract C {",
				"    function f() external view {",
				"        require(a == b, Errors.X);",
				"        require(longer >= 10, Errors.YY);",
				"        require(x != yyyyy, Errors.Z);",
				"        require(q < 1, Errors.W);",
				"    }",
				"}",
			),
			want: lines(
				"contract C {",
				"    function f() external view {",
				"        require(a      == b,     Errors.X);",
				"        require(longer >= 10,    Errors.YY);",
				"        require(x      != yyyyy, Errors.Z);",
				"        require(q      <  1,     Errors.W);",
				"    }",
				"}",
			),
		},
		{
			name: "aligned requires keep trailing comments",
			in: lines(
				"function f() {",
				"    require(a == b, E.X); // one",
				"    require(cc == d, E.Y); // two",
				"}",
			),
			want: lines(
				"function f() {",
				"    require(a  == b, E.X); // one",
				"    require(cc == d, E.Y); // two",
				"}",
			),
		},
		{
			name: "value type location removed",
			in: lines(
				"contract C {",
				"    constructor(uint storage _feeOnClaim, address[] memory _whitelistedTokens) {",
				"    }",
				"}",
			),
			want: lines(
				"contract C {",
				"    constructor(uint _feeOnClaim, address[] memory _whitelistedTokens) {}",
				"}",
			),
		},
		{
			name: "long header breaks its parameters",
			in: lines(
				"contract C {",
				"    function veryLongFunctionName(address recipientAddress, uint256 amountToTransfer, bytes calldata payload) external returns (bool success) {",
				"        return true;",
				"    }",
				"}",
			),
			want: lines(
				"contract C {",
				"    function veryLongFunctionName(",
				"        address recipientAddress,",
				"        uint256 amountToTransfer,",
				"        bytes calldata payload",
				"    ) external returns (bool success) {",
				"        return true;",
				"    }",
				"}",
			),
		},
		{
			name: "control bodies get braces",
			in: lines(
				"contract C {",
				"    function f(uint x) internal {",
				"        if (x > 1) x = 1;",
				"        else if (x == 0) return;",
				"        else x = 2;",
				"        for (uint i = 0; i < x; i++) g(i);",
				"        while (x > 0) x--;",
				"    }",
				"}",
			),
			want: lines(
				"contract C {",
				"    function f(uint x) internal {",
				"        if (x > 1) {",
				"            x = 1;",
				"        } else if (x == 0) {",
				"            return;",
				"        } else {",
				"            x = 2;",
				"        }",
				"        for (uint i = 0; i < x; i++) {",
				"            g(i);",
				"        }",
				"        while (x > 0) {",
				"            x--;",
				"        }",
				"    }",
				"}",
			),
		},
		{
			name: "comments and blank lines",
			in: lines(
				"// SPDX-License-Identifier: MIT",
				"pragma solidity   ^0.8.0;",
				"",
				"",
				"/// @notice doc",
				"contract C {",
				"",
				"    uint256 public a; // trailing a",
				"",
				"",
				"",
				"    // own line",
				"    function f() external {",
				"        g(/* inline */ 1);",
				"",
				"    }",
				"}",
			),
			want: lines(
				"// SPDX-License-Identifier: MIT",
				"pragma solidity ^0.8.0;",
				"",
				"/// @notice doc",
				"contract C {",
				"    uint256 public a; // trailing a",
				"",
				"    // own line",
				"    function f() external {",
				"        g(/* inline */ 1);",
				"    }",
				"}",
			),
		},
		{
			name: "state variables aligned",
			in: lines(
				"contract C {",
				"    uint256 public a;",
				"    address private owner;",
				"    mapping(address=>uint256) internal balances;",
				"    uint constant LIMIT = 1;",
				"}",
			),
			want: lines(
				"contract C {",
				"    uint256 public  a;",
				"    address private owner;",
				"    mapping(address => uint256) internal balances;",
				"    uint constant LIMIT = 1;",
				"}",
			),
		},
		{
			name: "inline comments before closers",
			in: lines(
				"function a(uint x /* c */) {}",
				"function b() {",
				"    foo(/* only */);",
				"    bar(x /* last */, y);",
				"}",
			),
			want: lines(
				"function a(uint x /* c */) {}",
				"function b() {",
				"    foo(/* only */);",
				"    bar(x /* last */, y);",
				"}",
			),
		},
		{
			name: "comment after a control header follows the brace",
			in: lines(
				"function f() {",
				"    if (a) // why",
				"        x = 1;",
				"    else // otherwise",
				"        x = 2;",
				"    while (b) // loop",
				"    {",
				"        b--;",
				"    }",
				"}",
			),
			want: lines(
				"function f() {",
				"    if (a) { // why",
				"        x = 1;",
				"    } else { // otherwise",
				"        x = 2;",
				"    }",
				"    while (b) { // loop",
				"        b--;",
				"    }",
				"}",
			),
		},
		{
			name: "comment inside an expression indents the continuation",
			in: lines(
				"function f() {",
				"    x = y // c",
				"    + z;",
				"}",
			),
			want: lines(
				"function f() {",
				"    x = y // c",
				"        + z;",
				"}",
			),
		},
		{
			name: "struct literal and call options",
			in: lines(
				"contract C {",
				"    function f() external {",
				"        Pos memory p = Pos({x: 1, longName: 2});",
				"        t.call{value: 1}(\"\");",
				"    }",
				"}",
			),
			want: lines(
				"contract C {",
				"    function f() external {",
				"        Pos memory p = Pos({",
				"            x:        1,",
				"            longName: 2",
				"        });",
				"        t.call{value: 1}(\"\");",
				"    }",
				"}",
			),
		},
		{
			name: "enum and struct bodies",
			in: lines(
				"enum Side { Buy, Sell }",
				"struct Order { address owner; uint amount; }",
			),
			want: lines(
				"enum Side {",
				"    Buy,",
				"    Sell",
				"}",
				"struct Order {",
				"    address owner;",
				"    uint amount;",
				"}",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatString(t, tt.in, DefaultOptions())
			if got != tt.want {
				t.Fatalf("format mismatch\nwant %q\ngot  %q", tt.want, got)
			}
			if again := formatString(t, got, DefaultOptions()); again != got {
				t.Fatalf("not idempotent\nwant %q\ngot  %q", got, again)
			}
		})
	}
}

func TestFormatEmptyInput(t *testing.T) {
	if got := formatString(t, "", DefaultOptions()); got != "" {
		t.Fatalf("want empty output, got %q", got)
	}
	if got := formatString(t, "\n\n  \n", DefaultOptions()); got != "" {
		t.Fatalf("want empty output for blank input, got %q", got)
	}
}

func TestFormatRespectsWidth(t *testing.T) {
	src := lines(
		"contract C {",
		"    function f() external {",
		"        emit Transfer(sender, recipient, amount);",
		"    }",
		"}",
	)
	opt := DefaultOptions()
	opt.MaxWidth = 40
	want := lines(
		"contract C {",
		"    function f() external {",
		"        emit Transfer(",
		"            sender,",
		"            recipient,",
		"            amount",
		"        );",
		"    }",
		"}",
	)
	if got := formatString(t, src, opt); got != want {
		t.Fatalf("format mismatch\nwant %q\ngot  %q", want, got)
	}

	opt.MaxWidth = 100
	if got := formatString(t, want, opt); got != src {
		t.Fatalf("wide format should collapse\nwant %q\ngot  %q", src, got)
	}
}

func longestLine(s string) int {
	n := 0
	for _, l := range strings.Split(s, "\n") {
		n = max(n, len(l))
	}
	return n
}

func TestFormatWidthBoundary(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "function header",
			src: lines(
				"contract C {",
				"    function setFeeRecipient(address newRec) external {",
				"        recipient = newRec;",
				"    }",
				"}",
			),
		},
		{
			name: "call statement",
			src: lines(
				"contract C {",
				"    function f() external {",
				"        emit Transfer(sender, recipient, amount);",
				"    }",
				"}",
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := DefaultOptions()
			opt.MaxWidth = longestLine(tt.src)
			if got := formatString(t, tt.src, opt); got != tt.src {
				t.Fatalf("line of exactly MaxWidth should stay\nwant %q\ngot  %q", tt.src, got)
			}

			opt.MaxWidth--
			got := formatString(t, tt.src, opt)
			if got == tt.src {
				t.Fatalf("line one column over MaxWidth should break: %q", got)
			}
			if n := longestLine(got); n > opt.MaxWidth {
				t.Fatalf("line of %d columns exceeds %d:\n%s", n, opt.MaxWidth, got)
			}
			if again := formatString(t, got, opt); again != got {
				t.Fatalf("not idempotent\nwant %q\ngot  %q", got, again)
			}
		})
	}
}

func TestFormatGroupedCallsRespectWidth(t *testing.T) {
	// The first call is exactly 100 columns; padding the second to its
	// columns would take it to 108.
	long := "        require(" + strings.Repeat("a", 35) + " == " + strings.Repeat("b", 30) + ", Errors.LONG);"
	short := "        require(x == y, Errors.SHORT_REASON);"
	src := lines(
		"contract C {",
		"    function f() external {",
		long,
		short,
		"    }",
		"}",
	)
	got := formatString(t, src, DefaultOptions())
	if got != src {
		t.Fatalf("format mismatch\nwant %q\ngot  %q", src, got)
	}
	if n := longestLine(got); n > 100 {
		t.Fatalf("line of %d columns exceeds 100:\n%s", n, got)
	}

	// With room to spare the same pair is aligned.
	opt := DefaultOptions()
	opt.MaxWidth = 120
	aligned := formatString(t, src, opt)
	if !strings.Contains(aligned, "require(x"+strings.Repeat(" ", 34)+" == y") {
		t.Fatalf("want padded second call:\n%s", aligned)
	}
	if n := longestLine(aligned); n > 120 {
		t.Fatalf("line of %d columns exceeds 120:\n%s", n, aligned)
	}
}

func TestFormatUsesTabs(t *testing.T) {
	opt := DefaultOptions()
	opt.UseTabs = true
	got := formatString(t, "contract C { uint a; }", opt)
	want := "contract C {\n\tuint a;\n}\n"
	if got != want {
		t.Fatalf("format mismatch\nwant %q\ngot  %q", want, got)
	}
}

func TestFormatDisabledNormalizationKeepsLocation(t *testing.T) {
	opt := DefaultOptions()
	opt.NormalizeLocations = false
	got := formatString(t, "function f(uint memory a) {}", opt)
	want := "function f(uint memory a) {}\n"
	if got != want {
		t.Fatalf("format mismatch\nwant %q\ngot  %q", want, got)
	}
}

func commentsOf(t *testing.T, src string) []string {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("c.sol", []byte(src)))
	raw, err := parser.Parse(file, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tree, err := syntax.Adapt(raw, file)
	if err != nil {
		t.Fatalf("adapt: %v", err)
	}
	return trivia.Classify(tree).CommentTexts()
}

func TestFormatPreservesComments(t *testing.T) {
	src := lines(
		"/* header */",
		"contract C { // open",
		"    function f(uint a, /* b */ uint b) external {",
		"        // first",
		"        a = b; /* after */",
		"        if (a > b) /* why */ a = 1;",
		"        // last",
		"    }",
		"    /* dangling */",
		"}",
		"// eof",
	)
	got := formatString(t, src, DefaultOptions())
	want := commentsOf(t, src)
	if have := commentsOf(t, got); !slices.Equal(want, have) {
		t.Fatalf("comments changed\nwant %q\ngot  %q\noutput:\n%s", want, have, got)
	}
	if err := CheckIdempotent(context.Background(), "c.sol", []byte(got), DefaultOptions()); err != nil {
		t.Fatalf("CheckIdempotent: %v\noutput:\n%s", err, got)
	}
}

func TestCheckIdempotentReportsDifference(t *testing.T) {
	err := CheckIdempotent(context.Background(), "x.sol", []byte("contract   C {}\n"), DefaultOptions())
	if !errors.Is(err, ErrNotIdempotent) {
		t.Fatalf("want ErrNotIdempotent, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("want the differing line in %q", err)
	}
}

func TestFormatFileReportsParseFailure(t *testing.T) {
	_, err := FormatSource(context.Background(), "bad.sol", []byte("contract C { function f( }"), DefaultOptions())
	if !errors.Is(err, parser.ErrParseFailure) {
		t.Fatalf("want ErrParseFailure, got %v", err)
	}
}

func TestCheckRoundTrip(t *testing.T) {
	src := lines(
		"pragma solidity  ^0.8.0;",
		"contract C {",
		"    function f(uint storage a) internal { if (a > 0) a = 1; }",
		"}",
	)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("rt.sol", []byte(src)))
	ok, msg := CheckRoundTrip(context.Background(), file, DefaultOptions(), 0)
	if !ok {
		t.Fatalf("round trip failed: %s", msg)
	}
}

func TestFingerprintIgnoresZeroDefaults(t *testing.T) {
	explicit := DefaultOptions()
	implicit := explicit
	implicit.MaxWidth, implicit.IndentWidth = 0, 0
	if explicit.Fingerprint() != implicit.Fingerprint() {
		t.Fatalf("defaults should fingerprint alike\nwant %q\ngot  %q", explicit.Fingerprint(), implicit.Fingerprint())
	}
	explicit.UseTabs = true
	if explicit.Fingerprint() == implicit.Fingerprint() {
		t.Fatalf("UseTabs must change the fingerprint")
	}
}
