package layout

import (
	"testing"

	"solfmt/internal/syntax"
)

func TestRuleTableIsExhaustive(t *testing.T) {
	for _, k := range syntax.Kinds() {
		if _, ok := Lookup(k); !ok {
			t.Errorf("no layout rule for %s", k)
		}
	}
}

func TestRuleFor(t *testing.T) {
	tests := []struct {
		kind   syntax.Kind
		policy BreakPolicy
		indent int
	}{
		{syntax.Block, Always, 1},
		{syntax.ContractBody, Always, 1},
		{syntax.ParameterList, Fit, 1},
		{syntax.ArgumentList, Fit, 1},
		{syntax.NamedArgumentList, Always, 1},
		{syntax.BinaryExpression, Never, 0},
		{syntax.InheritanceList, Preserve, 1},
	}
	for _, tt := range tests {
		r := RuleFor(tt.kind)
		if r.Break != tt.policy || r.Indent != tt.indent {
			t.Errorf("%s: got %s/%d, want %s/%d", tt.kind, r.Break, r.Indent, tt.policy, tt.indent)
		}
	}
	if got := RuleFor(syntax.Invalid); got != Default {
		t.Errorf("unknown kind: got %+v, want Default", got)
	}
}
