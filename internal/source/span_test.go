package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files changed span: %v", got)
	}
	if got := (Span{}).Cover(a); got != a {
		t.Errorf("zero span should adopt other: %v", got)
	}
	if !a.Cover(b).Contains(a) || a.Contains(b) {
		t.Errorf("Contains mismatch")
	}
}
