package source

import "testing"

func TestSpanBasics(t *testing.T) {
	s := Span{File: 1, Start: 5, End: 9}
	if s.Empty() {
		t.Error("non-empty span reported empty")
	}
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Len())
	}
	if got := s.String(); got != "1:5-9" {
		t.Errorf("String = %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 5, End: 9}
	b := Span{File: 0, Start: 2, End: 7}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 9 {
		t.Errorf("Cover = %v, want 0:2-9", got)
	}

	other := Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files must be a no-op, got %v", got)
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		a, b Span
		want bool
	}{
		{Span{0, 0, 5}, Span{0, 4, 8}, true},
		{Span{0, 0, 5}, Span{0, 5, 8}, false},
		{Span{0, 0, 5}, Span{1, 0, 5}, false},
		{Span{0, 3, 4}, Span{0, 0, 10}, true},
	}
	for i, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("case %d: Overlaps = %v, want %v", i, got, tt.want)
		}
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{File: 0, Start: 2, End: 4}
	if !s.Contains(2) || !s.Contains(3) {
		t.Error("Contains must include start and interior")
	}
	if s.Contains(4) {
		t.Error("Contains must exclude end")
	}
}
