package token

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{EOF, "EOF"},
		{Ident, "Ident"},
		{KwFunction, "function"},
		{Concat, ".."},
		{Ellipsis, "..."},
		{TildeEq, "~="},
		{ConcatAssign, "..="},
		{Kind(255), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestIsBinaryOp(t *testing.T) {
	for _, k := range []Kind{Plus, Concat, EqEq, KwAnd, KwOr, SlashSlash} {
		if !k.IsBinaryOp() {
			t.Errorf("%s must be a binary op", k)
		}
	}
	for _, k := range []Kind{Hash, KwNot, Assign, LParen, Ident} {
		if k.IsBinaryOp() {
			t.Errorf("%s must not be a binary op", k)
		}
	}
}

func TestIsCompoundAssign(t *testing.T) {
	for _, k := range []Kind{PlusAssign, ConcatAssign, PercentAssign} {
		if !k.IsCompoundAssign() {
			t.Errorf("%s must be a compound assign", k)
		}
	}
	if Assign.IsCompoundAssign() {
		t.Error("= is not a compound assign")
	}
}
