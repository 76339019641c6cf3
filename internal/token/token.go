package token

import (
	"github.com/dgxo/luastyle/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, nil, or string
// literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, LongStringLit, KwNil, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsString reports whether the token is a short or long string literal.
func (t Token) IsString() bool {
	return t.Kind == StringLit || t.Kind == LongStringLit
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAnd && t.Kind <= KwWhile
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= Dot
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
