package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwElseif represents the 'elseif' keyword.
	KwElseif // elseif
	// KwEnd represents the 'end' keyword.
	KwEnd // end
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwFunction represents the 'function' keyword.
	KwFunction // function
	// KwGoto represents the 'goto' keyword.
	KwGoto // goto
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwLocal represents the 'local' keyword.
	KwLocal // local
	// KwNil represents the 'nil' keyword.
	KwNil // nil
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwRepeat represents the 'repeat' keyword.
	KwRepeat // repeat
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwThen represents the 'then' keyword.
	KwThen // then
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwUntil represents the 'until' keyword.
	KwUntil // until
	// KwWhile represents the 'while' keyword.
	KwWhile // while

	// NumberLit represents a numeric literal.
	NumberLit
	// StringLit represents a short string literal ('...' or "...").
	StringLit
	// LongStringLit represents a long-bracket string literal ([[...]]).
	LongStringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// SlashSlash represents the floor-division operator token.
	SlashSlash // //
	// Percent represents the percent operator token.
	Percent // %
	// Caret represents the power operator token.
	Caret // ^
	// Hash represents the length operator token.
	Hash // #
	// Assign represents the assignment token.
	Assign // =
	// EqEq represents the equality operator token.
	EqEq // ==
	// TildeEq represents the inequality operator token.
	TildeEq // ~=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// Concat represents the string concatenation token.
	Concat // ..
	// Ellipsis represents the vararg token.
	Ellipsis // ...

	// PlusAssign represents the compound add-assign token (Luau).
	PlusAssign // +=
	// MinusAssign represents the compound subtract-assign token (Luau).
	MinusAssign // -=
	// StarAssign represents the compound multiply-assign token (Luau).
	StarAssign // *=
	// SlashAssign represents the compound divide-assign token (Luau).
	SlashAssign // /=
	// SlashSlashAssign represents the compound floor-divide-assign token (Luau).
	SlashSlashAssign // //=
	// PercentAssign represents the compound modulo-assign token (Luau).
	PercentAssign // %=
	// CaretAssign represents the compound power-assign token (Luau).
	CaretAssign // ^=
	// ConcatAssign represents the compound concat-assign token (Luau).
	ConcatAssign // ..=

	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Colon represents the colon token.
	Colon // :
	// ColonColon represents the label delimiter token.
	ColonColon // ::
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .
)

var kindNames = map[Kind]string{
	Invalid:          "Invalid",
	EOF:              "EOF",
	Ident:            "Ident",
	KwAnd:            "and",
	KwBreak:          "break",
	KwDo:             "do",
	KwElse:           "else",
	KwElseif:         "elseif",
	KwEnd:            "end",
	KwFalse:          "false",
	KwFor:            "for",
	KwFunction:       "function",
	KwGoto:           "goto",
	KwIf:             "if",
	KwIn:             "in",
	KwLocal:          "local",
	KwNil:            "nil",
	KwNot:            "not",
	KwOr:             "or",
	KwRepeat:         "repeat",
	KwReturn:         "return",
	KwThen:           "then",
	KwTrue:           "true",
	KwUntil:          "until",
	KwWhile:          "while",
	NumberLit:        "NumberLit",
	StringLit:        "StringLit",
	LongStringLit:    "LongStringLit",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	SlashSlash:       "//",
	Percent:          "%",
	Caret:            "^",
	Hash:             "#",
	Assign:           "=",
	EqEq:             "==",
	TildeEq:          "~=",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Concat:           "..",
	Ellipsis:         "...",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	SlashSlashAssign: "//=",
	PercentAssign:    "%=",
	CaretAssign:      "^=",
	ConcatAssign:     "..=",
	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
	Semicolon:        ";",
	Colon:            ":",
	ColonColon:       "::",
	Comma:            ",",
	Dot:              ".",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// IsCompoundAssign reports whether the kind is one of the Luau compound
// assignment operators.
func (k Kind) IsCompoundAssign() bool {
	switch k {
	case PlusAssign, MinusAssign, StarAssign, SlashAssign, SlashSlashAssign,
		PercentAssign, CaretAssign, ConcatAssign:
		return true
	default:
		return false
	}
}

// IsBinaryOp reports whether the kind can appear as a binary operator.
func (k Kind) IsBinaryOp() bool {
	switch k {
	case Plus, Minus, Star, Slash, SlashSlash, Percent, Caret, Concat,
		EqEq, TildeEq, Lt, LtEq, Gt, GtEq, KwAnd, KwOr:
		return true
	default:
		return false
	}
}
