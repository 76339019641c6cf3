package token

var keywords = map[string]Kind{
	"and":      KwAnd,
	"break":    KwBreak,
	"do":       KwDo,
	"else":     KwElse,
	"elseif":   KwElseif,
	"end":      KwEnd,
	"false":    KwFalse,
	"for":      KwFor,
	"function": KwFunction,
	"goto":     KwGoto,
	"if":       KwIf,
	"in":       KwIn,
	"local":    KwLocal,
	"nil":      KwNil,
	"not":      KwNot,
	"or":       KwOr,
	"repeat":   KwRepeat,
	"return":   KwReturn,
	"then":     KwThen,
	"true":     KwTrue,
	"until":    KwUntil,
	"while":    KwWhile,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive; only lowercase forms are recognized.
// Note: Luau's `continue` is contextual and lexes as Ident.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
