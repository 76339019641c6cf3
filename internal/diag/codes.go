package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier with a stable string form.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar            Code = 1001
	LexUnterminatedString     Code = 1002
	LexUnterminatedLongString Code = 1003
	LexUnterminatedComment    Code = 1004
	LexBadNumber              Code = 1005
	LexBadEscape              Code = 1006
	LexMalformedLongBracket   Code = 1007

	// Syntax
	SynUnexpectedToken  Code = 2001
	SynExpectIdentifier Code = 2002
	SynExpectExpression Code = 2003
	SynExpectEnd        Code = 2004
	SynExpectThen       Code = 2005
	SynExpectDo         Code = 2006
	SynExpectUntil      Code = 2007
	SynUnclosedTable    Code = 2008
	SynUnclosedParen    Code = 2009
	SynExpectAssign     Code = 2010
	SynBadFunctionName  Code = 2011
	SynExpectIn         Code = 2012
	SynUnclosedBracket  Code = 2013
	SynExpectComma      Code = 2014
	SynBadStatement     Code = 2015
	SynBadAttrib        Code = 2016

	// Style
	StyQuoteStyle         Code = 3001
	StyIndentStyle        Code = 3002
	StyTrailingWhitespace Code = 3003
	StyLineLength         Code = 3004
	StyParenCondition     Code = 3005
	StyTrailingComma      Code = 3006
	StySemicolon          Code = 3007
	StyNaming             Code = 3008
	StyGlobalWrite        Code = 3009
	StyOperatorSpacing    Code = 3010
	StyCommaSpacing       Code = 3011
	StyEOFNewline         Code = 3012
	StyCommentStyle       Code = 3013

	// IO / environment
	IOReadError   Code = 4001
	IOConfigError Code = 4002
	IOCacheError  Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexUnknownChar:            "unknown character",
	LexUnterminatedString:     "unterminated string literal",
	LexUnterminatedLongString: "unterminated long string",
	LexUnterminatedComment:    "unterminated block comment",
	LexBadNumber:              "malformed number literal",
	LexBadEscape:              "invalid escape sequence",
	LexMalformedLongBracket:   "malformed long bracket",

	SynUnexpectedToken:  "unexpected token",
	SynExpectIdentifier: "expected identifier",
	SynExpectExpression: "expected expression",
	SynExpectEnd:        "expected 'end'",
	SynExpectThen:       "expected 'then'",
	SynExpectDo:         "expected 'do'",
	SynExpectUntil:      "expected 'until'",
	SynUnclosedTable:    "unclosed table constructor",
	SynUnclosedParen:    "unclosed parenthesis",
	SynExpectAssign:     "expected '='",
	SynBadFunctionName:  "malformed function name",
	SynExpectIn:         "expected 'in'",
	SynUnclosedBracket:  "unclosed bracket",
	SynExpectComma:      "expected ','",
	SynBadStatement:     "malformed statement",
	SynBadAttrib:        "malformed declaration attribute",

	StyQuoteStyle:         "string quote style",
	StyIndentStyle:        "indentation style",
	StyTrailingWhitespace: "trailing whitespace",
	StyLineLength:         "line too long",
	StyParenCondition:     "parenthesized condition",
	StyTrailingComma:      "table separator style",
	StySemicolon:          "semicolon statement separator",
	StyNaming:             "identifier naming",
	StyGlobalWrite:        "write to global",
	StyOperatorSpacing:    "operator spacing",
	StyCommaSpacing:       "comma spacing",
	StyEOFNewline:         "file end newline",
	StyCommentStyle:       "comment style",

	IOReadError:   "cannot read file",
	IOConfigError: "invalid configuration",
	IOCacheError:  "cache failure",
}

// ID returns the stable string identifier, e.g. "STY3005".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("STY%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
