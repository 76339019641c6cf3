package lexer

import (
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/token"
)

// isLongBracketStart reports whether the cursor sits on "[[", "[=[", "[==[", ...
// without consuming anything.
func (lx *Lexer) isLongBracketStart() bool {
	if lx.cursor.Peek() != '[' {
		return false
	}
	off := lx.cursor.Off + 1
	for off < lx.cursor.limit() && lx.file.Content[off] == '=' {
		off++
	}
	return off < lx.cursor.limit() && lx.file.Content[off] == '['
}

// tryOpenLongBracket consumes "[=*[" and returns the '=' level.
// The cursor is left untouched when the bracket does not open.
func (lx *Lexer) tryOpenLongBracket() (level int, ok bool) {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('[') {
		return 0, false
	}
	for lx.cursor.Eat('=') {
		level++
	}
	if !lx.cursor.Eat('[') {
		lx.cursor.Reset(start)
		return 0, false
	}
	return level, true
}

// skipLongBracketBody consumes bytes until the matching "]=*]" closer.
// Returns false when EOF is hit first.
func (lx *Lexer) skipLongBracketBody(level int) bool {
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != ']' {
			lx.cursor.Bump()
			continue
		}
		close := lx.cursor.Mark()
		lx.cursor.Bump() // ']'
		eq := 0
		for lx.cursor.Eat('=') {
			eq++
		}
		if eq == level && lx.cursor.Eat(']') {
			return true
		}
		// Not the closer for our level: rewind past the first ']' only.
		lx.cursor.Reset(close)
		lx.cursor.Bump()
	}
	return false
}

// scanLongString scans a long-bracket string literal [[...]] / [=[...]=].
func (lx *Lexer) scanLongString() token.Token {
	start := lx.cursor.Mark()
	level, ok := lx.tryOpenLongBracket()
	if !ok {
		// caller checked isLongBracketStart, so this is unreachable in
		// practice; treat as a plain '[' to stay robust
		return lx.scanOperatorOrPunct()
	}
	closed := lx.skipLongBracketBody(level)
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.errLex(diag.LexUnterminatedLongString, sp, "unterminated long string")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	return token.Token{Kind: token.LongStringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
