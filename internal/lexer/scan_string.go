package lexer

import (
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/token"
)

// scanShortString scans '...' and "..." literals.
// Escapes: \a \b \f \n \r \t \v \\ \" \' \xXX \ddd \u{...} \z and an escaped
// real newline. A raw newline inside the literal is an error.
func (lx *Lexer) scanShortString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump() // opening quote

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.textFrom(sp)}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.scanEscape(start)
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
}

// scanEscape consumes one escape sequence body (the backslash is already
// consumed). Invalid escapes are reported but scanning continues.
func (lx *Lexer) scanEscape(strStart Mark) {
	escStart := lx.cursor.Off - 1 // the backslash
	b := lx.cursor.Bump()
	switch b {
	case 'a', 'b', 'f', 'n', 'r', 't', 'v', '\\', '"', '\'', '\n':
		// single-character escapes and escaped newline
	case 'z':
		// \z skips following whitespace, newlines included
		for {
			c := lx.cursor.Peek()
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
				break
			}
			lx.cursor.Bump()
		}
	case 'x':
		for i := 0; i < 2; i++ {
			if !isHex(lx.cursor.Peek()) {
				lx.reportEscape(escStart, "expected two hex digits after '\\x'")
				return
			}
			lx.cursor.Bump()
		}
	case 'u':
		if !lx.cursor.Eat('{') {
			lx.reportEscape(escStart, "expected '{' after '\\u'")
			return
		}
		if !isHex(lx.cursor.Peek()) {
			lx.reportEscape(escStart, "expected hex digits in '\\u{...}'")
			return
		}
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if !lx.cursor.Eat('}') {
			lx.reportEscape(escStart, "missing '}' in '\\u{...}'")
		}
	default:
		if isDec(b) {
			// \ddd: up to three decimal digits, one already consumed
			for i := 0; i < 2 && isDec(lx.cursor.Peek()); i++ {
				lx.cursor.Bump()
			}
			return
		}
		lx.reportEscape(escStart, "invalid escape sequence")
	}
}

func (lx *Lexer) reportEscape(escStart uint32, msg string) {
	sp := lx.cursor.SpanFrom(Mark(escStart))
	lx.errLex(diag.LexBadEscape, sp, msg)
}
