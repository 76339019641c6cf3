package lexer

import (
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// scanNumber scans Lua numerals plus the Luau extensions:
//   - decimal: [0-9_]* (opt. .[0-9_]*) (opt. [eE][+-]?[0-9_]+)
//   - hex: 0x[0-9a-fA-F_]+ (opt. hex fraction, opt. [pP][+-]? exponent)
//   - binary (Luau): 0b[01_]+
//   - '_' digit separators are accepted anywhere between digits
//
// Malformed forms are reported; the token is still emitted when possible.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	// ".digits" form (caller verified the digit).
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDecDigits()
		lx.eatDecExponent(start)
		return lx.emitNumber(start)
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'x', 'X':
			lx.cursor.Bump()
			if !isHex(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected hex digit after '0x'")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
			}
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			// hex fraction
			if lx.cursor.Peek() == '.' {
				lx.cursor.Bump()
				for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
					lx.cursor.Bump()
				}
			}
			// binary exponent
			if lx.cursor.Peek() == 'p' || lx.cursor.Peek() == 'P' {
				lx.cursor.Bump()
				if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
					lx.cursor.Bump()
				}
				if !isDec(lx.cursor.Peek()) {
					sp := lx.cursor.SpanFrom(start)
					lx.errLex(diag.LexBadNumber, sp, "expected digit after binary exponent")
					return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
				}
				lx.eatDecDigits()
			}
			return lx.emitNumber(start)

		case 'b', 'B':
			lx.cursor.Bump()
			b := lx.cursor.Peek()
			if b != '0' && b != '1' {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected binary digit after '0b'")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
			}
			for {
				b = lx.cursor.Peek()
				if b == '0' || b == '1' || b == '_' {
					lx.cursor.Bump()
				} else {
					break
				}
			}
			return lx.emitNumber(start)
		}
	}

	// decimal integer part
	lx.eatDecDigits()

	// fraction
	if lx.cursor.Peek() == '.' {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '.' && b1 == '.' {
			// '..' is the concat operator, not part of the number
		} else {
			lx.cursor.Bump()
			lx.eatDecDigits()
		}
	}

	lx.eatDecExponent(start)
	return lx.emitNumber(start)
}

func (lx *Lexer) eatDecDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eatDecExponent(start Mark) {
	if lx.cursor.Peek() != 'e' && lx.cursor.Peek() != 'E' {
		return
	}
	lx.cursor.Bump()
	if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
	}
	if !isDec(lx.cursor.Peek()) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
		return
	}
	lx.eatDecDigits()
}

func (lx *Lexer) emitNumber(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.textFrom(sp)}
}

func (lx *Lexer) textFrom(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
