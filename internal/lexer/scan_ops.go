package lexer

import (
	"fmt"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/token"
)

// scanOperatorOrPunct scans operators and punctuation with maximal munch.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := token.Invalid

	switch {
	// three-byte sequences first
	case lx.try3('.', '.', '.'):
		kind = token.Ellipsis
	case lx.try3('.', '.', '='):
		kind = token.ConcatAssign
	case lx.try3('/', '/', '='):
		kind = token.SlashSlashAssign

	// two-byte sequences
	case lx.try2('=', '='):
		kind = token.EqEq
	case lx.try2('~', '='):
		kind = token.TildeEq
	case lx.try2('<', '='):
		kind = token.LtEq
	case lx.try2('>', '='):
		kind = token.GtEq
	case lx.try2('.', '.'):
		kind = token.Concat
	case lx.try2(':', ':'):
		kind = token.ColonColon
	case lx.try2('/', '/'):
		kind = token.SlashSlash
	case lx.try2('+', '='):
		kind = token.PlusAssign
	case lx.try2('-', '='):
		kind = token.MinusAssign
	case lx.try2('*', '='):
		kind = token.StarAssign
	case lx.try2('/', '='):
		kind = token.SlashAssign
	case lx.try2('%', '='):
		kind = token.PercentAssign
	case lx.try2('^', '='):
		kind = token.CaretAssign

	default:
		b := lx.cursor.Bump()
		switch b {
		case '+':
			kind = token.Plus
		case '-':
			kind = token.Minus
		case '*':
			kind = token.Star
		case '/':
			kind = token.Slash
		case '%':
			kind = token.Percent
		case '^':
			kind = token.Caret
		case '#':
			kind = token.Hash
		case '=':
			kind = token.Assign
		case '<':
			kind = token.Lt
		case '>':
			kind = token.Gt
		case '(':
			kind = token.LParen
		case ')':
			kind = token.RParen
		case '{':
			kind = token.LBrace
		case '}':
			kind = token.RBrace
		case '[':
			kind = token.LBracket
		case ']':
			kind = token.RBracket
		case ';':
			kind = token.Semicolon
		case ':':
			kind = token.Colon
		case ',':
			kind = token.Comma
		case '.':
			kind = token.Dot
		default:
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", b))
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
}
