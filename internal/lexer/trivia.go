package lexer

import (
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/token"
)

// collectLeadingTrivia gathers consecutive trivia before a significant token.
//   - runs of ' ' and '\t' coalesce into one TriviaSpace
//   - consecutive '\n' coalesce into one TriviaNewline
//   - "--..." up to '\n' -> TriviaLineComment
//   - "--[[ ... ]]" (any '=' level) -> TriviaBlockComment; unterminated ones
//     are reported and cut at EOF
//   - "#!..." at offset 0 -> TriviaShebang
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]

	if lx.cursor.Off == 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '#' && b1 == '!' {
			start := lx.cursor.Mark()
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaShebang,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
		}
	}

	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		// spaces/tabs
		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		// newlines (coalesced)
		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			continue
		}

		// comments
		if b == '-' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		// no more trivia
		break
	}
}

// "--..." or "--[[...]]"
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.try2('-', '-') {
		return false
	}

	// Long comment: "--" followed by a long bracket.
	if lx.cursor.Peek() == '[' {
		if level, ok := lx.tryOpenLongBracket(); ok {
			closed := lx.skipLongBracketBody(level)
			sp := lx.cursor.SpanFrom(start)
			if !closed {
				lx.errLex(diag.LexUnterminatedComment, sp, "unterminated block comment")
			}
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaBlockComment,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			})
			return true
		}
	}

	// Line comment to end of line.
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: token.TriviaLineComment,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
	return true
}
