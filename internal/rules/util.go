package rules

import (
	"bytes"

	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// protectedSpans collects the spans of multiline strings and block comments.
// Their continuation lines are content, not layout, so layout rules must
// leave them alone. Short strings span lines too via `\`-escaped newlines
// and `\z`.
func protectedSpans(ctx *Context) []source.Span {
	var spans []source.Span
	add := func(sp source.Span, text string) {
		if bytes.ContainsRune([]byte(text), '\n') {
			spans = append(spans, sp)
		}
	}
	for i := range ctx.Tokens {
		t := &ctx.Tokens[i]
		if t.Kind == token.LongStringLit || t.Kind == token.StringLit {
			add(t.Span, t.Text)
		}
		for _, tr := range t.Leading {
			if tr.Kind == token.TriviaBlockComment {
				add(tr.Span, tr.Text)
			}
		}
	}
	return spans
}

// lineIsContinuation reports whether the line starting at off lies inside
// one of the protected spans (not on the span's first line).
func lineIsContinuation(protected []source.Span, off uint32) bool {
	for _, sp := range protected {
		if off > sp.Start && off < sp.End {
			return true
		}
	}
	return false
}

// wsStartBefore walks left from off over spaces and tabs, returning the
// start of the run.
func wsStartBefore(content []byte, off uint32) uint32 {
	for off > 0 && (content[off-1] == ' ' || content[off-1] == '\t') {
		off--
	}
	return off
}

// wsEndAfter walks right from off over spaces and tabs, returning the end
// of the run.
func wsEndAfter(content []byte, off uint32) uint32 {
	n := uint32(len(content))
	for off < n && (content[off] == ' ' || content[off] == '\t') {
		off++
	}
	return off
}

// tokenIndexAfter returns the index of the first token starting at or after
// off, or len(tokens).
func tokenIndexAfter(tokens []token.Token, off uint32) int {
	lo, hi := 0, len(tokens)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if tokens[mid].Span.Start < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// tokenAfter returns the first token starting at or after off.
func tokenAfter(tokens []token.Token, off uint32) (token.Token, bool) {
	i := tokenIndexAfter(tokens, off)
	if i < len(tokens) {
		return tokens[i], true
	}
	return token.Token{}, false
}

// atLineStart reports whether only spaces and tabs precede off on its line.
func atLineStart(content []byte, off uint32) bool {
	off = wsStartBefore(content, off)
	return off == 0 || content[off-1] == '\n'
}

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

// isWordByte reports whether b can be part of an identifier or keyword.
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
