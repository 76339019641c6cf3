package rules

import (
	"fmt"
	"strings"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/token"
)

// QuoteStyle enforces one quote character for short string literals. The
// other quote is allowed only when the string contains the preferred
// character, which would otherwise force escaping.
type QuoteStyle struct{}

func (QuoteStyle) Name() string                   { return "quote-style" }
func (QuoteStyle) Code() diag.Code                { return diag.StyQuoteStyle }
func (QuoteStyle) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (QuoteStyle) Doc() string {
	return "short strings use the configured quote character (default double)"
}

func (QuoteStyle) Check(ctx *Context) {
	want := byte('"')
	if ctx.Config.Style.Quote == "single" {
		want = '\''
	}
	for i := range ctx.Tokens {
		t := &ctx.Tokens[i]
		if t.Kind != token.StringLit || len(t.Text) < 2 {
			continue
		}
		quote := t.Text[0]
		if quote == want {
			continue
		}
		body := t.Text[1 : len(t.Text)-1]
		if strings.IndexByte(body, want) >= 0 {
			// switching quotes would require escaping; allowed
			continue
		}
		fixed := string(want) + unescapeQuote(body, quote) + string(want)
		ctx.Report(t.Span, fmt.Sprintf("string uses %c quotes, prefer %c", quote, want)).
			WithFixSuggestion(diag.Fix{
				Title:         fmt.Sprintf("rewrite with %c quotes", want),
				Applicability: diag.FixApplicabilityAlwaysSafe,
				Edits: []diag.TextEdit{{
					Span:    t.Span,
					NewText: fixed,
					OldText: t.Text,
				}},
			}).
			Emit()
	}
}

// unescapeQuote drops the now-unnecessary escape of the old delimiter.
func unescapeQuote(body string, old byte) string {
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			if body[i+1] == old {
				b.WriteByte(old)
				i++
				continue
			}
			b.WriteByte(body[i])
			b.WriteByte(body[i+1])
			i++
			continue
		}
		b.WriteByte(body[i])
	}
	return b.String()
}
