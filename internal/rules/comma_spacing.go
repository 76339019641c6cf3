package rules

import (
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/token"
)

// CommaSpacing wants `a, b`: no whitespace before a comma, exactly one
// space (or a line break) after it.
type CommaSpacing struct{}

func (CommaSpacing) Name() string                   { return "comma-spacing" }
func (CommaSpacing) Code() diag.Code                { return diag.StyCommaSpacing }
func (CommaSpacing) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (CommaSpacing) Doc() string {
	return "no space before a comma, one space after"
}

func (r CommaSpacing) Check(ctx *Context) {
	content := ctx.File.Content
	for i := range ctx.Tokens {
		t := &ctx.Tokens[i]
		if t.Kind != token.Comma {
			continue
		}
		if start := wsStartBefore(content, t.Span.Start); start < t.Span.Start && !atLineStart(content, t.Span.Start) {
			bad := span(t.Span.File, start, t.Span.Start)
			ctx.Report(bad, "whitespace before comma").
				WithFixSuggestion(diag.Fix{
					Title:         "remove whitespace before comma",
					Applicability: diag.FixApplicabilityAlwaysSafe,
					Edits: []diag.TextEdit{{
						Span:    bad,
						NewText: "",
						OldText: ctx.Text(bad),
					}},
				}).
				Emit()
		}
		end := wsEndAfter(content, t.Span.End)
		if int(t.Span.End) >= len(content) {
			continue
		}
		nextAfterWS := byte('\n')
		if int(end) < len(content) {
			nextAfterWS = content[end]
		}
		if nextAfterWS == '\n' || nextAfterWS == '\r' {
			// comma at line end, the break supplies the separation
			continue
		}
		if nextAfterWS == '}' || nextAfterWS == ')' || nextAfterWS == ']' {
			// trailing comma against a closer is trailing-comma's call
			continue
		}
		run := string(content[t.Span.End:end])
		if run == " " {
			continue
		}
		after := span(t.Span.File, t.Span.End, end)
		ctx.Report(after, "expected one space after comma").
			WithFixSuggestion(diag.Fix{
				Title:         "normalize spacing after comma",
				Applicability: diag.FixApplicabilityAlwaysSafe,
				Edits: []diag.TextEdit{{
					Span:    after,
					NewText: " ",
					OldText: run,
				}},
			}).
			Emit()
	}
}
