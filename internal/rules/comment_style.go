package rules

import (
	"strings"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/token"
)

// CommentStyle wants a space after the dashes of a line comment, so `--x`
// reads as `-- x`. Directive comments (`--!strict`), doc comment markers
// (`---`) and block comments are left alone.
type CommentStyle struct{}

func (CommentStyle) Name() string                   { return "comment-style" }
func (CommentStyle) Code() diag.Code                { return diag.StyCommentStyle }
func (CommentStyle) DefaultSeverity() diag.Severity { return diag.SevInfo }
func (CommentStyle) Doc() string {
	return "line comments have a space after the dashes"
}

func (CommentStyle) Check(ctx *Context) {
	for i := range ctx.Tokens {
		for _, tr := range ctx.Tokens[i].Leading {
			if tr.Kind != token.TriviaLineComment {
				continue
			}
			rest := strings.TrimPrefix(tr.Text, "--")
			if rest == "" || rest == tr.Text {
				continue
			}
			switch rest[0] {
			case ' ', '\t', '-', '!':
				continue
			}
			at := span(tr.Span.File, tr.Span.Start, tr.Span.Start+2)
			ctx.Report(at, "missing space after '--'").
				WithFixSuggestion(diag.Fix{
					Title:         "insert space after dashes",
					Applicability: diag.FixApplicabilityAlwaysSafe,
					Edits: []diag.TextEdit{{
						Span:    at,
						NewText: "-- ",
						OldText: "--",
					}},
				}).
				Emit()
		}
	}
}
