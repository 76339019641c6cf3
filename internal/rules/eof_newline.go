package rules

import (
	"github.com/dgxo/luastyle/internal/diag"
)

// EOFNewline wants files to end with exactly one newline.
type EOFNewline struct{}

func (EOFNewline) Name() string                   { return "eof-newline" }
func (EOFNewline) Code() diag.Code                { return diag.StyEOFNewline }
func (EOFNewline) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (EOFNewline) Doc() string {
	return "files end with exactly one newline"
}

func (EOFNewline) Check(ctx *Context) {
	content := ctx.File.Content
	if len(content) == 0 {
		return
	}
	n := uint32(len(content))
	if content[n-1] != '\n' {
		at := span(ctx.File.ID, n, n)
		ctx.Report(at, "no newline at end of file").
			WithFixSuggestion(diag.Fix{
				Title:         "add final newline",
				Applicability: diag.FixApplicabilityAlwaysSafe,
				Edits:         []diag.TextEdit{{Span: at, NewText: "\n"}},
			}).
			Emit()
		return
	}
	// trim the extra blank lines, keep one newline; trailing spaces on a
	// blank last line belong to trailing-whitespace
	end := n - 1
	start := end
	for start > 0 && content[start-1] == '\n' {
		start--
	}
	if start == end {
		return
	}
	extra := span(ctx.File.ID, start, end)
	ctx.Report(extra, "multiple newlines at end of file").
		WithFixSuggestion(diag.Fix{
			Title:         "trim blank lines at end of file",
			Applicability: diag.FixApplicabilityAlwaysSafe,
			Edits: []diag.TextEdit{{
				Span:    extra,
				NewText: "",
				OldText: ctx.Text(extra),
			}},
		}).
		Emit()
}
