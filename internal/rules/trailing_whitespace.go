package rules

import (
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
)

// TrailingWhitespace flags spaces and tabs before a line break.
type TrailingWhitespace struct{}

func (TrailingWhitespace) Name() string                   { return "trailing-whitespace" }
func (TrailingWhitespace) Code() diag.Code                { return diag.StyTrailingWhitespace }
func (TrailingWhitespace) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (TrailingWhitespace) Doc() string {
	return "no trailing spaces or tabs at line ends"
}

func (TrailingWhitespace) Check(ctx *Context) {
	protected := protectedSpans(ctx)
	ctx.Lines(func(lineNum int, line []byte, sp source.Span) {
		if lineIsContinuation(protected, sp.Start) {
			return
		}
		end := len(line)
		start := end
		for start > 0 && (line[start-1] == ' ' || line[start-1] == '\t') {
			start--
		}
		if start == end {
			return
		}
		wsSpan := span(sp.File, sp.Start+uint32(start), sp.Start+uint32(end))
		ctx.Report(wsSpan, "trailing whitespace").
			WithFixSuggestion(diag.Fix{
				Title:         "remove trailing whitespace",
				Applicability: diag.FixApplicabilityAlwaysSafe,
				Edits: []diag.TextEdit{{
					Span:    wsSpan,
					NewText: "",
					OldText: string(line[start:end]),
				}},
			}).
			Emit()
	})
}
