package rules

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
)

// IndentStyle enforces a single indentation character per file, tabs by
// default. Continuation lines of long strings and block comments are
// content and stay untouched.
type IndentStyle struct{}

func (IndentStyle) Name() string                   { return "indent-style" }
func (IndentStyle) Code() diag.Code                { return diag.StyIndentStyle }
func (IndentStyle) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (IndentStyle) Doc() string {
	return "indentation uses the configured character (default tabs)"
}

func (r IndentStyle) Check(ctx *Context) {
	protected := protectedSpans(ctx)
	wantTabs := ctx.Config.Style.Indent == "tab"
	width := ctx.Config.Style.IndentWidth
	ctx.Lines(func(lineNum int, line []byte, sp source.Span) {
		if lineIsContinuation(protected, sp.Start) {
			return
		}
		indent := leadingWS(line)
		if len(indent) == 0 || len(indent) == len(line) {
			// blank lines belong to trailing-whitespace
			return
		}
		bad := false
		var msg string
		if wantTabs {
			if bytes.IndexByte(indent, ' ') >= 0 {
				bad = true
				msg = "line indented with spaces, use tabs"
				if bytes.IndexByte(indent, '\t') >= 0 {
					msg = "mixed tabs and spaces in indentation"
				}
			}
		} else {
			if bytes.IndexByte(indent, '\t') >= 0 {
				bad = true
				msg = fmt.Sprintf("line indented with tabs, use %d spaces per level", width)
				if bytes.IndexByte(indent, ' ') >= 0 {
					msg = "mixed tabs and spaces in indentation"
				}
			}
		}
		if !bad {
			return
		}
		indentSpan := span(sp.File, sp.Start, sp.Start+uint32(len(indent)))
		cols := indentColumns(indent, width)
		var fixed string
		if wantTabs {
			fixed = strings.Repeat("\t", cols/width)
			if rem := cols % width; rem > 0 {
				fixed += strings.Repeat(" ", rem)
			}
		} else {
			fixed = strings.Repeat(" ", cols)
		}
		ctx.Report(indentSpan, msg).
			WithFixSuggestion(diag.Fix{
				Title:         "reindent line",
				Applicability: diag.FixApplicabilitySafeWithHeuristics,
				Edits: []diag.TextEdit{{
					Span:    indentSpan,
					NewText: fixed,
					OldText: string(indent),
				}},
			}).
			Emit()
	})
}

func leadingWS(line []byte) []byte {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// indentColumns measures the display width of an indent run, tabs advancing
// to the next stop.
func indentColumns(indent []byte, width int) int {
	col := 0
	for _, b := range indent {
		if b == '\t' {
			col += width - col%width
		} else {
			col++
		}
	}
	return col
}
