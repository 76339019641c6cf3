package rules

import (
	"bytes"

	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/diag"
)

// TrailingComma requires a comma after the last field of a multiline table
// constructor and forbids one in single-line constructors.
type TrailingComma struct{}

func (TrailingComma) Name() string                   { return "trailing-comma" }
func (TrailingComma) Code() diag.Code                { return diag.StyTrailingComma }
func (TrailingComma) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (TrailingComma) Doc() string {
	return "multiline tables end with a trailing comma, single-line tables do not"
}

func (r TrailingComma) Check(ctx *Context) {
	ast.Inspect(ctx.Chunk, func(n ast.Node) bool {
		tbl, ok := n.(*ast.TableExpr)
		if !ok || len(tbl.Fields) == 0 || tbl.Rbrace.Len() == 0 {
			return true
		}
		last := &tbl.Fields[len(tbl.Fields)-1]
		multiline := bytes.IndexByte(ctx.File.Content[tbl.Lbrace.Start:tbl.Rbrace.End], '\n') >= 0
		switch {
		case multiline && last.Sep == ast.SepNone:
			at := span(last.Sp.File, last.Sp.End, last.Sp.End)
			ctx.Report(last.Sp, "multiline table field needs a trailing comma").
				WithFixSuggestion(diag.Fix{
					Title:         "add trailing comma",
					Applicability: diag.FixApplicabilityAlwaysSafe,
					Edits:         []diag.TextEdit{{Span: at, NewText: ","}},
				}).
				Emit()
		case multiline && last.Sep == ast.SepSemicolon:
			ctx.Report(last.SepSpan, "use a comma, not a semicolon, after the last table field").
				WithFixSuggestion(diag.Fix{
					Title:         "replace semicolon with comma",
					Applicability: diag.FixApplicabilityAlwaysSafe,
					Edits:         []diag.TextEdit{{Span: last.SepSpan, NewText: ",", OldText: ";"}},
				}).
				Emit()
		case !multiline && last.Sep != ast.SepNone:
			old := ","
			if last.Sep == ast.SepSemicolon {
				old = ";"
			}
			ctx.Report(last.SepSpan, "single-line table must not have a trailing separator").
				WithFixSuggestion(diag.Fix{
					Title:         "remove trailing separator",
					Applicability: diag.FixApplicabilityAlwaysSafe,
					Edits:         []diag.TextEdit{{Span: last.SepSpan, NewText: "", OldText: old}},
				}).
				Emit()
		}
		return true
	})
}
