package rules

import (
	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// Semicolon forbids semicolon statement terminators and empty statements.
// Table constructor separators are not statements and stay untouched.
type Semicolon struct{}

func (Semicolon) Name() string                   { return "semicolon" }
func (Semicolon) Code() diag.Code                { return diag.StySemicolon }
func (Semicolon) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (Semicolon) Doc() string {
	return "statements are not terminated with semicolons"
}

func (r Semicolon) Check(ctx *Context) {
	ast.Inspect(ctx.Chunk, func(n ast.Node) bool {
		var semi *source.Span
		switch st := n.(type) {
		case *ast.LocalStmt:
			semi = st.Semi
		case *ast.AssignStmt:
			semi = st.Semi
		case *ast.CallStmt:
			semi = st.Semi
		case *ast.ReturnStmt:
			semi = st.Semi
		case *ast.EmptyStmt:
			sp := st.Sp
			semi = &sp
		}
		if semi == nil {
			return true
		}
		r.report(ctx, *semi)
		return true
	})
}

func (Semicolon) report(ctx *Context, sp source.Span) {
	// `a = b; (f)()` relies on the semicolon to split the statements, so
	// deleting it in front of a paren is only heuristically safe.
	applicability := diag.FixApplicabilityAlwaysSafe
	if next, ok := tokenAfter(ctx.Tokens, sp.End); ok && next.Kind == token.LParen {
		applicability = diag.FixApplicabilitySafeWithHeuristics
	}
	// take the whitespace in front of the semicolon with it
	start := wsStartBefore(ctx.File.Content, sp.Start)
	del := span(sp.File, start, sp.End)
	ctx.Report(sp, "semicolon statement terminator").
		WithFixSuggestion(diag.Fix{
			Title:         "remove semicolon",
			Applicability: applicability,
			Edits: []diag.TextEdit{{
				Span:    del,
				NewText: "",
				OldText: ctx.Text(del),
			}},
		}).
		Emit()
}
