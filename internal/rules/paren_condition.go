package rules

import (
	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/diag"
)

// ParenCondition flags conditions wrapped entirely in parentheses, as in
// `if (x) then`. Lua needs no parens there and the guide forbids them.
type ParenCondition struct{}

func (ParenCondition) Name() string                   { return "paren-condition" }
func (ParenCondition) Code() diag.Code                { return diag.StyParenCondition }
func (ParenCondition) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (ParenCondition) Doc() string {
	return "conditions of if/while/until are not parenthesized"
}

func (r ParenCondition) Check(ctx *Context) {
	ast.Inspect(ctx.Chunk, func(n ast.Node) bool {
		switch st := n.(type) {
		case *ast.IfStmt:
			for i := range st.Clauses {
				r.checkCond(ctx, st.Clauses[i].Cond)
			}
		case *ast.WhileStmt:
			r.checkCond(ctx, st.Cond)
		case *ast.RepeatStmt:
			r.checkCond(ctx, st.Cond)
		}
		return true
	})
}

func (ParenCondition) checkCond(ctx *Context, cond ast.Expr) {
	paren, ok := cond.(*ast.ParenExpr)
	if !ok {
		return
	}
	sp := paren.Sp
	if sp.Len() < 2 {
		return
	}
	open := span(sp.File, sp.Start, sp.Start+1)
	closing := span(sp.File, sp.End-1, sp.End)
	if ctx.Text(open) != "(" || ctx.Text(closing) != ")" {
		// recovery produced a partial span
		return
	}
	// `if(x)` would become `ifx` if the paren were simply dropped
	openReplacement := ""
	if sp.Start > 0 && isWordByte(ctx.File.Content[sp.Start-1]) {
		openReplacement = " "
	}
	closeReplacement := ""
	if int(sp.End) < len(ctx.File.Content) && isWordByte(ctx.File.Content[sp.End]) {
		closeReplacement = " "
	}
	ctx.Report(sp, "condition wrapped in parentheses").
		WithFixSuggestion(diag.Fix{
			Title:         "remove parentheses",
			Applicability: diag.FixApplicabilityAlwaysSafe,
			Edits: []diag.TextEdit{
				{Span: open, NewText: openReplacement, OldText: "("},
				{Span: closing, NewText: closeReplacement, OldText: ")"},
			},
		}).
		Emit()
}
