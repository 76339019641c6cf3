package rules

import (
	"fmt"

	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// OperatorSpacing wants single spaces around binary operators and `=`, and
// none after the unary operators `-` and `#`. Operators at a line break are
// left alone.
type OperatorSpacing struct{}

func (OperatorSpacing) Name() string                   { return "operator-spacing" }
func (OperatorSpacing) Code() diag.Code                { return diag.StyOperatorSpacing }
func (OperatorSpacing) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (OperatorSpacing) Doc() string {
	return "single spaces around binary operators, none after unary ones"
}

func (r OperatorSpacing) Check(ctx *Context) {
	ast.Inspect(ctx.Chunk, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.BinaryExpr:
			r.checkBinary(ctx, x.OpSpan, x.Op)
		case *ast.UnaryExpr:
			r.checkUnary(ctx, x.OpSpan, x.Op)
		case *ast.AssignStmt:
			r.checkBinary(ctx, x.OpSpan, x.Op)
		case *ast.LocalStmt:
			if sp, ok := r.localAssignSpan(ctx, x); ok {
				r.checkBinary(ctx, sp, token.Assign)
			}
		case *ast.TableExpr:
			for i := range x.Fields {
				f := &x.Fields[i]
				if f.Name == nil && f.Key == nil {
					continue
				}
				var after uint32
				if f.Name != nil {
					after = f.Name.Sp.End
				} else {
					after = f.Key.Span().End
				}
				idx := tokenIndexAfter(ctx.Tokens, after)
				for ; idx < len(ctx.Tokens) && ctx.Tokens[idx].Span.End <= f.Value.Span().Start; idx++ {
					if ctx.Tokens[idx].Kind == token.Assign {
						r.checkBinary(ctx, ctx.Tokens[idx].Span, token.Assign)
						break
					}
				}
			}
		}
		return true
	})
}

// localAssignSpan finds the `=` token of a local declaration with
// initializers; the node does not record it.
func (OperatorSpacing) localAssignSpan(ctx *Context, st *ast.LocalStmt) (source.Span, bool) {
	if len(st.Exprs) == 0 || len(st.Names) == 0 {
		return source.Span{}, false
	}
	after := st.Names[len(st.Names)-1].Sp.End
	if t, ok := tokenAfter(ctx.Tokens, after); ok && t.Kind == token.Assign {
		return t.Span, true
	}
	return source.Span{}, false
}

func (r OperatorSpacing) checkBinary(ctx *Context, op source.Span, kind token.Kind) {
	content := ctx.File.Content
	var edits []diag.TextEdit

	if !atLineStart(content, op.Start) {
		start := wsStartBefore(content, op.Start)
		if run := string(content[start:op.Start]); run != " " {
			edits = append(edits, diag.TextEdit{
				Span:    span(op.File, start, op.Start),
				NewText: " ",
				OldText: run,
			})
		}
	}
	if int(op.End) < len(content) && content[op.End] != '\n' && content[op.End] != '\r' {
		end := wsEndAfter(content, op.End)
		if run := string(content[op.End:end]); run != " " {
			edits = append(edits, diag.TextEdit{
				Span:    span(op.File, op.End, end),
				NewText: " ",
				OldText: run,
			})
		}
	}
	if len(edits) == 0 {
		return
	}
	ctx.Report(op, fmt.Sprintf("operator %s should be surrounded by single spaces", kind)).
		WithFixSuggestion(diag.Fix{
			Title:         "normalize operator spacing",
			Applicability: diag.FixApplicabilityAlwaysSafe,
			Edits:         edits,
		}).
		Emit()
}

func (r OperatorSpacing) checkUnary(ctx *Context, op source.Span, kind token.Kind) {
	content := ctx.File.Content
	end := wsEndAfter(content, op.End)
	run := string(content[op.End:end])
	if kind == token.KwNot {
		// `not` is a word, one space reads best
		if run == " " || run == "" {
			return
		}
		ctx.Report(op, "one space after 'not'").
			WithFixSuggestion(diag.Fix{
				Title:         "normalize spacing after not",
				Applicability: diag.FixApplicabilityAlwaysSafe,
				Edits: []diag.TextEdit{{
					Span:    span(op.File, op.End, end),
					NewText: " ",
					OldText: run,
				}},
			}).
			Emit()
		return
	}
	if run == "" {
		return
	}
	// deleting the gap in `- -x` would create a comment
	if int(end) < len(content) && content[end] == '-' {
		return
	}
	ctx.Report(op, fmt.Sprintf("no space after unary %s", kind)).
		WithFixSuggestion(diag.Fix{
			Title:         "remove space after unary operator",
			Applicability: diag.FixApplicabilityAlwaysSafe,
			Edits: []diag.TextEdit{{
				Span:    span(op.File, op.End, end),
				NewText: "",
				OldText: run,
			}},
		}).
		Emit()
}
