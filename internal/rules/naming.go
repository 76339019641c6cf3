package rules

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/diag"
)

// Naming checks identifier casing: locals, parameters, and functions are
// camelCase; constants may be LOUD_SNAKE_CASE; class-like tables and their
// methods are PascalCase. Identifiers must also be in Unicode NFC so that
// visually identical names compare equal.
type Naming struct{}

func (Naming) Name() string                   { return "naming" }
func (Naming) Code() diag.Code                { return diag.StyNaming }
func (Naming) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (Naming) Doc() string {
	return "camelCase locals and functions, LOUD_SNAKE_CASE constants, PascalCase classes"
}

func (r Naming) Check(ctx *Context) {
	ast.Inspect(ctx.Chunk, func(n ast.Node) bool {
		switch st := n.(type) {
		case *ast.LocalStmt:
			for _, name := range st.Names {
				r.checkLocal(ctx, name)
			}
		case *ast.LocalFuncStmt:
			r.checkFunc(ctx, st.Name, false)
		case *ast.FuncStmt:
			r.checkFuncName(ctx, st.Name)
		case *ast.NumericForStmt:
			r.checkLocal(ctx, st.Var)
		case *ast.GenericForStmt:
			for _, name := range st.Names {
				r.checkLocal(ctx, name)
			}
		case *ast.FuncExpr:
			for _, name := range st.Params {
				r.checkLocal(ctx, name)
			}
		}
		return true
	})
}

func (r Naming) checkLocal(ctx *Context, name ast.Name) {
	if !r.checkNFC(ctx, name) {
		return
	}
	if isIgnoredName(name.Text) {
		return
	}
	// PascalCase locals hold class-like tables, LOUD_SNAKE locals constants
	if isCamelCase(name.Text) || isPascalCase(name.Text) || isLoudSnakeCase(name.Text) {
		return
	}
	ctx.Report(name.Sp, fmt.Sprintf("name %q should be camelCase (or LOUD_SNAKE_CASE for constants)", name.Text)).Emit()
}

func (r Naming) checkFuncName(ctx *Context, fn ast.FuncName) {
	classLike := isPascalCase(fn.Base.Text)
	if fn.Method != nil {
		r.checkFunc(ctx, *fn.Method, classLike)
		return
	}
	if len(fn.Dots) > 0 {
		r.checkFunc(ctx, fn.Dots[len(fn.Dots)-1], classLike)
		return
	}
	r.checkFunc(ctx, fn.Base, false)
}

func (r Naming) checkFunc(ctx *Context, name ast.Name, allowPascal bool) {
	if !r.checkNFC(ctx, name) {
		return
	}
	if isIgnoredName(name.Text) || isCamelCase(name.Text) {
		return
	}
	if allowPascal && isPascalCase(name.Text) {
		return
	}
	want := "camelCase"
	if allowPascal {
		want = "camelCase or PascalCase"
	}
	ctx.Report(name.Sp, fmt.Sprintf("function name %q should be %s", name.Text, want)).Emit()
}

// checkNFC reports a diagnostic for non-NFC identifiers and returns false,
// since casing checks on a denormalized name would be noise.
func (r Naming) checkNFC(ctx *Context, name ast.Name) bool {
	if norm.NFC.IsNormalString(name.Text) {
		return true
	}
	ctx.Report(name.Sp, fmt.Sprintf("identifier %q is not in Unicode NFC form", name.Text)).
		WithNote(name.Sp, "an equal-looking name with different code points would be a different variable").
		Emit()
	return false
}

// isIgnoredName skips placeholder identifiers like `_` and `_unused`.
func isIgnoredName(s string) bool {
	return strings.HasPrefix(s, "_")
}

func isCamelCase(s string) bool {
	if s == "" || strings.ContainsRune(s, '_') {
		return false
	}
	first := []rune(s)[0]
	return unicode.IsLower(first)
}

func isPascalCase(s string) bool {
	if s == "" || strings.ContainsRune(s, '_') {
		return false
	}
	first := []rune(s)[0]
	return unicode.IsUpper(first) && s != strings.ToUpper(s)
}

func isLoudSnakeCase(s string) bool {
	if s == "" {
		return false
	}
	upper := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case r == '_' || unicode.IsDigit(r):
		default:
			return false
		}
	}
	return upper
}
