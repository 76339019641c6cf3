package rules

import (
	"fmt"

	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/diag"
)

// GlobalWrite flags assignments to undeclared names inside functions. A
// bare `x = 1` in a nested scope creates a global silently; the guide wants
// an explicit `local`. Top-level writes stay legal for the module pattern.
type GlobalWrite struct{}

func (GlobalWrite) Name() string                   { return "global-write" }
func (GlobalWrite) Code() diag.Code                { return diag.StyGlobalWrite }
func (GlobalWrite) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (GlobalWrite) Doc() string {
	return "no assignments to undeclared globals inside functions"
}

func (GlobalWrite) Check(ctx *Context) {
	w := &scopeWalker{ctx: ctx}
	w.push()
	w.block(ctx.Chunk.Block)
	w.pop()
}

// scopeWalker tracks lexical scopes the way the Lua compiler would: a local
// becomes visible after its declaring statement, a local function inside its
// own body, parameters and loop variables inside theirs.
type scopeWalker struct {
	ctx       *Context
	scopes    []map[string]bool
	funcDepth int
}

func (w *scopeWalker) push() {
	w.scopes = append(w.scopes, map[string]bool{})
}

func (w *scopeWalker) pop() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

func (w *scopeWalker) declare(name string) {
	w.scopes[len(w.scopes)-1][name] = true
}

func (w *scopeWalker) declared(name string) bool {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if w.scopes[i][name] {
			return true
		}
	}
	return false
}

func (w *scopeWalker) block(b *ast.Block) {
	w.push()
	for _, st := range b.Stmts {
		w.stmt(st)
	}
	w.pop()
}

func (w *scopeWalker) stmt(st ast.Stmt) {
	switch s := st.(type) {
	case *ast.LocalStmt:
		for _, e := range s.Exprs {
			w.expr(e)
		}
		for _, n := range s.Names {
			w.declare(n.Text)
		}
	case *ast.LocalFuncStmt:
		w.declare(s.Name.Text)
		w.expr(s.Func)
	case *ast.AssignStmt:
		for _, target := range s.Targets {
			if ne, ok := target.(*ast.NameExpr); ok {
				w.checkWrite(ne)
				continue
			}
			w.expr(target)
		}
		for _, e := range s.Exprs {
			w.expr(e)
		}
	case *ast.FuncStmt:
		// `function foo()` assigns too, but only the bare-name form
		if len(s.Name.Dots) == 0 && s.Name.Method == nil {
			w.checkWrite(&ast.NameExpr{Name: s.Name.Base, Sp: s.Name.Base.Sp})
		}
		w.expr(s.Func)
	case *ast.CallStmt:
		w.expr(s.Call)
	case *ast.DoStmt:
		w.block(s.Body)
	case *ast.WhileStmt:
		w.expr(s.Cond)
		w.block(s.Body)
	case *ast.RepeatStmt:
		// the until condition sees the loop body's locals
		w.push()
		for _, inner := range s.Body.Stmts {
			w.stmt(inner)
		}
		w.expr(s.Cond)
		w.pop()
	case *ast.IfStmt:
		for i := range s.Clauses {
			w.expr(s.Clauses[i].Cond)
			w.block(s.Clauses[i].Body)
		}
		if s.Else != nil {
			w.block(s.Else)
		}
	case *ast.NumericForStmt:
		w.expr(s.Start)
		w.expr(s.Stop)
		if s.Step != nil {
			w.expr(s.Step)
		}
		w.push()
		w.declare(s.Var.Text)
		for _, inner := range s.Body.Stmts {
			w.stmt(inner)
		}
		w.pop()
	case *ast.GenericForStmt:
		for _, e := range s.Exprs {
			w.expr(e)
		}
		w.push()
		for _, n := range s.Names {
			w.declare(n.Text)
		}
		for _, inner := range s.Body.Stmts {
			w.stmt(inner)
		}
		w.pop()
	case *ast.ReturnStmt:
		for _, e := range s.Exprs {
			w.expr(e)
		}
	}
}

func (w *scopeWalker) expr(e ast.Expr) {
	switch x := e.(type) {
	case *ast.FuncExpr:
		w.funcDepth++
		w.push()
		for _, p := range x.Params {
			w.declare(p.Text)
		}
		for _, inner := range x.Body.Stmts {
			w.stmt(inner)
		}
		w.pop()
		w.funcDepth--
	case *ast.IndexExpr:
		w.expr(x.Obj)
		if !x.Dot {
			w.expr(x.Key)
		}
	case *ast.CallExpr:
		w.expr(x.Fn)
		for _, a := range x.Args {
			w.expr(a)
		}
	case *ast.TableExpr:
		for i := range x.Fields {
			if x.Fields[i].Key != nil {
				w.expr(x.Fields[i].Key)
			}
			w.expr(x.Fields[i].Value)
		}
	case *ast.BinaryExpr:
		w.expr(x.L)
		w.expr(x.R)
	case *ast.UnaryExpr:
		w.expr(x.X)
	case *ast.ParenExpr:
		w.expr(x.Inner)
	}
}

func (w *scopeWalker) checkWrite(ne *ast.NameExpr) {
	if w.funcDepth == 0 || w.declared(ne.Name.Text) {
		return
	}
	w.ctx.Report(ne.Sp, fmt.Sprintf("assignment creates global %q", ne.Name.Text)).
		WithNote(ne.Sp, "declare it with 'local', or assign on the module table").
		Emit()
}
