package ast

import (
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Attrib is a `<const>` or `<close>` attribute on a declared local.
type Attrib struct {
	Name Name
	Sp   source.Span // includes the angle brackets
}

// LocalStmt is `local a, b = e1, e2` (exprs may be absent). Attribs, when
// non-nil, runs parallel to Names with nil entries for unattributed names.
type LocalStmt struct {
	Names   []Name
	Attribs []*Attrib
	Exprs   []Expr
	Semi    *source.Span // trailing semicolon, when present
	Sp      source.Span
}

// AssignStmt is `lhs1, lhs2 = e1, e2` or a Luau compound assignment
// (`x += 1`), in which case Op is the compound operator and Targets/Exprs
// have exactly one element.
type AssignStmt struct {
	Targets []Expr // NameExpr or IndexExpr
	Exprs   []Expr
	Op      token.Kind // token.Assign or a compound kind
	OpSpan  source.Span
	Semi    *source.Span
	Sp      source.Span
}

// CallStmt is an expression statement: a function or method call.
type CallStmt struct {
	Call Expr // *CallExpr
	Semi *source.Span
	Sp   source.Span
}

// DoStmt is `do ... end`.
type DoStmt struct {
	Body *Block
	Sp   source.Span
}

// WhileStmt is `while cond do ... end`.
type WhileStmt struct {
	Cond Expr
	Body *Block
	Sp   source.Span
}

// RepeatStmt is `repeat ... until cond`.
type RepeatStmt struct {
	Body *Block
	Cond Expr
	Sp   source.Span
}

// IfClause is one `if`/`elseif` arm.
type IfClause struct {
	Cond Expr
	Body *Block
	Sp   source.Span
}

// IfStmt is `if ... then ... [elseif ...]* [else ...] end`.
type IfStmt struct {
	Clauses []IfClause
	Else    *Block
	Sp      source.Span
}

// NumericForStmt is `for i = start, stop [, step] do ... end`.
type NumericForStmt struct {
	Var   Name
	Start Expr
	Stop  Expr
	Step  Expr // nil when absent
	Body  *Block
	Sp    source.Span
}

// GenericForStmt is `for a, b in exprs do ... end`.
type GenericForStmt struct {
	Names []Name
	Exprs []Expr
	Body  *Block
	Sp    source.Span
}

// FuncName is `a.b.c` or `a.b:m` in a function declaration.
type FuncName struct {
	Base   Name
	Dots   []Name
	Method *Name // set for `function a:m()`
	Sp     source.Span
}

func (n FuncName) Span() source.Span { return n.Sp }

// FuncStmt is `function name() ... end`.
type FuncStmt struct {
	Name FuncName
	Func *FuncExpr
	Sp   source.Span
}

// LocalFuncStmt is `local function name() ... end`.
type LocalFuncStmt struct {
	Name Name
	Func *FuncExpr
	Sp   source.Span
}

// ReturnStmt is `return [exprs]`.
type ReturnStmt struct {
	Exprs []Expr
	Semi  *source.Span
	Sp    source.Span
}

// BreakStmt is `break`.
type BreakStmt struct {
	Sp source.Span
}

// ContinueStmt is Luau's contextual `continue`.
type ContinueStmt struct {
	Sp source.Span
}

// GotoStmt is `goto label`.
type GotoStmt struct {
	Label Name
	Sp    source.Span
}

// LabelStmt is `::label::`.
type LabelStmt struct {
	Name Name
	Sp   source.Span
}

// EmptyStmt is a lone `;`.
type EmptyStmt struct {
	Sp source.Span
}

func (s *LocalStmt) Span() source.Span      { return s.Sp }
func (s *AssignStmt) Span() source.Span     { return s.Sp }
func (s *CallStmt) Span() source.Span       { return s.Sp }
func (s *DoStmt) Span() source.Span         { return s.Sp }
func (s *WhileStmt) Span() source.Span      { return s.Sp }
func (s *RepeatStmt) Span() source.Span     { return s.Sp }
func (s *IfStmt) Span() source.Span         { return s.Sp }
func (s *NumericForStmt) Span() source.Span { return s.Sp }
func (s *GenericForStmt) Span() source.Span { return s.Sp }
func (s *FuncStmt) Span() source.Span       { return s.Sp }
func (s *LocalFuncStmt) Span() source.Span  { return s.Sp }
func (s *ReturnStmt) Span() source.Span     { return s.Sp }
func (s *BreakStmt) Span() source.Span      { return s.Sp }
func (s *ContinueStmt) Span() source.Span   { return s.Sp }
func (s *GotoStmt) Span() source.Span       { return s.Sp }
func (s *LabelStmt) Span() source.Span      { return s.Sp }
func (s *EmptyStmt) Span() source.Span      { return s.Sp }

func (*LocalStmt) stmtNode()      {}
func (*AssignStmt) stmtNode()     {}
func (*CallStmt) stmtNode()       {}
func (*DoStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*RepeatStmt) stmtNode()     {}
func (*IfStmt) stmtNode()         {}
func (*NumericForStmt) stmtNode() {}
func (*GenericForStmt) stmtNode() {}
func (*FuncStmt) stmtNode()       {}
func (*LocalFuncStmt) stmtNode()  {}
func (*ReturnStmt) stmtNode()     {}
func (*BreakStmt) stmtNode()      {}
func (*ContinueStmt) stmtNode()   {}
func (*GotoStmt) stmtNode()       {}
func (*LabelStmt) stmtNode()      {}
func (*EmptyStmt) stmtNode()      {}
