package ast

import (
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// NilExpr is the `nil` literal.
type NilExpr struct{ Sp source.Span }

// TrueExpr is the `true` literal.
type TrueExpr struct{ Sp source.Span }

// FalseExpr is the `false` literal.
type FalseExpr struct{ Sp source.Span }

// VarargExpr is `...`.
type VarargExpr struct{ Sp source.Span }

// NumberExpr is a numeric literal; Raw keeps the source text.
type NumberExpr struct {
	Raw string
	Sp  source.Span
}

// StringExpr is a string literal. Quote is the delimiter byte for short
// strings ('\'' or '"'); Long is set for long-bracket strings.
type StringExpr struct {
	Raw   string
	Quote byte
	Long  bool
	Sp    source.Span
}

// NameExpr is a bare identifier used as an expression.
type NameExpr struct {
	Name Name
	Sp   source.Span
}

// IndexExpr is `obj.key` (Dot set, Key a StringExpr synthesized from the
// name) or `obj[key]`.
type IndexExpr struct {
	Obj  Expr
	Key  Expr
	Dot  bool
	Name *Name // the identifier after '.', when Dot
	Sp   source.Span
}

// ArgStyle distinguishes the three Lua call argument forms.
type ArgStyle uint8

const (
	ArgsParen  ArgStyle = iota // f(a, b)
	ArgsString                 // f "literal"
	ArgsTable                  // f { ... }
)

// CallExpr is a function or method call.
type CallExpr struct {
	Fn     Expr
	Method *Name // set for `obj:m(...)`
	Args   []Expr
	Style  ArgStyle
	// Commas are the spans of the argument separators (paren style only).
	Commas []source.Span
	Sp     source.Span
}

// FuncExpr is a function body: `function (params) ... end`.
type FuncExpr struct {
	Params   []Name
	IsVararg bool
	Body     *Block
	Sp       source.Span
}

// TableSep is the separator after a table field.
type TableSep uint8

const (
	SepNone TableSep = iota
	SepComma
	SepSemicolon
)

// TableField is one entry of a table constructor: `value`, `name = value`,
// or `[key] = value`.
type TableField struct {
	Name    *Name // `name = value`
	Key     Expr  // `[key] = value`
	Value   Expr
	Sep     TableSep
	SepSpan source.Span // valid when Sep != SepNone
	Sp      source.Span
}

// TableExpr is a table constructor `{ ... }`.
type TableExpr struct {
	Fields []TableField
	Lbrace source.Span
	Rbrace source.Span
	Sp     source.Span
}

// BinaryExpr is `l op r`.
type BinaryExpr struct {
	Op     token.Kind
	OpSpan source.Span
	L, R   Expr
	Sp     source.Span
}

// UnaryExpr is `op x` (not, -, #).
type UnaryExpr struct {
	Op     token.Kind
	OpSpan source.Span
	X      Expr
	Sp     source.Span
}

// ParenExpr is `(inner)`. Lua gives parentheses meaning (truncation to one
// value), so they are kept in the tree.
type ParenExpr struct {
	Inner Expr
	Sp    source.Span
}

func (e *NilExpr) Span() source.Span    { return e.Sp }
func (e *TrueExpr) Span() source.Span   { return e.Sp }
func (e *FalseExpr) Span() source.Span  { return e.Sp }
func (e *VarargExpr) Span() source.Span { return e.Sp }
func (e *NumberExpr) Span() source.Span { return e.Sp }
func (e *StringExpr) Span() source.Span { return e.Sp }
func (e *NameExpr) Span() source.Span   { return e.Sp }
func (e *IndexExpr) Span() source.Span  { return e.Sp }
func (e *CallExpr) Span() source.Span   { return e.Sp }
func (e *FuncExpr) Span() source.Span   { return e.Sp }
func (e *TableExpr) Span() source.Span  { return e.Sp }
func (e *BinaryExpr) Span() source.Span { return e.Sp }
func (e *UnaryExpr) Span() source.Span  { return e.Sp }
func (e *ParenExpr) Span() source.Span  { return e.Sp }

func (*NilExpr) exprNode()    {}
func (*TrueExpr) exprNode()   {}
func (*FalseExpr) exprNode()  {}
func (*VarargExpr) exprNode() {}
func (*NumberExpr) exprNode() {}
func (*StringExpr) exprNode() {}
func (*NameExpr) exprNode()   {}
func (*IndexExpr) exprNode()  {}
func (*CallExpr) exprNode()   {}
func (*FuncExpr) exprNode()   {}
func (*TableExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*ParenExpr) exprNode()  {}
