package parser

import (
	"fmt"

	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// Operator priorities, following the reference Lua grammar. Right-associative
// operators carry a lower right priority so they recurse on themselves.
type opPrio struct {
	left  uint8
	right uint8
}

var binaryPrio = map[token.Kind]opPrio{
	token.KwOr:       {1, 1},
	token.KwAnd:      {2, 2},
	token.Lt:         {3, 3},
	token.Gt:         {3, 3},
	token.LtEq:       {3, 3},
	token.GtEq:       {3, 3},
	token.TildeEq:    {3, 3},
	token.EqEq:       {3, 3},
	token.Concat:     {5, 4}, // right assoc
	token.Plus:       {6, 6},
	token.Minus:      {6, 6},
	token.Star:       {7, 7},
	token.Slash:      {7, 7},
	token.SlashSlash: {7, 7},
	token.Percent:    {7, 7},
	token.Caret:      {10, 9}, // right assoc, above unary
}

const unaryPrio = 8

func (p *Parser) parseExpr() ast.Expr {
	e := p.parseSubExpr(0)
	if e == nil {
		p.errHere(diag.SynExpectExpression, fmt.Sprintf("expected expression, found %s", p.tok().Kind))
		return &ast.NilExpr{Sp: source.Span{File: p.file, Start: p.tok().Span.Start, End: p.tok().Span.Start}}
	}
	return e
}

func (p *Parser) parseExprList() []ast.Expr {
	exprs := []ast.Expr{p.parseExpr()}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		exprs = append(exprs, p.parseExpr())
	}
	return exprs
}

// parseSubExpr parses an expression whose binary operators all bind tighter
// than limit. Returns nil when no expression starts here.
func (p *Parser) parseSubExpr(limit uint8) ast.Expr {
	var left ast.Expr
	switch p.tok().Kind {
	case token.KwNot, token.Minus, token.Hash:
		op := p.advance()
		x := p.parseSubExpr(unaryPrio)
		if x == nil {
			p.errHere(diag.SynExpectExpression, fmt.Sprintf("expected operand after %s", op.Kind))
			return nil
		}
		left = &ast.UnaryExpr{Op: op.Kind, OpSpan: op.Span, X: x, Sp: cover(op.Span, x.Span())}
	default:
		left = p.parseSimpleExpr()
		if left == nil {
			return nil
		}
	}
	for {
		prio, ok := binaryPrio[p.tok().Kind]
		if !ok || prio.left <= limit {
			break
		}
		op := p.advance()
		right := p.parseSubExpr(prio.right)
		if right == nil {
			p.errHere(diag.SynExpectExpression, fmt.Sprintf("expected operand after %s", op.Kind))
			return left
		}
		left = &ast.BinaryExpr{
			Op: op.Kind, OpSpan: op.Span, L: left, R: right,
			Sp: cover(left.Span(), right.Span()),
		}
	}
	return left
}

func (p *Parser) parseSimpleExpr() ast.Expr {
	switch p.tok().Kind {
	case token.KwNil:
		return &ast.NilExpr{Sp: p.advance().Span}
	case token.KwTrue:
		return &ast.TrueExpr{Sp: p.advance().Span}
	case token.KwFalse:
		return &ast.FalseExpr{Sp: p.advance().Span}
	case token.Ellipsis:
		return &ast.VarargExpr{Sp: p.advance().Span}
	case token.NumberLit:
		t := p.advance()
		return &ast.NumberExpr{Raw: t.Text, Sp: t.Span}
	case token.StringLit:
		t := p.advance()
		return &ast.StringExpr{Raw: t.Text, Quote: t.Text[0], Sp: t.Span}
	case token.LongStringLit:
		t := p.advance()
		return &ast.StringExpr{Raw: t.Text, Long: true, Sp: t.Span}
	case token.KwFunction:
		start := p.advance().Span
		return p.parseFuncBody(start)
	case token.LBrace:
		return p.parseTable()
	case token.Ident, token.LParen:
		return p.parseSuffixedExpr()
	default:
		return nil
	}
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.tok().Kind {
	case token.Ident:
		t := p.advance()
		return &ast.NameExpr{Name: ast.Name{Text: t.Text, Sp: t.Span}, Sp: t.Span}
	case token.LParen:
		open := p.advance()
		inner := p.parseExpr()
		closing, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parenthesized expression")
		sp := cover(open.Span, inner.Span())
		if ok {
			sp = cover(sp, closing.Span)
		}
		return &ast.ParenExpr{Inner: inner, Sp: sp}
	default:
		return nil
	}
}

// parseSuffixedExpr parses a primary expression followed by any number of
// index, field, and call suffixes.
func (p *Parser) parseSuffixedExpr() ast.Expr {
	e := p.parsePrimaryExpr()
	if e == nil {
		return nil
	}
	for {
		switch p.tok().Kind {
		case token.Dot:
			p.advance()
			n, ok := p.parseName()
			if !ok {
				return e
			}
			e = &ast.IndexExpr{
				Obj: e, Dot: true, Name: &n,
				Key: &ast.StringExpr{Raw: n.Text, Sp: n.Sp},
				Sp:  cover(e.Span(), n.Sp),
			}
		case token.LBracket:
			p.advance()
			key := p.parseExpr()
			closing, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close index expression")
			sp := cover(e.Span(), key.Span())
			if ok {
				sp = cover(sp, closing.Span)
			}
			e = &ast.IndexExpr{Obj: e, Key: key, Sp: sp}
		case token.Colon:
			p.advance()
			n, ok := p.parseName()
			if !ok {
				return e
			}
			call := p.parseCallArgs(e)
			if call == nil {
				p.errHere(diag.SynUnexpectedToken, "expected arguments after method name")
				return e
			}
			call.Method = &n
			e = call
		case token.LParen, token.StringLit, token.LongStringLit, token.LBrace:
			call := p.parseCallArgs(e)
			if call == nil {
				return e
			}
			e = call
		default:
			return e
		}
	}
}

// parseCallArgs parses one of Lua's three call argument forms. Returns nil
// when the current token does not start arguments.
func (p *Parser) parseCallArgs(fn ast.Expr) *ast.CallExpr {
	switch p.tok().Kind {
	case token.LParen:
		open := p.advance()
		call := &ast.CallExpr{Fn: fn, Style: ast.ArgsParen}
		if !p.at(token.RParen) {
			call.Args = append(call.Args, p.parseExpr())
			for {
				c, ok := p.accept(token.Comma)
				if !ok {
					break
				}
				call.Commas = append(call.Commas, c.Span)
				call.Args = append(call.Args, p.parseExpr())
			}
		}
		closing, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
		sp := cover(fn.Span(), open.Span)
		if ok {
			sp = cover(sp, closing.Span)
		} else if len(call.Args) > 0 {
			sp = cover(sp, call.Args[len(call.Args)-1].Span())
		}
		call.Sp = sp
		return call
	case token.StringLit:
		t := p.advance()
		arg := &ast.StringExpr{Raw: t.Text, Quote: t.Text[0], Sp: t.Span}
		return &ast.CallExpr{Fn: fn, Args: []ast.Expr{arg}, Style: ast.ArgsString, Sp: cover(fn.Span(), t.Span)}
	case token.LongStringLit:
		t := p.advance()
		arg := &ast.StringExpr{Raw: t.Text, Long: true, Sp: t.Span}
		return &ast.CallExpr{Fn: fn, Args: []ast.Expr{arg}, Style: ast.ArgsString, Sp: cover(fn.Span(), t.Span)}
	case token.LBrace:
		tbl := p.parseTable()
		return &ast.CallExpr{Fn: fn, Args: []ast.Expr{tbl}, Style: ast.ArgsTable, Sp: cover(fn.Span(), tbl.Span())}
	default:
		return nil
	}
}

// parseFuncBody parses `(params) block end`; start is the span of the
// `function` keyword (or of `local` for local functions).
func (p *Parser) parseFuncBody(start source.Span) *ast.FuncExpr {
	fn := &ast.FuncExpr{}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to start parameter list"); ok {
		for !p.at(token.RParen) && !p.at(token.EOF) {
			if _, ok := p.accept(token.Ellipsis); ok {
				fn.IsVararg = true
				break
			}
			n, ok := p.parseName()
			if !ok {
				break
			}
			fn.Params = append(fn.Params, n)
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list")
	}
	fn.Body = p.parseBlock()
	end, _ := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close function body")
	fn.Sp = cover(start, p.closeSpan(end))
	return fn
}

func (p *Parser) parseTable() *ast.TableExpr {
	open := p.advance() // {
	tbl := &ast.TableExpr{Lbrace: open.Span}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		f := p.parseTableField()
		if f == nil {
			break
		}
		if t, ok := p.accept(token.Comma); ok {
			f.Sep = ast.SepComma
			f.SepSpan = t.Span
		} else if t, ok := p.accept(token.Semicolon); ok {
			f.Sep = ast.SepSemicolon
			f.SepSpan = t.Span
		} else {
			tbl.Fields = append(tbl.Fields, *f)
			break
		}
		tbl.Fields = append(tbl.Fields, *f)
	}
	closing, ok := p.expect(token.RBrace, diag.SynUnclosedTable, "expected '}' to close table constructor")
	sp := open.Span
	if ok {
		tbl.Rbrace = closing.Span
		sp = cover(sp, closing.Span)
	} else if n := len(tbl.Fields); n > 0 {
		sp = cover(sp, tbl.Fields[n-1].Sp)
	}
	tbl.Sp = sp
	return tbl
}

func (p *Parser) parseTableField() *ast.TableField {
	switch p.tok().Kind {
	case token.LBracket:
		open := p.advance()
		key := p.parseExpr()
		p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close table key")
		p.expect(token.Assign, diag.SynExpectAssign, "expected '=' after table key")
		val := p.parseExpr()
		return &ast.TableField{Key: key, Value: val, Sp: cover(open.Span, val.Span())}
	case token.Ident:
		if p.peek().Kind == token.Assign {
			n, _ := p.parseName()
			p.advance() // =
			val := p.parseExpr()
			return &ast.TableField{Name: &n, Value: val, Sp: cover(n.Sp, val.Span())}
		}
	}
	val := p.parseSubExpr(0)
	if val == nil {
		p.errHere(diag.SynExpectExpression, fmt.Sprintf("expected table field, found %s", p.tok().Kind))
		return nil
	}
	return &ast.TableField{Value: val, Sp: val.Span()}
}
