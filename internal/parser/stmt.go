package parser

import (
	"fmt"

	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

func (p *Parser) parseBlock() *ast.Block {
	start := p.tok().Span
	var stmts []ast.Stmt
	for !p.blockEnd() {
		before := p.pos
		st := p.parseStatement()
		if st != nil {
			stmts = append(stmts, st)
			// return must be the last statement of a block
			if _, ok := st.(*ast.ReturnStmt); ok {
				break
			}
		}
		if p.pos == before {
			// no progress, skip the offending token
			p.advance()
			p.syncStatement()
		}
	}
	sp := start
	if len(stmts) > 0 {
		sp = stmts[0].Span().Cover(stmts[len(stmts)-1].Span())
	} else {
		sp = source.Span{File: start.File, Start: start.Start, End: start.Start}
	}
	return &ast.Block{Stmts: stmts, Sp: sp}
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.tok().Kind {
	case token.Semicolon:
		t := p.advance()
		return &ast.EmptyStmt{Sp: t.Span}
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDo()
	case token.KwFor:
		return p.parseFor()
	case token.KwRepeat:
		return p.parseRepeat()
	case token.KwFunction:
		return p.parseFunctionStmt()
	case token.KwLocal:
		return p.parseLocal()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		t := p.advance()
		return &ast.BreakStmt{Sp: t.Span}
	case token.KwGoto:
		return p.parseGoto()
	case token.ColonColon:
		return p.parseLabel()
	case token.Ident:
		if p.tok().Text == "continue" && p.isBareContinue() {
			t := p.advance()
			return &ast.ContinueStmt{Sp: t.Span}
		}
		return p.parseExprStatement()
	case token.LParen:
		return p.parseExprStatement()
	default:
		p.errHere(diag.SynBadStatement, fmt.Sprintf("unexpected %s, expected a statement", p.tok().Kind))
		p.syncStatement()
		return nil
	}
}

// isBareContinue decides whether an ident spelled `continue` is the Luau
// statement or a plain variable reference. It is a statement unless the next
// token could continue a prefix expression or an assignment.
func (p *Parser) isBareContinue() bool {
	switch p.peek().Kind {
	case token.Assign, token.Comma, token.Dot, token.Colon, token.LParen,
		token.LBracket, token.LBrace, token.StringLit, token.LongStringLit:
		return false
	}
	return !p.peek().Kind.IsCompoundAssign()
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance().Span // if
	var clauses []ast.IfClause
	cond := p.parseExpr()
	p.expect(token.KwThen, diag.SynExpectThen, "expected 'then' after if condition")
	body := p.parseBlock()
	clauses = append(clauses, ast.IfClause{Cond: cond, Body: body, Sp: cover(start, body.Sp)})
	var elseBlock *ast.Block
	for {
		if t, ok := p.accept(token.KwElseif); ok {
			c := p.parseExpr()
			p.expect(token.KwThen, diag.SynExpectThen, "expected 'then' after elseif condition")
			b := p.parseBlock()
			clauses = append(clauses, ast.IfClause{Cond: c, Body: b, Sp: cover(t.Span, b.Sp)})
			continue
		}
		if _, ok := p.accept(token.KwElse); ok {
			elseBlock = p.parseBlock()
		}
		break
	}
	end, _ := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close if statement")
	sp := cover(start, p.closeSpan(end))
	return &ast.IfStmt{Clauses: clauses, Else: elseBlock, Sp: sp}
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance().Span // while
	cond := p.parseExpr()
	p.expect(token.KwDo, diag.SynExpectDo, "expected 'do' after while condition")
	body := p.parseBlock()
	end, _ := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close while loop")
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: cover(start, p.closeSpan(end))}
}

func (p *Parser) parseDo() ast.Stmt {
	start := p.advance().Span // do
	body := p.parseBlock()
	end, _ := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close do block")
	return &ast.DoStmt{Body: body, Sp: cover(start, p.closeSpan(end))}
}

func (p *Parser) parseRepeat() ast.Stmt {
	start := p.advance().Span // repeat
	body := p.parseBlock()
	p.expect(token.KwUntil, diag.SynExpectUntil, "expected 'until' to close repeat loop")
	cond := p.parseExpr()
	return &ast.RepeatStmt{Body: body, Cond: cond, Sp: cover(start, cond.Span())}
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.advance().Span // for
	first, ok := p.parseName()
	if !ok {
		p.syncStatement()
		return nil
	}
	if p.at(token.Assign) {
		p.advance()
		lo := p.parseExpr()
		p.expect(token.Comma, diag.SynExpectComma, "expected ',' after numeric for start value")
		hi := p.parseExpr()
		var step ast.Expr
		if _, ok := p.accept(token.Comma); ok {
			step = p.parseExpr()
		}
		p.expect(token.KwDo, diag.SynExpectDo, "expected 'do' in numeric for")
		body := p.parseBlock()
		end, _ := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close for loop")
		return &ast.NumericForStmt{
			Var: first, Start: lo, Stop: hi, Step: step, Body: body,
			Sp: cover(start, p.closeSpan(end)),
		}
	}
	names := []ast.Name{first}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		n, ok := p.parseName()
		if !ok {
			break
		}
		names = append(names, n)
	}
	p.expect(token.KwIn, diag.SynExpectIn, "expected '=' or 'in' in for statement")
	exprs := p.parseExprList()
	p.expect(token.KwDo, diag.SynExpectDo, "expected 'do' in generic for")
	body := p.parseBlock()
	end, _ := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close for loop")
	return &ast.GenericForStmt{
		Names: names, Exprs: exprs, Body: body,
		Sp: cover(start, p.closeSpan(end)),
	}
}

func (p *Parser) parseFunctionStmt() ast.Stmt {
	start := p.advance().Span // function
	name, ok := p.parseFuncName()
	if !ok {
		p.syncStatement()
		return nil
	}
	fn := p.parseFuncBody(start)
	return &ast.FuncStmt{Name: name, Func: fn, Sp: cover(start, fn.Sp)}
}

func (p *Parser) parseFuncName() (ast.FuncName, bool) {
	base, ok := p.parseName()
	if !ok {
		p.errHere(diag.SynBadFunctionName, "expected function name")
		return ast.FuncName{}, false
	}
	fn := ast.FuncName{Base: base, Sp: base.Sp}
	for {
		if _, ok := p.accept(token.Dot); ok {
			n, ok := p.parseName()
			if !ok {
				p.errHere(diag.SynBadFunctionName, "expected identifier after '.' in function name")
				return fn, false
			}
			fn.Dots = append(fn.Dots, n)
			fn.Sp = cover(fn.Sp, n.Sp)
			continue
		}
		break
	}
	if _, ok := p.accept(token.Colon); ok {
		n, ok := p.parseName()
		if !ok {
			p.errHere(diag.SynBadFunctionName, "expected method name after ':'")
			return fn, false
		}
		fn.Method = &n
		fn.Sp = cover(fn.Sp, n.Sp)
	}
	return fn, true
}

func (p *Parser) parseLocal() ast.Stmt {
	start := p.advance().Span // local
	if _, ok := p.accept(token.KwFunction); ok {
		name, ok := p.parseName()
		if !ok {
			p.errHere(diag.SynExpectIdentifier, "expected name after 'local function'")
			p.syncStatement()
			return nil
		}
		fn := p.parseFuncBody(start)
		return &ast.LocalFuncStmt{Name: name, Func: fn, Sp: cover(start, fn.Sp)}
	}
	first, ok := p.parseName()
	if !ok {
		p.errHere(diag.SynExpectIdentifier, "expected name after 'local'")
		p.syncStatement()
		return nil
	}
	names := []ast.Name{first}
	attribs := []*ast.Attrib{p.parseAttrib()}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		n, ok := p.parseName()
		if !ok {
			p.errHere(diag.SynExpectIdentifier, "expected name after ',' in local declaration")
			break
		}
		names = append(names, n)
		attribs = append(attribs, p.parseAttrib())
	}
	st := &ast.LocalStmt{Names: names}
	sp := cover(start, names[len(names)-1].Sp)
	for _, a := range attribs {
		if a != nil {
			st.Attribs = attribs
			sp = cover(sp, a.Sp)
		}
	}
	if _, ok := p.accept(token.Assign); ok {
		st.Exprs = p.parseExprList()
		if len(st.Exprs) > 0 {
			sp = cover(sp, st.Exprs[len(st.Exprs)-1].Span())
		}
	}
	st.Semi = p.optionalSemi()
	if st.Semi != nil {
		sp = cover(sp, *st.Semi)
	}
	st.Sp = sp
	return st
}

// parseAttrib consumes an optional `<name>` attribute after a declared local.
func (p *Parser) parseAttrib() *ast.Attrib {
	lt, ok := p.accept(token.Lt)
	if !ok {
		return nil
	}
	ident, ok := p.accept(token.Ident)
	if !ok {
		p.errHere(diag.SynBadAttrib, "expected attribute name after '<'")
		return &ast.Attrib{Sp: lt.Span}
	}
	name := ast.Name{Text: ident.Text, Sp: ident.Span}
	sp := cover(lt.Span, name.Sp)
	if gt, ok := p.expect(token.Gt, diag.SynBadAttrib, "expected '>' after attribute name"); ok {
		sp = cover(sp, gt.Span)
	}
	if name.Text != "const" && name.Text != "close" {
		p.err(diag.SynBadAttrib, name.Sp,
			fmt.Sprintf("unknown attribute '%s' (expected 'const' or 'close')", name.Text))
	}
	return &ast.Attrib{Name: name, Sp: sp}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance().Span // return
	st := &ast.ReturnStmt{Sp: start}
	if !p.blockEnd() && !p.at(token.Semicolon) {
		st.Exprs = p.parseExprList()
		if len(st.Exprs) > 0 {
			st.Sp = cover(start, st.Exprs[len(st.Exprs)-1].Span())
		}
	}
	st.Semi = p.optionalSemi()
	if st.Semi != nil {
		st.Sp = cover(st.Sp, *st.Semi)
	}
	return st
}

func (p *Parser) parseGoto() ast.Stmt {
	start := p.advance().Span // goto
	label, ok := p.parseName()
	if !ok {
		p.errHere(diag.SynExpectIdentifier, "expected label name after 'goto'")
		return nil
	}
	return &ast.GotoStmt{Label: label, Sp: cover(start, label.Sp)}
}

func (p *Parser) parseLabel() ast.Stmt {
	start := p.advance().Span // ::
	name, ok := p.parseName()
	if !ok {
		p.errHere(diag.SynExpectIdentifier, "expected label name after '::'")
		return nil
	}
	end, ok := p.expect(token.ColonColon, diag.SynUnexpectedToken, "expected '::' to close label")
	sp := cover(start, name.Sp)
	if ok {
		sp = cover(sp, end.Span)
	}
	return &ast.LabelStmt{Name: name, Sp: sp}
}

// parseExprStatement handles call statements and assignments, both of which
// begin with a prefix expression.
func (p *Parser) parseExprStatement() ast.Stmt {
	first := p.parseSuffixedExpr()
	if first == nil {
		p.syncStatement()
		return nil
	}
	switch p.tok().Kind {
	case token.Assign, token.Comma:
		return p.parseAssign(first)
	}
	if p.tok().Kind.IsCompoundAssign() {
		return p.parseCompoundAssign(first)
	}
	call, ok := first.(*ast.CallExpr)
	if !ok {
		p.err(diag.SynBadStatement, first.Span(), "expression is not a statement; expected a call or assignment")
		p.syncStatement()
		return nil
	}
	st := &ast.CallStmt{Call: call, Sp: call.Sp}
	st.Semi = p.optionalSemi()
	if st.Semi != nil {
		st.Sp = cover(st.Sp, *st.Semi)
	}
	return st
}

func (p *Parser) parseAssign(first ast.Expr) ast.Stmt {
	targets := []ast.Expr{first}
	p.checkAssignTarget(first)
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		t := p.parseSuffixedExpr()
		if t == nil {
			break
		}
		p.checkAssignTarget(t)
		targets = append(targets, t)
	}
	op, ok := p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in assignment")
	if !ok {
		p.syncStatement()
		return nil
	}
	exprs := p.parseExprList()
	st := &ast.AssignStmt{Targets: targets, Exprs: exprs, Op: token.Assign, OpSpan: op.Span}
	sp := cover(first.Span(), op.Span)
	if len(exprs) > 0 {
		sp = cover(sp, exprs[len(exprs)-1].Span())
	}
	st.Semi = p.optionalSemi()
	if st.Semi != nil {
		sp = cover(sp, *st.Semi)
	}
	st.Sp = sp
	return st
}

func (p *Parser) parseCompoundAssign(target ast.Expr) ast.Stmt {
	p.checkAssignTarget(target)
	op := p.advance()
	val := p.parseExpr()
	st := &ast.AssignStmt{
		Targets: []ast.Expr{target},
		Exprs:   []ast.Expr{val},
		Op:      op.Kind,
		OpSpan:  op.Span,
	}
	sp := cover(target.Span(), val.Span())
	st.Semi = p.optionalSemi()
	if st.Semi != nil {
		sp = cover(sp, *st.Semi)
	}
	st.Sp = sp
	return st
}

func (p *Parser) checkAssignTarget(e ast.Expr) {
	switch e.(type) {
	case *ast.NameExpr, *ast.IndexExpr:
	default:
		p.err(diag.SynUnexpectedToken, e.Span(), "cannot assign to this expression")
	}
}

func (p *Parser) parseName() (ast.Name, bool) {
	if t, ok := p.accept(token.Ident); ok {
		return ast.Name{Text: t.Text, Sp: t.Span}, true
	}
	p.errHere(diag.SynExpectIdentifier, fmt.Sprintf("expected identifier, found %s", p.tok().Kind))
	return ast.Name{}, false
}

func (p *Parser) optionalSemi() *source.Span {
	if t, ok := p.accept(token.Semicolon); ok {
		sp := t.Span
		return &sp
	}
	return nil
}

// closeSpan falls back to the previous token's span when the closing token
// was missing, so statement spans stay sane during recovery.
func (p *Parser) closeSpan(end token.Token) source.Span {
	if end.Span.Len() == 0 && end.Kind == token.Invalid {
		return p.prevSpan()
	}
	return end.Span
}
