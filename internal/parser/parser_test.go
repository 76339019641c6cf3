package parser_test

import (
	"testing"

	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/lexer"
	"github.com/dgxo/luastyle/internal/parser"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

type testReporter struct {
	diags []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diags = append(r.diags, diag.Diagnostic{
		Code: code, Severity: sev, Primary: primary, Message: msg, Notes: notes, Fixes: fixes,
	})
}

func parseSource(t *testing.T, src string) (*ast.Chunk, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lua", []byte(src))
	file := fs.Get(id)
	rep := &testReporter{}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	p := parser.New(toks, file.ID, rep)
	return p.ParseChunk(), rep
}

func parseClean(t *testing.T, src string) *ast.Chunk {
	t.Helper()
	chunk, rep := parseSource(t, src)
	for _, d := range rep.diags {
		t.Errorf("unexpected diagnostic %s: %s", d.Code.ID(), d.Message)
	}
	return chunk
}

func oneStmt(t *testing.T, src string) ast.Stmt {
	t.Helper()
	chunk := parseClean(t, src)
	if len(chunk.Block.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(chunk.Block.Stmts))
	}
	return chunk.Block.Stmts[0]
}

func TestParseLocal(t *testing.T) {
	st, ok := oneStmt(t, "local a, b = 1, 2").(*ast.LocalStmt)
	if !ok {
		t.Fatal("expected LocalStmt")
	}
	if len(st.Names) != 2 || st.Names[0].Text != "a" || st.Names[1].Text != "b" {
		t.Errorf("wrong names: %+v", st.Names)
	}
	if len(st.Exprs) != 2 {
		t.Fatalf("expected 2 exprs, got %d", len(st.Exprs))
	}
	if n, ok := st.Exprs[0].(*ast.NumberExpr); !ok || n.Raw != "1" {
		t.Errorf("expected NumberExpr 1, got %#v", st.Exprs[0])
	}
}

func TestParseLocalAttrib(t *testing.T) {
	st, ok := oneStmt(t, "local x <const> = 1").(*ast.LocalStmt)
	if !ok {
		t.Fatal("expected LocalStmt")
	}
	if len(st.Attribs) != 1 || st.Attribs[0] == nil {
		t.Fatalf("expected 1 attrib, got %+v", st.Attribs)
	}
	if st.Attribs[0].Name.Text != "const" {
		t.Errorf("attrib = %q, want const", st.Attribs[0].Name.Text)
	}
}

func TestParseLocalAttribMixed(t *testing.T) {
	st, ok := oneStmt(t, "local f <close>, g = open()").(*ast.LocalStmt)
	if !ok {
		t.Fatal("expected LocalStmt")
	}
	if len(st.Attribs) != 2 {
		t.Fatalf("expected 2 attrib slots, got %d", len(st.Attribs))
	}
	if st.Attribs[0] == nil || st.Attribs[0].Name.Text != "close" {
		t.Errorf("first attrib = %+v, want close", st.Attribs[0])
	}
	if st.Attribs[1] != nil {
		t.Errorf("second attrib should be nil, got %+v", st.Attribs[1])
	}
}

func TestParseLocalNoAttrib(t *testing.T) {
	st := oneStmt(t, "local x = 1").(*ast.LocalStmt)
	if st.Attribs != nil {
		t.Errorf("Attribs should be nil, got %+v", st.Attribs)
	}
}

func TestParseLocalNoInit(t *testing.T) {
	st, ok := oneStmt(t, "local x").(*ast.LocalStmt)
	if !ok {
		t.Fatal("expected LocalStmt")
	}
	if len(st.Exprs) != 0 {
		t.Errorf("expected no exprs, got %d", len(st.Exprs))
	}
	if st.Semi != nil {
		t.Error("unexpected semicolon span")
	}
}

func TestParseSemicolonRecorded(t *testing.T) {
	st, ok := oneStmt(t, "local x = 1;").(*ast.LocalStmt)
	if !ok {
		t.Fatal("expected LocalStmt")
	}
	if st.Semi == nil {
		t.Fatal("semicolon span not recorded")
	}
	if st.Semi.Start != 11 {
		t.Errorf("semicolon at offset %d, want 11", st.Semi.Start)
	}
}

func TestParseAssignment(t *testing.T) {
	st, ok := oneStmt(t, "a.b[1], c = x, y").(*ast.AssignStmt)
	if !ok {
		t.Fatal("expected AssignStmt")
	}
	if len(st.Targets) != 2 || len(st.Exprs) != 2 {
		t.Fatalf("targets=%d exprs=%d", len(st.Targets), len(st.Exprs))
	}
	if _, ok := st.Targets[0].(*ast.IndexExpr); !ok {
		t.Errorf("expected IndexExpr target, got %#v", st.Targets[0])
	}
	if st.Op != token.Assign {
		t.Errorf("expected plain assign, got %s", st.Op)
	}
}

func TestParseCompoundAssign(t *testing.T) {
	cases := []struct {
		src string
		op  token.Kind
	}{
		{"x += 1", token.PlusAssign},
		{"x -= 1", token.MinusAssign},
		{"x ..= \"s\"", token.ConcatAssign},
		{"t.n *= 2", token.StarAssign},
		{"x //= 2", token.SlashSlashAssign},
		{"x /= 2", token.SlashAssign},
	}
	for _, tc := range cases {
		st, ok := oneStmt(t, tc.src).(*ast.AssignStmt)
		if !ok {
			t.Fatalf("%q: expected AssignStmt", tc.src)
		}
		if st.Op != tc.op {
			t.Errorf("%q: op %s, want %s", tc.src, st.Op, tc.op)
		}
		if len(st.Targets) != 1 || len(st.Exprs) != 1 {
			t.Errorf("%q: compound assignment must have one target and one value", tc.src)
		}
	}
}

func TestParseCallStatement(t *testing.T) {
	st, ok := oneStmt(t, "print(\"hi\", 2)").(*ast.CallStmt)
	if !ok {
		t.Fatal("expected CallStmt")
	}
	call := st.Call.(*ast.CallExpr)
	if call.Style != ast.ArgsParen {
		t.Errorf("expected paren style, got %d", call.Style)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	if len(call.Commas) != 1 {
		t.Errorf("expected 1 comma span, got %d", len(call.Commas))
	}
}

func TestParseStringAndTableCalls(t *testing.T) {
	st, ok := oneStmt(t, "require \"module\"").(*ast.CallStmt)
	if !ok {
		t.Fatal("expected CallStmt")
	}
	if st.Call.(*ast.CallExpr).Style != ast.ArgsString {
		t.Error("expected string-style call")
	}

	st2, ok := oneStmt(t, "setmetatable {__index = base}").(*ast.CallStmt)
	if !ok {
		t.Fatal("expected CallStmt")
	}
	if st2.Call.(*ast.CallExpr).Style != ast.ArgsTable {
		t.Error("expected table-style call")
	}
}

func TestParseMethodCall(t *testing.T) {
	st := oneStmt(t, "obj:method(1)").(*ast.CallStmt)
	call := st.Call.(*ast.CallExpr)
	if call.Method == nil || call.Method.Text != "method" {
		t.Fatalf("method not recorded: %+v", call.Method)
	}
	if _, ok := call.Fn.(*ast.NameExpr); !ok {
		t.Errorf("expected NameExpr receiver, got %#v", call.Fn)
	}
}

func TestParseIfElseifElse(t *testing.T) {
	src := `
if a then
	f()
elseif b then
	g()
else
	h()
end`
	st, ok := oneStmt(t, src).(*ast.IfStmt)
	if !ok {
		t.Fatal("expected IfStmt")
	}
	if len(st.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(st.Clauses))
	}
	if st.Else == nil || len(st.Else.Stmts) != 1 {
		t.Error("else block missing or wrong size")
	}
}

func TestParseLoops(t *testing.T) {
	if _, ok := oneStmt(t, "while x do f() end").(*ast.WhileStmt); !ok {
		t.Error("while not parsed")
	}
	if _, ok := oneStmt(t, "repeat f() until x").(*ast.RepeatStmt); !ok {
		t.Error("repeat not parsed")
	}
	nf, ok := oneStmt(t, "for i = 1, 10, 2 do end").(*ast.NumericForStmt)
	if !ok {
		t.Fatal("numeric for not parsed")
	}
	if nf.Var.Text != "i" || nf.Step == nil {
		t.Errorf("numeric for fields wrong: var=%q step=%v", nf.Var.Text, nf.Step)
	}
	gf, ok := oneStmt(t, "for k, v in pairs(t) do end").(*ast.GenericForStmt)
	if !ok {
		t.Fatal("generic for not parsed")
	}
	if len(gf.Names) != 2 || gf.Names[1].Text != "v" {
		t.Errorf("generic for names wrong: %+v", gf.Names)
	}
}

func TestParseFunctions(t *testing.T) {
	fs, ok := oneStmt(t, "function mod.sub:method(a, b, ...) return a end").(*ast.FuncStmt)
	if !ok {
		t.Fatal("expected FuncStmt")
	}
	if fs.Name.Base.Text != "mod" || len(fs.Name.Dots) != 1 || fs.Name.Dots[0].Text != "sub" {
		t.Errorf("function name wrong: %+v", fs.Name)
	}
	if fs.Name.Method == nil || fs.Name.Method.Text != "method" {
		t.Error("method part missing")
	}
	if len(fs.Func.Params) != 2 || !fs.Func.IsVararg {
		t.Errorf("params=%d vararg=%v", len(fs.Func.Params), fs.Func.IsVararg)
	}

	lf, ok := oneStmt(t, "local function helper() end").(*ast.LocalFuncStmt)
	if !ok {
		t.Fatal("expected LocalFuncStmt")
	}
	if lf.Name.Text != "helper" {
		t.Errorf("name %q", lf.Name.Text)
	}
}

func TestParseContinueContextual(t *testing.T) {
	src := `
for i = 1, 10 do
	if skip then
		continue
	end
end`
	chunk := parseClean(t, src)
	nf := chunk.Block.Stmts[0].(*ast.NumericForStmt)
	ifSt := nf.Body.Stmts[0].(*ast.IfStmt)
	if _, ok := ifSt.Clauses[0].Body.Stmts[0].(*ast.ContinueStmt); !ok {
		t.Error("bare continue should parse as a continue statement")
	}

	// `continue` followed by `=` is an ordinary assignment target.
	st, ok := oneStmt(t, "continue = 5").(*ast.AssignStmt)
	if !ok {
		t.Fatal("expected AssignStmt")
	}
	name := st.Targets[0].(*ast.NameExpr)
	if name.Name.Text != "continue" {
		t.Errorf("target %q", name.Name.Text)
	}
}

func TestParsePrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3)
	st := oneStmt(t, "local x = 1 + 2 * 3").(*ast.LocalStmt)
	add := st.Exprs[0].(*ast.BinaryExpr)
	if add.Op != token.Plus {
		t.Fatalf("root op %s, want +", add.Op)
	}
	mul, ok := add.R.(*ast.BinaryExpr)
	if !ok || mul.Op != token.Star {
		t.Errorf("right of + should be *, got %#v", add.R)
	}

	// a .. b .. c is right associative: a .. (b .. c)
	st2 := oneStmt(t, "local x = a .. b .. c").(*ast.LocalStmt)
	cat := st2.Exprs[0].(*ast.BinaryExpr)
	if cat.Op != token.Concat {
		t.Fatalf("root op %s, want ..", cat.Op)
	}
	if inner, ok := cat.R.(*ast.BinaryExpr); !ok || inner.Op != token.Concat {
		t.Error("concat should associate to the right")
	}

	// -x^2 parses as -(x^2)
	st3 := oneStmt(t, "local x = -a^2").(*ast.LocalStmt)
	neg, ok := st3.Exprs[0].(*ast.UnaryExpr)
	if !ok || neg.Op != token.Minus {
		t.Fatalf("root should be unary minus, got %#v", st3.Exprs[0])
	}
	if pow, ok := neg.X.(*ast.BinaryExpr); !ok || pow.Op != token.Caret {
		t.Error("power should bind tighter than unary minus")
	}

	// ordering of logical operators: a or b and c is a or (b and c)
	st4 := oneStmt(t, "local x = a or b and c").(*ast.LocalStmt)
	or := st4.Exprs[0].(*ast.BinaryExpr)
	if or.Op != token.KwOr {
		t.Fatalf("root op %s, want or", or.Op)
	}
	if and, ok := or.R.(*ast.BinaryExpr); !ok || and.Op != token.KwAnd {
		t.Error("and should bind tighter than or")
	}

	// floor division sits with * and /
	st5 := oneStmt(t, "local x = a + b // c").(*ast.LocalStmt)
	root := st5.Exprs[0].(*ast.BinaryExpr)
	if root.Op != token.Plus {
		t.Fatalf("root op %s, want +", root.Op)
	}
	if fd, ok := root.R.(*ast.BinaryExpr); !ok || fd.Op != token.SlashSlash {
		t.Error("// should bind tighter than +")
	}
}

func TestParseTableConstructor(t *testing.T) {
	src := `local t = {
	one = 1,
	[2] = "two",
	"three";
	last,
}`
	st := oneStmt(t, src).(*ast.LocalStmt)
	tbl := st.Exprs[0].(*ast.TableExpr)
	if len(tbl.Fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(tbl.Fields))
	}
	if tbl.Fields[0].Name == nil || tbl.Fields[0].Name.Text != "one" {
		t.Error("field 0 should be a named field")
	}
	if tbl.Fields[1].Key == nil {
		t.Error("field 1 should be a keyed field")
	}
	if tbl.Fields[2].Sep != ast.SepSemicolon {
		t.Errorf("field 2 separator %d, want semicolon", tbl.Fields[2].Sep)
	}
	if tbl.Fields[3].Sep != ast.SepComma {
		t.Error("trailing comma should be recorded on the last field")
	}
	if tbl.Rbrace.Len() != 1 {
		t.Error("closing brace span missing")
	}
}

func TestParseParenExprKept(t *testing.T) {
	st := oneStmt(t, "local x = (f())").(*ast.LocalStmt)
	if _, ok := st.Exprs[0].(*ast.ParenExpr); !ok {
		t.Errorf("parentheses must be kept in the tree, got %#v", st.Exprs[0])
	}
}

func TestParseGotoAndLabel(t *testing.T) {
	chunk := parseClean(t, "::top::\ngoto top")
	if len(chunk.Block.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(chunk.Block.Stmts))
	}
	lbl := chunk.Block.Stmts[0].(*ast.LabelStmt)
	if lbl.Name.Text != "top" {
		t.Errorf("label %q", lbl.Name.Text)
	}
	g := chunk.Block.Stmts[1].(*ast.GotoStmt)
	if g.Label.Text != "top" {
		t.Errorf("goto target %q", g.Label.Text)
	}
}

func TestParseReturnVariants(t *testing.T) {
	rs := oneStmt(t, "return").(*ast.ReturnStmt)
	if len(rs.Exprs) != 0 {
		t.Error("bare return should have no exprs")
	}
	rs2 := oneStmt(t, "return a, b;").(*ast.ReturnStmt)
	if len(rs2.Exprs) != 2 || rs2.Semi == nil {
		t.Errorf("exprs=%d semi=%v", len(rs2.Exprs), rs2.Semi)
	}
}

func TestSyntaxErrors(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{"if x f() end", diag.SynExpectThen},
		{"while x f() end", diag.SynExpectDo},
		{"do f()", diag.SynExpectEnd},
		{"local = 1", diag.SynExpectIdentifier},
		{"local x = ", diag.SynExpectExpression},
		{"f(1, 2", diag.SynUnclosedParen},
		{"local t = {1, 2", diag.SynUnclosedTable},
		{"t[1 = 2", diag.SynUnclosedBracket},
		{"for x f() end", diag.SynExpectIn},
		{"repeat f() end", diag.SynExpectUntil},
		{"local x <constant> = 1", diag.SynBadAttrib},
		{"local x <const = 1", diag.SynBadAttrib},
	}
	for _, tc := range cases {
		_, rep := parseSource(t, tc.src)
		found := false
		for _, d := range rep.diags {
			if d.Code == tc.code {
				found = true
				break
			}
		}
		if !found {
			ids := make([]string, 0, len(rep.diags))
			for _, d := range rep.diags {
				ids = append(ids, d.Code.ID())
			}
			t.Errorf("%q: expected %s, got %v", tc.src, tc.code.ID(), ids)
		}
	}
}

func TestRecoveryContinuesParsing(t *testing.T) {
	src := `
local = 1
local ok = 2`
	chunk, rep := parseSource(t, src)
	if len(rep.diags) == 0 {
		t.Fatal("expected a syntax diagnostic")
	}
	found := false
	for _, st := range chunk.Block.Stmts {
		if ls, ok := st.(*ast.LocalStmt); ok && len(ls.Names) == 1 && ls.Names[0].Text == "ok" {
			found = true
		}
	}
	if !found {
		t.Error("parser did not recover to the next statement")
	}
}

func TestInspectVisitsNestedNodes(t *testing.T) {
	chunk := parseClean(t, `
local function f(a)
	return a + 1
end
f(2)`)
	var names []string
	ast.Inspect(chunk, func(n ast.Node) bool {
		if ne, ok := n.(*ast.NameExpr); ok {
			names = append(names, ne.Name.Text)
		}
		return true
	})
	want := map[string]bool{"a": false, "f": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, seen := range want {
		if !seen {
			t.Errorf("Inspect never visited NameExpr %q", n)
		}
	}
}

func TestStatementSpansCoverSource(t *testing.T) {
	src := "while x do\n\tf()\nend"
	st := oneStmt(t, src).(*ast.WhileStmt)
	if st.Sp.Start != 0 || int(st.Sp.End) != len(src) {
		t.Errorf("span [%d,%d), want [0,%d)", st.Sp.Start, st.Sp.End, len(src))
	}
}
