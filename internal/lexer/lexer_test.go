package lexer_test

import (
	"testing"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/lexer"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// testReporter collects every diagnostic the lexer produces.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lua", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) {
	t.Helper()
	lx, rep := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	got := kinds(tokens)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("input %q: got %d tokens %v, want %d %v", input, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("input %q: token %d is %s, want %s", input, i, got[i], want[i])
		}
	}
	if rep.HasErrors() {
		t.Errorf("input %q: unexpected lex errors: %v", input, rep.diagnostics)
	}
}

func TestKeywordsAndIdents(t *testing.T) {
	expectKinds(t, "local x = nil",
		token.KwLocal, token.Ident, token.Assign, token.KwNil)
	expectKinds(t, "if a then return end",
		token.KwIf, token.Ident, token.KwThen, token.KwReturn, token.KwEnd)
	// continue is contextual, not a keyword
	expectKinds(t, "continue", token.Ident)
	// case-sensitive
	expectKinds(t, "End", token.Ident)
}

func TestNumbers(t *testing.T) {
	tests := []string{
		"0", "42", "3.14", ".5", "1.", "1e10", "1E-3", "1.5e+2",
		"0xFF", "0x0.1p4", "0b1010", "1_000_000", "0xDEAD_BEEF",
	}
	for _, input := range tests {
		lx, rep := makeTestLexer(input)
		tokens := collectAllTokens(lx)
		if len(tokens) != 2 || tokens[0].Kind != token.NumberLit {
			t.Errorf("input %q: tokens %v, want single NumberLit", input, kinds(tokens))
		}
		if tokens[0].Text != input {
			t.Errorf("input %q: text %q", input, tokens[0].Text)
		}
		if rep.HasErrors() {
			t.Errorf("input %q: unexpected errors %v", input, rep.diagnostics)
		}
	}
}

func TestBadNumbers(t *testing.T) {
	for _, input := range []string{"0x", "0b2", "1e+"} {
		lx, rep := makeTestLexer(input)
		collectAllTokens(lx)
		if !rep.HasErrors() {
			t.Errorf("input %q: expected a lex error", input)
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{`"hello"`, token.StringLit},
		{`'hello'`, token.StringLit},
		{`"with \"escape\""`, token.StringLit},
		{`'it\'s'`, token.StringLit},
		{`"tab\tnewline\n"`, token.StringLit},
		{`"\x41\65\u{1F600}"`, token.StringLit},
		{`"a\z` + "\n  " + `b"`, token.StringLit},
		{"[[long\nstring]]", token.LongStringLit},
		{"[==[nested ]] still open]==]", token.LongStringLit},
	}
	for _, tt := range tests {
		lx, rep := makeTestLexer(tt.input)
		tokens := collectAllTokens(lx)
		if len(tokens) != 2 || tokens[0].Kind != tt.kind {
			t.Errorf("input %q: tokens %v, want single %s", tt.input, kinds(tokens), tt.kind)
		}
		if rep.HasErrors() {
			t.Errorf("input %q: unexpected errors %v", tt.input, rep.diagnostics)
		}
	}
}

func TestUnterminatedStrings(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"no closing`, diag.LexUnterminatedString},
		{"\"newline\nx\"", diag.LexUnterminatedString},
		{"[[never closed", diag.LexUnterminatedLongString},
	}
	for _, tt := range tests {
		lx, rep := makeTestLexer(tt.input)
		collectAllTokens(lx)
		found := false
		for _, d := range rep.diagnostics {
			if d.Code == tt.code {
				found = true
			}
		}
		if !found {
			t.Errorf("input %q: expected code %s, got %v", tt.input, tt.code.ID(), rep.diagnostics)
		}
	}
}

func TestBadEscape(t *testing.T) {
	lx, rep := makeTestLexer(`"\q"`)
	collectAllTokens(lx)
	found := false
	for _, d := range rep.diagnostics {
		if d.Code == diag.LexBadEscape {
			found = true
		}
	}
	if !found {
		t.Errorf("expected LexBadEscape, got %v", rep.diagnostics)
	}
}

func TestOperators(t *testing.T) {
	expectKinds(t, "a == b ~= c <= d >= e < f > g",
		token.Ident, token.EqEq, token.Ident, token.TildeEq, token.Ident,
		token.LtEq, token.Ident, token.GtEq, token.Ident, token.Lt,
		token.Ident, token.Gt, token.Ident)
	expectKinds(t, "a .. b ... ..=",
		token.Ident, token.Concat, token.Ident, token.Ellipsis, token.ConcatAssign)
	expectKinds(t, "x += 1", token.Ident, token.PlusAssign, token.NumberLit)
	expectKinds(t, "a // b / c", token.Ident, token.SlashSlash, token.Ident, token.Slash, token.Ident)
	expectKinds(t, "x //= 2", token.Ident, token.SlashSlashAssign, token.NumberLit)
	expectKinds(t, "x /= 2", token.Ident, token.SlashAssign, token.NumberLit)
	expectKinds(t, "::label::", token.ColonColon, token.Ident, token.ColonColon)
	expectKinds(t, "#t", token.Hash, token.Ident)
	expectKinds(t, "t.x:y", token.Ident, token.Dot, token.Ident, token.Colon, token.Ident)
}

func TestDotVsNumber(t *testing.T) {
	expectKinds(t, "x.y", token.Ident, token.Dot, token.Ident)
	expectKinds(t, "t[.5]", token.Ident, token.LBracket, token.NumberLit, token.RBracket)
	expectKinds(t, "1 .. 2", token.NumberLit, token.Concat, token.NumberLit)
}

func TestCommentTrivia(t *testing.T) {
	lx, rep := makeTestLexer("-- a comment\nlocal x --[[ block ]] = 1")
	tokens := collectAllTokens(lx)
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: %v", rep.diagnostics)
	}

	if got := kinds(tokens); got[0] != token.KwLocal {
		t.Fatalf("tokens = %v", got)
	}
	var kindsSeen []token.TriviaKind
	for _, tr := range tokens[0].Leading {
		kindsSeen = append(kindsSeen, tr.Kind)
	}
	// line comment then the newline run
	if len(kindsSeen) != 2 || kindsSeen[0] != token.TriviaLineComment || kindsSeen[1] != token.TriviaNewline {
		t.Errorf("leading trivia of 'local' = %v", kindsSeen)
	}

	// '=' carries the block comment (and surrounding spaces)
	eq := tokens[2]
	if eq.Kind != token.Assign {
		t.Fatalf("token 2 = %s", eq.Kind)
	}
	foundBlock := false
	for _, tr := range eq.Leading {
		if tr.Kind == token.TriviaBlockComment {
			foundBlock = true
		}
	}
	if !foundBlock {
		t.Errorf("expected block comment on '=', got %v", eq.Leading)
	}
}

func TestTrailingCommentOnEOF(t *testing.T) {
	lx, _ := makeTestLexer("return 1\n-- trailing\n")
	tokens := collectAllTokens(lx)
	eof := tokens[len(tokens)-1]
	found := false
	for _, tr := range eof.Leading {
		if tr.Kind == token.TriviaLineComment {
			found = true
		}
	}
	if !found {
		t.Errorf("EOF must keep trailing comment trivia, got %v", eof.Leading)
	}
}

func TestShebang(t *testing.T) {
	lx, rep := makeTestLexer("#!/usr/bin/env lua\nreturn 0")
	tokens := collectAllTokens(lx)
	if rep.HasErrors() {
		t.Fatalf("unexpected errors: %v", rep.diagnostics)
	}
	if tokens[0].Kind != token.KwReturn {
		t.Fatalf("tokens = %v", kinds(tokens))
	}
	if len(tokens[0].Leading) == 0 || tokens[0].Leading[0].Kind != token.TriviaShebang {
		t.Errorf("expected shebang trivia, got %v", tokens[0].Leading)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("--[[ never closed")
	collectAllTokens(lx)
	found := false
	for _, d := range rep.diagnostics {
		if d.Code == diag.LexUnterminatedComment {
			found = true
		}
	}
	if !found {
		t.Errorf("expected LexUnterminatedComment, got %v", rep.diagnostics)
	}
}

func TestUnknownChar(t *testing.T) {
	lx, rep := makeTestLexer("local x = 1 @")
	collectAllTokens(lx)
	found := false
	for _, d := range rep.diagnostics {
		if d.Code == diag.LexUnknownChar {
			found = true
		}
	}
	if !found {
		t.Errorf("expected LexUnknownChar, got %v", rep.diagnostics)
	}
}

func TestSpanText(t *testing.T) {
	lx, _ := makeTestLexer(`local greeting = "hi"`)
	tokens := collectAllTokens(lx)
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		if tok.Span.Len() != uint32(len(tok.Text)) {
			t.Errorf("token %s: span len %d != text len %d", tok.Kind, tok.Span.Len(), len(tok.Text))
		}
	}
}

func TestPeek(t *testing.T) {
	lx, _ := makeTestLexer("local x")
	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Span != n.Span {
		t.Errorf("Peek %v != Next %v", p, n)
	}
	if lx.Next().Kind != token.Ident {
		t.Error("Peek must not consume")
	}
}
