// Package parser implements a recursive-descent parser for the Lua dialect
// luastyle checks. Syntax errors become diagnostics; the parser recovers at
// statement boundaries so style rules still see the rest of the file.
package parser

import (
	"fmt"

	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// Parser consumes a pre-lexed token stream.
type Parser struct {
	tokens   []token.Token
	pos      int
	reporter diag.Reporter
	file     source.FileID
}

// New creates a parser over tokens. The slice must end with an EOF token.
func New(tokens []token.Token, fileID source.FileID, reporter diag.Reporter) *Parser {
	return &Parser{
		tokens:   tokens,
		reporter: reporter,
		file:     fileID,
	}
}

// ParseChunk parses the whole token stream into a chunk.
func (p *Parser) ParseChunk() *ast.Chunk {
	start := p.tok().Span
	block := p.parseBlock()
	if p.tok().Kind != token.EOF {
		p.errHere(diag.SynUnexpectedToken, fmt.Sprintf("unexpected %s after block", p.tok().Kind))
	}
	sp := start.Cover(p.tok().Span)
	return &ast.Chunk{Block: block, Sp: sp}
}

func (p *Parser) tok() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) advance() token.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok().Kind == k
}

// accept consumes the current token when it matches.
func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes the expected kind or reports code and leaves the token.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if t, ok := p.accept(k); ok {
		return t, true
	}
	p.errHere(code, msg)
	return token.Token{}, false
}

func (p *Parser) errHere(code diag.Code, msg string) {
	p.err(code, p.tok().Span, msg)
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	if p.reporter != nil {
		diag.ReportError(p.reporter, code, sp, msg).Emit()
	}
}

// blockEnd reports whether the current token terminates a block.
func (p *Parser) blockEnd() bool {
	switch p.tok().Kind {
	case token.EOF, token.KwEnd, token.KwElse, token.KwElseif, token.KwUntil:
		return true
	default:
		return false
	}
}

// syncStatement skips tokens until a plausible statement start, so one bad
// statement does not cascade.
func (p *Parser) syncStatement() {
	for !p.blockEnd() {
		switch p.tok().Kind {
		case token.KwLocal, token.KwIf, token.KwWhile, token.KwFor, token.KwRepeat,
			token.KwFunction, token.KwReturn, token.KwBreak, token.KwDo,
			token.KwGoto, token.Semicolon:
			return
		}
		p.advance()
	}
}

func cover(a, b source.Span) source.Span {
	return a.Cover(b)
}

// prevSpan returns the span of the last consumed token.
func (p *Parser) prevSpan() source.Span {
	if p.pos == 0 {
		return p.tok().Span
	}
	return p.tokens[p.pos-1].Span
}
