// Package ast defines the syntax tree for the Lua dialect luastyle checks.
// Every node keeps its source span; rules depend on exact spans for
// diagnostics and fixes.
package ast

import (
	"github.com/dgxo/luastyle/internal/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	Span() source.Span
}

// Name is an identifier occurrence.
type Name struct {
	Text string
	Sp   source.Span
}

func (n Name) Span() source.Span { return n.Sp }

// Chunk is a whole parsed file.
type Chunk struct {
	Block *Block
	Sp    source.Span
}

func (c *Chunk) Span() source.Span { return c.Sp }

// Block is a statement sequence.
type Block struct {
	Stmts []Stmt
	Sp    source.Span
}

func (b *Block) Span() source.Span { return b.Sp }
