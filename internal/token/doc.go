// Package token defines lexical token kinds and trivia for the Lua dialect
// luastyle checks.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments never appear in the main token stream; they are leading Trivia
//     attached to the following token.
//   - Luau's `continue` is contextual and lexes as Ident; the parser decides.
//   - Number and string literals keep their raw text; rules that care about
//     content re-inspect Token.Text.
package token
