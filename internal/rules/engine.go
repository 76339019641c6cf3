// Package rules implements the style checks and the registry that runs them.
package rules

import (
	"sort"

	"github.com/dgxo/luastyle/internal/ast"
	"github.com/dgxo/luastyle/internal/config"
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// Version changes when rule behavior changes in a way that invalidates
// cached results.
const Version = "2026.08"

// Rule is one style check. Rules are stateless; all per-file state lives in
// the Context.
type Rule interface {
	// Name is the stable config key, e.g. "quote-style".
	Name() string
	// Code is the rule's diagnostic code.
	Code() diag.Code
	// DefaultSeverity applies unless the config overrides it.
	DefaultSeverity() diag.Severity
	// Doc is a one-line description for `luastyle rules`.
	Doc() string
	// Check inspects the file and reports findings through ctx.
	Check(ctx *Context)
}

// Context carries everything a rule may inspect for a single file.
type Context struct {
	File   *source.File
	Tokens []token.Token
	Chunk  *ast.Chunk
	Config *config.Config

	reporter diag.Reporter
	rule     Rule
	severity diag.Severity
}

// Report starts a diagnostic at the running rule's code and effective
// severity. Callers chain notes and fixes, then Emit.
func (ctx *Context) Report(primary source.Span, msg string) *diag.ReportBuilder {
	return diag.NewReportBuilder(ctx.reporter, ctx.severity, ctx.rule.Code(), primary, msg)
}

// RuleConfig returns the per-rule config table for the running rule.
func (ctx *Context) RuleConfig() config.RuleConfig {
	return ctx.Config.Rule(ctx.rule.Name())
}

// Lines iterates over the physical lines of the file's content, calling fn
// with the 1-based line number and the line's span excluding the newline.
func (ctx *Context) Lines(fn func(lineNum int, line []byte, sp source.Span)) {
	count := ctx.File.LineCount()
	for n := uint32(1); n <= count; n++ {
		sp := ctx.File.LineSpan(n)
		fn(int(n), ctx.File.Content[sp.Start:sp.End], sp)
	}
}

// Text returns the source bytes under a span.
func (ctx *Context) Text(sp source.Span) string {
	return string(ctx.File.Content[sp.Start:sp.End])
}

// Registry holds the rule set in registration order.
type Registry struct {
	rules []Rule
	byKey map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Rule)}
}

// Register adds a rule. Duplicate names or codes are a programming error.
func (reg *Registry) Register(r Rule) {
	if _, dup := reg.byKey[r.Name()]; dup {
		panic("rules: duplicate rule " + r.Name())
	}
	reg.byKey[r.Name()] = r
	reg.rules = append(reg.rules, r)
}

// All returns the rules sorted by code.
func (reg *Registry) All() []Rule {
	out := make([]Rule, len(reg.rules))
	copy(out, reg.rules)
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out
}

// Names returns the registered rule names, sorted.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.rules))
	for _, r := range reg.rules {
		names = append(names, r.Name())
	}
	sort.Strings(names)
	return names
}

// Lookup finds a rule by name.
func (reg *Registry) Lookup(name string) (Rule, bool) {
	r, ok := reg.byKey[name]
	return r, ok
}

// Run executes every enabled rule against one file. Diagnostics go to
// reporter with severities resolved against cfg.
func (reg *Registry) Run(file *source.File, tokens []token.Token, chunk *ast.Chunk, cfg *config.Config, reporter diag.Reporter) {
	for _, r := range reg.All() {
		if !cfg.RuleEnabled(r.Name()) {
			continue
		}
		ctx := &Context{
			File:     file,
			Tokens:   tokens,
			Chunk:    chunk,
			Config:   cfg,
			reporter: reporter,
			rule:     r,
			severity: cfg.RuleSeverity(r.Name(), r.DefaultSeverity()),
		}
		r.Check(ctx)
	}
}

// DefaultRegistry returns the built-in rule set.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(QuoteStyle{})
	reg.Register(IndentStyle{})
	reg.Register(TrailingWhitespace{})
	reg.Register(LineLength{})
	reg.Register(ParenCondition{})
	reg.Register(TrailingComma{})
	reg.Register(Semicolon{})
	reg.Register(Naming{})
	reg.Register(GlobalWrite{})
	reg.Register(OperatorSpacing{})
	reg.Register(CommaSpacing{})
	reg.Register(EOFNewline{})
	reg.Register(CommentStyle{})
	return reg
}
