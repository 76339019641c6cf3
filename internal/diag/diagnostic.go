package diag

import (
	"github.com/dgxo/luastyle/internal/source"
)

// Note is a secondary span with additional context.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the span's text with NewText. OldText, when non-empty,
// acts as a guard the fix engine validates before applying.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixApplicability expresses how safe it is to apply a fix mechanically.
type FixApplicability uint8

const (
	// FixApplicabilityAlwaysSafe marks edits that never change behavior.
	FixApplicabilityAlwaysSafe FixApplicability = iota
	// FixApplicabilitySafeWithHeuristics marks edits that are correct for the
	// patterns the rule recognizes but deserve review.
	FixApplicabilitySafeWithHeuristics
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	}
	return "unknown"
}

// Fix represents a possible automated correction.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	Edits         []TextEdit
}

// Diagnostic is the central record produced by the lexer, parser, and rules.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}

// HasFixes reports whether any fix with edits is attached.
func (d Diagnostic) HasFixes() bool {
	for _, f := range d.Fixes {
		if len(f.Edits) > 0 {
			return true
		}
	}
	return false
}
