package diag

import (
	"testing"

	"github.com/dgxo/luastyle/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(LexUnknownChar, span(0, 0, 1), "a")) {
		t.Fatal("first add rejected")
	}
	if !b.Add(NewError(LexUnknownChar, span(0, 1, 2), "b")) {
		t.Fatal("second add rejected")
	}
	if b.Add(NewError(LexUnknownChar, span(0, 2, 3), "c")) {
		t.Error("add beyond capacity must fail")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	b := NewBag(10)
	b.Add(NewWarning(StyLineLength, span(1, 0, 5), "later file"))
	b.Add(NewWarning(StySemicolon, span(0, 10, 11), "later offset"))
	b.Add(NewError(StyQuoteStyle, span(0, 2, 4), "error first at same span"))
	b.Add(NewWarning(StyQuoteStyle, span(0, 2, 4), "warning second"))
	b.Sort()

	items := b.Items()
	if items[0].Severity != SevError {
		t.Errorf("expected error first at shared span, got %v", items[0].Severity)
	}
	if items[1].Message != "warning second" {
		t.Errorf("expected warning second, got %q", items[1].Message)
	}
	if items[2].Code != StySemicolon {
		t.Errorf("expected later offset third, got %v", items[2].Code)
	}
	if items[3].Primary.File != 1 {
		t.Errorf("expected later file last, got file %d", items[3].Primary.File)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	d := NewWarning(StySemicolon, span(0, 3, 4), "drop the semicolon")
	b.Add(d)
	b.Add(d)
	b.Add(NewWarning(StySemicolon, span(0, 5, 6), "different span survives"))
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Len after dedup = %d, want 2", b.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexBadNumber, span(0, 0, 1), "x"))
	other := NewBag(2)
	other.Add(NewError(LexBadNumber, span(0, 1, 2), "y"))
	other.Add(NewError(LexBadNumber, span(0, 2, 3), "z"))

	a.Merge(other)
	if a.Len() != 3 {
		t.Errorf("Len after merge = %d, want 3", a.Len())
	}
	// capacity grew to fit the merge, not beyond
	if a.Add(NewError(LexBadNumber, span(0, 3, 4), "w")) {
		t.Error("add after merge must still respect capacity")
	}
}

func TestCountBySeverity(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(SynUnexpectedToken, span(0, 0, 1), "e"))
	b.Add(NewWarning(StyNaming, span(0, 1, 2), "w1"))
	b.Add(NewWarning(StyNaming, span(0, 2, 3), "w2"))
	if got := b.CountBySeverity(SevWarning); got != 2 {
		t.Errorf("warnings = %d, want 2", got)
	}
	if got := b.CountBySeverity(SevError); got != 1 {
		t.Errorf("errors = %d, want 1", got)
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}

	b := ReportWarning(r, StyQuoteStyle, span(0, 0, 4), "prefer double quotes").
		WithNote(span(0, 0, 4), "string starts here").
		WithFix("replace quotes", TextEdit{Span: span(0, 0, 1), NewText: `"`})
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (Emit must fire once)", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Errorf("notes/fixes = %d/%d, want 1/1", len(d.Notes), len(d.Fixes))
	}
	if !d.HasFixes() {
		t.Error("HasFixes must be true")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := span(0, 0, 1)
	r.Report(StySemicolon, SevWarning, sp, "dup", nil, nil)
	r.Report(StySemicolon, SevWarning, sp, "dup", nil, nil)
	r.Report(StySemicolon, SevWarning, sp, "not dup", nil, nil)
	if bag.Len() != 2 {
		t.Errorf("Len = %d, want 2", bag.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynExpectEnd, "SYN2004"},
		{StyParenCondition, "STY3005"},
		{IOConfigError, "IO4002"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
