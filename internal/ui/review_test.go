package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
)

func reviewItems(paths ...string) []ReviewItem {
	items := make([]ReviewItem, len(paths))
	for i, p := range paths {
		items[i] = ReviewItem{
			Diag: diag.NewWarning(diag.StySemicolon, source.Span{}, "stray semicolon"),
			Path: p,
			Line: 1,
			Col:  1,
		}
	}
	return items
}

func press(t *testing.T, m tea.Model, keys ...string) tea.Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestReviewAcceptReject(t *testing.T) {
	m := NewReviewModel(reviewItems("a.lua", "a.lua", "b.lua"), nil)
	final := press(t, m, "y", "n", "y").(*ReviewModel)
	got := final.Accepted()
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("accepted = %v, want [0 2]", got)
	}
	if final.Aborted() {
		t.Fatal("should not be aborted")
	}
}

func TestReviewAcceptFile(t *testing.T) {
	m := NewReviewModel(reviewItems("a.lua", "a.lua", "b.lua"), nil)
	final := press(t, m, "f", "n").(*ReviewModel)
	got := final.Accepted()
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("accepted = %v, want [0 1]", got)
	}
}

func TestReviewQuitAborts(t *testing.T) {
	m := NewReviewModel(reviewItems("a.lua", "b.lua"), nil)
	final := press(t, m, "y", "q").(*ReviewModel)
	if !final.Aborted() {
		t.Fatal("q should abort")
	}
}

func TestReviewEnterAppliesPartial(t *testing.T) {
	m := NewReviewModel(reviewItems("a.lua", "b.lua", "c.lua"), nil)
	final := press(t, m, "y", "enter").(*ReviewModel)
	if final.Aborted() {
		t.Fatal("enter should finish, not abort")
	}
	got := final.Accepted()
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("accepted = %v, want [0]", got)
	}
}

func TestReviewEnterStartsApplying(t *testing.T) {
	var got []int
	apply := func(accepted []int) error {
		got = append([]int(nil), accepted...)
		return nil
	}
	m := NewReviewModel(reviewItems("a.lua", "b.lua"), apply)
	rm := press(t, m, "y", "enter").(*ReviewModel)
	if !rm.applying {
		t.Fatal("enter should start the applying phase")
	}
	if !strings.Contains(rm.View(), "applying") {
		t.Fatalf("view %q should mention applying", rm.View())
	}

	// keys are ignored while fixes are being written
	rm = press(t, rm, "n").(*ReviewModel)
	if accepted := rm.Accepted(); len(accepted) != 1 || accepted[0] != 0 {
		t.Fatalf("accepted = %v, want [0]", accepted)
	}

	model, _ := rm.Update(rm.runApply()())
	rm = model.(*ReviewModel)
	if rm.applying {
		t.Fatal("applying should end once the fixes are written")
	}
	if rm.applyErr != nil {
		t.Fatalf("applyErr = %v", rm.applyErr)
	}
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("apply got %v, want [0]", got)
	}
}

func TestReviewApplyError(t *testing.T) {
	wantErr := errors.New("write failed")
	m := NewReviewModel(reviewItems("a.lua"), func([]int) error { return wantErr })
	rm := press(t, m, "y").(*ReviewModel)
	if !rm.applying {
		t.Fatal("deciding the last item should start applying")
	}
	model, _ := rm.Update(rm.runApply()())
	rm = model.(*ReviewModel)
	if !errors.Is(rm.applyErr, wantErr) {
		t.Fatalf("applyErr = %v, want %v", rm.applyErr, wantErr)
	}
}

func TestReviewCursorNavigation(t *testing.T) {
	m := NewReviewModel(reviewItems("a.lua", "b.lua", "c.lua"), nil)
	final := press(t, m, "j", "j", "j", "k", "y").(*ReviewModel)
	got := final.Accepted()
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("accepted = %v, want [1]", got)
	}
}
