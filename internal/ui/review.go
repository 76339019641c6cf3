// Package ui holds the interactive terminal frontends.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dgxo/luastyle/internal/diag"
)

// ReviewItem is one fixable diagnostic offered for interactive review.
type ReviewItem struct {
	Diag    diag.Diagnostic
	Path    string
	Line    uint32
	Col     uint32
	Excerpt string // the source line the fix touches
}

type decision int

const (
	decisionPending decision = iota
	decisionAccepted
	decisionRejected
)

// ApplyFunc applies the accepted fixes, identified by item index. It runs
// off the UI goroutine while the model shows a spinner.
type ApplyFunc func(accepted []int) error

type applyDoneMsg struct{ err error }

// ReviewModel walks the user through fixable diagnostics one by one.
type ReviewModel struct {
	items     []ReviewItem
	decisions []decision
	cursor    int
	apply     ApplyFunc
	spinner   spinner.Model
	prog      progress.Model
	width     int
	aborted   bool
	finished  bool
	applying  bool
	applyErr  error
}

// NewReviewModel returns a Bubble Tea model for reviewing fixes. apply may
// be nil, in which case the model quits without an applying phase.
func NewReviewModel(items []ReviewItem, apply ApplyFunc) *ReviewModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76
	return &ReviewModel{
		items:     items,
		decisions: make([]decision, len(items)),
		apply:     apply,
		spinner:   sp,
		prog:      prog,
		width:     80,
	}
}

// Accepted returns the indices the user accepted, in item order.
func (m *ReviewModel) Accepted() []int {
	var out []int
	for i, d := range m.decisions {
		if d == decisionAccepted {
			out = append(out, i)
		}
	}
	return out
}

// Aborted reports whether the user quit without applying.
func (m *ReviewModel) Aborted() bool { return m.aborted }

func (m *ReviewModel) Init() tea.Cmd {
	return nil
}

func (m *ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.applying {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "y", " ":
			return m.decide(decisionAccepted)
		case "n":
			return m.decide(decisionRejected)
		case "f":
			// accept every remaining fix in the current file
			if len(m.items) > 0 {
				path := m.items[m.cursor].Path
				for i := m.cursor; i < len(m.items); i++ {
					if m.items[i].Path == path && m.decisions[i] == decisionPending {
						m.decisions[i] = decisionAccepted
					}
				}
				m.advance()
			}
			return m.maybeFinish()
		case "enter":
			return m.startApply()
		}
		return m, nil
	case applyDoneMsg:
		m.applying = false
		m.applyErr = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.applying {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		model, cmd := m.prog.Update(msg)
		m.prog = model.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *ReviewModel) decide(d decision) (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	m.decisions[m.cursor] = d
	m.advance()
	return m.maybeFinish()
}

// advance moves the cursor to the next undecided item, if any.
func (m *ReviewModel) advance() {
	for i := m.cursor + 1; i < len(m.items); i++ {
		if m.decisions[i] == decisionPending {
			m.cursor = i
			return
		}
	}
	for i := 0; i < len(m.items); i++ {
		if m.decisions[i] == decisionPending {
			m.cursor = i
			return
		}
	}
}

func (m *ReviewModel) maybeFinish() (tea.Model, tea.Cmd) {
	for _, d := range m.decisions {
		if d == decisionPending {
			return m, nil
		}
	}
	return m.startApply()
}

// startApply ends the review and kicks off the applying phase.
func (m *ReviewModel) startApply() (tea.Model, tea.Cmd) {
	m.finished = true
	if m.apply == nil {
		return m, tea.Quit
	}
	m.applying = true
	return m, tea.Batch(m.spinner.Tick, m.runApply())
}

func (m *ReviewModel) runApply() tea.Cmd {
	accepted := m.Accepted()
	return func() tea.Msg {
		return applyDoneMsg{err: m.apply(accepted)}
	}
}

func (m *ReviewModel) decided() int {
	n := 0
	for _, d := range m.decisions {
		if d != decisionPending {
			n++
		}
	}
	return n
}

func (m *ReviewModel) View() string {
	if len(m.items) == 0 {
		return "no fixable diagnostics\n"
	}
	if m.applying {
		return fmt.Sprintf("%s applying %d fixes...\n", m.spinner.View(), len(m.Accepted()))
	}
	if m.finished || m.aborted {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	acceptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	rejectStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

	var b strings.Builder
	header := fmt.Sprintf("review fixes (%d/%d decided)", m.decided(), len(m.items))
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(m.prog.ViewAs(float64(m.decided()) / float64(len(m.items))))
	b.WriteString("\n\n")

	first, last := m.window(12)
	for i := first; i < last; i++ {
		item := m.items[i]
		var marker string
		switch m.decisions[i] {
		case decisionAccepted:
			marker = acceptStyle.Render("+")
		case decisionRejected:
			marker = rejectStyle.Render("-")
		default:
			marker = dimStyle.Render("·")
		}
		loc := fmt.Sprintf("%s:%d:%d", item.Path, item.Line, item.Col)
		line := fmt.Sprintf("%s %s %s  %s", marker, item.Diag.Code.ID(), loc, item.Diag.Message)
		line = reviewTruncate(line, m.width-4)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	cur := m.items[m.cursor]
	if cur.Excerpt != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  | "))
		b.WriteString(reviewTruncate(cur.Excerpt, m.width-6))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("y accept  n reject  f accept file  enter apply  q quit"))
	b.WriteString("\n")
	return b.String()
}

// window returns the visible item range, keeping the cursor in view.
func (m *ReviewModel) window(height int) (int, int) {
	if len(m.items) <= height {
		return 0, len(m.items)
	}
	first := m.cursor - height/2
	if first < 0 {
		first = 0
	}
	last := first + height
	if last > len(m.items) {
		last = len(m.items)
		first = last - height
	}
	return first, last
}

func reviewTruncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

// RunReview runs the review UI, calls apply with the accepted item indices
// while showing a spinner, and returns those indices. ok is false when the
// user aborted before applying.
func RunReview(items []ReviewItem, apply ApplyFunc) (accepted []int, ok bool, err error) {
	model := NewReviewModel(items, apply)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	final, err := program.Run()
	if err != nil {
		return nil, false, err
	}
	m, isReview := final.(*ReviewModel)
	if !isReview || m.Aborted() {
		return nil, false, nil
	}
	if m.applyErr != nil {
		return nil, false, m.applyErr
	}
	return m.Accepted(), true, nil
}
