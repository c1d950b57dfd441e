// Package tui resolves the conflicts of a merge session in a full-screen
// terminal UI.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sokinpui/reconcile/internal/highlight"
	"github.com/sokinpui/reconcile/model"
	"github.com/sokinpui/reconcile/reconcile"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))            // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))           // Red
	faintStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("210"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("114"))
	chosenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// --- Keys ---
type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	UseA   key.Binding
	UseB   key.Binding
	AThenB key.Binding
	BThenA key.Binding
	Undo   key.Binding
	Redo   key.Binding
	Copy   key.Binding
	Accept key.Binding
	Quit   key.Binding
	Help   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.UseA, k.UseB, k.AThenB, k.BThenA, k.Undo, k.Accept, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.UseA, k.UseB, k.AThenB, k.BThenA},
		{k.Undo, k.Redo, k.Copy},
		{k.Accept, k.Quit, k.Help},
	}
}

var keys = keyMap{
	Prev:   key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "previous conflict")),
	Next:   key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next conflict")),
	UseA:   key.NewBinding(key.WithKeys("a", "1"), key.WithHelp("a", "keep A")),
	UseB:   key.NewBinding(key.WithKeys("b", "2"), key.WithHelp("b", "keep B")),
	AThenB: key.NewBinding(key.WithKeys("+", "3"), key.WithHelp("+", "A then B")),
	BThenA: key.NewBinding(key.WithKeys("-", "4"), key.WithHelp("-", "B then A")),
	Undo:   key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
	Redo:   key.NewBinding(key.WithKeys("r", "ctrl+y"), key.WithHelp("r", "redo")),
	Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy result")),
	Accept: key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("↵", "accept")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
}

// --- Messages ---
type copiedMsg struct{ err error }

// --- Model ---

// Model is the bubbletea model for resolving one session.
type Model struct {
	sess      *reconcile.Session
	conflicts []int
	cursor    int
	labelA    string
	labelB    string

	keys     keyMap
	help     help.Model
	width    int
	status   string
	err      error
	accepted bool

	writeClipboard func(string) error
}

// New creates a model over sess, a merge of the given number of versions.
func New(sess *reconcile.Session, versions int) Model {
	labelA, labelB := reconcile.Labels(versions)
	return Model{
		sess:           sess,
		conflicts:      sess.ConflictIndices(),
		labelA:         labelA,
		labelB:         labelB,
		keys:           keys,
		help:           help.New(),
		width:          80,
		writeClipboard: clipboard.WriteAll,
	}
}

// Accepted reports whether the user confirmed the result before quitting.
func (m Model) Accepted() bool {
	return m.accepted
}

// Session returns the session being edited.
func (m Model) Session() *reconcile.Session {
	return m.sess
}

// Current returns the segment index of the selected conflict, or -1 when
// there are no conflicts.
func (m Model) Current() int {
	if len(m.conflicts) == 0 {
		return -1
	}
	return m.conflicts[m.cursor]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.status = "Copied result to clipboard."
		}
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Accept):
			m.accepted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Prev):
			m.move(-1)
		case key.Matches(msg, m.keys.Next):
			m.move(1)
		case key.Matches(msg, m.keys.UseA):
			m.decide(model.UseA)
		case key.Matches(msg, m.keys.UseB):
			m.decide(model.UseB)
		case key.Matches(msg, m.keys.AThenB):
			m.decide(model.AThenB)
		case key.Matches(msg, m.keys.BThenA):
			m.decide(model.BThenA)
		case key.Matches(msg, m.keys.Undo):
			if !m.sess.Undo() {
				m.status = "Nothing to undo."
			}
		case key.Matches(msg, m.keys.Redo):
			if !m.sess.Redo() {
				m.status = "Nothing to redo."
			}
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyResult
		}
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if len(m.conflicts) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.conflicts)) % len(m.conflicts)
}

// decide records d for the selected conflict and moves on to the next
// unresolved one, if any.
func (m *Model) decide(d model.Decision) {
	index := m.Current()
	if index < 0 {
		return
	}
	if err := m.sess.SetDecision(index, d); err != nil {
		m.err = err
		return
	}
	m.err = nil
	for step := 1; step < len(m.conflicts); step++ {
		next := (m.cursor + step) % len(m.conflicts)
		if _, ok := m.sess.Decision(m.conflicts[next]); !ok {
			m.cursor = next
			return
		}
	}
}

func (m Model) copyResult() tea.Msg {
	text, _ := m.sess.Assemble()
	return copiedMsg{err: m.writeClipboard(text)}
}

func (m Model) View() string {
	var b strings.Builder

	total := len(m.conflicts)
	resolved := m.sess.ResolvedCount()
	if total == 0 {
		b.WriteString(successStyle.Render("No conflicts: the versions reconcile cleanly."))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	index := m.Current()
	seg := m.sess.Segment(index)
	b.WriteString(headerStyle.Render(fmt.Sprintf("Conflict %d of %d", m.cursor+1, total)))
	b.WriteString(faintStyle.Render(fmt.Sprintf("  %d resolved · %s", resolved, seg.Reason)))
	b.WriteString("\n\n")

	if before := m.context(index-1, true); before != "" {
		b.WriteString(faintStyle.Render(before))
		b.WriteString("\n")
	}

	left, right := highlight.Inline(seg.OptionA, seg.OptionB)
	innerWidth := max(m.width-4, 10)
	b.WriteString(panelStyle.Width(innerWidth).Render(labelStyle.Render(m.labelA) + "\n" + render(left, removedStyle)))
	b.WriteString("\n")
	b.WriteString(panelStyle.Width(innerWidth).Render(labelStyle.Render(m.labelB) + "\n" + render(right, addedStyle)))
	b.WriteString("\n")

	if after := m.context(index+1, false); after != "" {
		b.WriteString(faintStyle.Render(after))
		b.WriteString("\n")
	}

	if d, ok := m.sess.Decision(index); ok {
		b.WriteString(chosenStyle.Render("Chosen: " + d.String()))
	} else {
		b.WriteString(faintStyle.Render("Unresolved"))
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.status)
		b.WriteString("\n")
	case m.sess.IsFullyResolved():
		b.WriteString(successStyle.Render("All conflicts resolved. Press enter to accept."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// context returns one line of the content segment at index: its last line
// when it precedes the conflict, its first line when it follows.
func (m Model) context(index int, before bool) string {
	segments := m.sess.Segments()
	if index < 0 || index >= len(segments) {
		return ""
	}
	seg := segments[index]
	if seg.IsConflict() {
		return ""
	}
	lines := strings.Split(seg.Text, "\n")
	line := lines[0]
	if before {
		line = lines[len(lines)-1]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	return runewidth.Truncate(line, max(m.width-2, 10), "…")
}

// render joins the marks of one option, styling the changed runs.
func render(marks []model.Mark, changed lipgloss.Style) string {
	if len(marks) == 0 {
		return faintStyle.Render("(empty)")
	}
	var b strings.Builder
	for _, span := range highlight.Spans(marks) {
		if span.Changed {
			b.WriteString(changed.Render(span.Text))
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}
