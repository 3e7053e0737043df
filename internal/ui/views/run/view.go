package run

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	boarddto "runsheet/internal/modules/board/dto"
	"runsheet/internal/ui/theme"
)

// NoteMsg bubbles up when the facilitator commits a note for the entry
// that was active when the editor opened.
type NoteMsg struct {
	Position int
	Text     string
}

type Model struct {
	state        boarddto.StateView
	note         textinput.Model
	editingNote  bool
	notePosition int
	width        int
	height       int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "note for this activity…"
	ti.CharLimit = 512
	return Model{note: ti}
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) SetState(state boarddto.StateView) {
	m.state = state
}

// EditingNote reports whether the note editor has focus, in which case
// global key bindings must yield.
func (m Model) EditingNote() bool { return m.editingNote }

// OpenNote focuses the note editor for the active entry.
func (m *Model) OpenNote() tea.Cmd {
	entry, ok := m.activeEntry()
	if !ok {
		return nil
	}
	m.editingNote = true
	m.notePosition = entry.Position
	m.note.SetValue(entry.RunNotes)
	return m.note.Focus()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.note.Width = min(m.width-8, 70)

	case tea.KeyMsg:
		if !m.editingNote {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.editingNote = false
			m.note.Blur()
			return m, nil
		case "enter":
			m.editingNote = false
			m.note.Blur()
			position := m.notePosition
			text := m.note.Value()
			return m, func() tea.Msg { return NoteMsg{Position: position, Text: text} }
		}
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	entry, ok := m.activeEntry()
	if !ok {
		return theme.Muted.Render("\n  No run in progress. Press r on the Build tab to start.")
	}

	timer := m.state.Timer
	remaining := entry.TargetMinutes*60 - timer.ElapsedSeconds

	var countdown string
	switch {
	case remaining < 0:
		countdown = theme.Overrun.Render("+" + clock(-remaining))
	case remaining <= 60:
		countdown = theme.Warn.Render(clock(remaining))
	default:
		countdown = theme.OK.Render(clock(remaining))
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(entry.ItemName) + "\n\n")
	sb.WriteString(bigLine("remaining", countdown))
	sb.WriteString(bigLine("elapsed", clock(timer.ElapsedSeconds)))
	sb.WriteString(bigLine("session", clock(timer.CumulativeSeconds)))
	sb.WriteString(bigLine("est. end", m.estimatedEnd().Format("15:04")))
	if timer.Paused {
		sb.WriteString("\n" + theme.Warn.Render("⏸ paused") + "\n")
	}

	if m.editingNote {
		sb.WriteString("\nnote: " + m.note.View() + "\n")
	} else if entry.RunNotes != "" {
		sb.WriteString("\n" + theme.Muted.Render("note: "+entry.RunNotes) + "\n")
	}

	sb.WriteString("\n" + m.upcoming())
	sb.WriteString("\n" + theme.Muted.Render("space:pause  →:advance  n:note  ::queue:move to reorder upcoming"))

	return theme.PaneActive.Width(max(m.width-4, 20)).Render(sb.String())
}

func (m Model) activeEntry() (boarddto.EntryView, bool) {
	if m.state.Current == nil || m.state.ActiveIndex == nil {
		return boarddto.EntryView{}, false
	}
	idx := *m.state.ActiveIndex
	if idx < 0 || idx >= len(m.state.Current.Entries) {
		return boarddto.EntryView{}, false
	}
	return m.state.Current.Entries[idx], true
}

// estimatedEnd projects the wall-clock finish time assuming every
// remaining entry runs exactly to target.
func (m Model) estimatedEnd() time.Time {
	now := time.Now()
	entry, ok := m.activeEntry()
	if !ok {
		return now
	}
	left := entry.TargetMinutes*60 - m.state.Timer.ElapsedSeconds
	if left < 0 {
		left = 0
	}
	for _, next := range m.state.Current.Entries[*m.state.ActiveIndex+1:] {
		left += next.TargetMinutes * 60
	}
	return now.Add(time.Duration(left) * time.Second)
}

func (m Model) upcoming() string {
	idx := *m.state.ActiveIndex
	rest := m.state.Current.Entries[idx+1:]
	if len(rest) == 0 {
		return theme.Muted.Render("last activity")
	}
	var sb strings.Builder
	sb.WriteString(theme.Muted.Render("up next") + "\n")
	for i, entry := range rest {
		if i == 3 {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("  …and %d more\n", len(rest)-i)))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s  %s\n", entry.ItemName, theme.Muted.Render(fmt.Sprintf("%d min", entry.TargetMinutes))))
	}
	return sb.String()
}

func bigLine(label, value string) string {
	return fmt.Sprintf("%-10s %s\n", theme.Muted.Render(label), value)
}

func clock(total int) string {
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
