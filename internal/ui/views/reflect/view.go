package reflect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	boarddto "runsheet/internal/modules/board/dto"
	"runsheet/internal/ui/theme"
)

// FinishMsg bubbles up when the facilitator archives the finished run.
type FinishMsg struct{ Notes string }

type Model struct {
	state  boarddto.StateView
	notes  textarea.Model
	width  int
	height int
}

func New() Model {
	ta := textarea.New()
	ta.Placeholder = "how did the session go?"
	ta.SetHeight(4)
	return Model{notes: ta}
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) SetState(state boarddto.StateView) {
	m.state = state
}

// Focus gives the reflection textarea keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.notes.Focus()
}

// Editing reports whether the textarea has focus; global key bindings
// yield while it does.
func (m Model) Editing() bool { return m.notes.Focused() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.notes.SetWidth(min(m.width-8, 76))

	case tea.KeyMsg:
		if !m.notes.Focused() {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.notes.Blur()
			return m, nil
		case "ctrl+s":
			m.notes.Blur()
			text := m.notes.Value()
			m.notes.SetValue("")
			return m, func() tea.Msg { return FinishMsg{Notes: text} }
		}
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.state.Current == nil {
		return theme.Muted.Render("\n  Nothing to reflect on. Finish a run first.")
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Reflect: "+m.state.Current.DisplayName) + "\n\n")

	totalPlanned := 0
	totalActual := 0
	for _, entry := range m.state.Current.Entries {
		planned := entry.TargetMinutes * 60
		totalPlanned += planned
		line := fmt.Sprintf("%-28s plan %6s", truncate(entry.ItemName, 28), clock(planned))
		if entry.ActualSeconds != nil {
			actual := *entry.ActualSeconds
			totalActual += actual
			delta := actual - planned
			line += fmt.Sprintf("  ran %6s  %s", clock(actual), renderDelta(delta))
		} else {
			line += "  " + theme.Muted.Render("not run")
		}
		if entry.RunNotes != "" {
			line += "\n  " + theme.Muted.Render(entry.RunNotes)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-28s plan %6s  ran %6s\n", "total", clock(totalPlanned), clock(totalActual)))

	sb.WriteString("\n" + theme.Muted.Render("reflection notes") + "\n")
	sb.WriteString(m.notes.View() + "\n")
	sb.WriteString("\n" + theme.Muted.Render("e:edit notes  ctrl+s:finish & archive  esc:stop editing"))

	return theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}

func renderDelta(delta int) string {
	switch {
	case delta > 0:
		return theme.Overrun.Render("+" + clock(delta))
	case delta < 0:
		return theme.OK.Render("-" + clock(-delta))
	default:
		return theme.Muted.Render("on time")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
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
