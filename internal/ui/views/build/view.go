package build

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	boarddto "runsheet/internal/modules/board/dto"
	deckdto "runsheet/internal/modules/deck/dto"
	"runsheet/internal/ui/theme"
)

// AddEntryMsg bubbles up when the user picks a deck item (or the break
// sentinel) from the picker overlay.
type AddEntryMsg struct {
	ItemRef string
	Minutes int
}

const breakRef = "break"

// ─── list items ──────────────────────────────────────────────────────────────

type entryItem struct {
	entry boarddto.EntryView
}

func (i entryItem) Title() string {
	return fmt.Sprintf("%d. %s", i.entry.Position+1, i.entry.ItemName)
}

func (i entryItem) Description() string {
	return fmt.Sprintf("%d min", i.entry.TargetMinutes)
}

func (i entryItem) FilterValue() string { return i.entry.ItemName }

type pickerItem struct {
	ref     string
	name    string
	minutes int
	starred bool
	tags    []string
}

func (i pickerItem) Title() string {
	if i.starred {
		return "★ " + i.name
	}
	return i.name
}

func (i pickerItem) Description() string {
	if len(i.tags) == 0 {
		return fmt.Sprintf("%d min", i.minutes)
	}
	return fmt.Sprintf("%d min  %s", i.minutes, strings.Join(i.tags, " "))
}

func (i pickerItem) FilterValue() string { return i.name + " " + strings.Join(i.tags, " ") }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	queue      list.Model
	picker     list.Model
	showPicker bool
	session    *boarddto.SessionView
	width      int
	height     int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	q := list.New(nil, delegate, 0, 0)
	q.Title = "Queue"
	q.Styles.Title = theme.Title
	q.SetShowStatusBar(false)
	q.SetFilteringEnabled(false)
	q.SetShowHelp(false)

	p := list.New(nil, delegate, 0, 0)
	p.Title = "Add from deck"
	p.Styles.Title = theme.Title
	p.SetShowStatusBar(true)
	p.SetFilteringEnabled(true)
	p.SetShowHelp(false)

	return Model{queue: q, picker: p}
}

func (m Model) Init() tea.Cmd { return nil }

// SetState replaces the queue contents from a fresh board snapshot,
// keeping the cursor near its previous position.
func (m *Model) SetState(state boarddto.StateView) tea.Cmd {
	m.session = state.Current
	if state.Current == nil {
		return m.queue.SetItems(nil)
	}
	selected := m.queue.Index()
	items := make([]list.Item, len(state.Current.Entries))
	for i, entry := range state.Current.Entries {
		items[i] = entryItem{entry: entry}
	}
	cmd := m.queue.SetItems(items)
	if selected >= len(items) {
		selected = len(items) - 1
	}
	if selected >= 0 {
		m.queue.Select(selected)
	}
	return cmd
}

// SetDeck refreshes the picker overlay. The break sentinel is always the
// first choice.
func (m *Model) SetDeck(items []deckdto.ItemOutput, starred map[string]bool) tea.Cmd {
	listItems := make([]list.Item, 0, len(items)+1)
	listItems = append(listItems, pickerItem{ref: breakRef, name: "Break", minutes: 5})
	for _, item := range items {
		listItems = append(listItems, pickerItem{
			ref:     item.ID,
			name:    item.Name,
			minutes: item.DefaultMinutes,
			starred: starred[item.ID],
			tags:    item.Tags,
		})
	}
	return m.picker.SetItems(listItems)
}

// SelectedPosition returns the queue position under the cursor.
func (m Model) SelectedPosition() (int, bool) {
	item, ok := m.queue.SelectedItem().(entryItem)
	if !ok {
		return 0, false
	}
	return item.entry.Position, true
}

func (m *Model) OpenPicker() {
	m.showPicker = true
	m.picker.ResetFilter()
	m.picker.Select(0)
}

func (m Model) PickerVisible() bool { return m.showPicker }

func (m Model) Filtering() bool {
	return m.showPicker && m.picker.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.resize()
		return m, nil
	}

	if m.showPicker {
		if key, ok := msg.(tea.KeyMsg); ok && m.picker.FilterState() != list.Filtering {
			switch key.String() {
			case "esc":
				m.showPicker = false
				return m, nil
			case "enter":
				item, ok := m.picker.SelectedItem().(pickerItem)
				if !ok {
					return m, nil
				}
				m.showPicker = false
				return m, func() tea.Msg {
					return AddEntryMsg{ItemRef: item.ref, Minutes: item.minutes}
				}
			}
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.queue, cmd = m.queue.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	paneW := m.width * 3 / 5
	if paneW < 20 {
		paneW = m.width
	}
	m.queue.SetSize(paneW-4, m.height-2)
	m.picker.SetSize(min(m.width-8, 60), m.height-4)
}

func (m Model) View() string {
	if m.showPicker {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.PaneActive.Render(m.picker.View()))
	}
	if m.session == nil {
		return theme.Muted.Render("\n  No session. Press n to create a queue.")
	}

	left := theme.Pane.Width(m.width * 3 / 5).Render(m.queue.View())
	right := theme.Pane.Width(m.width - m.width*3/5 - 2).Render(m.summary())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) summary() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.session.DisplayName) + "\n\n")
	sb.WriteString(fmt.Sprintf("entries   %d\n", len(m.session.Entries)))
	sb.WriteString(fmt.Sprintf("planned   %d min\n", m.session.PlannedMinutes))
	sb.WriteString(theme.Muted.Render("created   "+m.session.CreatedAt) + "\n\n")
	sb.WriteString(theme.Muted.Render("a:add  d:remove  J/K:move\n+/-:duration  r:start run"))
	return sb.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
