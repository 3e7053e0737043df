package deck

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	deckdto "runsheet/internal/modules/deck/dto"
	"runsheet/internal/ui/theme"
)

type deckItem struct {
	item    deckdto.ItemOutput
	starred bool
}

func (i deckItem) Title() string {
	if i.starred {
		return "★ " + i.item.Name
	}
	return i.item.Name
}

func (i deckItem) Description() string {
	parts := []string{fmt.Sprintf("%d min", i.item.DefaultMinutes), i.item.Origin}
	if len(i.item.Tags) > 0 {
		parts = append(parts, strings.Join(i.item.Tags, " "))
	}
	return strings.Join(parts, "  ")
}

func (i deckItem) FilterValue() string {
	return i.item.Name + " " + strings.Join(i.item.Tags, " ")
}

type Model struct {
	list   list.Model
	width  int
	height int
}

func New() Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Deck"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{list: l}
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) SetItems(items []deckdto.ItemOutput, starred map[string]bool) tea.Cmd {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = deckItem{item: item, starred: starred[item.ID]}
	}
	return m.list.SetItems(listItems)
}

// SelectedItemID returns the deck item id under the cursor.
func (m Model) SelectedItemID() (string, bool) {
	item, ok := m.list.SelectedItem().(deckItem)
	if !ok {
		return "", false
	}
	return item.item.ID, true
}

// SelectedDefaultMinutes returns the default duration of the selected item.
func (m Model) SelectedDefaultMinutes() int {
	item, ok := m.list.SelectedItem().(deckItem)
	if !ok {
		return 0
	}
	return item.item.DefaultMinutes
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.list.SetSize(m.width-4, m.height-2)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	footer := theme.Muted.Render("s:star  a:add to queue  /:filter")
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), footer)
}
