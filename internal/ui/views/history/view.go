package history

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	boarddto "runsheet/internal/modules/board/dto"
	"runsheet/internal/ui/theme"
)

type runItem struct {
	index  int
	record boarddto.RunRecordView
}

func (i runItem) Title() string {
	return fmt.Sprintf("%d. %s", i.index+1, i.record.CompletedAt)
}

func (i runItem) Description() string {
	desc := fmt.Sprintf("%d activities  plan %dm  ran %d:%02d",
		len(i.record.Entries), i.record.PlannedMinutes,
		i.record.ActualSeconds/60, i.record.ActualSeconds%60)
	if i.record.ReflectionNotes != "" {
		desc += "  ·  " + i.record.ReflectionNotes
	}
	return desc
}

func (i runItem) FilterValue() string { return i.record.CompletedAt + " " + i.record.ReflectionNotes }

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
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{list: l}
}

func (m Model) Init() tea.Cmd { return nil }

func (m *Model) SetArchive(archive []boarddto.RunRecordView) tea.Cmd {
	items := make([]list.Item, len(archive))
	// Newest first.
	for i := range archive {
		reverse := len(archive) - 1 - i
		items[i] = runItem{index: reverse, record: archive[reverse]}
	}
	return m.list.SetItems(items)
}

// SelectedIndex returns the archive index under the cursor.
func (m Model) SelectedIndex() (int, bool) {
	item, ok := m.list.SelectedItem().(runItem)
	if !ok {
		return 0, false
	}
	return item.index, true
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
	return m.list.View()
}
