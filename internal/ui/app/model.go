package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	boarddto "runsheet/internal/modules/board/dto"
	deckdto "runsheet/internal/modules/deck/dto"
	importerdto "runsheet/internal/modules/importer/dto"
	"runsheet/internal/ui/components"
	"runsheet/internal/ui/theme"
	buildview "runsheet/internal/ui/views/build"
	deckview "runsheet/internal/ui/views/deck"
	historyview "runsheet/internal/ui/views/history"
	reflectview "runsheet/internal/ui/views/reflect"
	runview "runsheet/internal/ui/views/run"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type boardPort interface {
	Snapshot(ctx context.Context) (boarddto.StateView, error)
	CreateQueue(ctx context.Context) error
	LoadTemplate(ctx context.Context, templateID string) error
	AddEntry(ctx context.Context, input boarddto.AddEntryInput) error
	RemoveEntry(ctx context.Context, position int) error
	SetDuration(ctx context.Context, position, minutes int) error
	SetEntryNotes(ctx context.Context, position int, text string) error
	Reorder(ctx context.Context, from, to int) error
	StartRun(ctx context.Context) error
	Advance(ctx context.Context) error
	Tick(ctx context.Context) error
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	FinishRun(ctx context.Context, reflectionNotes string) error
	SaveCurrentAsTemplate(ctx context.Context, name string) error
	ClearCurrent(ctx context.Context) error
	DeleteArchiveEntry(ctx context.Context, index int) error
	ToggleStarred(ctx context.Context, itemID string) error
	ReindexRuns(ctx context.Context) error
}

type deckPort interface {
	List(ctx context.Context) ([]deckdto.ItemOutput, error)
	Reindex(ctx context.Context) error
}

type importerPort interface {
	Run(ctx context.Context, input importerdto.RunInput) (importerdto.RunOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabBuild tabID = iota
	tabRun
	tabReflect
	tabDeck
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{
	"Build", "Run", "Reflect", "Deck", "History",
}

// ─── async messages ───────────────────────────────────────────────────────────

type stateLoadedMsg struct {
	view boarddto.StateView
	err  error
}

type deckLoadedMsg struct {
	items []deckdto.ItemOutput
	err   error
}

type mutationDoneMsg struct {
	label string
	err   error
}

type importDoneMsg struct {
	out importerdto.RunOutput
	err error
}

// clockTickMsg drives the run timer. gen guards against stale chains:
// only the most recently scheduled chain may tick the board.
type clockTickMsg struct{ gen int }

type clockTickedMsg struct {
	view boarddto.StateView
	err  error
	gen  int
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Add     key.Binding
	Remove  key.Binding
	MoveUp  key.Binding
	MoveDn  key.Binding
	Start   key.Binding
	Pause   key.Binding
	Advance key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add activity")),
		Remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		MoveUp:  key.NewBinding(key.WithKeys("K"), key.WithHelp("K/J", "move entry")),
		MoveDn:  key.NewBinding(key.WithKeys("J"), key.WithHelp("K/J", "move entry")),
		Start:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "start run")),
		Pause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Advance: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "advance")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Remove, k.MoveUp},
		{k.Start, k.Pause, k.Advance},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the board
// snapshot, the run clock, the help overlay, and the command palette.
// All business logic is delegated to port interfaces; rendering is
// delegated to sub-views.
type Model struct {
	board    boardPort
	deck     deckPort
	importer importerPort

	buildView   buildview.Model
	runView     runview.Model
	reflectView reflectview.Model
	deckView    deckview.Model
	historyView historyview.Model

	state     boarddto.StateView
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int

	clockGen  int
	clockLive bool
}

func NewModel(board boardPort, deck deckPort, importer importerPort) Model {
	return Model{
		board:       board,
		deck:        deck,
		importer:    importer,
		buildView:   buildview.New(),
		runView:     runview.New(),
		reflectView: reflectview.New(),
		deckView:    deckview.New(),
		historyView: historyview.New(),
		activeTab:   tabBuild,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStateCmd(), m.loadDeckCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case stateLoadedMsg:
		if msg.err != nil {
			m.status = "load state: " + msg.err.Error()
			return m, nil
		}
		cmds = append(cmds, m.applyState(msg.view)...)

	case clockTickMsg:
		if msg.gen != m.clockGen {
			return m, nil
		}
		if !m.runLive() || m.state.Timer.Paused {
			m.clockLive = false
			return m, nil
		}
		return m, m.tickCmd(msg.gen)

	case clockTickedMsg:
		if msg.gen != m.clockGen {
			return m, nil
		}
		if msg.err != nil {
			m.status = "tick: " + msg.err.Error()
			m.clockLive = false
			return m, nil
		}
		cmds = append(cmds, m.applyState(msg.view)...)
		if m.runLive() && !m.state.Timer.Paused {
			cmds = append(cmds, scheduleTick(msg.gen))
		} else {
			m.clockLive = false
		}

	case deckLoadedMsg:
		if msg.err != nil {
			m.status = "load deck: " + msg.err.Error()
			return m, nil
		}
		starred := m.starredSet()
		cmds = append(cmds, m.buildView.SetDeck(msg.items, starred))
		cmds = append(cmds, m.deckView.SetItems(msg.items, starred))

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = msg.label + ": " + msg.err.Error()
			return m, nil
		}
		m.status = msg.label
		cmds = append(cmds, m.loadStateCmd())

	case importDoneMsg:
		if msg.err != nil {
			m.status = "import: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("imported %d items (%d skipped)", len(msg.out.Items), msg.out.Skipped)
		cmds = append(cmds, m.loadDeckCmd())

	case buildview.AddEntryMsg:
		return m, m.mutateCmd("added "+msg.ItemRef, func(ctx context.Context) error {
			return m.board.AddEntry(ctx, boarddto.AddEntryInput{ItemRef: msg.ItemRef, Minutes: msg.Minutes})
		})

	case runview.NoteMsg:
		return m, m.mutateCmd("note saved", func(ctx context.Context) error {
			return m.board.SetEntryNotes(ctx, msg.Position, msg.Text)
		})

	case reflectview.FinishMsg:
		m.activeTab = tabHistory
		return m, m.mutateCmd("run archived", func(ctx context.Context) error {
			return m.board.FinishRun(ctx, msg.Notes)
		})

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.subViewCaptures() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			return m, m.palette.Open()
		default:
			if cmd, handled := m.handleTabKey(msg.String()); handled {
				return m, cmd
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabBuild:
		m.buildView, tabCmd = m.buildView.Update(msg)
	case tabRun:
		m.runView, tabCmd = m.runView.Update(msg)
	case tabReflect:
		m.reflectView, tabCmd = m.reflectView.Update(msg)
	case tabDeck:
		m.deckView, tabCmd = m.deckView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// handleTabKey handles per-tab bindings. Returns handled=false for keys
// that should fall through to the sub-view (cursor movement etc).
func (m *Model) handleTabKey(k string) (tea.Cmd, bool) {
	switch m.activeTab {
	case tabBuild:
		switch k {
		case "n":
			return m.mutateCmd("queue created", m.board.CreateQueue), true
		case "a":
			if m.state.Current == nil {
				m.status = "create a queue first (n)"
				return nil, true
			}
			m.buildView.OpenPicker()
			return nil, true
		case "d":
			if pos, ok := m.buildView.SelectedPosition(); ok {
				return m.mutateCmd("entry removed", func(ctx context.Context) error {
					return m.board.RemoveEntry(ctx, pos)
				}), true
			}
		case "K":
			if pos, ok := m.buildView.SelectedPosition(); ok && pos > 0 {
				return m.reorderCmd(pos, pos-1), true
			}
		case "J":
			if pos, ok := m.buildView.SelectedPosition(); ok {
				return m.reorderCmd(pos, pos+1), true
			}
		case "+", "=":
			return m.adjustDuration(1), true
		case "-":
			return m.adjustDuration(-1), true
		case "r":
			m.activeTab = tabRun
			return m.mutateCmd("run started", m.board.StartRun), true
		}

	case tabRun:
		switch k {
		case " ":
			if m.state.Timer.Paused {
				return m.mutateCmd("resumed", m.board.Resume), true
			}
			return m.mutateCmd("paused", m.board.Pause), true
		case "right", "l":
			return m.mutateCmd("advanced", m.board.Advance), true
		case "n":
			return m.runView.OpenNote(), true
		}

	case tabReflect:
		if k == "e" {
			return m.reflectView.Focus(), true
		}

	case tabDeck:
		switch k {
		case "s":
			if id, ok := m.deckView.SelectedItemID(); ok {
				return m.mutateCmd("star toggled", func(ctx context.Context) error {
					return m.board.ToggleStarred(ctx, id)
				}), true
			}
		case "a":
			if id, ok := m.deckView.SelectedItemID(); ok {
				if m.state.Current == nil {
					m.status = "create a queue first"
					return nil, true
				}
				minutes := m.deckView.SelectedDefaultMinutes()
				return m.mutateCmd("added to queue", func(ctx context.Context) error {
					return m.board.AddEntry(ctx, boarddto.AddEntryInput{ItemRef: id, Minutes: minutes})
				}), true
			}
		}

	case tabHistory:
		if k == "d" {
			if idx, ok := m.historyView.SelectedIndex(); ok {
				return m.mutateCmd("run deleted", func(ctx context.Context) error {
					return m.board.DeleteArchiveEntry(ctx, idx)
				}), true
			}
		}
	}
	return nil, false
}

// ─── state application ────────────────────────────────────────────────────────

// applyState pushes a fresh snapshot into every sub-view, routes to the
// Reflect tab when a run just crossed its final entry, and keeps the
// clock chain alive.
func (m *Model) applyState(view boarddto.StateView) []tea.Cmd {
	wasLive := m.runLive()
	m.state = view

	var cmds []tea.Cmd
	cmds = append(cmds, m.buildView.SetState(view))
	m.runView.SetState(view)
	m.reflectView.SetState(view)
	cmds = append(cmds, m.historyView.SetArchive(view.Archive))

	if wasLive && !m.runLive() && view.Current != nil {
		m.activeTab = tabReflect
		cmds = append(cmds, m.reflectView.Focus())
	}

	if m.runLive() && !view.Timer.Paused && !m.clockLive {
		m.clockGen++
		m.clockLive = true
		cmds = append(cmds, scheduleTick(m.clockGen))
	}
	if !m.runLive() || view.Timer.Paused {
		// Let any in-flight tick chain die.
		if m.clockLive {
			m.clockGen++
			m.clockLive = false
		}
	}
	return cmds
}

func (m Model) runLive() bool {
	return m.state.ActiveIndex != nil
}

func (m Model) starredSet() map[string]bool {
	set := make(map[string]bool, len(m.state.Starred))
	for _, id := range m.state.Starred {
		set[id] = true
	}
	return set
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabBuild:
		return m.buildView.View()
	case tabRun:
		return m.runView.View()
	case tabReflect:
		return m.reflectView.View()
	case tabDeck:
		return m.deckView.View()
	case tabHistory:
		return m.historyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "runsheet  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.runLive() {
		badge := "● running"
		if m.state.Timer.Paused {
			badge = "⏸ paused"
		}
		left = theme.Hot.Render(badge) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "queue:create":
		return m, m.mutateCmd("queue created", m.board.CreateQueue)

	case "queue:add":
		if len(parts) < 2 {
			m.status = "usage: queue:add <item-ref> [minutes]"
			return m, nil
		}
		minutes := 0
		if len(parts) >= 3 {
			minutes, _ = strconv.Atoi(parts[2])
		}
		ref := parts[1]
		return m, m.mutateCmd("added "+ref, func(ctx context.Context) error {
			return m.board.AddEntry(ctx, boarddto.AddEntryInput{ItemRef: ref, Minutes: minutes})
		})

	case "queue:break":
		minutes := 5
		if len(parts) >= 2 {
			if n, err := strconv.Atoi(parts[1]); err == nil {
				minutes = n
			}
		}
		return m, m.mutateCmd("break added", func(ctx context.Context) error {
			return m.board.AddEntry(ctx, boarddto.AddEntryInput{ItemRef: "break", Minutes: minutes})
		})

	case "queue:remove":
		pos, err := argInt(parts, 1)
		if err != nil {
			m.status = "usage: queue:remove <position>"
			return m, nil
		}
		return m, m.mutateCmd("entry removed", func(ctx context.Context) error {
			return m.board.RemoveEntry(ctx, pos)
		})

	case "queue:move":
		from, errF := argInt(parts, 1)
		to, errT := argInt(parts, 2)
		if errF != nil || errT != nil {
			m.status = "usage: queue:move <from> <to>"
			return m, nil
		}
		return m, m.reorderCmd(from, to)

	case "queue:set-duration":
		pos, errP := argInt(parts, 1)
		minutes, errM := argInt(parts, 2)
		if errP != nil || errM != nil {
			m.status = "usage: queue:set-duration <position> <minutes>"
			return m, nil
		}
		return m, m.mutateCmd("duration set", func(ctx context.Context) error {
			return m.board.SetDuration(ctx, pos, minutes)
		})

	case "queue:clear":
		return m, m.mutateCmd("queue cleared", m.board.ClearCurrent)

	case "run:start":
		m.activeTab = tabRun
		return m, m.mutateCmd("run started", m.board.StartRun)

	case "run:pause":
		return m, m.mutateCmd("paused", m.board.Pause)

	case "run:resume":
		return m, m.mutateCmd("resumed", m.board.Resume)

	case "run:advance":
		return m, m.mutateCmd("advanced", m.board.Advance)

	case "run:finish":
		notes := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		m.activeTab = tabHistory
		return m, m.mutateCmd("run archived", func(ctx context.Context) error {
			return m.board.FinishRun(ctx, notes)
		})

	case "template:save":
		if len(parts) < 2 {
			m.status = "usage: template:save <name>"
			return m, nil
		}
		name := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.mutateCmd("template saved", func(ctx context.Context) error {
			return m.board.SaveCurrentAsTemplate(ctx, name)
		})

	case "template:load":
		if len(parts) < 2 {
			m.status = "usage: template:load <template-id>"
			return m, nil
		}
		id := parts[1]
		m.activeTab = tabBuild
		return m, m.mutateCmd("template loaded", func(ctx context.Context) error {
			return m.board.LoadTemplate(ctx, id)
		})

	case "star:toggle":
		if len(parts) < 2 {
			m.status = "usage: star:toggle <item-id>"
			return m, nil
		}
		id := parts[1]
		return m, m.mutateCmd("star toggled", func(ctx context.Context) error {
			return m.board.ToggleStarred(ctx, id)
		})

	case "deck:reindex":
		return m, m.mutateCmd("deck reindexed", m.deck.Reindex)

	case "history:reindex":
		return m, m.mutateCmd("history reindexed", m.board.ReindexRuns)

	case "importer:run":
		if len(parts) < 2 {
			m.status = "usage: importer:run <name> [query]"
			return m, nil
		}
		query := ""
		if len(parts) >= 3 {
			query = strings.Join(parts[2:], " ")
		}
		return m, m.importCmd(parts[1], query)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCaptures reports whether the active tab currently wants raw key
// input (list filter or text editor), in which case global bindings yield.
func (m Model) subViewCaptures() bool {
	switch m.activeTab {
	case tabBuild:
		return m.buildView.Filtering()
	case tabRun:
		return m.runView.EditingNote()
	case tabReflect:
		return m.reflectView.Editing()
	case tabDeck:
		return m.deckView.Filtering()
	case tabHistory:
		return m.historyView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.buildView, _ = m.buildView.Update(sz)
	m.runView, _ = m.runView.Update(sz)
	m.reflectView, _ = m.reflectView.Update(sz)
	m.deckView, _ = m.deckView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}

func (m Model) adjustDuration(delta int) tea.Cmd {
	pos, ok := m.buildView.SelectedPosition()
	if !ok || m.state.Current == nil || pos >= len(m.state.Current.Entries) {
		return nil
	}
	minutes := m.state.Current.Entries[pos].TargetMinutes + delta
	if minutes < 1 {
		return nil
	}
	return m.mutateCmd("duration set", func(ctx context.Context) error {
		return m.board.SetDuration(ctx, pos, minutes)
	})
}

func argInt(parts []string, i int) (int, error) {
	if len(parts) <= i {
		return 0, fmt.Errorf("missing argument")
	}
	return strconv.Atoi(parts[i])
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadStateCmd() tea.Cmd {
	return func() tea.Msg {
		view, err := m.board.Snapshot(context.Background())
		return stateLoadedMsg{view: view, err: err}
	}
}

func (m Model) loadDeckCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.deck.List(context.Background())
		return deckLoadedMsg{items: items, err: err}
	}
}

func (m Model) mutateCmd(label string, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{label: label, err: fn(context.Background())}
	}
}

func (m Model) reorderCmd(from, to int) tea.Cmd {
	return m.mutateCmd("entry moved", func(ctx context.Context) error {
		return m.board.Reorder(ctx, from, to)
	})
}

func (m Model) tickCmd(gen int) tea.Cmd {
	return func() tea.Msg {
		if err := m.board.Tick(context.Background()); err != nil {
			return clockTickedMsg{err: err, gen: gen}
		}
		view, err := m.board.Snapshot(context.Background())
		return clockTickedMsg{view: view, err: err, gen: gen}
	}
}

func (m Model) importCmd(name, query string) tea.Cmd {
	return func() tea.Msg {
		if m.importer == nil {
			return importDoneMsg{err: fmt.Errorf("no importers configured")}
		}
		out, err := m.importer.Run(context.Background(), importerdto.RunInput{ImporterName: name, Query: query})
		return importDoneMsg{out: out, err: err}
	}
}

func scheduleTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return clockTickMsg{gen: gen}
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
