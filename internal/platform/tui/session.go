package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lazor/internal/storage"
)

type screen int

const (
	screenBoards screen = iota
	screenViewer
	screenHistory
)

// SessionModel manages the full browsing flow: boards -> viewer -> boards,
// with the run history one key away. It is the top-level model for SSH
// sessions and for `lazor view` without a board argument.
type SessionModel struct {
	items    []BoardItem
	opts     ViewerOptions
	store    *storage.Store
	width    int
	height   int
	screen   screen
	menu     BoardMenuModel
	viewer   ViewerModel
	history  HistoryModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(items []BoardItem, opts ViewerOptions, width, height int) SessionModel {
	return SessionModel{
		items:  items,
		opts:   opts,
		store:  opts.Store,
		width:  width,
		height: height,
		menu:   NewBoardMenuModel(items, opts.Theme, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenViewer:
		return m.updateViewer(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates while picking a board.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(BoardMenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting(), m.menu.WantsBack():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsHistory():
		m.history = NewHistoryModel(m.store, m.width, m.height)
		m.screen = screenHistory
		return m, m.history.Init()

	case m.menu.Selected() != nil:
		item := m.menu.Selected()
		m.viewer = NewViewerModel(item.Level, item.Board, m.opts, m.width, m.height)
		m.screen = screenViewer
		return m, m.viewer.Init()
	}

	return m, cmd
}

// updateViewer handles updates while tracing a board.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.viewer.Update(msg)
	if viewer, ok := next.(ViewerModel); ok {
		m.viewer = viewer
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.viewer.WantsBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateHistory handles updates while browsing runs.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if history, ok := next.(HistoryModel); ok {
		m.history = history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// backToMenu resets the board picker, keeping the cursor on the last board.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	cursor := m.menu.cursor
	m.menu = NewBoardMenuModel(m.items, m.opts.Theme, m.width, m.height)
	m.menu.cursor = cursor
	m.menu.updateScroll()
	m.screen = screenBoards
	return m, m.menu.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenViewer:
		return m.viewer.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the full browsing flow in the local terminal.
func RunSession(items []BoardItem, opts ViewerOptions, width, height int) error {
	p := tea.NewProgram(
		NewSessionModel(items, opts, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
