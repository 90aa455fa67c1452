package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lazor/internal/lazor/core"
	"github.com/vovakirdan/lazor/internal/lazor/levels"
)

// BoardItem is one entry of the board picker.
type BoardItem struct {
	Level levels.Level
	Board *core.Board
}

// Describe returns a one-line summary of the board.
func (it BoardItem) Describe() string {
	st := core.ComputeBoardStats(it.Board)
	return fmt.Sprintf("%dx%d  A%d B%d C%d  %d ray(s)  %d target(s)",
		st.Width, st.Height,
		st.Blocks.Count(core.Reflect), st.Blocks.Count(core.Opaque), st.Blocks.Count(core.Refract),
		st.Rays, st.Targets)
}

// LoadBoardItems loads every valid level under loader's root.
func LoadBoardItems(loader *levels.Loader) ([]BoardItem, error) {
	lvls, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	items := make([]BoardItem, 0, len(lvls))
	for _, lvl := range lvls {
		b, err := lvl.Board()
		if err != nil {
			continue
		}
		items = append(items, BoardItem{Level: lvl, Board: b})
	}
	return items, nil
}

// BoardMenuModel is the board picker.
type BoardMenuModel struct {
	items        []BoardItem
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	selected     int
	choosing     bool
	quitting     bool
	back         bool
	history      bool
	scrollOffset int
	theme        Theme
}

// NewBoardMenuModel creates a new board selection model.
func NewBoardMenuModel(items []BoardItem, theme Theme, width, height int) BoardMenuModel {
	return BoardMenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		selected:  -1,
		choosing:  true,
		theme:     theme,
	}
}

// Init initializes the model.
func (m BoardMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BoardMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m BoardMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			m.choosing = false
			m.selected = m.cursor
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionHistory:
		m.history = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems returns how many entries fit between header and footer.
func (m BoardMenuModel) visibleItems() int {
	visible := m.height - 10
	if visible < 3 {
		visible = 3
	}
	return visible
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *BoardMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the board list.
func (m BoardMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("L A Z O R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a board:"), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No boards found"), m.width))
		b.WriteString("\n")
	}

	endIdx := m.scrollOffset + m.visibleItems()
	if endIdx > len(m.items) {
		endIdx = len(m.items)
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < endIdx; i++ {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		line := style.Render(fmt.Sprintf("%s%2d. %-16s", cursor, i+1, m.items[i].Level.Name)) +
			"  " + m.theme.MenuDescription.Render(m.items[i].Describe())
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	if endIdx < len(m.items) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := m.theme.HUDControls.Render("Up/Down: Navigate  |  Enter: Open  |  Tab: History  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen item, or nil if still choosing.
func (m BoardMenuModel) Selected() *BoardItem {
	if m.choosing || m.selected < 0 {
		return nil
	}
	return &m.items[m.selected]
}

// IsQuitting returns true if user wants to quit.
func (m BoardMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m BoardMenuModel) WantsBack() bool {
	return m.back
}

// WantsHistory returns true if user asked for the run history.
func (m BoardMenuModel) WantsHistory() bool {
	return m.history
}

// RunBoardSelector runs the board picker and returns the choice, or nil
// when the user backed out.
func RunBoardSelector(items []BoardItem, theme Theme, width, height int) (*BoardItem, error) {
	p := tea.NewProgram(
		NewBoardMenuModel(items, theme, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(BoardMenuModel)
	if !ok || m.IsQuitting() || m.WantsBack() || m.WantsHistory() {
		return nil, nil
	}
	return m.Selected(), nil
}
