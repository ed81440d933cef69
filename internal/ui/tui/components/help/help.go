package help

import (
	"github.com/aretesun/hey-there/internal/ui/tui/keymap"
	"github.com/aretesun/hey-there/internal/ui/tui/theme"
	"github.com/charmbracelet/bubbles/help"
)

// Model renders the key hints footer
type Model struct {
	help    help.Model
	keys    keymap.KeyMap
	theme   *theme.Theme
	width   int
	ShowAll bool
}

func New(km keymap.KeyMap, thm *theme.Theme) Model {
	return Model{
		help:  help.New(),
		keys:  km,
		theme: thm,
		width: 80,
	}
}

func (m *Model) SetWidth(width int) {
	m.width = width
	m.help.Width = width
}

func (m *Model) SetKeybindings(km keymap.KeyMap) {
	m.keys = km
}

func (m Model) View() string {
	m.help.ShowAll = m.ShowAll
	return m.theme.FooterStyle.Width(m.width).Render(m.help.View(m.keys))
}
