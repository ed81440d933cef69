package input

import (
	"strings"

	"github.com/aretesun/hey-there/internal/ui/tui/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SubmitMsg is emitted when an edit request is submitted
type SubmitMsg struct {
	Value string
}

// Model is the single line edit request input
type Model struct {
	textInput textinput.Model
	theme     *theme.Theme
	width     int
}

func New(thm *theme.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "예) 2일차 저녁을 해산물 식당으로 바꿔줘"
	ti.CharLimit = 500
	ti.Width = 76

	return Model{
		textInput: ti,
		theme:     thm,
		width:     80,
	}
}

func (m *Model) SetWidth(width int) {
	m.width = width
	m.textInput.Width = width - 4 // Account for padding and borders
}

func (m *Model) Focus() tea.Cmd {
	return m.textInput.Focus()
}

func (m *Model) Blur() {
	m.textInput.Blur()
}

func (m Model) Focused() bool {
	return m.textInput.Focused()
}

func (m Model) Value() string {
	return m.textInput.Value()
}

// Update forwards keys to the text input and turns enter into SubmitMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.textInput.Value())
		if value == "" {
			return m, nil
		}
		m.textInput.Reset()
		return m, func() tea.Msg { return SubmitMsg{Value: value} }
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.theme.InputStyle.Width(m.width - 2).Render(m.textInput.View())
}
