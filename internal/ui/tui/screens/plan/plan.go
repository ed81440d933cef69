package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretesun/hey-there/internal/config"
	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/events"
	"github.com/aretesun/hey-there/internal/ui/render"
	"github.com/aretesun/hey-there/internal/ui/tui/components/help"
	"github.com/aretesun/hey-there/internal/ui/tui/components/input"
	"github.com/aretesun/hey-there/internal/ui/tui/keymap"
	"github.com/aretesun/hey-there/internal/ui/tui/theme"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Editor is what the viewer needs from the planner once a plan exists.
type Editor interface {
	Edit(ctx context.Context, instruction string) (*domain.Plan, string, error)
	PackingList(ctx context.Context) (*domain.PackingList, error)
}

// Model is the live plan viewer. It renders snapshots while a generation is
// streaming and accepts edit requests afterwards.
type Model struct {
	ctx    context.Context
	editor Editor
	keyMap *config.KeyMap
	theme  *theme.Theme
	styles render.Styles

	width    int
	height   int
	mode     keymap.AppMode
	viewport viewport.Model
	input    input.Model
	help     help.Model

	plan      *domain.Plan
	streaming bool
	busy      bool
	status    string
	errMsg    string
	replies   []string
	packing   *domain.PackingList
}

// New creates a viewer. current is shown immediately when a plan is
// already known, for instance when resuming an archived trip.
func New(ctx context.Context, editor Editor, km *config.KeyMap, thm *theme.Theme, current *domain.Plan, streaming bool) Model {
	m := Model{
		ctx:       ctx,
		editor:    editor,
		keyMap:    km,
		theme:     thm,
		styles:    Styles(thm),
		viewport:  viewport.New(80, 20),
		input:     input.New(thm),
		plan:      current,
		streaming: streaming,
	}
	if streaming {
		m.status = "여행 계획 생성 중..."
	}
	m.help = help.New(m.GetKeyMap(), thm)
	m.refresh()
	return m
}

// Styles adapts the theme to the shared text renderer.
func Styles(thm *theme.Theme) render.Styles {
	return render.Styles{
		Title:    renderWith(thm.TitleStyle),
		Section:  renderWith(thm.SectionStyle),
		Day:      renderWith(thm.DayStyle),
		Time:     renderWith(thm.TimeStyle),
		Muted:    renderWith(thm.MutedStyle),
		Pending:  renderWith(thm.PendingStyle),
		Confirm:  renderWith(thm.ConfirmStyle),
		Category: renderWith(thm.CategoryStyle),
	}
}

// renderWith adapts lipgloss's variadic Render to render.Style.
func renderWith(st lipgloss.Style) render.Style {
	return func(s string) string { return st.Render(s) }
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Plan() *domain.Plan {
	return m.plan
}

// InputMode reports whether keys are going to the edit input.
func (m Model) InputMode() bool {
	return m.mode == keymap.InputMode
}

func (m Model) Streaming() bool {
	return m.streaming
}

func (m Model) matches(msg tea.KeyMsg, action string) bool {
	return key.Matches(msg, keymap.Binding(m.keyMap, action, ""))
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width)
		m.help.SetWidth(msg.Width)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-8, 3)
		m.refresh()

	case StreamEventMsg:
		m.handleEvent(msg.Event)
		m.refresh()

	case StreamClosedMsg:
		m.streaming = false
		m.refresh()

	case editResultMsg:
		m.busy = false
		m.status = ""
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.errMsg = ""
			m.plan = msg.plan
			m.replies = append(m.replies, msg.reply)
		}
		m.refresh()

	case packingResultMsg:
		m.busy = false
		m.status = ""
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.packing = msg.list
		}
		m.refresh()
		m.viewport.GotoBottom()

	case input.SubmitMsg:
		if m.busy || m.streaming || m.plan == nil {
			return m, nil
		}
		m.busy = true
		m.status = "계획 수정 중: " + msg.Value
		m.refresh()
		return m, m.edit(msg.Value)

	case keymap.SetModeMsg:
		m.mode = msg.Mode
		if m.mode == keymap.NormalMode {
			m.input.Blur()
		}
		m.help.SetKeybindings(m.GetKeyMap())

	case tea.KeyMsg:
		if m.mode == keymap.InputMode {
			if m.matches(msg, config.KeyActionExitInput) {
				m.input.Blur()
				return m, setMode(keymap.NormalMode)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch {
		case m.matches(msg, config.KeyActionInputMode):
			if m.streaming || m.plan == nil {
				return m, nil
			}
			return m, tea.Batch(m.input.Focus(), setMode(keymap.InputMode))
		case m.matches(msg, config.KeyActionToggleHelp):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case m.matches(msg, config.KeyActionPackingList):
			if m.busy || m.streaming || m.plan == nil {
				return m, nil
			}
			m.busy = true
			m.status = "준비물 목록 생성 중..."
			m.refresh()
			return m, m.packingList()
		case m.matches(msg, config.KeyActionScrollDown):
			m.viewport.LineDown(1)
			return m, nil
		case m.matches(msg, config.KeyActionScrollUp):
			m.viewport.LineUp(1)
			return m, nil
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleEvent(e events.Event) {
	switch ev := e.(type) {
	case events.SnapshotEvent:
		m.plan = ev.Snapshot.Plan
	case events.StateChangeEvent:
		m.status = "상태: " + ev.To
	case events.DecodeErrorEvent:
		m.status = fmt.Sprintf("%s 항목을 해석하지 못해 건너뜁니다", ev.Tag)
	case events.ErrorEvent:
		m.streaming = false
		m.status = ""
		m.errMsg = ev.Error.Error()
	case events.CompleteEvent:
		m.streaming = false
		m.plan = ev.Plan.Plan
		m.status = ""
		if ev.TripID != "" {
			m.status = "저장됨: " + ev.TripID[:8]
		}
	}
}

func (m Model) edit(instruction string) tea.Cmd {
	ctx, editor := m.ctx, m.editor
	return func() tea.Msg {
		p, reply, err := editor.Edit(ctx, instruction)
		return editResultMsg{plan: p, reply: reply, err: err}
	}
}

func (m Model) packingList() tea.Cmd {
	ctx, editor := m.ctx, m.editor
	return func() tea.Msg {
		list, err := editor.PackingList(ctx)
		return packingResultMsg{list: list, err: err}
	}
}

func setMode(mode keymap.AppMode) tea.Cmd {
	return func() tea.Msg {
		return keymap.SetModeMsg{Mode: mode}
	}
}

func (m *Model) refresh() {
	var b strings.Builder
	render.Plan(&b, m.plan, !m.streaming, m.styles)
	for _, r := range m.replies {
		b.WriteString(m.theme.ReplyStyle.Render("› "+r) + "\n")
	}
	if m.packing != nil {
		b.WriteString("\n" + m.theme.SectionStyle.Render("준비물") + "\n")
		render.PackingList(&b, m.packing, m.styles)
	}
	if m.plan != nil && !m.streaming {
		b.WriteString("\n")
		render.SearchLinks(&b, m.plan.City, m.styles)
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(b.String())
	if m.streaming && atBottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	title := m.theme.HeaderStyle.Render("hey-there · 여행 플래너")

	var status string
	switch {
	case m.errMsg != "":
		status = m.theme.ErrorStyle.Render("오류: " + m.errMsg)
	case m.status != "":
		status = m.theme.StatusStyle.Render(m.status)
	}

	body := m.theme.PlanBoxStyle.Width(max(m.width-2, 10)).Render(m.viewport.View())

	parts := []string{title, body, status}
	if m.mode == keymap.InputMode {
		parts = append(parts, m.input.View())
	}
	parts = append(parts, m.help.View())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
