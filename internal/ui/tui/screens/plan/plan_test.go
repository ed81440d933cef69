package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/aretesun/hey-there/internal/config"
	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/events"
	planpkg "github.com/aretesun/hey-there/internal/plan"
	"github.com/aretesun/hey-there/internal/ui/tui/components/input"
	"github.com/aretesun/hey-there/internal/ui/tui/keymap"
	"github.com/aretesun/hey-there/internal/ui/tui/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEditor struct {
	instructions []string
	err          error
}

func (f *fakeEditor) Edit(ctx context.Context, instruction string) (*domain.Plan, string, error) {
	f.instructions = append(f.instructions, instruction)
	if f.err != nil {
		return nil, "", f.err
	}
	return &domain.Plan{City: "Florence"}, "moved to Florence", nil
}

func (f *fakeEditor) PackingList(ctx context.Context) (*domain.PackingList, error) {
	return &domain.PackingList{Categories: []domain.PackingCategory{
		{Category: "Essentials", Items: []domain.PackingItem{{Item: "Passport"}}},
	}}, nil
}

func keyMap() *config.KeyMap {
	return &config.KeyMap{
		Quit:        []string{"q"},
		ToggleHelp:  []string{"?"},
		InputMode:   []string{"i"},
		ExitInput:   []string{"esc"},
		Submit:      []string{"enter"},
		ScrollDown:  []string{"j"},
		ScrollUp:    []string{"k"},
		PackingList: []string{"p"},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// exec runs cmd and feeds every resulting message back into m.
func exec(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = exec(m, c)
		}
		return m
	}
	if msg == nil {
		return m
	}
	m, cmd = m.Update(msg)
	return exec(m, cmd)
}

func TestSnapshotsAreRendered(t *testing.T) {
	m := New(context.Background(), &fakeEditor{}, keyMap(), theme.DefaultTheme(), nil, true)
	assert.True(t, m.Streaming())

	snap := planpkg.Snapshot{Seq: 1, Plan: &domain.Plan{City: "Rome"}}
	m, _ = m.Update(StreamEventMsg{Event: events.SnapshotEvent{Snapshot: snap}})
	require.NotNil(t, m.Plan())
	assert.Contains(t, m.View(), "Rome")

	done := planpkg.Snapshot{Seq: 2, Plan: &domain.Plan{City: "Rome", Country: "Italy"}, Confirmed: true}
	m, _ = m.Update(StreamEventMsg{Event: events.CompleteEvent{Plan: done}})
	assert.False(t, m.Streaming())
	assert.Equal(t, "Italy", m.Plan().Country)
}

func TestInputIgnoredWhileStreaming(t *testing.T) {
	m := New(context.Background(), &fakeEditor{}, keyMap(), theme.DefaultTheme(), nil, true)
	m, cmd := m.Update(runes("i"))
	assert.Nil(t, cmd)
	assert.False(t, m.InputMode())
}

func TestEditFlow(t *testing.T) {
	editor := &fakeEditor{}
	m := New(context.Background(), editor, keyMap(), theme.DefaultTheme(), &domain.Plan{City: "Rome"}, false)

	m, cmd := m.Update(runes("i"))
	m = exec(m, cmd)
	require.True(t, m.InputMode())
	assert.Equal(t, keymap.InputMode, m.mode)

	m, cmd = m.Update(input.SubmitMsg{Value: "go to Florence"})
	m = exec(m, cmd)

	assert.Equal(t, []string{"go to Florence"}, editor.instructions)
	assert.Equal(t, "Florence", m.Plan().City)
	assert.Contains(t, m.View(), "moved to Florence")

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = exec(m, cmd)
	assert.False(t, m.InputMode())
}

func TestEditFailureShowsError(t *testing.T) {
	editor := &fakeEditor{err: errors.New("model unavailable")}
	m := New(context.Background(), editor, keyMap(), theme.DefaultTheme(), &domain.Plan{City: "Rome"}, false)

	m, cmd := m.Update(input.SubmitMsg{Value: "go to Florence"})
	m = exec(m, cmd)
	assert.Equal(t, "Rome", m.Plan().City)
	assert.Contains(t, m.View(), "model unavailable")
}

func TestPackingKey(t *testing.T) {
	m := New(context.Background(), &fakeEditor{}, keyMap(), theme.DefaultTheme(), &domain.Plan{City: "Rome"}, false)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})

	m, cmd := m.Update(runes("p"))
	m = exec(m, cmd)
	require.NotNil(t, m.packing)
	assert.Equal(t, "Passport", m.packing.Categories[0].Items[0].Item)
}
