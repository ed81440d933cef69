package tui

import (
	"context"
	"fmt"

	"github.com/aretesun/hey-there/internal/config"
	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/planner"
	"github.com/aretesun/hey-there/internal/ui/tui/keymap"
	planscreen "github.com/aretesun/hey-there/internal/ui/tui/screens/plan"
	"github.com/aretesun/hey-there/internal/ui/tui/theme"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model is the top level program model. It owns quitting and hands
// everything else to the plan screen.
type Model struct {
	keyMap *config.KeyMap
	screen planscreen.Model
}

func (m Model) Init() tea.Cmd {
	return m.screen.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if k.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if !m.screen.InputMode() && key.Matches(k, keymap.Binding(m.keyMap, config.KeyActionQuit, "")) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.screen.View()
}

// Options describe what the viewer starts with.
type Options struct {
	// Request starts a new generation when set.
	Request *domain.TripRequest
	// Current is shown when no request is given.
	Current *domain.Plan
}

// StartTUI runs the plan viewer until the user quits.
func StartTUI(ctx context.Context, p *planner.Planner, km *config.KeyMap, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var stream *planner.PlanStream
	if opts.Request != nil {
		var err error
		stream, err = p.Start(ctx, *opts.Request)
		if err != nil {
			return err
		}
	}

	thm := theme.DefaultTheme()
	screen := planscreen.New(ctx, p, km, thm, opts.Current, stream != nil)
	program := tea.NewProgram(Model{keyMap: km, screen: screen},
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if stream != nil {
		go func() {
			for e := range stream.Events {
				program.Send(planscreen.StreamEventMsg{Event: e})
			}
			program.Send(planscreen.StreamClosedMsg{})
		}()
	}

	_, err := program.Run()
	if stream != nil {
		stream.Cancel()
		<-stream.Done
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running plan viewer: %w", err)
	}
	return nil
}
