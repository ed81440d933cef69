package keymap

import (
	"strings"

	"github.com/aretesun/hey-there/internal/config"
	"github.com/charmbracelet/bubbles/key"
)

// AppMode represents the viewer's current input mode
type AppMode int

const (
	NormalMode AppMode = iota
	InputMode
)

const (
	SystemGroup = iota
	NavigationGroup
	ActionGroup
)

// KeyMap represents a set of keybindings built from the configured keys.
// It implements help.KeyMap.
type KeyMap struct {
	config *config.KeyMap
	Groups map[int][]key.Binding
}

// NewKeyMap creates a new empty keymap
func NewKeyMap(cfg *config.KeyMap) KeyMap {
	return KeyMap{
		config: cfg,
		Groups: make(map[int][]key.Binding),
	}
}

// Binding returns the binding for a configured action.
func Binding(cfg *config.KeyMap, action, help string) key.Binding {
	keys := cfg.GetKeys(action)
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), help),
	)
}

// AddAction adds the binding of a configured action, skipping actions with
// no keys.
func (k *KeyMap) AddAction(group int, action, help string) {
	b := Binding(k.config, action, help)
	if len(b.Keys()) == 0 {
		return
	}
	k.Groups[group] = append(k.Groups[group], b)
}

// ShortHelp returns the system group for the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return k.Groups[SystemGroup]
}

// FullHelp returns one column per group
func (k KeyMap) FullHelp() [][]key.Binding {
	var result [][]key.Binding
	for _, groupID := range []int{SystemGroup, NavigationGroup, ActionGroup} {
		if bindings := k.Groups[groupID]; len(bindings) > 0 {
			result = append(result, bindings)
		}
	}
	return result
}

// SetModeMsg is a message to change the application mode
type SetModeMsg struct {
	Mode AppMode
}
