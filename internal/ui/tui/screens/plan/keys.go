package plan

import (
	"github.com/aretesun/hey-there/internal/config"
	"github.com/aretesun/hey-there/internal/ui/tui/keymap"
)

// GetKeyMap returns the bindings available in the current mode
func (m Model) GetKeyMap() keymap.KeyMap {
	km := keymap.NewKeyMap(m.keyMap)

	if m.mode == keymap.NormalMode {
		km.AddAction(keymap.SystemGroup, config.KeyActionQuit, "quit")
		km.AddAction(keymap.SystemGroup, config.KeyActionToggleHelp, "help")
		km.AddAction(keymap.SystemGroup, config.KeyActionInputMode, "edit plan")
		km.AddAction(keymap.NavigationGroup, config.KeyActionScrollDown, "scroll down")
		km.AddAction(keymap.NavigationGroup, config.KeyActionScrollUp, "scroll up")
		km.AddAction(keymap.ActionGroup, config.KeyActionPackingList, "packing list")
	} else {
		km.AddAction(keymap.SystemGroup, config.KeyActionSubmit, "send edit")
		km.AddAction(keymap.SystemGroup, config.KeyActionExitInput, "cancel")
	}
	return km
}
