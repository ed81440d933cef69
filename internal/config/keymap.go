package config

import "encoding/json"

// Key binding actions
const (
	KeyActionQuit        = "quit"
	KeyActionToggleHelp  = "toggleHelp"
	KeyActionInputMode   = "inputMode"
	KeyActionExitInput   = "exitInput"
	KeyActionSubmit      = "submit"
	KeyActionScrollDown  = "scrollDown"
	KeyActionScrollUp    = "scrollUp"
	KeyActionPackingList = "packingList"
)

type KeyMap struct {
	Quit        []string `mapstructure:"quit" json:"quit" jsonschema:"description=Exit the viewer"`
	ToggleHelp  []string `mapstructure:"toggleHelp" json:"toggleHelp" jsonschema:"description=Toggle help display"`
	InputMode   []string `mapstructure:"inputMode" json:"inputMode" jsonschema:"description=Start typing an edit request"`
	ExitInput   []string `mapstructure:"exitInput" json:"exitInput" jsonschema:"description=Leave input mode"`
	Submit      []string `mapstructure:"submit" json:"submit" jsonschema:"description=Send the edit request"`
	ScrollDown  []string `mapstructure:"scrollDown" json:"scrollDown"`
	ScrollUp    []string `mapstructure:"scrollUp" json:"scrollUp"`
	PackingList []string `mapstructure:"packingList" json:"packingList" jsonschema:"description=Generate a packing list"`

	keyCache map[string][]string
}

// GetKeys returns the key bindings for an action
func (k *KeyMap) GetKeys(action string) []string {
	if k.keyCache == nil {
		k.keyCache = make(map[string][]string)
		jsonBytes, err := json.Marshal(k)
		if err != nil {
			return nil
		}
		if err := json.Unmarshal(jsonBytes, &k.keyCache); err != nil {
			return nil
		}
	}

	return k.keyCache[action]
}
