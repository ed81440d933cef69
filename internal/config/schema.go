package config

import (
	"strings"
	"time"
)

type ModelPreset struct {
	Provider    string  `mapstructure:"provider" json:"provider" validate:"required,oneof=openai anthropic googleai" jsonschema:"required,enum=openai,enum=anthropic,enum=googleai"`
	Name        string  `mapstructure:"name" json:"name" validate:"required" jsonschema:"required,description=Provider model name"`
	MaxTokens   int     `mapstructure:"maxTokens" json:"maxTokens" validate:"gte=0"`
	Temperature float64 `mapstructure:"temperature" json:"temperature" validate:"gte=0,lte=2"`
}

type Session struct {
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout" validate:"gt=0" jsonschema:"description=Wall clock limit for one generation"`
	Debounce time.Duration `mapstructure:"debounce" json:"debounce" validate:"gte=0" jsonschema:"description=Quiet period before a snapshot is published"`
}

type Conversation struct {
	MaxPairs int `mapstructure:"maxPairs" json:"maxPairs" validate:"gte=1" jsonschema:"description=User and model exchanges remembered for edits"`
}

type Planner struct {
	Language            string `mapstructure:"language" json:"language" validate:"required"`
	DefaultConfirmation string `mapstructure:"defaultConfirmation" json:"defaultConfirmation"`
	EditFallback        string `mapstructure:"editFallback" json:"editFallback"`
	OffTopicMessage     string `mapstructure:"offTopicMessage" json:"offTopicMessage"`
}

type Log struct {
	LogLevel string `mapstructure:"logLevel" json:"logLevel" validate:"omitempty,oneof=DEBUG INFO WARN ERROR" jsonschema:"enum=DEBUG,enum=INFO,enum=WARN,enum=ERROR"`
	LogFile  string `mapstructure:"logFile" json:"logFile"`
}

type Server struct {
	Addr string `mapstructure:"addr" json:"addr" validate:"required"`
}

// APIKeys are only ever populated from the environment.
type APIKeys struct {
	OpenAI    string `mapstructure:"openai" json:"openai,omitempty"`
	Anthropic string `mapstructure:"anthropic" json:"anthropic,omitempty"`
	Gemini    string `mapstructure:"gemini" json:"gemini,omitempty"`
}

type ConfigSchema struct {
	ActiveModel  string                 `mapstructure:"activeModel" json:"activeModel" validate:"required"`
	ModelPresets map[string]ModelPreset `mapstructure:"modelPresets" json:"modelPresets" validate:"required,dive"`
	Session      Session                `mapstructure:"session" json:"session"`
	Conversation Conversation           `mapstructure:"conversation" json:"conversation"`
	Planner      Planner                `mapstructure:"planner" json:"planner"`
	KeyMap       KeyMap                 `mapstructure:"keyMap" json:"keyMap"`
	DBPath       string                 `mapstructure:"dbPath" json:"dbPath" validate:"required"`
	Log          Log                    `mapstructure:"log" json:"log"`
	Server       Server                 `mapstructure:"server" json:"server"`
	APIKeys      APIKeys                `mapstructure:"apiKeys" json:"apiKeys,omitempty"`

	// Internal fields for printing
	sources map[string][]configSource
}

// ActivePreset returns the preset selected by ActiveModel. Viper lowercases
// map keys so the lookup is case insensitive.
func (c *ConfigSchema) ActivePreset() (ModelPreset, bool) {
	p, ok := c.ModelPresets[strings.ToLower(c.ActiveModel)]
	return p, ok
}
