package config

import (
	"fmt"
	"strings"
	"time"
)

// RuntimeOverrides holds configuration values that can be overridden at runtime
// via CLI flags or other means
type RuntimeOverrides struct {
	ActiveModel *string
	MaxTokens   *int
	Temperature *float64
	Timeout     *time.Duration
	LogLevel    *string
	LogFile     *string
	DBPath      *string
	Addr        *string
}

func (o *RuntimeOverrides) apply(cfg *ConfigSchema) error {
	if o == nil {
		return nil
	}

	if o.ActiveModel != nil {
		if _, exists := cfg.ModelPresets[strings.ToLower(*o.ActiveModel)]; !exists {
			return fmt.Errorf("model %q not found in configuration", *o.ActiveModel)
		}
		cfg.ActiveModel = *o.ActiveModel
	}

	key := strings.ToLower(cfg.ActiveModel)
	if preset, ok := cfg.ModelPresets[key]; ok {
		if o.MaxTokens != nil {
			preset.MaxTokens = *o.MaxTokens
		}
		if o.Temperature != nil {
			preset.Temperature = *o.Temperature
		}
		cfg.ModelPresets[key] = preset
	}

	if o.Timeout != nil {
		cfg.Session.Timeout = *o.Timeout
	}
	if o.LogLevel != nil {
		cfg.Log.LogLevel = strings.ToUpper(*o.LogLevel)
	}
	if o.LogFile != nil {
		cfg.Log.LogFile = *o.LogFile
	}
	if o.DBPath != nil {
		cfg.DBPath = *o.DBPath
	}
	if o.Addr != nil {
		cfg.Server.Addr = *o.Addr
	}
	return nil
}
