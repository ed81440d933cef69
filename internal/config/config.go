package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

/*
Config System Design:
This configuration system implements a hierarchical config with the following precedence
(highest to lowest priority):

1. Runtime overrides (CLI flags)
2. Environment variables (for secrets and crucial overrides)
3. Local project config (.hey-there/*.hey-there.{yaml,json})
4. Global user config ($XDG_CONFIG_HOME/hey-there/*.hey-there.{yaml,json})
5. Default values (embedded defaults.hey-there.yaml)

The system supports:
- Multiple config files in each directory, merged alphabetically
- Automatic merging of lists (they combine)
- Deep merging of maps
- Override of scalar values
- Tracking of where each config value originated
- Schema validation of the final config

Example:
If you have these files:
~/.config/hey-there/keys.hey-there.yaml:  { keyMap: { quit: ["q"] } }
./.hey-there/keys.hey-there.yaml:         { keyMap: { quit: ["x"] } }
The result will be: { keyMap: { quit: ["q", "x"] } }
*/

const (
	appName    = "hey-there"
	fileSuffix = "." + appName
)

//go:embed defaults.hey-there.yaml
var defaultsYAML []byte

// envVarConfig defines an environment variable mapping
type envVarConfig struct {
	key      string // Key in the config
	envVar   string // Environment variable name
	isSecret bool   // Whether to redact in logs
}

// Environment variables to load
var envVars = []envVarConfig{
	{key: "apiKeys.openai", envVar: "OPENAI_API_KEY", isSecret: true},
	{key: "apiKeys.anthropic", envVar: "ANTHROPIC_API_KEY", isSecret: true},
	{key: "apiKeys.gemini", envVar: "GEMINI_API_KEY", isSecret: true},
	{key: "activeModel", envVar: "HEY_THERE_MODEL"},
	{key: "dbPath", envVar: "HEY_THERE_DB_PATH"},
	{key: "log.logLevel", envVar: "HEY_THERE_LOG_LEVEL"},
	{key: "server.addr", envVar: "HEY_THERE_ADDR"},
}

type configSource struct {
	value  interface{}
	source string
}

// Options controls where configuration is read from.
type Options struct {
	GlobalDir string
	LocalDir  string
	Overrides *RuntimeOverrides
}

// DefaultOptions returns the standard global and local config locations.
func DefaultOptions(overrides *RuntimeOverrides) (Options, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Options{}, err
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return Options{
		GlobalDir: filepath.Join(xdgConfig, appName),
		LocalDir:  "." + appName,
		Overrides: overrides,
	}, nil
}

// New loads configuration from the standard locations
func New(overrides *RuntimeOverrides) (*ConfigSchema, error) {
	opts, err := DefaultOptions(overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config dirs: %w", err)
	}
	return Load(opts)
}

// Load builds, validates and returns the merged configuration
func Load(opts Options) (*ConfigSchema, error) {
	v := viper.New()
	sources := make(map[string][]configSource)

	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultsYAML)); err != nil {
		return nil, fmt.Errorf("could not read defaults: %w", err)
	}

	for _, dir := range []string{opts.GlobalDir, opts.LocalDir} {
		if dir == "" {
			continue
		}
		if err := loadDir(v, dir, sources); err != nil {
			return nil, err
		}
	}

	for _, env := range envVars {
		val := os.Getenv(env.envVar)
		if val == "" {
			continue
		}
		v.Set(env.key, val)
		displayVal := interface{}(val)
		if env.isSecret {
			displayVal = "[REDACTED]"
		}
		sources[strings.ToLower(env.key)] = append(sources[strings.ToLower(env.key)], configSource{
			value:  displayVal,
			source: fmt.Sprintf("%s environment variable", env.envVar),
		})
	}

	var cfg ConfigSchema
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.sources = sources

	if err := opts.Overrides.apply(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFiles returns all *.hey-there.{yaml,json} files in a directory
func findConfigFiles(dir string) ([]string, error) {
	var files []string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, fileSuffix+".yaml") ||
			strings.HasSuffix(name, fileSuffix+".json") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func loadDir(v *viper.Viper, dir string, sources map[string][]configSource) error {
	files, err := findConfigFiles(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	known := GetKnownKeys()
	for _, f := range files {
		fv := viper.New()
		fv.SetConfigFile(f)
		if err := fv.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", f, err)
		}

		for _, key := range fv.AllKeys() {
			if !IsKnownKey(known, key) {
				slog.Warn("unknown configuration key", "key", key, "file", f)
			}
			sources[key] = append(sources[key], configSource{value: fv.Get(key), source: f})
		}

		if err := mergeConfig(v, fv.AllSettings()); err != nil {
			return fmt.Errorf("error merging config from %s: %w", f, err)
		}
	}
	return nil
}

func mergeConfig(v *viper.Viper, settings map[string]interface{}) error {
	for key, value := range settings {
		existing := v.Get(key)
		if existing == nil {
			// Key doesn't exist, just set it
			v.Set(key, value)
			continue
		}

		switch existingVal := existing.(type) {
		case []interface{}:
			newSlice, ok := value.([]interface{})
			if !ok {
				return fmt.Errorf("type mismatch for key %s: expected slice, got %T", key, value)
			}
			v.Set(key, appendUnique(existingVal, newSlice))

		case map[string]interface{}:
			newMap, ok := value.(map[string]interface{})
			if !ok {
				return fmt.Errorf("type mismatch for key %s: expected map, got %T", key, value)
			}
			v.Set(key, mergeMapRecursive(existingVal, newMap))

		default:
			// For all other types, override
			v.Set(key, value)
		}
	}
	return nil
}

func appendUnique(existing, added []interface{}) []interface{} {
	seen := make(map[interface{}]bool)
	combined := make([]interface{}, 0, len(existing)+len(added))
	for _, list := range [][]interface{}{existing, added} {
		for _, v := range list {
			if !seen[v] {
				seen[v] = true
				combined = append(combined, v)
			}
		}
	}
	return combined
}

func mergeMapRecursive(existing, new map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	for k, v := range existing {
		result[k] = v
	}

	for k, v := range new {
		if existing[k] == nil {
			result[k] = v
			continue
		}

		switch existingVal := existing[k].(type) {
		case map[string]interface{}:
			if newVal, ok := v.(map[string]interface{}); ok {
				result[k] = mergeMapRecursive(existingVal, newVal)
			} else {
				result[k] = v
			}
		case []interface{}:
			if newVal, ok := v.([]interface{}); ok {
				result[k] = appendUnique(existingVal, newVal)
			} else {
				result[k] = v
			}
		default:
			result[k] = v
		}
	}

	return result
}

// Validate validates the configuration against the schema
func (c *ConfigSchema) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}

	if _, ok := c.ActivePreset(); !ok {
		names := make([]string, 0, len(c.ModelPresets))
		for name := range c.ModelPresets {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("activeModel %q must be one of configured presets: %v", c.ActiveModel, names)
	}
	return nil
}

// DumpYAML renders the final configuration as YAML with secrets redacted
func (c *ConfigSchema) DumpYAML() (string, error) {
	// Round trip through JSON so the YAML uses the json field names
	jsonBytes, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("error marshaling config: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &out); err != nil {
		return "", fmt.Errorf("error unmarshaling config: %w", err)
	}
	redact(out)
	out["session"] = map[string]interface{}{
		"timeout":  c.Session.Timeout.String(),
		"debounce": c.Session.Debounce.String(),
	}

	yamlBytes, err := yaml.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("error converting to YAML: %w", err)
	}
	return string(yamlBytes), nil
}

func redact(m map[string]interface{}) {
	for k, v := range m {
		switch val := v.(type) {
		case map[string]interface{}:
			if isSecretKey(k) {
				for inner := range val {
					val[inner] = "[REDACTED]"
				}
				continue
			}
			redact(val)
		default:
			if isSecretKey(k) && val != "" {
				m[k] = "[REDACTED]"
			}
		}
	}
}
