package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func clearEnv(t *testing.T) {
	for _, env := range envVars {
		t.Setenv(env.envVar, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "gemini-flash", cfg.ActiveModel)
	preset, ok := cfg.ActivePreset()
	require.True(t, ok)
	assert.Equal(t, "googleai", preset.Provider)
	assert.Equal(t, 30*time.Second, cfg.Session.Timeout)
	assert.Equal(t, 300*time.Millisecond, cfg.Session.Debounce)
	assert.Equal(t, 3, cfg.Conversation.MaxPairs)
	assert.Equal(t, "INFO", cfg.Log.LogLevel)
	assert.NotEmpty(t, cfg.Planner.DefaultConfirmation)
	assert.Equal(t, []string{"?"}, cfg.KeyMap.GetKeys(KeyActionToggleHelp))
}

func TestLoadLayering(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	global := filepath.Join(root, "global")
	local := filepath.Join(root, "local")

	writeFile(t, global, "a.hey-there.yaml", "session:\n  timeout: 45s\nkeyMap:\n  quit: [\"x\"]\n")
	writeFile(t, local, "b.hey-there.yaml", "session:\n  timeout: 10s\nconversation:\n  maxPairs: 5\n")
	writeFile(t, local, "ignored.yaml", "conversation:\n  maxPairs: 99\n")

	t.Setenv("HEY_THERE_DB_PATH", "/tmp/env.db")

	cfg, err := Load(Options{GlobalDir: global, LocalDir: local})
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.Session.Timeout)
	assert.Equal(t, 300*time.Millisecond, cfg.Session.Debounce)
	assert.Equal(t, 5, cfg.Conversation.MaxPairs)
	assert.Equal(t, []string{"ctrl+c", "q", "x"}, cfg.KeyMap.Quit)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	model := "claude"
	temp := 0.2
	timeout := 5 * time.Second
	level := "debug"

	cfg, err := Load(Options{Overrides: &RuntimeOverrides{
		ActiveModel: &model,
		Temperature: &temp,
		Timeout:     &timeout,
		LogLevel:    &level,
	}})
	require.NoError(t, err)

	preset, ok := cfg.ActivePreset()
	require.True(t, ok)
	assert.Equal(t, "anthropic", preset.Provider)
	assert.Equal(t, 0.2, preset.Temperature)
	assert.Equal(t, timeout, cfg.Session.Timeout)
	assert.Equal(t, "DEBUG", cfg.Log.LogLevel)
}

func TestLoadRejectsUnknownModel(t *testing.T) {
	clearEnv(t)
	model := "nope"
	_, err := Load(Options{Overrides: &RuntimeOverrides{ActiveModel: &model}})
	assert.Error(t, err)
}

func TestLoadValidationFailure(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "bad.hey-there.yaml", "log:\n  logLevel: LOUD\n")

	_, err := Load(Options{LocalDir: dir})
	assert.ErrorContains(t, err, "config validation error")
}

func TestDumpYAMLRedactsSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-secret")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "sk-secret", cfg.APIKeys.OpenAI)

	out, err := cfg.DumpYAML()
	require.NoError(t, err)
	assert.NotContains(t, out, "sk-secret")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, "timeout: 30s")
	assert.Contains(t, out, "keyMap:")
}

func TestPrintConfigWithSources(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.hey-there.yaml", "dbPath: trips.db\n")
	t.Setenv("GEMINI_API_KEY", "g-secret")

	cfg, err := Load(Options{LocalDir: dir})
	require.NoError(t, err)

	var buf bytes.Buffer
	cfg.PrintConfig(&buf, true)
	out := buf.String()

	assert.Contains(t, out, "dbPath: trips.db # ("+filepath.Join(dir, "a.hey-there.yaml")+")")
	assert.Contains(t, out, "activeModel: gemini-flash # (default)")
	assert.NotContains(t, out, "g-secret")
}

func TestKnownKeys(t *testing.T) {
	known := GetKnownKeys()
	assert.True(t, IsKnownKey(known, "session.timeout"))
	assert.True(t, IsKnownKey(known, "modelPresets.mine.provider"))
	assert.True(t, IsKnownKey(known, "keymap.quit"))
	assert.False(t, IsKnownKey(known, "session.retries"))
}

func TestGenerateJSONSchema(t *testing.T) {
	schema, err := GenerateJSONSchema()
	require.NoError(t, err)
	assert.Equal(t, "hey-there configuration schema", schema.Title)
}
