package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golos/internal/command"
	"golos/internal/processing"
)

func TestConfigDefaults(t *testing.T) {
	c := NewAt(filepath.Join(t.TempDir(), "config.json"))

	assert.Equal(t, "auto", c.Language())
	assert.Equal(t, processing.ModeRaw, c.Mode().Kind)
	assert.InDelta(t, 0.5, c.VADSensitivity(), 1e-9)
	assert.False(t, c.Commands().Enabled)
	assert.Equal(t, "слушай ввод", c.Commands().WakePhrase)
	assert.False(t, c.TextEngineEnabled())
	assert.Equal(t, "ctrl+shift+space", c.Hotkey().String())
}

func TestConfigSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	c := NewAt(path)
	c.SetLanguage("ru")
	c.SetMode(processing.Mode{Kind: processing.ModeClean})
	c.SetVADSensitivity(0.8)
	c.SetCommandsEnabled(true)
	c.SetWakePhrase("эй голос")
	c.SetTextEngine(TextEngineConfig{
		Enabled: true, Backend: "ollama",
		OllamaURL: "http://localhost:11434", OllamaModel: "qwen2.5:0.5b",
	})

	reloaded := NewAt(path)
	assert.Equal(t, "ru", reloaded.Language())
	assert.Equal(t, processing.ModeClean, reloaded.Mode().Kind)
	assert.InDelta(t, 0.8, reloaded.VADSensitivity(), 1e-9)
	assert.True(t, reloaded.Commands().Enabled)
	assert.Equal(t, "эй голос", reloaded.Commands().WakePhrase)
	assert.Equal(t, "ollama", reloaded.TextEngine().Backend)
	assert.True(t, reloaded.TextEngineEnabled())
}

func TestConfigUILanguagePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	c := NewAt(path)
	assert.Equal(t, "ru", c.UILanguage())

	c.SetUILanguage("en")
	assert.Equal(t, "en", c.UILanguage())

	reloaded := NewAt(path)
	assert.Equal(t, "en", reloaded.UILanguage())
}

func TestAvailableModifiersCoverHotkeyDefaults(t *testing.T) {
	mods := AvailableModifiers()
	assert.Equal(t, []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}, mods)

	// Все модификаторы конфига по умолчанию обязаны быть в списке
	for _, m := range defaults().hotkey.Modifiers {
		assert.Contains(t, mods, m)
	}
}

func TestConfigVADSensitivityClamped(t *testing.T) {
	c := NewAt(filepath.Join(t.TempDir(), "config.json"))

	c.SetVADSensitivity(1.7)
	assert.InDelta(t, 1.0, c.VADSensitivity(), 1e-9)

	c.SetVADSensitivity(-0.3)
	assert.InDelta(t, 0.0, c.VADSensitivity(), 1e-9)
}

func TestConfigCommandToggles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := NewAt(path)

	assert.True(t, c.CommandEnabled(command.KindQuitApp))

	c.SetCommandDisabled(command.KindQuitApp, true)
	assert.False(t, c.CommandEnabled(command.KindQuitApp))
	assert.True(t, c.CommandEnabled(command.KindOpenApp))

	// Повторное отключение не дублирует запись
	c.SetCommandDisabled(command.KindQuitApp, true)
	assert.Len(t, c.Commands().Disabled, 1)

	reloaded := NewAt(path)
	assert.False(t, reloaded.CommandEnabled(command.KindQuitApp))

	c.SetCommandDisabled(command.KindQuitApp, false)
	assert.True(t, c.CommandEnabled(command.KindQuitApp))
}

func TestConfigSnapshot(t *testing.T) {
	c := NewAt(filepath.Join(t.TempDir(), "config.json"))
	c.SetLanguage("en")
	c.SetMode(processing.Mode{Kind: processing.ModeStructure})
	c.SetCommandsEnabled(true)

	snap := c.Snapshot()
	assert.Equal(t, "en", snap.Language)
	assert.Equal(t, processing.ModeStructure, snap.Mode.Kind)
	assert.True(t, snap.CommandsOn)
	assert.Equal(t, "слушай ввод", snap.WakePhrase)

	// Снимок не меняется при последующих изменениях конфигурации
	c.SetLanguage("ru")
	assert.Equal(t, "en", snap.Language)
}

func TestConfigCorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("не json"), 0644))

	c := NewAt(path)
	assert.Equal(t, "auto", c.Language())
	assert.Equal(t, processing.ModeRaw, c.Mode().Kind)
}

func TestConfigHotkeyChangeCallback(t *testing.T) {
	c := NewAt(filepath.Join(t.TempDir(), "config.json"))

	var got HotkeyConfig
	c.OnHotkeyChange(func(hk HotkeyConfig) { got = hk })

	hk := HotkeyConfig{Modifiers: []Modifier{ModAlt}, Key: KeyD}
	c.SetHotkey(hk)
	assert.Equal(t, hk, got)
	assert.Equal(t, "alt+d", c.Hotkey().String())
}
