// Package config предоставляет конфигурацию приложения с сохранением в файл.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"golos/internal/command"
	"golos/internal/dictation"
	"golos/internal/processing"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
	KeyA      Key = "a"
	KeyB      Key = "b"
	KeyC      Key = "c"
	KeyD      Key = "d"
	KeyE      Key = "e"
	KeyF      Key = "f"
	KeyG      Key = "g"
	KeyH      Key = "h"
	KeyI      Key = "i"
	KeyJ      Key = "j"
	KeyK      Key = "k"
	KeyL      Key = "l"
	KeyM      Key = "m"
	KeyN      Key = "n"
	KeyO      Key = "o"
	KeyP      Key = "p"
	KeyQ      Key = "q"
	KeyR      Key = "r"
	KeyS      Key = "s"
	KeyT      Key = "t"
	KeyU      Key = "u"
	KeyV      Key = "v"
	KeyW      Key = "w"
	KeyX      Key = "x"
	KeyY      Key = "y"
	KeyZ      Key = "z"
	KeyF1     Key = "f1"
	KeyF2     Key = "f2"
	KeyF3     Key = "f3"
	KeyF4     Key = "f4"
	KeyF5     Key = "f5"
	KeyF6     Key = "f6"
	KeyF7     Key = "f7"
	KeyF8     Key = "f8"
	KeyF9     Key = "f9"
	KeyF10    Key = "f10"
	KeyF11    Key = "f11"
	KeyF12    Key = "f12"
)

// HotkeyConfig хранит настройки горячей клавиши.
type HotkeyConfig struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       Key        `json:"key"`
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	result := ""
	for _, m := range h.Modifiers {
		if result != "" {
			result += "+"
		}
		result += string(m)
	}
	if result != "" {
		result += "+"
	}
	result += string(h.Key)
	return result
}

// TextEngineConfig хранит настройки текстового движка пост-обработки.
type TextEngineConfig struct {
	Enabled bool   `json:"enabled"`
	Backend string `json:"backend,omitempty"` // llama | ollama
	ModelID string `json:"model_id,omitempty"`
	// Для backend=ollama
	OllamaURL   string `json:"ollama_url,omitempty"`
	OllamaModel string `json:"ollama_model,omitempty"`
}

// CommandsConfig хранит настройки голосовых команд.
type CommandsConfig struct {
	Enabled    bool     `json:"enabled"`
	WakePhrase string   `json:"wake_phrase,omitempty"`
	Disabled   []string `json:"disabled,omitempty"` // отключённые виды команд
}

// configData структура для сериализации.
type configData struct {
	Language       string           `json:"language"`
	UILanguage     string           `json:"ui_language,omitempty"`
	Notifications  bool             `json:"notifications"`
	Sounds         bool             `json:"sounds"`
	Hotkey         HotkeyConfig     `json:"hotkey"`
	ModelID        string           `json:"model_id,omitempty"`
	Mode           string           `json:"mode,omitempty"`
	TemplateID     string           `json:"template_id,omitempty"`
	VADSensitivity *float64         `json:"vad_sensitivity,omitempty"`
	TextEngine     TextEngineConfig `json:"text_engine,omitempty"`
	Commands       CommandsConfig   `json:"commands,omitempty"`
}

// Config хранит настройки приложения.
type Config struct {
	mu             sync.RWMutex
	language       string
	uiLanguage     string
	notifications  bool
	sounds         bool
	hotkey         HotkeyConfig
	modelID        string
	mode           processing.Mode
	vadSensitivity float64
	textEngine     TextEngineConfig
	commands       CommandsConfig
	configPath     string
	onHotkeyChange func(HotkeyConfig)
}

// New создаёт конфигурацию, загружая из файла или с настройками по умолчанию.
func New() *Config {
	c := defaults()

	// Определяем путь к файлу конфигурации рядом с бинарником
	execPath, err := os.Executable()
	if err == nil {
		// Резолвим симлинки
		execPath, err = filepath.EvalSymlinks(execPath)
		if err == nil {
			execDir := filepath.Dir(execPath)
			c.configPath = filepath.Join(execDir, "config.json")
		}
	}

	// Пытаемся загрузить конфигурацию
	c.load()

	return c
}

// NewAt создаёт конфигурацию с явным путём к файлу (для тестов).
func NewAt(path string) *Config {
	c := defaults()
	c.configPath = path
	c.load()
	return c
}

func defaults() *Config {
	return &Config{
		language:      "auto", // auto для смешанного русского/английского
		uiLanguage:    "ru",   // По умолчанию русский интерфейс
		notifications: true,
		sounds:        true,
		hotkey: HotkeyConfig{
			Modifiers: []Modifier{ModCtrl, ModShift},
			Key:       KeySpace,
		},
		mode:           processing.Mode{Kind: processing.ModeRaw},
		vadSensitivity: 0.5,
		textEngine: TextEngineConfig{
			Enabled: false,
			Backend: "llama",
			ModelID: "llm-qwen2.5-0.5b",
		},
		commands: CommandsConfig{
			Enabled:    false,
			WakePhrase: "слушай ввод",
		},
	}
}

// load загружает конфигурацию из файла.
func (c *Config) load() {
	if c.configPath == "" {
		return
	}

	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return // Файл не существует, используем defaults
	}

	var cfg configData
	if err := json.Unmarshal(data, &cfg); err != nil {
		return
	}

	c.language = cfg.Language
	if cfg.UILanguage != "" {
		c.uiLanguage = cfg.UILanguage
	}
	c.notifications = cfg.Notifications
	c.sounds = cfg.Sounds
	if cfg.Hotkey.Key != "" {
		c.hotkey = cfg.Hotkey
	}
	c.modelID = cfg.ModelID
	if cfg.Mode != "" {
		c.mode = processing.Mode{
			Kind:       processing.ParseModeKind(cfg.Mode),
			TemplateID: cfg.TemplateID,
		}
	}
	if cfg.VADSensitivity != nil {
		c.vadSensitivity = clamp01(*cfg.VADSensitivity)
	}
	c.textEngine.Enabled = cfg.TextEngine.Enabled
	if cfg.TextEngine.Backend != "" {
		c.textEngine.Backend = cfg.TextEngine.Backend
	}
	if cfg.TextEngine.ModelID != "" {
		c.textEngine.ModelID = cfg.TextEngine.ModelID
	}
	c.textEngine.OllamaURL = cfg.TextEngine.OllamaURL
	c.textEngine.OllamaModel = cfg.TextEngine.OllamaModel
	c.commands.Enabled = cfg.Commands.Enabled
	if cfg.Commands.WakePhrase != "" {
		c.commands.WakePhrase = cfg.Commands.WakePhrase
	}
	c.commands.Disabled = cfg.Commands.Disabled
}

// save сохраняет конфигурацию в файл.
func (c *Config) save() {
	if c.configPath == "" {
		return
	}

	sens := c.vadSensitivity
	cfg := configData{
		Language:       c.language,
		UILanguage:     c.uiLanguage,
		Notifications:  c.notifications,
		Sounds:         c.sounds,
		Hotkey:         c.hotkey,
		ModelID:        c.modelID,
		Mode:           c.mode.Kind.String(),
		TemplateID:     c.mode.TemplateID,
		VADSensitivity: &sens,
		TextEngine:     c.textEngine,
		Commands:       c.commands,
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}

	os.WriteFile(c.configPath, data, 0644)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SetLanguage устанавливает язык распознавания.
func (c *Config) SetLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = lang
	c.save()
}

// Language возвращает текущий язык распознавания.
func (c *Config) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.language
}

// SetUILanguage устанавливает язык интерфейса.
func (c *Config) SetUILanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uiLanguage = lang
	c.save()
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.uiLanguage
}

// ToggleNotifications переключает состояние уведомлений.
func (c *Config) ToggleNotifications() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = !c.notifications
	c.save()
	return c.notifications
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notifications
}

// ToggleSounds переключает звуковые сигналы записи.
func (c *Config) ToggleSounds() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sounds = !c.sounds
	c.save()
	return c.sounds
}

// SoundsEnabled возвращает true если звуковые сигналы включены.
func (c *Config) SoundsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sounds
}

// Hotkey возвращает текущую горячую клавишу.
func (c *Config) Hotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hotkey
}

// SetHotkey устанавливает горячую клавишу.
func (c *Config) SetHotkey(hk HotkeyConfig) {
	c.mu.Lock()
	c.hotkey = hk
	callback := c.onHotkeyChange
	c.save()
	c.mu.Unlock()

	if callback != nil {
		callback(hk)
	}
}

// OnHotkeyChange устанавливает callback для изменения горячей клавиши.
func (c *Config) OnHotkeyChange(fn func(HotkeyConfig)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onHotkeyChange = fn
}

// ModelID возвращает ID текущей модели распознавания.
func (c *Config) ModelID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modelID
}

// SetModelID устанавливает ID модели распознавания.
func (c *Config) SetModelID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modelID = id
	c.save()
}

// Mode возвращает текущий режим обработки текста.
func (c *Config) Mode() processing.Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// SetMode устанавливает режим обработки текста.
func (c *Config) SetMode(mode processing.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	c.save()
}

// VADSensitivity возвращает чувствительность обрезки тишины [0..1].
func (c *Config) VADSensitivity() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vadSensitivity
}

// SetVADSensitivity устанавливает чувствительность обрезки тишины.
// Значение зажимается в [0..1].
func (c *Config) SetVADSensitivity(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vadSensitivity = clamp01(v)
	c.save()
}

// TextEngine возвращает текущие настройки текстового движка.
func (c *Config) TextEngine() TextEngineConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.textEngine
}

// SetTextEngine устанавливает настройки текстового движка.
func (c *Config) SetTextEngine(cfg TextEngineConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.textEngine = cfg
	c.save()
}

// SetTextEngineEnabled включает/выключает пост-обработку текста.
func (c *Config) SetTextEngineEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.textEngine.Enabled = enabled
	c.save()
}

// TextEngineEnabled возвращает true если пост-обработка включена.
func (c *Config) TextEngineEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.textEngine.Enabled
}

// Commands возвращает настройки голосовых команд.
func (c *Config) Commands() CommandsConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg := c.commands
	cfg.Disabled = append([]string(nil), c.commands.Disabled...)
	return cfg
}

// SetCommandsEnabled включает/выключает голосовые команды.
func (c *Config) SetCommandsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands.Enabled = enabled
	c.save()
}

// SetWakePhrase устанавливает wake-фразу.
func (c *Config) SetWakePhrase(phrase string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands.WakePhrase = phrase
	c.save()
}

// SetCommandDisabled отключает или включает отдельный вид команды.
func (c *Config) SetCommandDisabled(kind command.Kind, disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := kind.String()
	idx := -1
	for i, d := range c.commands.Disabled {
		if d == name {
			idx = i
			break
		}
	}
	if disabled && idx < 0 {
		c.commands.Disabled = append(c.commands.Disabled, name)
	}
	if !disabled && idx >= 0 {
		c.commands.Disabled = append(c.commands.Disabled[:idx], c.commands.Disabled[idx+1:]...)
	}
	c.save()
}

// CommandEnabled возвращает true если вид команды не отключён.
func (c *Config) CommandEnabled(kind command.Kind) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	name := kind.String()
	for _, d := range c.commands.Disabled {
		if d == name {
			return false
		}
	}
	return true
}

// Snapshot возвращает снимок настроек для одного цикла диктовки.
func (c *Config) Snapshot() dictation.Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return dictation.Settings{
		Language:       c.language,
		WakePhrase:     c.commands.WakePhrase,
		Mode:           c.mode,
		VADSensitivity: c.vadSensitivity,
		CommandsOn:     c.commands.Enabled,
	}
}

// AvailableModifiers возвращает список доступных модификаторов.
func AvailableModifiers() []Modifier {
	return []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}
}

// AvailableKeys возвращает список доступных клавиш.
func AvailableKeys() []Key {
	return []Key{
		KeySpace, KeyReturn, KeyTab,
		KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ,
		KeyK, KeyL, KeyM, KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT,
		KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6,
		KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	}
}
