// Package tray предоставляет системный трей с меню.
package tray

import (
	"github.com/getlantern/systray"
	"golos/embedded"
	"golos/internal/dictation"
	"golos/internal/i18n"
	"golos/internal/processing"
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnModeSelect          func(kind processing.ModeKind)
	OnLanguageSelect      func(lang string)
	OnUILanguageSelect    func(lang i18n.Language)
	OnCommandsToggle      func() bool
	OnNotificationsToggle func() bool
	OnSoundsToggle        func() bool
	OnSettingsClick       func()
	OnQuit                func()
}

// recognitionLanguages - пункты подменю языка распознавания в порядке
// отображения. Значения совпадают с полем language конфига.
var recognitionLanguages = []string{"ru", "en", "auto"}

// Tray управляет иконкой в системном трее. Реализует dictation.Announcer:
// на каждый переход автомата меняет иконку и строку статуса.
type Tray struct {
	callbacks   Callbacks
	status      *systray.MenuItem
	modeItems   map[processing.ModeKind]*systray.MenuItem
	langMenu    *systray.MenuItem
	langItems   map[string]*systray.MenuItem
	uiLangMenu  *systray.MenuItem
	uiLangItems map[i18n.Language]*systray.MenuItem
	commandsOn  *systray.MenuItem
	notifyOn    *systray.MenuItem
	soundsOn    *systray.MenuItem
	settingsBtn *systray.MenuItem
	quitBtn     *systray.MenuItem
}

// New создаёт новый Tray.
func New(callbacks Callbacks) *Tray {
	return &Tray{
		callbacks:   callbacks,
		modeItems:   make(map[processing.ModeKind]*systray.MenuItem),
		langItems:   make(map[string]*systray.MenuItem),
		uiLangItems: make(map[i18n.Language]*systray.MenuItem),
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(embedded.IconIdle)
	systray.SetTitle("Golos")
	systray.SetTooltip(i18n.T("app_tooltip"))

	// Статус
	t.status = systray.AddMenuItem(i18n.T("tray_ready"), "")
	t.status.Disable()

	systray.AddSeparator()

	// Режим обработки
	modeMenu := systray.AddMenuItem(i18n.T("tray_mode"), "")
	t.modeItems[processing.ModeRaw] = modeMenu.AddSubMenuItemCheckbox(
		i18n.T("tray_mode_raw"), i18n.T("tray_mode_raw_hint"), true)
	t.modeItems[processing.ModeClean] = modeMenu.AddSubMenuItemCheckbox(
		i18n.T("tray_mode_clean"), i18n.T("tray_mode_clean_hint"), false)
	t.modeItems[processing.ModeStructure] = modeMenu.AddSubMenuItemCheckbox(
		i18n.T("tray_mode_structure"), i18n.T("tray_mode_structure_hint"), false)
	t.modeItems[processing.ModeCode] = modeMenu.AddSubMenuItemCheckbox(
		i18n.T("tray_mode_code"), i18n.T("tray_mode_code_hint"), false)

	// Язык распознавания
	t.langMenu = systray.AddMenuItem(i18n.T("tray_language"), "")
	for _, lang := range recognitionLanguages {
		t.langItems[lang] = t.langMenu.AddSubMenuItemCheckbox(
			i18n.T("tray_lang_"+lang), i18n.T("tray_lang_"+lang+"_hint"), false)
	}

	// Язык интерфейса
	t.uiLangMenu = systray.AddMenuItem(i18n.T("tray_ui_language"), i18n.T("tray_ui_language_hint"))
	for _, lang := range i18n.AvailableLanguages() {
		t.uiLangItems[lang] = t.uiLangMenu.AddSubMenuItemCheckbox(
			i18n.LanguageName(lang), "", lang == i18n.GetLanguage())
	}

	// Голосовые команды
	t.commandsOn = systray.AddMenuItemCheckbox(
		i18n.T("tray_commands"), i18n.T("tray_commands_hint"), false)

	systray.AddSeparator()

	// Уведомления и звуки
	t.notifyOn = systray.AddMenuItemCheckbox(
		i18n.T("tray_notifications"), i18n.T("tray_notifications_hint"), true)
	t.soundsOn = systray.AddMenuItemCheckbox(
		i18n.T("tray_sounds"), i18n.T("tray_sounds_hint"), true)

	// Настройки
	t.settingsBtn = systray.AddMenuItem(i18n.T("tray_settings"), i18n.T("tray_settings_hint"))

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	// Обработка событий меню
	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.modeItems[processing.ModeRaw].ClickedCh:
			t.selectMode(processing.ModeRaw)
		case <-t.modeItems[processing.ModeClean].ClickedCh:
			t.selectMode(processing.ModeClean)
		case <-t.modeItems[processing.ModeStructure].ClickedCh:
			t.selectMode(processing.ModeStructure)
		case <-t.modeItems[processing.ModeCode].ClickedCh:
			t.selectMode(processing.ModeCode)

		case <-t.langItems["ru"].ClickedCh:
			t.selectLanguage("ru")
		case <-t.langItems["en"].ClickedCh:
			t.selectLanguage("en")
		case <-t.langItems["auto"].ClickedCh:
			t.selectLanguage("auto")

		case <-t.uiLangItems[i18n.RU].ClickedCh:
			t.selectUILanguage(i18n.RU)
		case <-t.uiLangItems[i18n.EN].ClickedCh:
			t.selectUILanguage(i18n.EN)

		case <-t.commandsOn.ClickedCh:
			if t.callbacks.OnCommandsToggle != nil {
				setChecked(t.commandsOn, t.callbacks.OnCommandsToggle())
			}

		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				setChecked(t.notifyOn, t.callbacks.OnNotificationsToggle())
			}

		case <-t.soundsOn.ClickedCh:
			if t.callbacks.OnSoundsToggle != nil {
				setChecked(t.soundsOn, t.callbacks.OnSoundsToggle())
			}

		case <-t.settingsBtn.ClickedCh:
			if t.callbacks.OnSettingsClick != nil {
				t.callbacks.OnSettingsClick()
			}

		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
		}
	}
}

func (t *Tray) selectMode(kind processing.ModeKind) {
	if t.callbacks.OnModeSelect != nil {
		t.callbacks.OnModeSelect(kind)
	}
	t.SetMode(kind)
}

func (t *Tray) selectLanguage(lang string) {
	if t.callbacks.OnLanguageSelect != nil {
		t.callbacks.OnLanguageSelect(lang)
	}
	t.SetLanguage(lang)
}

func (t *Tray) selectUILanguage(lang i18n.Language) {
	if t.callbacks.OnUILanguageSelect != nil {
		t.callbacks.OnUILanguageSelect(lang)
	}
	t.SetUILanguage(lang)
}

// SetMode отмечает активный режим в меню.
func (t *Tray) SetMode(kind processing.ModeKind) {
	for k, item := range t.modeItems {
		setChecked(item, k == kind)
	}
}

// SetLanguage отмечает активный язык распознавания в меню.
func (t *Tray) SetLanguage(lang string) {
	for l, item := range t.langItems {
		setChecked(item, l == lang)
	}
}

// SetUILanguage отмечает активный язык интерфейса в меню.
func (t *Tray) SetUILanguage(lang i18n.Language) {
	for l, item := range t.uiLangItems {
		setChecked(item, l == lang)
	}
}

// SetCommandsEnabled отмечает чекбокс голосовых команд.
func (t *Tray) SetCommandsEnabled(enabled bool) {
	if t.commandsOn != nil {
		setChecked(t.commandsOn, enabled)
	}
}

func setChecked(item *systray.MenuItem, checked bool) {
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

// StateChanged реализует dictation.Announcer.
func (t *Tray) StateChanged(from, to dictation.State, reason string) {
	icon, key := stateAppearance(to)
	systray.SetIcon(icon)
	systray.SetTooltip("Golos - " + i18n.T(key))
	if t.status != nil {
		t.status.SetTitle(i18n.T(key))
	}
}

func stateAppearance(s dictation.State) ([]byte, string) {
	switch s {
	case dictation.StateRecording:
		return embedded.IconRecording, "tray_recording"
	case dictation.StateTranscribing:
		return embedded.IconTranscribing, "tray_transcribing"
	case dictation.StateProcessing:
		return embedded.IconProcessing, "tray_processing"
	case dictation.StateInjecting:
		return embedded.IconInjecting, "tray_injecting"
	case dictation.StateError:
		return embedded.IconError, "tray_error"
	default:
		return embedded.IconIdle, "tray_ready"
	}
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}

// RefreshUI обновляет все тексты меню на текущем языке.
func (t *Tray) RefreshUI() {
	systray.SetTooltip(i18n.T("app_tooltip"))

	if t.status != nil {
		t.status.SetTitle(i18n.T("tray_ready"))
	}
	if t.langMenu != nil {
		t.langMenu.SetTitle(i18n.T("tray_language"))
		for lang, item := range t.langItems {
			item.SetTitle(i18n.T("tray_lang_" + lang))
			item.SetTooltip(i18n.T("tray_lang_" + lang + "_hint"))
		}
	}
	if t.uiLangMenu != nil {
		t.uiLangMenu.SetTitle(i18n.T("tray_ui_language"))
		t.uiLangMenu.SetTooltip(i18n.T("tray_ui_language_hint"))
	}
	if t.commandsOn != nil {
		t.commandsOn.SetTitle(i18n.T("tray_commands"))
		t.commandsOn.SetTooltip(i18n.T("tray_commands_hint"))
	}
	if t.notifyOn != nil {
		t.notifyOn.SetTitle(i18n.T("tray_notifications"))
		t.notifyOn.SetTooltip(i18n.T("tray_notifications_hint"))
	}
	if t.soundsOn != nil {
		t.soundsOn.SetTitle(i18n.T("tray_sounds"))
		t.soundsOn.SetTooltip(i18n.T("tray_sounds_hint"))
	}
	if t.settingsBtn != nil {
		t.settingsBtn.SetTitle(i18n.T("tray_settings"))
		t.settingsBtn.SetTooltip(i18n.T("tray_settings_hint"))
	}
	if t.quitBtn != nil {
		t.quitBtn.SetTitle(i18n.T("tray_quit"))
		t.quitBtn.SetTooltip(i18n.T("tray_quit_hint"))
	}
}
