// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = RU // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name":    "Golos",
		"app_tooltip": "Golos - голосовой ввод и команды",

		// Tray menu
		"tray_ready":              "Готов к работе",
		"tray_recording":          "Запись...",
		"tray_transcribing":       "Распознавание...",
		"tray_processing":         "Обработка текста...",
		"tray_injecting":          "Вставка...",
		"tray_error":              "Ошибка",
		"tray_language":           "Язык распознавания",
		"tray_lang_ru":            "Русский",
		"tray_lang_ru_hint":       "Распознавание на русском (рекомендуется для смешанной речи)",
		"tray_lang_en":            "English",
		"tray_lang_en_hint":       "Распознавание на английском",
		"tray_lang_auto":          "Авто",
		"tray_lang_auto_hint":     "Автоопределение (не рекомендуется для смешанной речи)",
		"tray_ui_language":        "Язык интерфейса",
		"tray_ui_language_hint":   "Язык меню и уведомлений",
		"tray_mode":               "Режим обработки",
		"tray_mode_raw":           "Как есть",
		"tray_mode_raw_hint":      "Вставка без изменений",
		"tray_mode_clean":         "Очистка",
		"tray_mode_clean_hint":    "Исправление ошибок и пунктуации",
		"tray_mode_structure":     "Структура",
		"tray_mode_structure_hint": "Оформление в связный текст",
		"tray_mode_code":          "Код",
		"tray_mode_code_hint":     "Диктовка в стиле кода",
		"tray_commands":           "Голосовые команды",
		"tray_commands_hint":      "Распознавать команды после wake-фразы",
		"tray_notifications":      "Уведомления",
		"tray_notifications_hint": "Показывать уведомления",
		"tray_sounds":             "Звуки записи",
		"tray_sounds_hint":        "Сигнал при начале и конце записи",
		"tray_settings":           "Настройки...",
		"tray_settings_hint":      "Горячая клавиша, движок, модель",
		"tray_quit":               "Выход",
		"tray_quit_hint":          "Закрыть приложение",

		// Notifications
		"notify_recording":       "Запись...",
		"notify_recording_hint":  "Говорите в микрофон",
		"notify_processing":      "Распознаю...",
		"notify_processing_hint": "Пожалуйста, подождите",
		"notify_done":            "Готово",
		"notify_empty":           "Не удалось распознать",
		"notify_empty_hint":      "Попробуйте ещё раз",
		"notify_error":           "Ошибка",
		"notify_ready":           "Golos готов к работе",
		"notify_command_done":    "Команда выполнена",
		"notify_command_partial": "Команда выполнена частично",

		// Dialogs
		"dialog_download_title":   "Загрузка модели",
		"dialog_download_confirm": "Модель %s (%s) не скачана. Скачать сейчас?",
		"dialog_wake_title":       "Wake-фраза",
		"dialog_wake_prompt":      "Фраза, с которой начинается голосовая команда:",

		// Errors
		"error_model_loading":        "Модель ещё загружается...",
		"error_model_not_loaded":     "Модель ещё не загружена",
		"error_model_not_downloaded": "Модель не скачана. Откройте настройки для загрузки.",
		"error_llm_not_downloaded":   "Модель пост-обработки не скачана. Скачайте в настройках.",
		"error_recording":            "Ошибка записи",
		"error_recognition":          "Ошибка распознавания",
		"error_input":                "Ошибка ввода",
		"error_hotkey_register":      "Не удалось зарегистрировать горячую клавишу",
		"error_model_load":           "Не удалось загрузить модель",
		"error_llm_load":             "Не удалось загрузить модель пост-обработки",
		"error_command":              "Ошибка выполнения команды",

		// Success messages
		"success_model_loaded": "Модель загружена",
	},

	EN: {
		// App
		"app_name":    "Golos",
		"app_tooltip": "Golos - voice input and commands",

		// Tray menu
		"tray_ready":              "Ready",
		"tray_recording":          "Recording...",
		"tray_transcribing":       "Transcribing...",
		"tray_processing":         "Processing text...",
		"tray_injecting":          "Typing...",
		"tray_error":              "Error",
		"tray_language":           "Recognition language",
		"tray_lang_ru":            "Русский",
		"tray_lang_ru_hint":       "Russian recognition (recommended for mixed speech)",
		"tray_lang_en":            "English",
		"tray_lang_en_hint":       "English recognition",
		"tray_lang_auto":          "Auto",
		"tray_lang_auto_hint":     "Auto-detect (not recommended for mixed speech)",
		"tray_ui_language":        "Interface language",
		"tray_ui_language_hint":   "Menu and notification language",
		"tray_mode":               "Processing mode",
		"tray_mode_raw":           "As is",
		"tray_mode_raw_hint":      "Insert without changes",
		"tray_mode_clean":         "Clean up",
		"tray_mode_clean_hint":    "Fix errors and punctuation",
		"tray_mode_structure":     "Structure",
		"tray_mode_structure_hint": "Format into coherent text",
		"tray_mode_code":          "Code",
		"tray_mode_code_hint":     "Code-style dictation",
		"tray_commands":           "Voice commands",
		"tray_commands_hint":      "Recognize commands after the wake phrase",
		"tray_notifications":      "Notifications",
		"tray_notifications_hint": "Show notifications",
		"tray_sounds":             "Recording sounds",
		"tray_sounds_hint":        "Beep on recording start and stop",
		"tray_settings":           "Settings...",
		"tray_settings_hint":      "Hotkey, engine, model",
		"tray_quit":               "Quit",
		"tray_quit_hint":          "Close application",

		// Notifications
		"notify_recording":       "Recording...",
		"notify_recording_hint":  "Speak into the microphone",
		"notify_processing":      "Processing...",
		"notify_processing_hint": "Please wait",
		"notify_done":            "Done",
		"notify_empty":           "Could not recognize",
		"notify_empty_hint":      "Please try again",
		"notify_error":           "Error",
		"notify_ready":           "Golos is ready",
		"notify_command_done":    "Command executed",
		"notify_command_partial": "Command partially executed",

		// Dialogs
		"dialog_download_title":   "Model download",
		"dialog_download_confirm": "Model %s (%s) is not downloaded. Download now?",
		"dialog_wake_title":       "Wake phrase",
		"dialog_wake_prompt":      "Phrase that starts a voice command:",

		// Errors
		"error_model_loading":        "Model is still loading...",
		"error_model_not_loaded":     "Model not loaded yet",
		"error_model_not_downloaded": "Model not downloaded. Open settings to download.",
		"error_llm_not_downloaded":   "Post-processing model not downloaded. Download in settings.",
		"error_recording":            "Recording error",
		"error_recognition":          "Recognition error",
		"error_input":                "Input error",
		"error_hotkey_register":      "Could not register hotkey",
		"error_model_load":           "Could not load model",
		"error_llm_load":             "Could not load post-processing model",
		"error_command":              "Command execution error",

		// Success messages
		"success_model_loaded": "Model loaded",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{RU, EN}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
