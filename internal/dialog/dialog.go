// Package dialog предоставляет GUI диалоги для настройки приложения.
package dialog

import (
	"fmt"
	"strings"

	"github.com/ncruces/zenity"
	"golos/internal/config"
	"golos/internal/i18n"
	"golos/internal/models"
)

// SelectHotkey открывает диалог выбора горячей клавиши.
// Возвращает выбранную конфигурацию или ошибку если пользователь отменил.
func SelectHotkey(current config.HotkeyConfig) (config.HotkeyConfig, error) {
	// Шаг 1: Выбор модификаторов
	modValues := config.AvailableModifiers()
	modOptions := make([]string, len(modValues))
	for i, m := range modValues {
		modOptions[i] = modifierLabel(m)
	}

	// Определяем текущие выбранные модификаторы
	currentMods := make([]string, 0)
	for _, m := range current.Modifiers {
		for i, v := range modValues {
			if m == v {
				currentMods = append(currentMods, modOptions[i])
				break
			}
		}
	}

	selectedMods, err := zenity.ListMultiple(
		"Выберите модификаторы:",
		modOptions,
		zenity.Title("Настройка горячей клавиши - Модификаторы"),
		zenity.DefaultItems(currentMods...),
	)
	if err != nil {
		return current, err // Пользователь отменил
	}

	if len(selectedMods) == 0 {
		return current, fmt.Errorf("необходимо выбрать хотя бы один модификатор")
	}

	// Преобразуем выбранные модификаторы
	newMods := make([]config.Modifier, 0, len(selectedMods))
	for _, s := range selectedMods {
		for i, opt := range modOptions {
			if s == opt {
				newMods = append(newMods, modValues[i])
				break
			}
		}
	}

	// Шаг 2: Выбор клавиши
	keyValues := config.AvailableKeys()
	keyOptions := make([]string, len(keyValues))
	for i, k := range keyValues {
		keyOptions[i] = keyLabel(k)
	}

	selectedKey, err := zenity.List(
		"Выберите клавишу:",
		keyOptions,
		zenity.Title("Настройка горячей клавиши - Клавиша"),
		zenity.DefaultItems(keyLabel(current.Key)),
	)
	if err != nil {
		return current, err // Пользователь отменил
	}

	// Преобразуем выбранную клавишу
	var newKey config.Key
	for i, opt := range keyOptions {
		if selectedKey == opt {
			newKey = keyValues[i]
			break
		}
	}

	return config.HotkeyConfig{
		Modifiers: newMods,
		Key:       newKey,
	}, nil
}

func modifierLabel(m config.Modifier) string {
	switch m {
	case config.ModCtrl:
		return "Ctrl"
	case config.ModShift:
		return "Shift"
	case config.ModAlt:
		return "Alt"
	case config.ModSuper:
		return "Super (Win/Cmd)"
	default:
		return strings.ToUpper(string(m))
	}
}

func keyLabel(k config.Key) string {
	switch k {
	case config.KeySpace:
		return "Space"
	case config.KeyReturn:
		return "Return"
	case config.KeyTab:
		return "Tab"
	default:
		return strings.ToUpper(string(k))
	}
}

// ConfirmDownload спрашивает подтверждение скачивания модели.
// Возвращает true если пользователь согласился.
func ConfirmDownload(info models.ModelInfo) bool {
	message := fmt.Sprintf(i18n.T("dialog_download_confirm"), info.Name, humanSize(info.Size))
	err := zenity.Question(message,
		zenity.Title(i18n.T("dialog_download_title")),
		zenity.OKLabel("OK"),
	)
	return err == nil
}

// EnterWakePhrase открывает диалог ввода wake-фразы.
func EnterWakePhrase(current string) (string, error) {
	phrase, err := zenity.Entry(i18n.T("dialog_wake_prompt"),
		zenity.Title(i18n.T("dialog_wake_title")),
		zenity.EntryText(current),
	)
	if err != nil {
		return current, err // Пользователь отменил
	}
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return current, fmt.Errorf("wake-фраза не может быть пустой")
	}
	return phrase, nil
}

func humanSize(bytes int64) string {
	const mb = 1024 * 1024
	if bytes >= 1024*mb {
		return fmt.Sprintf("%.1f GB", float64(bytes)/(1024*mb))
	}
	return fmt.Sprintf("%d MB", bytes/mb)
}

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title))
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
