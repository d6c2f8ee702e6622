// Package notify предоставляет системные уведомления и звуковые сигналы.
package notify

import (
	"github.com/gen2brain/beeep"
	"golos/internal/i18n"
)

const appName = "Golos"

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled bool
	sounds  bool
}

// New создаёт новый Notifier.
func New(enabled, sounds bool) *Notifier {
	return &Notifier{enabled: enabled, sounds: sounds}
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// SetSounds включает/выключает звуковые сигналы.
func (n *Notifier) SetSounds(enabled bool) {
	n.sounds = enabled
}

// Recording показывает уведомление о начале записи.
func (n *Notifier) Recording() {
	n.notify(i18n.T("notify_recording"), i18n.T("notify_recording_hint"))
}

// Processing показывает уведомление об обработке.
func (n *Notifier) Processing() {
	n.notify(i18n.T("notify_processing"), i18n.T("notify_processing_hint"))
}

// Success показывает уведомление об успешной вставке текста.
func (n *Notifier) Success(text string) {
	if len(text) > 100 {
		text = text[:100] + "..."
	}
	n.notify(i18n.T("notify_done"), text)
}

// Empty показывает уведомление о пустом результате.
func (n *Notifier) Empty() {
	n.notify(i18n.T("notify_empty"), i18n.T("notify_empty_hint"))
}

// CommandDone показывает уведомление о выполненной команде.
func (n *Notifier) CommandDone() {
	n.notify(i18n.T("notify_command_done"), "")
}

// CommandPartial показывает уведомление о частично выполненной цепочке.
func (n *Notifier) CommandPartial(detail string) {
	n.notify(i18n.T("notify_command_partial"), detail)
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

// Info показывает информационное уведомление.
func (n *Notifier) Info(msg string) {
	if len(msg) > 100 {
		msg = msg[:100] + "..."
	}
	n.notify("", msg)
}

// RecordStarted подаёт сигнал начала записи.
func (n *Notifier) RecordStarted() {
	if !n.sounds {
		return
	}
	_ = beeep.Beep(880, 80)
}

// RecordStopped подаёт сигнал конца записи.
func (n *Notifier) RecordStopped() {
	if !n.sounds {
		return
	}
	_ = beeep.Beep(440, 80)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	// Игнорируем ошибки уведомлений - они не критичны
	if title != "" {
		_ = beeep.Notify(appName+": "+title, message, "")
	} else {
		_ = beeep.Notify(appName, message, "")
	}
}
