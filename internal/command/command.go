// Package command распознаёт и исполняет голосовые команды: проверка
// wake-фразы, разбор цепочки команд из текста, диспетчеризация во
// внешние системные коллабораторы.
package command

import "fmt"

// Kind - тип структурированной команды.
type Kind int

const (
	KindOpenApp Kind = iota
	KindSwitchTo
	KindCloseWindow
	KindQuitApp
	KindHideApp
	KindTileWindow
	KindSetVolume
	KindVolumeUp
	KindVolumeDown
	KindToggleMute
	KindToggleDoNotDisturb
	KindRunShortcut
	KindPressKeys
)

func (k Kind) String() string {
	switch k {
	case KindOpenApp:
		return "open_app"
	case KindSwitchTo:
		return "switch_to"
	case KindCloseWindow:
		return "close_window"
	case KindQuitApp:
		return "quit_app"
	case KindHideApp:
		return "hide_app"
	case KindTileWindow:
		return "tile_window"
	case KindSetVolume:
		return "set_volume"
	case KindVolumeUp:
		return "volume_up"
	case KindVolumeDown:
		return "volume_down"
	case KindToggleMute:
		return "toggle_mute"
	case KindToggleDoNotDisturb:
		return "toggle_dnd"
	case KindRunShortcut:
		return "run_shortcut"
	case KindPressKeys:
		return "press_keys"
	default:
		return "unknown"
	}
}

// Direction - направление размещения окна.
type Direction string

const (
	DirLeft   Direction = "left"
	DirRight  Direction = "right"
	DirTop    Direction = "top"
	DirBottom Direction = "bottom"
	DirFull   Direction = "full"
)

// Command - одна структурированная команда из утверждения пользователя.
// Создаётся парсером, исполняется исполнителем один раз, не сохраняется.
type Command struct {
	Kind      Kind
	Arg       string    // имя приложения / ярлыка / комбинация клавиш
	Direction Direction // для TileWindow
	Level     int       // для SetVolume, 0-100
}

func (c Command) String() string {
	switch {
	case c.Kind == KindTileWindow:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Direction)
	case c.Kind == KindSetVolume:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Level)
	case c.Arg != "":
		return fmt.Sprintf("%s(%s)", c.Kind, c.Arg)
	default:
		return c.Kind.String()
	}
}
