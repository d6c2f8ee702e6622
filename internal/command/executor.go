package command

import (
	"context"
	"fmt"
	"log"
)

// Launcher управляет приложениями (внешний коллаборатор).
type Launcher interface {
	Open(ctx context.Context, name string) error
	SwitchTo(ctx context.Context, name string) error
	Quit(ctx context.Context, name string) error
	Hide(ctx context.Context, name string) error
	CloseWindow(ctx context.Context, name string) error
}

// WindowManager размещает окна (внешний коллаборатор).
type WindowManager interface {
	Tile(ctx context.Context, dir Direction) error
}

// SystemControl управляет системными настройками (внешний коллаборатор).
type SystemControl interface {
	SetVolume(ctx context.Context, level int) error
	AdjustVolume(ctx context.Context, delta int) error
	ToggleMute(ctx context.Context) error
	ToggleDoNotDisturb(ctx context.Context) error
	RunShortcut(ctx context.Context, name string) error
}

// KeyPresser эмулирует нажатие комбинации клавиш (внешний коллаборатор).
type KeyPresser interface {
	Press(ctx context.Context, combo string) error
}

// volumeStep - шаг команд "громче"/"тише" в процентах.
const volumeStep = 10

// ChainResult - итог исполнения цепочки.
type ChainResult struct {
	Total     int   // команд в цепочке
	Succeeded int   // исполнено до остановки
	Err       error // ошибка остановившей команды (nil если все прошли)
}

// Stopped возвращает true если цепочка остановилась до конца.
func (r ChainResult) Stopped() bool {
	return r.Err != nil
}

// Executor исполняет цепочки команд, делегируя каждую коллаборатору.
type Executor struct {
	launcher Launcher
	windows  WindowManager
	system   SystemControl
	keys     KeyPresser

	// enabled определяет какие типы команд разрешены пользователем;
	// nil означает "разрешены все"
	enabled func(Kind) bool
}

// NewExecutor создаёт исполнитель команд.
func NewExecutor(launcher Launcher, windows WindowManager, system SystemControl, keys KeyPresser) *Executor {
	return &Executor{
		launcher: launcher,
		windows:  windows,
		system:   system,
		keys:     keys,
	}
}

// SetEnabledFunc задаёт проверку разрешённости типа команды.
func (e *Executor) SetEnabledFunc(fn func(Kind) bool) {
	e.enabled = fn
}

// ExecuteChain исполняет команды строго по порядку и останавливается
// на первой ошибке, сообщая сколько успело исполниться. Запрещённая
// настройками команда отклоняется до исполнения и тоже останавливает
// цепочку.
func (e *Executor) ExecuteChain(ctx context.Context, commands []Command) ChainResult {
	result := ChainResult{Total: len(commands)}

	for _, cmd := range commands {
		if e.enabled != nil && !e.enabled(cmd.Kind) {
			result.Err = fmt.Errorf("команда отключена в настройках: %s", cmd.Kind)
			return result
		}

		if err := e.execute(ctx, cmd); err != nil {
			log.Printf("Ошибка команды %s: %v", cmd, err)
			result.Err = fmt.Errorf("команда %s: %w", cmd, err)
			return result
		}
		result.Succeeded++
	}

	return result
}

func (e *Executor) execute(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case KindOpenApp:
		return e.launcher.Open(ctx, cmd.Arg)
	case KindSwitchTo:
		return e.launcher.SwitchTo(ctx, cmd.Arg)
	case KindCloseWindow:
		return e.launcher.CloseWindow(ctx, cmd.Arg)
	case KindQuitApp:
		return e.launcher.Quit(ctx, cmd.Arg)
	case KindHideApp:
		return e.launcher.Hide(ctx, cmd.Arg)
	case KindTileWindow:
		return e.windows.Tile(ctx, cmd.Direction)
	case KindSetVolume:
		return e.system.SetVolume(ctx, cmd.Level)
	case KindVolumeUp:
		return e.system.AdjustVolume(ctx, volumeStep)
	case KindVolumeDown:
		return e.system.AdjustVolume(ctx, -volumeStep)
	case KindToggleMute:
		return e.system.ToggleMute(ctx)
	case KindToggleDoNotDisturb:
		return e.system.ToggleDoNotDisturb(ctx)
	case KindRunShortcut:
		return e.system.RunShortcut(ctx, cmd.Arg)
	case KindPressKeys:
		return e.keys.Press(ctx, cmd.Arg)
	default:
		return fmt.Errorf("неизвестный тип команды: %d", cmd.Kind)
	}
}
