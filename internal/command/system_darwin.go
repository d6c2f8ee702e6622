//go:build darwin

package command

import (
	"context"
	"fmt"
	"os/exec"
)

// NewSystemCollaborators возвращает платформенные реализации
// коллабораторов исполнителя: Launcher, WindowManager, SystemControl.
func NewSystemCollaborators() (Launcher, WindowManager, SystemControl) {
	s := &darwinSystem{}
	return s, s, s
}

// darwinSystem управляет приложениями и системой через open и osascript.
type darwinSystem struct{}

func (s *darwinSystem) Open(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, "open", "-a", name).Run()
}

func (s *darwinSystem) SwitchTo(ctx context.Context, name string) error {
	script := fmt.Sprintf(`tell application %q to activate`, name)
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}

func (s *darwinSystem) CloseWindow(ctx context.Context, name string) error {
	app := name
	if app == "" {
		app = "(path to frontmost application as text)"
		script := `tell application "System Events" to keystroke "w" using command down`
		return exec.CommandContext(ctx, "osascript", "-e", script).Run()
	}
	script := fmt.Sprintf(`tell application %q to close front window`, app)
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}

func (s *darwinSystem) Quit(ctx context.Context, name string) error {
	script := fmt.Sprintf(`tell application %q to quit`, name)
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}

func (s *darwinSystem) Hide(ctx context.Context, name string) error {
	script := fmt.Sprintf(`tell application "System Events" to set visible of process %q to false`, name)
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}

func (s *darwinSystem) Tile(ctx context.Context, dir Direction) error {
	var keystroke string
	switch dir {
	case DirLeft:
		keystroke = `tell application "System Events" to key code 123 using {control down, option down}`
	case DirRight:
		keystroke = `tell application "System Events" to key code 124 using {control down, option down}`
	case DirFull:
		keystroke = `tell application "System Events" to key code 3 using {control down, option down}`
	default:
		return fmt.Errorf("направление не поддерживается на macOS: %s", dir)
	}
	return exec.CommandContext(ctx, "osascript", "-e", keystroke).Run()
}

func (s *darwinSystem) SetVolume(ctx context.Context, level int) error {
	script := fmt.Sprintf("set volume output volume %d", level)
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}

func (s *darwinSystem) AdjustVolume(ctx context.Context, delta int) error {
	script := fmt.Sprintf("set volume output volume ((output volume of (get volume settings)) + %d)", delta)
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}

func (s *darwinSystem) ToggleMute(ctx context.Context) error {
	script := "set volume output muted (not output muted of (get volume settings))"
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}

func (s *darwinSystem) ToggleDoNotDisturb(ctx context.Context) error {
	// Через Shortcuts: предполагается ярлык "Toggle Do Not Disturb"
	return exec.CommandContext(ctx, "shortcuts", "run", "Toggle Do Not Disturb").Run()
}

func (s *darwinSystem) RunShortcut(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, "shortcuts", "run", name).Run()
}
