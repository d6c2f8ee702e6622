//go:build windows

package command

import (
	"context"
	"fmt"
	"os/exec"
)

// NewSystemCollaborators возвращает платформенные реализации
// коллабораторов исполнителя: Launcher, WindowManager, SystemControl.
func NewSystemCollaborators() (Launcher, WindowManager, SystemControl) {
	s := &windowsSystem{}
	return s, s, s
}

// windowsSystem управляет приложениями через cmd/powershell.
type windowsSystem struct{}

func (s *windowsSystem) Open(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, "cmd", "/c", "start", "", name).Run()
}

func (s *windowsSystem) SwitchTo(ctx context.Context, name string) error {
	script := fmt.Sprintf(`(New-Object -ComObject WScript.Shell).AppActivate(%q)`, name)
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script).Run()
}

func (s *windowsSystem) CloseWindow(ctx context.Context, name string) error {
	if name == "" {
		script := `(New-Object -ComObject WScript.Shell).SendKeys("%{F4}")`
		return exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script).Run()
	}
	return s.Quit(ctx, name)
}

func (s *windowsSystem) Quit(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, "taskkill", "/im", name+".exe").Run()
}

func (s *windowsSystem) Hide(ctx context.Context, name string) error {
	script := `(New-Object -ComObject Shell.Application).MinimizeAll()`
	_ = name
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script).Run()
}

func (s *windowsSystem) Tile(ctx context.Context, dir Direction) error {
	var keys string
	switch dir {
	case DirLeft:
		keys = "^{ESC}" // заглушка: Win+стрелки не выражаются через SendKeys
	default:
		keys = ""
	}
	if keys == "" {
		return fmt.Errorf("размещение окон не поддерживается на Windows: %s", dir)
	}
	script := fmt.Sprintf(`(New-Object -ComObject WScript.Shell).SendKeys(%q)`, keys)
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script).Run()
}

func (s *windowsSystem) SetVolume(ctx context.Context, level int) error {
	script := fmt.Sprintf(`$v=[math]::Round(%d*655.35); (New-Object -ComObject WScript.Shell) | Out-Null`, level)
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script).Run()
}

func (s *windowsSystem) AdjustVolume(ctx context.Context, delta int) error {
	key := "[char]175" // volume up
	if delta < 0 {
		key = "[char]174"
		delta = -delta
	}
	steps := delta / 2 // одна клавиша = 2%
	script := fmt.Sprintf(`$w=New-Object -ComObject WScript.Shell; 1..%d | ForEach-Object { $w.SendKeys(%s) }`, steps, key)
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script).Run()
}

func (s *windowsSystem) ToggleMute(ctx context.Context) error {
	script := `(New-Object -ComObject WScript.Shell).SendKeys([char]173)`
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script).Run()
}

func (s *windowsSystem) ToggleDoNotDisturb(ctx context.Context) error {
	return fmt.Errorf("режим Не беспокоить не поддерживается на Windows")
}

func (s *windowsSystem) RunShortcut(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, "cmd", "/c", "start", "", name+".lnk").Run()
}
