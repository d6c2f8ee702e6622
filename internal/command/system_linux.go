//go:build linux

package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// NewSystemCollaborators возвращает платформенные реализации
// коллабораторов исполнителя: Launcher, WindowManager, SystemControl.
func NewSystemCollaborators() (Launcher, WindowManager, SystemControl) {
	s := &linuxSystem{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}
	return s, s, s
}

// linuxSystem управляет приложениями и системой через стандартные
// утилиты: gtk-launch/xdg-open, wmctrl, pactl, gsettings.
type linuxSystem struct {
	useWayland bool
}

func (s *linuxSystem) Open(ctx context.Context, name string) error {
	// Сначала пробуем как desktop-приложение, затем как путь/URL
	if err := exec.CommandContext(ctx, "gtk-launch", name).Run(); err == nil {
		return nil
	}
	return exec.CommandContext(ctx, "xdg-open", name).Run()
}

func (s *linuxSystem) SwitchTo(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, "wmctrl", "-a", name).Run()
}

func (s *linuxSystem) CloseWindow(ctx context.Context, name string) error {
	if name == "" {
		return exec.CommandContext(ctx, "wmctrl", "-c", ":ACTIVE:").Run()
	}
	return exec.CommandContext(ctx, "wmctrl", "-c", name).Run()
}

func (s *linuxSystem) Quit(ctx context.Context, name string) error {
	return exec.CommandContext(ctx, "pkill", "-f", "-i", name).Run()
}

func (s *linuxSystem) Hide(ctx context.Context, name string) error {
	// wmctrl не умеет сворачивать по имени; через xdotool
	return exec.CommandContext(ctx, "xdotool", "search", "--name", name, "windowminimize").Run()
}

func (s *linuxSystem) Tile(ctx context.Context, dir Direction) error {
	switch dir {
	case DirFull:
		return exec.CommandContext(ctx, "wmctrl", "-r", ":ACTIVE:", "-b", "add,maximized_vert,maximized_horz").Run()
	case DirLeft:
		return s.tileHalf(ctx, "0,0,0,-1,-1")
	case DirRight:
		return s.tileHalf(ctx, "0,960,0,-1,-1")
	case DirTop:
		return s.tileHalf(ctx, "0,0,0,-1,540")
	case DirBottom:
		return s.tileHalf(ctx, "0,0,540,-1,540")
	default:
		return fmt.Errorf("неизвестное направление: %s", dir)
	}
}

func (s *linuxSystem) tileHalf(ctx context.Context, geometry string) error {
	if err := exec.CommandContext(ctx, "wmctrl", "-r", ":ACTIVE:", "-b", "remove,maximized_vert,maximized_horz").Run(); err != nil {
		return err
	}
	return exec.CommandContext(ctx, "wmctrl", "-r", ":ACTIVE:", "-e", geometry).Run()
}

func (s *linuxSystem) SetVolume(ctx context.Context, level int) error {
	return exec.CommandContext(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@",
		fmt.Sprintf("%d%%", level)).Run()
}

func (s *linuxSystem) AdjustVolume(ctx context.Context, delta int) error {
	sign := "+"
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	return exec.CommandContext(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@",
		fmt.Sprintf("%s%d%%", sign, delta)).Run()
}

func (s *linuxSystem) ToggleMute(ctx context.Context) error {
	return exec.CommandContext(ctx, "pactl", "set-sink-mute", "@DEFAULT_SINK@", "toggle").Run()
}

func (s *linuxSystem) ToggleDoNotDisturb(ctx context.Context) error {
	// GNOME: переключаем show-banners
	out, err := exec.CommandContext(ctx, "gsettings", "get",
		"org.gnome.desktop.notifications", "show-banners").Output()
	if err != nil {
		return err
	}
	next := "false"
	if strings.TrimSpace(string(out)) == "false" {
		next = "true"
	}
	return exec.CommandContext(ctx, "gsettings", "set",
		"org.gnome.desktop.notifications", "show-banners", next).Run()
}

func (s *linuxSystem) RunShortcut(ctx context.Context, name string) error {
	// Сценарии - исполняемые файлы в ~/.config/golos/shortcuts
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return exec.CommandContext(ctx, home+"/.config/golos/shortcuts/"+name).Run()
}
