//go:build linux

package input

import (
	"context"
	"os"
	"os/exec"
	"strings"
)

type linuxTyper struct {
	useWayland bool
}

func newTyper() (Typer, error) {
	t := &linuxTyper{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}
	return t, nil
}

func (t *linuxTyper) Type(text string) error {
	if t.useWayland {
		return t.typeWayland(text)
	}
	return t.typeX11(text)
}

func (t *linuxTyper) typeX11(text string) error {
	cmd := exec.Command("xdotool", "type", "--clearmodifiers", "--", text)
	return cmd.Run()
}

func (t *linuxTyper) typeWayland(text string) error {
	cmd := exec.Command("wtype", text)
	return cmd.Run()
}

type linuxPresser struct {
	useWayland bool
}

func newPresser() (Presser, error) {
	return &linuxPresser{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}, nil
}

// xdotoolKeys маппинг имён клавиш на синтаксис xdotool/wtype.
var xdotoolKeys = map[string]string{
	"enter":  "Return",
	"return": "Return",
	"tab":    "Tab",
	"space":  "space",
	"escape": "Escape",
	"esc":    "Escape",
	"delete": "Delete",
	"super":  "super",
}

func (p *linuxPresser) Press(ctx context.Context, combo string) error {
	mods, key, err := splitCombo(combo)
	if err != nil {
		return err
	}
	if mapped, ok := xdotoolKeys[key]; ok {
		key = mapped
	}

	if p.useWayland {
		args := make([]string, 0, len(mods)*2+2)
		for _, m := range mods {
			args = append(args, "-M", m)
		}
		args = append(args, "-k", key)
		for i := len(mods) - 1; i >= 0; i-- {
			args = append(args, "-m", mods[i])
		}
		return exec.CommandContext(ctx, "wtype", args...).Run()
	}

	spec := key
	if len(mods) > 0 {
		spec = strings.Join(mods, "+") + "+" + key
	}
	return exec.CommandContext(ctx, "xdotool", "key", "--clearmodifiers", spec).Run()
}
