//go:build windows

package input

import (
	"context"
	"fmt"
	"syscall"
	"unicode/utf16"
	"unsafe"
)

var (
	user32        = syscall.NewLazyDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard    = 1
	keyEventFKeyUp   = 0x0002
	keyEventFUnicode = 0x0004
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   uint64
}

type windowsTyper struct{}

func newTyper() (Typer, error) {
	return &windowsTyper{}, nil
}

func (t *windowsTyper) Type(text string) error {
	runes := utf16.Encode([]rune(text))
	inputs := make([]input, 0, len(runes)*2)

	for _, r := range runes {
		// Key down
		inputs = append(inputs, input{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wScan:   r,
				dwFlags: keyEventFUnicode,
			},
		})
		// Key up
		inputs = append(inputs, input{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wScan:   r,
				dwFlags: keyEventFUnicode | keyEventFKeyUp,
			},
		})
	}

	if len(inputs) == 0 {
		return nil
	}

	procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(unsafe.Sizeof(inputs[0])),
	)

	return nil
}

type windowsPresser struct{}

func newPresser() (Presser, error) {
	return &windowsPresser{}, nil
}

// virtualKeys маппинг имён клавиш на virtual-key коды.
var virtualKeys = map[string]uint16{
	"ctrl":   0x11,
	"shift":  0x10,
	"alt":    0x12,
	"super":  0x5B, // левая Win
	"win":    0x5B,
	"enter":  0x0D,
	"return": 0x0D,
	"tab":    0x09,
	"space":  0x20,
	"escape": 0x1B,
	"esc":    0x1B,
	"delete": 0x2E,
	"f1":     0x70, "f2": 0x71, "f3": 0x72, "f4": 0x73,
	"f5": 0x74, "f6": 0x75, "f7": 0x76, "f8": 0x77,
	"f9": 0x78, "f10": 0x79, "f11": 0x7A, "f12": 0x7B,
}

func virtualKey(name string) (uint16, error) {
	if vk, ok := virtualKeys[name]; ok {
		return vk, nil
	}
	if len(name) == 1 {
		c := name[0]
		if c >= 'a' && c <= 'z' {
			return uint16(c - 'a' + 0x41), nil
		}
		if c >= '0' && c <= '9' {
			return uint16(c - '0' + 0x30), nil
		}
	}
	return 0, fmt.Errorf("неизвестная клавиша %q", name)
}

func (p *windowsPresser) Press(ctx context.Context, combo string) error {
	mods, key, err := splitCombo(combo)
	if err != nil {
		return err
	}

	codes := make([]uint16, 0, len(mods)+1)
	for _, m := range mods {
		vk, err := virtualKey(m)
		if err != nil {
			return err
		}
		codes = append(codes, vk)
	}
	vk, err := virtualKey(key)
	if err != nil {
		return err
	}
	codes = append(codes, vk)

	// Нажатия в прямом порядке, отпускания в обратном
	inputs := make([]input, 0, len(codes)*2)
	for _, code := range codes {
		inputs = append(inputs, input{
			inputType: inputKeyboard,
			ki:        keyboardInput{wVk: code},
		})
	}
	for i := len(codes) - 1; i >= 0; i-- {
		inputs = append(inputs, input{
			inputType: inputKeyboard,
			ki:        keyboardInput{wVk: codes[i], dwFlags: keyEventFKeyUp},
		})
	}

	procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(unsafe.Sizeof(inputs[0])),
	)
	return nil
}
