//go:build darwin

package input

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation
#import <ApplicationServices/ApplicationServices.h>
#import <Foundation/Foundation.h>
#include <stdlib.h>

void typeText(const char* text) {
    NSString *str = [NSString stringWithUTF8String:text];

    for (NSUInteger i = 0; i < [str length]; i++) {
        unichar c = [str characterAtIndex:i];

        CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, 0, true);
        CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, 0, false);

        CGEventKeyboardSetUnicodeString(keyDown, 1, &c);
        CGEventKeyboardSetUnicodeString(keyUp, 1, &c);

        CGEventPost(kCGHIDEventTap, keyDown);
        CGEventPost(kCGHIDEventTap, keyUp);

        CFRelease(keyDown);
        CFRelease(keyUp);
    }
}
*/
import "C"
import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unsafe"
)

type darwinTyper struct{}

func newTyper() (Typer, error) {
	return &darwinTyper{}, nil
}

func (t *darwinTyper) Type(text string) error {
	cstr := C.CString(text)
	defer C.free(unsafe.Pointer(cstr))
	C.typeText(cstr)
	return nil
}

type darwinPresser struct{}

func newPresser() (Presser, error) {
	return &darwinPresser{}, nil
}

// osascriptModifiers маппинг модификаторов на синтаксис AppleScript.
var osascriptModifiers = map[string]string{
	"ctrl":  "control down",
	"shift": "shift down",
	"alt":   "option down",
	"cmd":   "command down",
	"super": "command down",
}

// osascriptKeyCodes клавиши без печатного символа.
var osascriptKeyCodes = map[string]string{
	"enter":  "36",
	"return": "36",
	"tab":    "48",
	"space":  "49",
	"escape": "53",
	"esc":    "53",
	"delete": "51",
}

func (p *darwinPresser) Press(ctx context.Context, combo string) error {
	mods, key, err := splitCombo(combo)
	if err != nil {
		return err
	}

	using := make([]string, 0, len(mods))
	for _, m := range mods {
		mapped, ok := osascriptModifiers[m]
		if !ok {
			return fmt.Errorf("неизвестный модификатор %q", m)
		}
		using = append(using, mapped)
	}

	var action string
	if code, ok := osascriptKeyCodes[key]; ok {
		action = "key code " + code
	} else {
		action = fmt.Sprintf("keystroke %q", key)
	}
	if len(using) > 0 {
		action += " using {" + strings.Join(using, ", ") + "}"
	}

	script := `tell application "System Events" to ` + action
	return exec.CommandContext(ctx, "osascript", "-e", script).Run()
}
