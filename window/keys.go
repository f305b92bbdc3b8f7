//go:build !ios && !android && (amd64 || arm64)

package window

import (
	"fmt"

	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Key is a host virtual key code (XPLM_VK_*).
type Key uint8

const (
	KeyBack     Key = 0x08
	KeyTab      Key = 0x09
	KeyClear    Key = 0x0C
	KeyReturn   Key = 0x0D
	KeyEscape   Key = 0x1B
	KeySpace    Key = 0x20
	KeyPrior    Key = 0x21
	KeyNext     Key = 0x22
	KeyEnd      Key = 0x23
	KeyHome     Key = 0x24
	KeyLeft     Key = 0x25
	KeyUp       Key = 0x26
	KeyRight    Key = 0x27
	KeyDown     Key = 0x28
	KeySelect   Key = 0x29
	KeyPrint    Key = 0x2A
	KeyExecute  Key = 0x2B
	KeySnapshot Key = 0x2C
	KeyInsert   Key = 0x2D
	KeyDelete   Key = 0x2E
	KeyHelp     Key = 0x2F

	// Digits on the main keyboard.
	Key0 Key = 0x30
	Key1 Key = 0x31
	Key2 Key = 0x32
	Key3 Key = 0x33
	Key4 Key = 0x34
	Key5 Key = 0x35
	Key6 Key = 0x36
	Key7 Key = 0x37
	Key8 Key = 0x38
	Key9 Key = 0x39

	KeyA Key = 0x41
	KeyB Key = 0x42
	KeyC Key = 0x43
	KeyD Key = 0x44
	KeyE Key = 0x45
	KeyF Key = 0x46
	KeyG Key = 0x47
	KeyH Key = 0x48
	KeyI Key = 0x49
	KeyJ Key = 0x4A
	KeyK Key = 0x4B
	KeyL Key = 0x4C
	KeyM Key = 0x4D
	KeyN Key = 0x4E
	KeyO Key = 0x4F
	KeyP Key = 0x50
	KeyQ Key = 0x51
	KeyR Key = 0x52
	KeyS Key = 0x53
	KeyT Key = 0x54
	KeyU Key = 0x55
	KeyV Key = 0x56
	KeyW Key = 0x57
	KeyX Key = 0x58
	KeyY Key = 0x59
	KeyZ Key = 0x5A

	KeyNumpad0   Key = 0x60
	KeyNumpad1   Key = 0x61
	KeyNumpad2   Key = 0x62
	KeyNumpad3   Key = 0x63
	KeyNumpad4   Key = 0x64
	KeyNumpad5   Key = 0x65
	KeyNumpad6   Key = 0x66
	KeyNumpad7   Key = 0x67
	KeyNumpad8   Key = 0x68
	KeyNumpad9   Key = 0x69
	KeyMultiply  Key = 0x6A
	KeyAdd       Key = 0x6B
	KeySeparator Key = 0x6C
	KeySubtract  Key = 0x6D
	KeyDecimal   Key = 0x6E
	KeyDivide    Key = 0x6F

	KeyF1  Key = 0x70
	KeyF2  Key = 0x71
	KeyF3  Key = 0x72
	KeyF4  Key = 0x73
	KeyF5  Key = 0x74
	KeyF6  Key = 0x75
	KeyF7  Key = 0x76
	KeyF8  Key = 0x77
	KeyF9  Key = 0x78
	KeyF10 Key = 0x79
	KeyF11 Key = 0x7A
	KeyF12 Key = 0x7B
	KeyF13 Key = 0x7C
	KeyF14 Key = 0x7D
	KeyF15 Key = 0x7E
	KeyF16 Key = 0x7F
	KeyF17 Key = 0x80
	KeyF18 Key = 0x81
	KeyF19 Key = 0x82
	KeyF20 Key = 0x83
	KeyF21 Key = 0x84
	KeyF22 Key = 0x85
	KeyF23 Key = 0x86
	KeyF24 Key = 0x87

	// Host-specific codes for punctuation.
	KeyEqual        Key = 0xB0
	KeyMinus        Key = 0xB1
	KeyClosingBrace Key = 0xB2
	KeyOpeningBrace Key = 0xB3
	KeyQuote        Key = 0xB4
	KeySemicolon    Key = 0xB5
	KeyBackslash    Key = 0xB6
	KeyComma        Key = 0xB7
	KeySlash        Key = 0xB8
	KeyPeriod       Key = 0xB9
	KeyBackquote    Key = 0xBA
	KeyEnter        Key = 0xBB
	KeyNumpadEnter  Key = 0xBC
	KeyNumpadEqual  Key = 0xBD
)

var keyNames = map[Key]string{
	KeyBack:         "Back",
	KeyTab:          "Tab",
	KeyClear:        "Clear",
	KeyReturn:       "Return",
	KeyEscape:       "Escape",
	KeySpace:        "Space",
	KeyPrior:        "Prior",
	KeyNext:         "Next",
	KeyEnd:          "End",
	KeyHome:         "Home",
	KeyLeft:         "Left",
	KeyUp:           "Up",
	KeyRight:        "Right",
	KeyDown:         "Down",
	KeySelect:       "Select",
	KeyPrint:        "Print",
	KeyExecute:      "Execute",
	KeySnapshot:     "Snapshot",
	KeyInsert:       "Insert",
	KeyDelete:       "Delete",
	KeyHelp:         "Help",
	KeyMultiply:     "Multiply",
	KeyAdd:          "Add",
	KeySeparator:    "Separator",
	KeySubtract:     "Subtract",
	KeyDecimal:      "Decimal",
	KeyDivide:       "Divide",
	KeyEqual:        "Equal",
	KeyMinus:        "Minus",
	KeyClosingBrace: "ClosingBrace",
	KeyOpeningBrace: "OpeningBrace",
	KeyQuote:        "Quote",
	KeySemicolon:    "Semicolon",
	KeyBackslash:    "Backslash",
	KeyComma:        "Comma",
	KeySlash:        "Slash",
	KeyPeriod:       "Period",
	KeyBackquote:    "Backquote",
	KeyEnter:        "Enter",
	KeyNumpadEnter:  "NumpadEnter",
	KeyNumpadEqual:  "NumpadEqual",
}

// KeyFromCode converts a host virtual key code. The host passes key codes
// as C chars, so only the low byte of code is significant.
func KeyFromCode(code int32) (Key, error) {
	k := Key(uint8(code))
	if k.known() {
		return k, nil
	}
	return 0, xputil.Unmatched("virtual key", code)
}

func (k Key) known() bool {
	switch {
	case k >= Key0 && k <= Key9,
		k >= KeyA && k <= KeyZ,
		k >= KeyNumpad0 && k <= KeyNumpad9,
		k >= KeyF1 && k <= KeyF24:
		return true
	}
	_, ok := keyNames[k]
	return ok
}

// Code returns the host virtual key code.
func (k Key) Code() int32 {
	return int32(k)
}

// String returns the string representation of the key.
func (k Key) String() string {
	switch {
	case k >= Key0 && k <= Key9:
		return string(rune('0' + k - Key0))
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + k - KeyA))
	case k >= KeyNumpad0 && k <= KeyNumpad9:
		return fmt.Sprintf("Numpad%d", k-KeyNumpad0)
	case k >= KeyF1 && k <= KeyF24:
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%#x)", uint8(k))
}

// Host key flags (XPLMKeyFlags).
const (
	flagShift   int32 = 1
	flagOption  int32 = 2
	flagControl int32 = 4
	flagDown    int32 = 8
	flagUp      int32 = 16
)

// KeyAction is what happened to a key.
type KeyAction int

const (
	Press KeyAction = iota
	Release
)

// String returns the string representation of the action.
func (a KeyAction) String() string {
	switch a {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return fmt.Sprintf("KeyAction(%d)", int(a))
	}
}

// KeyEvent is a keyboard event delivered to a focused window.
type KeyEvent struct {
	char  int32
	flags int32
	vkey  int32
}

// Key returns the virtual key. Codes this package does not know yield an
// *xputil.UnmatchedCodeError.
func (e KeyEvent) Key() (Key, error) {
	return KeyFromCode(e.vkey)
}

// Action returns whether the key went down or up. Flags with neither bit
// set yield an *xputil.UnmatchedCodeError.
func (e KeyEvent) Action() (KeyAction, error) {
	switch {
	case e.flags&flagDown != 0:
		return Press, nil
	case e.flags&flagUp != 0:
		return Release, nil
	}
	return 0, xputil.Unmatched("key flags", e.flags)
}

// Char returns the printable ASCII character of the key, if it has one.
// Tab and space count as printable.
func (e KeyEvent) Char() (rune, bool) {
	c := rune(uint8(e.char))
	if c == '\t' || (c >= ' ' && c <= '~') {
		return c, true
	}
	return 0, false
}

// Shift reports whether a shift key was held.
func (e KeyEvent) Shift() bool { return e.flags&flagShift != 0 }

// Option reports whether the option or alt key was held.
func (e KeyEvent) Option() bool { return e.flags&flagOption != 0 }

// Control reports whether the control key was held.
func (e KeyEvent) Control() bool { return e.flags&flagControl != 0 }
