// Package input normalizes raw keyboard and mouse events into canonical
// chord tokens.
//
// A token is a lowercase string naming one physical input: "ctrl", "a",
// "f5", "mouse4". Tokens are platform-aware (the alt key is "option" on
// macOS, the meta key is "command" on macOS and "super" elsewhere) and
// left/right variants of a modifier collapse to one name. A chord is a
// "+"-joined sequence of tokens in capture order.
package input

import (
	"fmt"
	"runtime"
	"strings"
	"unicode"
)

// OS identifies the platform for key naming.
type OS string

const (
	OSDarwin  OS = "darwin"
	OSWindows OS = "windows"
	OSLinux   OS = "linux"
)

// CurrentOS returns the OS of the running binary.
func CurrentOS() OS {
	return OS(runtime.GOOS)
}

// KeyEvent is a raw keyboard event as delivered by a platform hook or a
// UI toolkit.
type KeyEvent struct {
	Code   string // physical key code, stable across layouts ("ControlLeft", "KeyA")
	Key    string // logical key value, used when Code is empty
	Raw    int    // numeric code for events with no usable name
	Repeat bool   // auto-repeat; repeated presses must not re-enter a chord
}

// modifierCodes collapses left/right physical codes to a canonical
// modifier name, before platform naming is applied.
var modifierCodes = map[string]string{
	"ControlLeft":  "ctrl",
	"ControlRight": "ctrl",
	"ShiftLeft":    "shift",
	"ShiftRight":   "shift",
	"AltLeft":      "alt",
	"AltRight":     "alt",
	"MetaLeft":     "meta",
	"MetaRight":    "meta",
	"OSLeft":       "meta",
	"OSRight":      "meta",
}

type modOS struct {
	mod string
	os  OS
}

// platformModifiers overrides the canonical modifier name per platform.
// Absent entries fall through to the defaults below.
var platformModifiers = map[modOS]string{
	{"alt", OSDarwin}:  "option",
	{"meta", OSDarwin}: "command",
}

func modifierToken(mod string, os OS) string {
	if name, ok := platformModifiers[modOS{mod, os}]; ok {
		return name
	}
	if mod == "meta" {
		return "super"
	}
	return mod
}

// namedKeys maps non-modifier physical codes with well-known names.
var namedKeys = map[string]string{
	"Enter":       "enter",
	"Tab":         "tab",
	"Space":       "space",
	"Escape":      "esc",
	"Backspace":   "backspace",
	"Delete":      "delete",
	"Insert":      "insert",
	"Home":        "home",
	"End":         "end",
	"PageUp":      "pageup",
	"PageDown":    "pagedown",
	"ArrowUp":     "up",
	"ArrowDown":   "down",
	"ArrowLeft":   "left",
	"ArrowRight":  "right",
	"CapsLock":    "capslock",
	"NumLock":     "numlock",
	"ScrollLock":  "scrolllock",
	"PrintScreen": "printscreen",
	"Pause":       "pause",
	"ContextMenu": "menu",
}

// punctuationCodes maps physical codes to the printed symbol.
var punctuationCodes = map[string]string{
	"Minus":         "-",
	"Equal":         "=",
	"BracketLeft":   "[",
	"BracketRight":  "]",
	"Semicolon":     ";",
	"Quote":         "'",
	"Backslash":     "\\",
	"IntlBackslash": "\\",
	"Comma":         ",",
	"Period":        ".",
	"Slash":         "/",
	"Backquote":     "`",
}

// NormalizeKeyEvent maps a raw key event to its canonical token. The
// physical code is resolved first; the logical key value is the fallback,
// and an event carrying neither yields "unknown-<raw code>".
func NormalizeKeyEvent(e KeyEvent, os OS) string {
	if e.Code != "" {
		return normalizeCode(e.Code, os)
	}
	if e.Key != "" {
		return NormalizeKey(strings.ToLower(strings.TrimSpace(e.Key)))
	}
	return fmt.Sprintf("unknown-%d", e.Raw)
}

func normalizeCode(code string, os OS) string {
	if isFunctionKey(code) {
		return strings.ToLower(code)
	}
	if rest, ok := strings.CutPrefix(code, "Key"); ok && len(rest) == 1 && rest[0] >= 'A' && rest[0] <= 'Z' {
		return strings.ToLower(rest)
	}
	if rest, ok := strings.CutPrefix(code, "Digit"); ok && isDigits(rest) {
		return rest
	}
	if rest, ok := strings.CutPrefix(code, "Numpad"); ok && isDigits(rest) {
		return "numpad " + rest
	}
	if mod, ok := modifierCodes[code]; ok {
		return modifierToken(mod, os)
	}
	if name, ok := namedKeys[code]; ok {
		return name
	}
	if sym, ok := punctuationCodes[code]; ok {
		return sym
	}
	return splitCamel(code)
}

// NormalizeKey collapses a logical key name to its bare form by stripping
// a literal "left "/"right " side prefix.
func NormalizeKey(token string) string {
	if rest, ok := strings.CutPrefix(token, "left "); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(token, "right "); ok {
		return rest
	}
	return token
}

func isFunctionKey(code string) bool {
	if len(code) < 2 || len(code) > 3 || code[0] != 'F' {
		return false
	}
	return isDigits(code[1:])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitCamel lowercases a code, inserting a space at each camel-case
// boundary: "MediaPlayPause" -> "media play pause".
func splitCamel(code string) string {
	var b strings.Builder
	for i, r := range code {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
