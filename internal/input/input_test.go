package input

import (
	"reflect"
	"testing"
)

func TestNormalizeKeyEventCodes(t *testing.T) {
	tests := []struct {
		code string
		os   OS
		want string
	}{
		{"F1", OSLinux, "f1"},
		{"F12", OSWindows, "f12"},
		{"KeyA", OSLinux, "a"},
		{"KeyZ", OSDarwin, "z"},
		{"Digit1", OSLinux, "1"},
		{"Digit0", OSWindows, "0"},
		{"Numpad4", OSLinux, "numpad 4"},
		{"Numpad0", OSDarwin, "numpad 0"},
		{"Enter", OSLinux, "enter"},
		{"Escape", OSLinux, "esc"},
		{"Tab", OSWindows, "tab"},
		{"Space", OSLinux, "space"},
		{"ArrowUp", OSLinux, "up"},
		{"ArrowLeft", OSDarwin, "left"},
		{"PageDown", OSLinux, "pagedown"},
		{"Minus", OSLinux, "-"},
		{"BracketLeft", OSWindows, "["},
		{"Semicolon", OSLinux, ";"},
		{"Backquote", OSLinux, "`"},
		// anything unclassified splits on camel-case boundaries
		{"MediaPlayPause", OSLinux, "media play pause"},
		{"NumpadAdd", OSLinux, "numpad add"},
		{"AudioVolumeUp", OSWindows, "audio volume up"},
	}

	for _, tt := range tests {
		got := NormalizeKeyEvent(KeyEvent{Code: tt.code}, tt.os)
		if got != tt.want {
			t.Errorf("NormalizeKeyEvent(%q, %s) = %q, want %q", tt.code, tt.os, got, tt.want)
		}
	}
}

func TestNormalizeModifierSidesCollapse(t *testing.T) {
	pairs := [][2]string{
		{"ShiftLeft", "ShiftRight"},
		{"ControlLeft", "ControlRight"},
		{"AltLeft", "AltRight"},
		{"MetaLeft", "MetaRight"},
	}

	for _, os := range []OS{OSDarwin, OSWindows, OSLinux} {
		for _, pair := range pairs {
			left := NormalizeKeyEvent(KeyEvent{Code: pair[0]}, os)
			right := NormalizeKeyEvent(KeyEvent{Code: pair[1]}, os)
			if left != right {
				t.Errorf("%s: %q -> %q but %q -> %q", os, pair[0], left, pair[1], right)
			}
		}
	}
}

func TestNormalizeModifierPlatformNames(t *testing.T) {
	tests := []struct {
		code string
		os   OS
		want string
	}{
		{"ControlLeft", OSDarwin, "ctrl"},
		{"ControlLeft", OSWindows, "ctrl"},
		{"ShiftRight", OSLinux, "shift"},
		{"AltLeft", OSDarwin, "option"},
		{"AltLeft", OSLinux, "alt"},
		{"AltRight", OSWindows, "alt"},
		{"MetaLeft", OSDarwin, "command"},
		{"MetaLeft", OSWindows, "super"},
		{"MetaRight", OSLinux, "super"},
		{"OSLeft", OSLinux, "super"},
		{"OSRight", OSDarwin, "command"},
	}

	for _, tt := range tests {
		got := NormalizeKeyEvent(KeyEvent{Code: tt.code}, tt.os)
		if got != tt.want {
			t.Errorf("NormalizeKeyEvent(%q, %s) = %q, want %q", tt.code, tt.os, got, tt.want)
		}
	}
}

func TestNormalizeKeyEventFallbacks(t *testing.T) {
	// logical key value when the physical code is absent
	if got := NormalizeKeyEvent(KeyEvent{Key: "Ctrl"}, OSLinux); got != "ctrl" {
		t.Errorf("logical fallback = %q, want %q", got, "ctrl")
	}
	if got := NormalizeKeyEvent(KeyEvent{Key: "left shift"}, OSLinux); got != "shift" {
		t.Errorf("logical fallback = %q, want %q", got, "shift")
	}
	// neither code nor key nor numeric code
	if got := NormalizeKeyEvent(KeyEvent{}, OSLinux); got != "unknown-0" {
		t.Errorf("empty event = %q, want %q", got, "unknown-0")
	}
	if got := NormalizeKeyEvent(KeyEvent{Raw: 173}, OSLinux); got != "unknown-173" {
		t.Errorf("raw-only event = %q, want %q", got, "unknown-173")
	}
}

func TestNormalizeKeyStripsSides(t *testing.T) {
	tests := []struct{ in, want string }{
		{"left ctrl", "ctrl"},
		{"right shift", "shift"},
		{"left option", "option"},
		{"ctrl", "ctrl"},
		{"a", "a"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMouseButtonToken(t *testing.T) {
	tests := []struct {
		button int
		want   string
		ok     bool
	}{
		{-1, "", false},
		{0, "mouseleft", true},
		{1, "mousemiddle", true},
		{2, "mouseright", true},
		{3, "mouse4", true},
		{4, "mouse5", true},
		{7, "mouse8", true},
	}
	for _, tt := range tests {
		got, ok := MouseButtonToken(tt.button)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MouseButtonToken(%d) = %q, %v, want %q, %v", tt.button, got, ok, tt.want, tt.ok)
		}
	}

	for b := 0; b < ReservedButtons; b++ {
		if !ReservedMouseButton(b) {
			t.Errorf("ReservedMouseButton(%d) = false, want true", b)
		}
	}
	if ReservedMouseButton(3) {
		t.Error("ReservedMouseButton(3) = true, want false")
	}
}

func TestIsMouseButton(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"mouseleft", true},
		{"mouseright", true},
		{"mousemiddle", true},
		{"mouse4", true},
		{"mouse12", true},
		{"mouse", false},
		{"mousepad", false},
		{"ctrl", false},
		{"a", false},
	}
	for _, tt := range tests {
		if got := IsMouseButton(tt.token); got != tt.want {
			t.Errorf("IsMouseButton(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestFormatInputDisplay(t *testing.T) {
	tests := []struct{ token, want string }{
		{"mouseleft", "Left Click"},
		{"mouseright", "Right Click"},
		{"mousemiddle", "Middle Click"},
		{"mouse4", "Mouse 4"},
		{"mouse11", "Mouse 11"},
		{"ctrl", "Ctrl"},
		{"shift", "Shift"},
		{"a", "A"},
		{"numpad 4", "Numpad 4"},
		{"media play pause", "Media Play Pause"},
		{"-", "-"},
	}
	for _, tt := range tests {
		if got := FormatInputDisplay(tt.token); got != tt.want {
			t.Errorf("FormatInputDisplay(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestChordRoundTrip(t *testing.T) {
	got := ParseChord("Ctrl+Shift+A")
	want := []string{"ctrl", "shift", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseChord = %v, want %v", got, want)
	}

	if s := ComposeChord(want); s != "ctrl+shift+a" {
		t.Errorf("ComposeChord = %q, want %q", s, "ctrl+shift+a")
	}
}

func TestParseChordDedupesAndTrims(t *testing.T) {
	got := ParseChord(" ctrl + ctrl +a++shift ")
	want := []string{"ctrl", "a", "shift"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseChord = %v, want %v", got, want)
	}
}

func TestFormatChordDisplayIdempotent(t *testing.T) {
	chords := []string{
		"ctrl+shift+a",
		"ctrl+mouse4",
		"numpad 4+option",
		"super+space",
	}
	for _, c := range chords {
		once := FormatChordDisplay(c)
		twice := FormatChordDisplay(once)
		if once != twice {
			t.Errorf("FormatChordDisplay(%q): %q -> %q, not stable", c, once, twice)
		}
	}

	if got := FormatChordDisplay("ctrl+mouse4"); got != "Ctrl + Mouse 4" {
		t.Errorf("FormatChordDisplay = %q, want %q", got, "Ctrl + Mouse 4")
	}
}

func TestChordContainsMouse(t *testing.T) {
	if !ChordContainsMouse("ctrl+mouse4") {
		t.Error("ctrl+mouse4 should contain a mouse button")
	}
	if ChordContainsMouse("ctrl+shift+a") {
		t.Error("ctrl+shift+a should not contain a mouse button")
	}
}
