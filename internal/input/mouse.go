package input

import (
	"fmt"
	"strings"
)

// Mouse button indices follow the conventional ordering: 0 left, 1 middle,
// 2 right, 3+ extra buttons. The first three are reserved for normal UI
// interaction and are never captured into chords.

// ReservedButtons is the number of low mouse button indices excluded from
// chord capture.
const ReservedButtons = 3

// MouseButtonToken maps a button index to its token. Reserved buttons
// still get a token (for display and parsing); it is the recorder that
// refuses to capture them. A negative index has no token.
func MouseButtonToken(button int) (string, bool) {
	switch {
	case button < 0:
		return "", false
	case button == 0:
		return "mouseleft", true
	case button == 1:
		return "mousemiddle", true
	case button == 2:
		return "mouseright", true
	default:
		return fmt.Sprintf("mouse%d", button+1), true
	}
}

// ReservedMouseButton reports whether the button index is reserved for
// ordinary UI interaction.
func ReservedMouseButton(button int) bool {
	return button >= 0 && button < ReservedButtons
}

// IsMouseButton reports whether a token names a mouse button.
func IsMouseButton(token string) bool {
	switch token {
	case "mouseleft", "mouseright", "mousemiddle":
		return true
	}
	if rest, ok := strings.CutPrefix(token, "mouse"); ok {
		return isDigits(rest)
	}
	return false
}

// mouseNames are the friendly display names for mouse tokens.
var mouseNames = map[string]string{
	"mouseleft":   "Left Click",
	"mouseright":  "Right Click",
	"mousemiddle": "Middle Click",
	"mouse4":      "Mouse 4",
	"mouse5":      "Mouse 5",
}
