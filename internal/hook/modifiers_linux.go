//go:build linux

package hook

import (
	"golang.design/x/hotkey"
)

// modifierMap маппинг токена модификатора -> hotkey.Modifier для Linux
var modifierMap = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1, // Alt = Mod1 на X11
	"super": hotkey.Mod4, // Super/Win = Mod4 на X11
}
