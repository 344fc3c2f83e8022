//go:build windows

package hook

import (
	"golang.design/x/hotkey"
)

// modifierMap маппинг токена модификатора -> hotkey.Modifier для Windows
var modifierMap = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.ModAlt,
	"super": hotkey.ModWin,
}
