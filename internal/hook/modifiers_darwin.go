//go:build darwin

package hook

import (
	"golang.design/x/hotkey"
)

// modifierMap маппинг токена модификатора -> hotkey.Modifier для macOS.
// Аккорды, сохранённые на других ОС, используют alt/super.
var modifierMap = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"option":  hotkey.ModOption,
	"command": hotkey.ModCmd,
	"alt":     hotkey.ModOption,
	"super":   hotkey.ModCmd,
}
