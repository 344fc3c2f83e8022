// Package dialog предоставляет GUI диалоги поверх zenity.
package dialog

import (
	"fmt"

	"github.com/ncruces/zenity"
)

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title))
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}

// ShowRollbackFailed показывает диалог о потерянной привязке. Уведомления
// легко пропустить, а здесь пользователь должен явно увидеть, что
// сочетание нужно назначить заново.
func ShowRollbackFailed(name string, err error) {
	zenity.Error(
		fmt.Sprintf("Не удалось вернуть прежнее сочетание для %q: %v\n\nНазначьте сочетание заново в настройках.", name, err),
		zenity.Title("Murmur: сочетание потеряно"),
	)
}
