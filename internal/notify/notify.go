// Package notify предоставляет системные уведомления.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"murmur/internal/config"
)

const appName = "Murmur"

// Notifier отправляет системные уведомления. Включённость читается из
// конфигурации при каждом вызове, поэтому переключатель в настройках
// действует сразу.
type Notifier struct {
	store *config.Store
}

// New создаёт новый Notifier.
func New(store *config.Store) *Notifier {
	return &Notifier{store: store}
}

// Recording показывает уведомление о начале записи.
func (n *Notifier) Recording() {
	n.notify("Запись", "Говорите...")
}

// Transcribing показывает уведомление об обработке.
func (n *Notifier) Transcribing() {
	n.notify("Обработка", "Распознаём речь...")
}

// Done показывает уведомление с распознанным текстом.
func (n *Notifier) Done(text string) {
	if len(text) > 100 {
		text = text[:100] + "..."
	}
	n.notify("Готово", text)
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify("Ошибка", msg)
}

// UpdateFailed сообщает, что новое сочетание не удалось применить.
func (n *Notifier) UpdateFailed(id string, err error) {
	n.notify("Сочетание не применено",
		fmt.Sprintf("Не удалось назначить %q: %v", id, err))
}

// RollbackFailed сообщает, что прежнее сочетание не удалось вернуть.
// Отдельное уведомление: без него привязка молча осталась бы нерабочей.
func (n *Notifier) RollbackFailed(id string, err error) {
	n.notify("Сочетание потеряно",
		fmt.Sprintf("Не удалось вернуть прежнее сочетание для %q: %v", id, err))
}

func (n *Notifier) notify(title, message string) {
	if n.store != nil && !n.store.NotificationsEnabled() {
		return
	}
	// Игнорируем ошибки уведомлений - они не критичны
	_ = beeep.Notify(appName+": "+title, message, "")
}
