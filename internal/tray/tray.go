// Package tray предоставляет системный трей с меню.
package tray

import (
	"github.com/getlantern/systray"

	"murmur/embedded"
)

// State представляет состояние приложения для отображения в трее.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateTranscribing
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnNotificationsToggle func() bool
	OnSettingsClick       func()
	OnModelsClick         func()
	OnQuit                func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks   Callbacks
	notifyOn    bool
	status      *systray.MenuItem
	notifyItem  *systray.MenuItem
	settingsBtn *systray.MenuItem
	modelsBtn   *systray.MenuItem
	quitBtn     *systray.MenuItem
}

// New создаёт новый Tray. notifyOn задаёт начальное состояние галочки
// уведомлений.
func New(callbacks Callbacks, notifyOn bool) *Tray {
	return &Tray{
		callbacks: callbacks,
		notifyOn:  notifyOn,
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(embedded.IconIdle)
	systray.SetTitle("Murmur")
	systray.SetTooltip("Murmur - диктовка голосом")

	// Статус
	t.status = systray.AddMenuItem("Готов", "")
	t.status.Disable()

	systray.AddSeparator()

	// Уведомления
	t.notifyItem = systray.AddMenuItemCheckbox("Уведомления", "Показывать системные уведомления", t.notifyOn)

	// Настройки
	t.settingsBtn = systray.AddMenuItem("Настройки...", "Открыть окно настроек")

	// Выбор модели
	t.modelsBtn = systray.AddMenuItem("Выбрать модель...", "Открыть выбор модели распознавания")

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem("Выход", "Закрыть приложение")

	// Обработка событий меню
	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		// Уведомления
		case <-t.notifyItem.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				enabled := t.callbacks.OnNotificationsToggle()
				if enabled {
					t.notifyItem.Check()
				} else {
					t.notifyItem.Uncheck()
				}
			}

		// Настройки
		case <-t.settingsBtn.ClickedCh:
			if t.callbacks.OnSettingsClick != nil {
				t.callbacks.OnSettingsClick()
			}

		// Выбор модели
		case <-t.modelsBtn.ClickedCh:
			if t.callbacks.OnModelsClick != nil {
				t.callbacks.OnModelsClick()
			}

		// Выход
		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
		}
	}
}

// SetState устанавливает состояние приложения и обновляет иконку.
func (t *Tray) SetState(state State) {
	switch state {
	case StateIdle:
		systray.SetIcon(embedded.IconIdle)
		systray.SetTooltip("Murmur - готов")
		if t.status != nil {
			t.status.SetTitle("Готов")
		}
	case StateRecording:
		systray.SetIcon(embedded.IconRecording)
		systray.SetTooltip("Murmur - запись")
		if t.status != nil {
			t.status.SetTitle("Запись...")
		}
	case StateTranscribing:
		systray.SetIcon(embedded.IconTranscribing)
		systray.SetTooltip("Murmur - распознавание")
		if t.status != nil {
			t.status.SetTitle("Распознавание...")
		}
	}
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}
