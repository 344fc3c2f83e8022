// Package app содержит основную логику приложения.
package app

import (
	"log"
	"sync"
	"time"

	"murmur/internal/bridge"
	"murmur/internal/config"
	"murmur/internal/dialog"
	"murmur/internal/hook"
	"murmur/internal/models"
	"murmur/internal/notify"
	"murmur/internal/onboarding"
	"murmur/internal/overlay"
	"murmur/internal/recorder"
	"murmur/internal/settings"
	"murmur/internal/tray"
)

// opState - текущая операция диктовки с точки зрения интерфейса.
type opState int

const (
	opIdle opState = iota
	opRecording
	opTranscribing
)

// App представляет главное приложение.
type App struct {
	mu           sync.Mutex
	config       *config.Store
	modelManager *models.Manager
	bus          *bridge.Bus
	hooks        *hook.Manager
	rec          *recorder.Recorder
	notifier     *notify.Notifier
	tray         *tray.Tray
	overlayWin   *overlay.Window
	settingsWin  *settings.Window
	onboardWin   *onboarding.Window
	state        opState
	recordStart  time.Time
}

// failureSurface дополняет уведомления: потеря привязки после неудачного
// отката показывается ещё и диалогом, чтобы её нельзя было пропустить.
type failureSurface struct {
	*notify.Notifier
	config *config.Store
}

func (f *failureSurface) RollbackFailed(id string, err error) {
	f.Notifier.RollbackFailed(id, err)
	name := id
	if b, ok := f.config.Binding(id); ok {
		name = b.Name
	}
	go dialog.ShowRollbackFailed(name, err)
}

// New создаёт новое приложение.
func New() (*App, error) {
	cfg := config.New()

	modelManager, err := models.NewManager()
	if err != nil {
		return nil, err
	}

	bus := bridge.New()
	hooks := hook.NewManager(cfg)
	notifier := notify.New(cfg)
	rec := recorder.New(hooks, &failureSurface{Notifier: notifier, config: cfg})

	app := &App{
		config:       cfg,
		modelManager: modelManager,
		bus:          bus,
		hooks:        hooks,
		rec:          rec,
		notifier:     notifier,
	}

	// После любого завершения захвата сочетания возвращаем глобальный
	// хук в обычный режим.
	rec.OnDone(func(id, chord string, committed bool) {
		hooks.ClearCapture()
		if committed {
			log.Printf("Привязка %s: %s", id, chord)
		}
	})

	// Оверлей подписывается на шину при создании.
	app.overlayWin = overlay.New(overlay.DefaultConfig(), bus)
	app.overlayWin.OnCancel(app.cancelOperation)

	app.settingsWin = settings.New(modelManager, cfg, hooks, rec, bus)
	app.onboardWin = onboarding.New(modelManager, cfg, bus)
	app.onboardWin.OnDone(func() {
		log.Printf("Модель выбрана: %s", cfg.ModelID())
	})

	// Срабатывания глобальных привязок.
	hooks.OnTrigger(func(id string, pressed bool) {
		switch id {
		case config.BindingTranscribe:
			app.onTranscribeTrigger(pressed)
		case config.BindingCancel:
			if pressed {
				app.cancelOperation()
			}
		}
	})

	// Системный трей с обработчиками
	app.tray = tray.New(tray.Callbacks{
		OnNotificationsToggle: func() bool {
			return cfg.ToggleNotifications()
		},
		OnSettingsClick: func() {
			app.settingsWin.Show()
		},
		OnModelsClick: func() {
			app.onboardWin.Show()
		},
		OnQuit: func() {
			app.Close()
		},
	}, cfg.NotificationsEnabled())

	return app, nil
}

// Run запускает приложение. Блокирует до выхода из трея.
func (a *App) Run() {
	a.tray.Run(func() {
		// Регистрируем привязки после инициализации трея
		a.hooks.RegisterAll()

		// Первый запуск: ни одной модели не скачано
		if !a.modelManager.HasAnyDownloaded() {
			a.onboardWin.Show()
		}
	})
}

// onTranscribeTrigger обрабатывает привязку диктовки. В push-to-talk
// режиме запись идёт пока клавиша удерживается, иначе нажатие
// переключает запись.
func (a *App) onTranscribeTrigger(pressed bool) {
	if a.config.PushToTalk() {
		if pressed {
			a.startRecording()
		} else {
			a.stopRecording()
		}
		return
	}

	// Toggle режим: отпускания игнорируем
	if !pressed {
		return
	}

	a.mu.Lock()
	state := a.state
	a.mu.Unlock()

	switch state {
	case opIdle:
		a.startRecording()
	case opRecording:
		a.stopRecording()
	case opTranscribing:
		// Распознавание уже идёт - ждём завершения или отмены
	}
}

func (a *App) startRecording() {
	a.mu.Lock()
	if a.state != opIdle {
		a.mu.Unlock()
		return
	}
	a.state = opRecording
	a.recordStart = time.Now()
	a.mu.Unlock()

	a.tray.SetState(tray.StateRecording)
	a.notifier.Recording()
	a.bus.ShowOverlay(bridge.StateRecording)
}

func (a *App) stopRecording() {
	a.mu.Lock()
	if a.state != opRecording {
		a.mu.Unlock()
		return
	}
	a.state = opTranscribing
	elapsed := time.Since(a.recordStart)
	a.mu.Unlock()

	log.Printf("Запись остановлена через %s", elapsed.Round(time.Millisecond))
	a.tray.SetState(tray.StateTranscribing)
	a.bus.ShowOverlay(bridge.StateTranscribing)
}

// OperationDone вызывается по завершении распознавания: прячет оверлей
// и возвращает интерфейс в исходное состояние.
func (a *App) OperationDone(text string) {
	a.mu.Lock()
	a.state = opIdle
	a.mu.Unlock()

	a.bus.HideOverlay()
	a.tray.SetState(tray.StateIdle)
	if text != "" {
		a.notifier.Done(text)
	}
}

// cancelOperation прерывает текущую операцию: вызывается привязкой
// отмены и клавишей Escape в оверлее.
func (a *App) cancelOperation() {
	a.mu.Lock()
	if a.state == opIdle {
		a.mu.Unlock()
		return
	}
	a.state = opIdle
	a.mu.Unlock()

	a.bus.HideOverlay()
	a.tray.SetState(tray.StateIdle)
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.cancelOperation()
	a.rec.Cancel()
	a.hooks.Close()
	a.overlayWin.Close()
	a.settingsWin.Hide()
	a.onboardWin.Hide()
}
