// Package hook реализует глобальный менеджер шорткатов: регистрацию
// аккордов, suspend/resume на время редактирования привязки и
// сопоставление сырых событий ввода с зарегистрированными аккордами.
//
// Аккорды только из клавиш регистрируются через golang.design/x/hotkey.
// Аккорды с кнопками мыши (и клавиатурные комбинации, которые x/hotkey
// не умеет) сопоставляются вручную по множеству нажатых токенов.
package hook

import (
	"fmt"
	"log"
	"sync"

	"murmur/internal/config"
	"murmur/internal/input"
)

// RawEvent сырое событие ввода от платформенного слушателя или от UI.
type RawEvent struct {
	Key     input.KeyEvent
	Button  int
	IsMouse bool
	Pressed bool
}

// shortcut разобранный аккорд одной привязки.
type shortcut struct {
	id            string
	chord         string
	tokens        map[string]struct{}
	requiresMouse bool
	hooked        bool // обслуживается x/hotkey, сырое сопоставление не нужно
}

func parseShortcut(id, chord string) (*shortcut, error) {
	tokens := input.ParseChord(chord)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("пустой аккорд для привязки %s", id)
	}
	sc := &shortcut{
		id:     id,
		chord:  chord,
		tokens: make(map[string]struct{}, len(tokens)),
	}
	for _, t := range tokens {
		if input.IsMouseButton(t) {
			sc.requiresMouse = true
		}
		sc.tokens[t] = struct{}{}
	}
	return sc, nil
}

// matched проверяет что все токены аккорда сейчас нажаты.
func (s *shortcut) matched(pressed map[string]struct{}) bool {
	for t := range s.tokens {
		if _, ok := pressed[t]; !ok {
			return false
		}
	}
	return true
}

// Manager управляет зарегистрированными шорткатами.
type Manager struct {
	mu         sync.RWMutex
	store      *config.Store
	registered map[string]*shortcut
	suspended  map[string]struct{}
	active     map[string]struct{} // сработавшие и ещё не отпущенные
	pressed    map[string]struct{}
	hooks      map[string]*keyHook
	hookFn     func(*shortcut) error // подменяется в тестах
	onTrigger  func(id string, pressed bool)
	capture    func(RawEvent)
}

// NewManager создаёт менеджер. Привязки из store регистрируются отдельно
// через RegisterAll после инициализации GUI.
func NewManager(store *config.Store) *Manager {
	m := &Manager{
		store:      store,
		registered: make(map[string]*shortcut),
		suspended:  make(map[string]struct{}),
		active:     make(map[string]struct{}),
		pressed:    make(map[string]struct{}),
		hooks:      make(map[string]*keyHook),
	}
	m.hookFn = m.hookKeyboard
	// Любая запись аккорда в хранилище перерегистрирует живую привязку.
	store.OnBindingChange(func(b config.Binding) {
		if err := m.Register(b.ID, b.Current); err != nil {
			log.Printf("Ошибка перерегистрации привязки %s: %v", b.ID, err)
		}
	})
	return m
}

// OnTrigger устанавливает обработчик срабатывания привязки.
// pressed=true на нажатии аккорда, false на отпускании.
func (m *Manager) OnTrigger(fn func(id string, pressed bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTrigger = fn
}

// RegisterAll регистрирует все привязки из хранилища.
func (m *Manager) RegisterAll() {
	for _, b := range m.store.Bindings() {
		if b.Current == "" {
			continue
		}
		if err := m.Register(b.ID, b.Current); err != nil {
			log.Printf("Ошибка регистрации привязки %s: %v", b.ID, err)
		}
	}
}

// Register регистрирует аккорд для привязки. Предыдущая регистрация
// с тем же ID заменяется.
func (m *Manager) Register(id, chord string) error {
	sc, err := parseShortcut(id, chord)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.unhookLocked(id)
	m.registered[id] = sc
	delete(m.active, id)
	m.mu.Unlock()

	if !sc.requiresMouse {
		// Клавиатурные аккорды идут через x/hotkey; неподдерживаемые
		// комбинации остаются на сыром сопоставлении.
		if err := m.hookFn(sc); err != nil {
			log.Printf("Привязка %s: x/hotkey недоступен (%v), остаётся сырое сопоставление", id, err)
		}
	}
	return nil
}

// Unregister снимает регистрацию привязки.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unhookLocked(id)
	delete(m.registered, id)
	delete(m.suspended, id)
	delete(m.active, id)
}

// Suspend временно отключает привязку (на время записи нового аккорда),
// чтобы редактируемый шорткат не срабатывал от собственных клавиш.
func (m *Manager) Suspend(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.registered[id]; !ok {
		return fmt.Errorf("привязка не зарегистрирована: %s", id)
	}
	m.suspended[id] = struct{}{}
	return nil
}

// Resume включает привязку обратно. Вызывается безусловно на каждом
// выходе из сессии записи, даже если Suspend не удался.
func (m *Manager) Resume(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.registered[id]; !ok {
		return fmt.Errorf("привязка не зарегистрирована: %s", id)
	}
	delete(m.suspended, id)
	delete(m.active, id)
	return nil
}

// IsSuspended проверяет, приостановлена ли привязка.
func (m *Manager) IsSuspended(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.suspended[id]
	return ok
}

// IsRegistered проверяет, зарегистрирована ли привязка.
func (m *Manager) IsRegistered(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.registered[id]
	return ok
}

// UpdateBinding сохраняет новый аккорд привязки. Перерегистрацию
// выполняет callback хранилища.
func (m *Manager) UpdateBinding(id, chord string) error {
	if _, err := parseShortcut(id, chord); err != nil {
		return err
	}
	return m.store.SetBindingChord(id, chord)
}

// ResetBinding возвращает привязку к дефолтному аккорду.
func (m *Manager) ResetBinding(id string) (config.Binding, error) {
	return m.store.ResetBinding(id)
}

// SetCapture перенаправляет сырые события в fn вместо сопоставления.
// Используется рекордером на время записи аккорда.
func (m *Manager) SetCapture(fn func(RawEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capture = fn
}

// ClearCapture возвращает обычное сопоставление событий.
func (m *Manager) ClearCapture() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capture = nil
}

// HandleKey обрабатывает сырое клавиатурное событие.
func (m *Manager) HandleKey(e input.KeyEvent, pressed bool) {
	m.mu.RLock()
	capture := m.capture
	m.mu.RUnlock()
	if capture != nil {
		capture(RawEvent{Key: e, Pressed: pressed})
		return
	}
	if pressed && e.Repeat {
		return
	}
	m.handleToken(input.NormalizeKeyEvent(e, input.CurrentOS()), pressed)
}

// HandleMouse обрабатывает сырое событие кнопки мыши.
func (m *Manager) HandleMouse(button int, pressed bool) {
	m.mu.RLock()
	capture := m.capture
	m.mu.RUnlock()
	if capture != nil {
		capture(RawEvent{Button: button, IsMouse: true, Pressed: pressed})
		return
	}
	token, ok := input.MouseButtonToken(button)
	if !ok {
		return
	}
	m.handleToken(token, pressed)
}

func (m *Manager) handleToken(token string, pressed bool) {
	var fire []string
	var firePressed bool

	m.mu.Lock()
	if pressed {
		m.pressed[token] = struct{}{}
		firePressed = true
		for id, sc := range m.registered {
			if sc.hooked {
				continue
			}
			if _, susp := m.suspended[id]; susp {
				continue
			}
			if _, act := m.active[id]; act {
				continue
			}
			if sc.matched(m.pressed) {
				m.active[id] = struct{}{}
				fire = append(fire, id)
			}
		}
	} else {
		before := make(map[string]struct{}, len(m.pressed))
		for t := range m.pressed {
			before[t] = struct{}{}
		}
		delete(m.pressed, token)
		for id := range m.active {
			sc, ok := m.registered[id]
			if !ok {
				delete(m.active, id)
				continue
			}
			// Сработал раньше, перестал совпадать сейчас
			if sc.matched(before) && !sc.matched(m.pressed) {
				delete(m.active, id)
				fire = append(fire, id)
			}
		}
	}
	cb := m.onTrigger
	m.mu.Unlock()

	if cb == nil {
		return
	}
	for _, id := range fire {
		cb(id, firePressed)
	}
}

// trigger вызывается слушателем x/hotkey.
func (m *Manager) trigger(id string, pressed bool) {
	m.mu.RLock()
	_, susp := m.suspended[id]
	cb := m.onTrigger
	m.mu.RUnlock()

	if susp || cb == nil {
		return
	}
	cb(id, pressed)
}

// Close снимает все регистрации.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.hooks {
		m.unhookLocked(id)
	}
	m.registered = make(map[string]*shortcut)
}
