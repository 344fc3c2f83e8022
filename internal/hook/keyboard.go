package hook

import (
	"fmt"
	"log"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
)

// keyHook регистрация клавиатурного аккорда через x/hotkey.
type keyHook struct {
	hk     *hotkey.Hotkey
	stopCh chan struct{}
}

// hookKeyboard регистрирует клавиатурный аккорд через x/hotkey.
// Вызывается без m.mu.
func (m *Manager) hookKeyboard(sc *shortcut) error {
	mods, key, err := splitChord(sc)
	if err != nil {
		return err
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("регистрация %q: %w", sc.chord, err)
	}

	kh := &keyHook{hk: hk, stopCh: make(chan struct{})}

	m.mu.Lock()
	m.unhookLocked(sc.id)
	m.hooks[sc.id] = kh
	sc.hooked = true
	m.mu.Unlock()

	log.Printf("Горячая клавиша зарегистрирована: %s = %s", sc.id, sc.chord)
	go m.listen(sc.id, kh)
	return nil
}

// unhookLocked снимает регистрацию x/hotkey. Вызывается под m.mu.
func (m *Manager) unhookLocked(id string) {
	kh, ok := m.hooks[id]
	if !ok {
		return
	}
	delete(m.hooks, id)
	close(kh.stopCh)

	// Отменяем регистрацию в горутине с таймаутом
	done := make(chan struct{})
	go func() {
		kh.hk.Unregister()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		log.Printf("Hotkey unregister timeout: %s", id)
	}
}

func (m *Manager) listen(id string, kh *keyHook) {
	var lastKeydown time.Time
	const debounceInterval = 300 * time.Millisecond // Защита от key repeat

	for {
		select {
		case <-kh.stopCh:
			return
		case _, ok := <-kh.hk.Keydown():
			if !ok {
				return
			}
			now := time.Now()
			if now.Sub(lastKeydown) < debounceInterval {
				continue
			}
			lastKeydown = now
			m.trigger(id, true)
		case _, ok := <-kh.hk.Keyup():
			if !ok {
				return
			}
			m.trigger(id, false)
		}
	}
}

// splitChord раскладывает аккорд на модификаторы и основную клавишу.
func splitChord(sc *shortcut) ([]hotkey.Modifier, hotkey.Key, error) {
	var mods []hotkey.Modifier
	var key hotkey.Key
	haveKey := false

	for t := range sc.tokens {
		if mod, ok := modifierMap[t]; ok {
			mods = append(mods, mod)
			continue
		}
		k, ok := keyMap[t]
		if !ok {
			return nil, 0, fmt.Errorf("клавиша %q не поддерживается x/hotkey", t)
		}
		if haveKey {
			return nil, 0, fmt.Errorf("аккорд %q содержит больше одной основной клавиши", sc.chord)
		}
		key = k
		haveKey = true
	}
	if !haveKey {
		return nil, 0, fmt.Errorf("аккорд %q состоит из одних модификаторов", sc.chord)
	}
	return mods, key, nil
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// modifierMap определён в platform-specific файлах:
// - modifiers_linux.go
// - modifiers_darwin.go
// - modifiers_windows.go

// keyMap маппинг токена аккорда -> hotkey.Key
var keyMap = map[string]hotkey.Key{
	"space": hotkey.KeySpace,
	"enter": hotkey.KeyReturn,
	"tab":   hotkey.KeyTab,
	"a":     hotkey.KeyA,
	"b":     hotkey.KeyB,
	"c":     hotkey.KeyC,
	"d":     hotkey.KeyD,
	"e":     hotkey.KeyE,
	"f":     hotkey.KeyF,
	"g":     hotkey.KeyG,
	"h":     hotkey.KeyH,
	"i":     hotkey.KeyI,
	"j":     hotkey.KeyJ,
	"k":     hotkey.KeyK,
	"l":     hotkey.KeyL,
	"m":     hotkey.KeyM,
	"n":     hotkey.KeyN,
	"o":     hotkey.KeyO,
	"p":     hotkey.KeyP,
	"q":     hotkey.KeyQ,
	"r":     hotkey.KeyR,
	"s":     hotkey.KeyS,
	"t":     hotkey.KeyT,
	"u":     hotkey.KeyU,
	"v":     hotkey.KeyV,
	"w":     hotkey.KeyW,
	"x":     hotkey.KeyX,
	"y":     hotkey.KeyY,
	"z":     hotkey.KeyZ,
	"f1":    hotkey.KeyF1,
	"f2":    hotkey.KeyF2,
	"f3":    hotkey.KeyF3,
	"f4":    hotkey.KeyF4,
	"f5":    hotkey.KeyF5,
	"f6":    hotkey.KeyF6,
	"f7":    hotkey.KeyF7,
	"f8":    hotkey.KeyF8,
	"f9":    hotkey.KeyF9,
	"f10":   hotkey.KeyF10,
	"f11":   hotkey.KeyF11,
	"f12":   hotkey.KeyF12,
}
