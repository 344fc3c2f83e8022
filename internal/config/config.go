// Package config предоставляет key-value настройки приложения и привязки
// горячих клавиш с сохранением в файл.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Имена настроек, используемые панелями.
const (
	SettingNotifications = "notifications"
	SettingPushToTalk    = "push_to_talk"
	SettingAPIKey        = "api_key"
	SettingModelID       = "model_id"
)

// Идентификаторы привязок.
const (
	BindingTranscribe = "transcribe"
	BindingCancel     = "cancel"
)

// Binding хранит одну привязку: идентификатор, имя для UI, текущий и
// дефолтный аккорд. Аккорд - строка токенов через "+", порядок = порядок
// нажатия.
type Binding struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Current     string `json:"current"`
	Default     string `json:"default"`
}

// defaultBindings привязки по умолчанию.
func defaultBindings() []Binding {
	return []Binding{
		{
			ID:          BindingTranscribe,
			Name:        "Transcribe",
			Description: "Start or stop dictation",
			Current:     "ctrl+shift+space",
			Default:     "ctrl+shift+space",
		},
		{
			ID:          BindingCancel,
			Name:        "Cancel",
			Description: "Abort the current operation",
			Current:     "ctrl+alt+x",
			Default:     "ctrl+alt+x",
		},
	}
}

func defaultSettings() map[string]string {
	return map[string]string{
		SettingNotifications: "true",
		SettingPushToTalk:    "false",
		SettingAPIKey:        "",
		SettingModelID:       "",
	}
}

// configData структура для сериализации.
type configData struct {
	Settings map[string]string `json:"settings"`
	Bindings []Binding         `json:"bindings"`
}

// Store хранит настройки приложения.
type Store struct {
	mu              sync.RWMutex
	settings        map[string]string
	bindings        []Binding
	configPath      string
	onBindingChange func(Binding)
}

// New создаёт хранилище, загружая из файла или с настройками по умолчанию.
func New() *Store {
	s := &Store{
		settings: defaultSettings(),
		bindings: defaultBindings(),
	}

	// Файл конфигурации лежит рядом с бинарником
	execPath, err := os.Executable()
	if err == nil {
		execPath, err = filepath.EvalSymlinks(execPath)
		if err == nil {
			s.configPath = filepath.Join(filepath.Dir(execPath), "config.json")
		}
	}

	s.load()
	return s
}

// NewAt создаёт хранилище с явным путём к файлу (тесты).
func NewAt(path string) *Store {
	s := &Store{
		settings:   defaultSettings(),
		bindings:   defaultBindings(),
		configPath: path,
	}
	s.load()
	return s
}

// load загружает конфигурацию из файла.
func (s *Store) load() {
	if s.configPath == "" {
		return
	}

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		return // Файла нет, используем defaults
	}

	var cfg configData
	if err := json.Unmarshal(data, &cfg); err != nil {
		return
	}

	for k, v := range cfg.Settings {
		s.settings[k] = v
	}
	// Сохранённые аккорды накладываются на дефолтный набор привязок:
	// имена и дефолты всегда берутся из кода.
	for i := range s.bindings {
		for _, saved := range cfg.Bindings {
			if saved.ID == s.bindings[i].ID && saved.Current != "" {
				s.bindings[i].Current = saved.Current
			}
		}
	}
}

// save сохраняет конфигурацию в файл.
func (s *Store) save() {
	if s.configPath == "" {
		return
	}

	cfg := configData{
		Settings: s.settings,
		Bindings: s.bindings,
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}

	os.WriteFile(s.configPath, data, 0644)
}

// Get возвращает значение настройки по имени.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.settings[name]
	return v, ok
}

// Update устанавливает значение настройки по имени.
func (s *Store) Update(name, value string) error {
	if name == "" {
		return fmt.Errorf("пустое имя настройки")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[name] = value
	s.save()
	return nil
}

// NotificationsEnabled возвращает true если уведомления включены.
func (s *Store) NotificationsEnabled() bool {
	return s.getBool(SettingNotifications)
}

// SetNotifications включает/выключает уведомления.
func (s *Store) SetNotifications(enabled bool) {
	s.Update(SettingNotifications, strconv.FormatBool(enabled))
}

// ToggleNotifications переключает состояние уведомлений.
func (s *Store) ToggleNotifications() bool {
	enabled := !s.getBool(SettingNotifications)
	s.Update(SettingNotifications, strconv.FormatBool(enabled))
	return enabled
}

// PushToTalk возвращает true если включён режим push-to-talk.
func (s *Store) PushToTalk() bool {
	return s.getBool(SettingPushToTalk)
}

// SetPushToTalk устанавливает режим push-to-talk.
func (s *Store) SetPushToTalk(enabled bool) {
	s.Update(SettingPushToTalk, strconv.FormatBool(enabled))
}

// APIKey возвращает ключ API для облачной транскрипции.
func (s *Store) APIKey() string {
	v, _ := s.Get(SettingAPIKey)
	return v
}

// SetAPIKey устанавливает ключ API.
func (s *Store) SetAPIKey(key string) {
	s.Update(SettingAPIKey, key)
}

// ModelID возвращает ID выбранной модели распознавания.
func (s *Store) ModelID() string {
	v, _ := s.Get(SettingModelID)
	return v
}

// SetModelID устанавливает ID модели распознавания.
func (s *Store) SetModelID(id string) {
	s.Update(SettingModelID, id)
}

func (s *Store) getBool(name string) bool {
	v, ok := s.Get(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

// Bindings возвращает копию списка привязок.
func (s *Store) Bindings() []Binding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

// Binding возвращает привязку по ID.
func (s *Store) Binding(id string) (Binding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bindings {
		if b.ID == id {
			return b, true
		}
	}
	return Binding{}, false
}

// SetBindingChord устанавливает текущий аккорд привязки.
func (s *Store) SetBindingChord(id, chord string) error {
	s.mu.Lock()
	var changed *Binding
	for i := range s.bindings {
		if s.bindings[i].ID == id {
			s.bindings[i].Current = chord
			changed = &s.bindings[i]
			break
		}
	}
	if changed == nil {
		s.mu.Unlock()
		return fmt.Errorf("неизвестная привязка: %s", id)
	}
	b := *changed
	callback := s.onBindingChange
	s.save()
	s.mu.Unlock()

	if callback != nil {
		callback(b)
	}
	return nil
}

// ResetBinding возвращает привязку к дефолтному аккорду.
func (s *Store) ResetBinding(id string) (Binding, error) {
	s.mu.Lock()
	var changed *Binding
	for i := range s.bindings {
		if s.bindings[i].ID == id {
			s.bindings[i].Current = s.bindings[i].Default
			changed = &s.bindings[i]
			break
		}
	}
	if changed == nil {
		s.mu.Unlock()
		return Binding{}, fmt.Errorf("неизвестная привязка: %s", id)
	}
	b := *changed
	callback := s.onBindingChange
	s.save()
	s.mu.Unlock()

	if callback != nil {
		callback(b)
	}
	return b, nil
}

// OnBindingChange устанавливает callback на изменение привязки.
func (s *Store) OnBindingChange(fn func(Binding)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBindingChange = fn
}
