package config

import (
	"path/filepath"
	"testing"
)

func TestGetUpdateRoundTrip(t *testing.T) {
	s := NewAt(filepath.Join(t.TempDir(), "config.json"))

	if err := s.Update("api_key", "sk-test"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	v, ok := s.Get("api_key")
	if !ok || v != "sk-test" {
		t.Errorf("Get = (%q, %v), want (sk-test, true)", v, ok)
	}

	// произвольные имена тоже принимаются
	if err := s.Update("custom_flag", "42"); err != nil {
		t.Fatalf("Update custom: %v", err)
	}
	if v, _ := s.Get("custom_flag"); v != "42" {
		t.Errorf("custom setting = %q, want 42", v)
	}

	if err := s.Update("", "x"); err == nil {
		t.Error("empty setting name accepted")
	}
}

func TestDefaults(t *testing.T) {
	s := NewAt(filepath.Join(t.TempDir(), "config.json"))

	if !s.NotificationsEnabled() {
		t.Error("notifications should default to enabled")
	}
	if s.PushToTalk() {
		t.Error("push-to-talk should default to disabled")
	}

	b, ok := s.Binding("transcribe")
	if !ok {
		t.Fatal("transcribe binding missing")
	}
	if b.Current != b.Default || b.Current == "" {
		t.Errorf("binding = %+v, want current == default", b)
	}
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	s := NewAt(path)
	s.SetAPIKey("sk-abc")
	s.SetPushToTalk(true)
	if err := s.SetBindingChord("transcribe", "ctrl+mouse4"); err != nil {
		t.Fatalf("SetBindingChord: %v", err)
	}

	// перечитываем тот же файл
	s2 := NewAt(path)
	if s2.APIKey() != "sk-abc" {
		t.Errorf("APIKey = %q", s2.APIKey())
	}
	if !s2.PushToTalk() {
		t.Error("push-to-talk lost")
	}
	b, _ := s2.Binding("transcribe")
	if b.Current != "ctrl+mouse4" {
		t.Errorf("chord = %q, want ctrl+mouse4", b.Current)
	}
	if b.Default != "ctrl+shift+space" {
		t.Errorf("default = %q, must come from code", b.Default)
	}
}

func TestResetBinding(t *testing.T) {
	s := NewAt(filepath.Join(t.TempDir(), "config.json"))

	var notified []string
	s.OnBindingChange(func(b Binding) { notified = append(notified, b.Current) })

	if err := s.SetBindingChord("cancel", "mouse4"); err != nil {
		t.Fatalf("SetBindingChord: %v", err)
	}
	b, err := s.ResetBinding("cancel")
	if err != nil {
		t.Fatalf("ResetBinding: %v", err)
	}
	if b.Current != b.Default {
		t.Errorf("after reset current = %q, want %q", b.Current, b.Default)
	}
	if len(notified) != 2 {
		t.Errorf("change callback fired %d times, want 2", len(notified))
	}

	if _, err := s.ResetBinding("nope"); err == nil {
		t.Error("unknown binding id accepted")
	}
	if err := s.SetBindingChord("nope", "a"); err == nil {
		t.Error("unknown binding id accepted")
	}
}
