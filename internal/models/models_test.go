package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	def, ok := GetModel(DefaultModelID())
	if !ok {
		t.Fatalf("default model %q not in registry", DefaultModelID())
	}
	if def.URL == "" || def.Filename == "" {
		t.Fatalf("default model incomplete: %+v", def)
	}

	if _, ok := GetModel("no-such-model"); ok {
		t.Fatal("unknown id should not resolve")
	}

	for _, m := range Registry {
		if m.Accuracy < 0 || m.Accuracy > 1 || m.Speed < 0 || m.Speed > 1 {
			t.Fatalf("%s: scores out of range: %+v", m.ID, m)
		}
	}
}

func TestIsDownloaded(t *testing.T) {
	mgr, err := NewManagerAt(filepath.Join(t.TempDir(), "models"))
	if err != nil {
		t.Fatalf("NewManagerAt: %v", err)
	}

	info, _ := GetModel(DefaultModelID())
	if mgr.IsDownloaded(info) {
		t.Fatal("empty dir reported a downloaded model")
	}

	// Пустой файл не считается скачанной моделью
	path := mgr.GetModelPath(info)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if mgr.IsDownloaded(info) {
		t.Fatal("empty file reported as downloaded")
	}

	if err := os.WriteFile(path, []byte("weights"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !mgr.IsDownloaded(info) {
		t.Fatal("non-empty file not reported as downloaded")
	}
	if !mgr.HasAnyDownloaded() {
		t.Fatal("HasAnyDownloaded = false with one model present")
	}

	states := mgr.Available()
	if len(states) != len(Registry) {
		t.Fatalf("Available len = %d, want %d", len(states), len(Registry))
	}
	for _, st := range states {
		want := st.ID == info.ID
		if st.Downloaded != want {
			t.Fatalf("%s: Downloaded = %v, want %v", st.ID, st.Downloaded, want)
		}
	}

	if err := mgr.Delete(info); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if mgr.IsDownloaded(info) {
		t.Fatal("model still reported after Delete")
	}
}
