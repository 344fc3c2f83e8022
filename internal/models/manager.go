package models

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
)

// Progress информация о прогрессе загрузки.
type Progress struct {
	ModelID    string
	Downloaded int64
	Total      int64
	Done       bool
}

// ModelState модель из реестра плюс её локальное состояние.
type ModelState struct {
	ModelInfo
	Downloaded bool
}

// Manager управляет файлами моделей.
type Manager struct {
	modelsDir string
	mu        sync.Mutex
}

// NewManager создаёт менеджер моделей.
// Модели хранятся в директории models/ рядом с бинарником.
func NewManager() (*Manager, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("не удалось определить путь к бинарнику: %w", err)
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось разрешить симлинки: %w", err)
	}

	return NewManagerAt(filepath.Join(filepath.Dir(execPath), "models"))
}

// NewManagerAt создаёт менеджер с явной директорией моделей.
func NewManagerAt(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию моделей: %w", err)
	}
	return &Manager{modelsDir: dir}, nil
}

// ModelsDir возвращает путь к директории моделей.
func (m *Manager) ModelsDir() string {
	return m.modelsDir
}

// GetModelPath возвращает полный путь к файлу модели.
func (m *Manager) GetModelPath(info ModelInfo) string {
	return filepath.Join(m.modelsDir, info.Filename)
}

// IsDownloaded проверяет, скачана ли модель.
func (m *Manager) IsDownloaded(info ModelInfo) bool {
	stat, err := os.Stat(m.GetModelPath(info))
	if err != nil {
		return false
	}
	// Файл не пустой
	return stat.Size() > 0
}

// Available возвращает все модели реестра с флагом наличия.
func (m *Manager) Available() []ModelState {
	states := make([]ModelState, 0, len(Registry))
	for _, model := range Registry {
		states = append(states, ModelState{ModelInfo: model, Downloaded: m.IsDownloaded(model)})
	}
	return states
}

// HasAnyDownloaded проверяет, скачана ли хотя бы одна модель.
func (m *Manager) HasAnyDownloaded() bool {
	for _, model := range Registry {
		if m.IsDownloaded(model) {
			return true
		}
	}
	return false
}

// Download скачивает модель во временный файл и переименовывает его.
// progress канал получает обновления о прогрессе (можно nil).
func (m *Manager) Download(ctx context.Context, info ModelInfo, progress chan<- Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IsDownloaded(info) {
		if progress != nil {
			progress <- Progress{ModelID: info.ID, Downloaded: info.Size, Total: info.Size, Done: true}
		}
		return nil
	}

	destPath := m.GetModelPath(info)
	tmpPath := destPath + ".tmp"
	defer os.Remove(tmpPath)

	req, err := http.NewRequestWithContext(ctx, "GET", info.URL, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка скачивания: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP ошибка: %s", resp.Status)
	}

	total := resp.ContentLength
	if total <= 0 {
		total = info.Size
	}

	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer file.Close()

	var downloaded int64
	buf := make([]byte, 32*1024)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := file.Write(buf[:n]); werr != nil {
				return werr
			}
			downloaded += int64(n)

			// Не блокируемся если получатель не успевает
			if progress != nil {
				select {
				case progress <- Progress{ModelID: info.ID, Downloaded: downloaded, Total: total}:
				default:
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	file.Close()

	// Переименовываем в финальное имя
	if err := os.Rename(tmpPath, destPath); err != nil {
		return err
	}

	if progress != nil {
		progress <- Progress{ModelID: info.ID, Downloaded: total, Total: total, Done: true}
	}

	return nil
}

// Delete удаляет файл модели.
func (m *Manager) Delete(info ModelInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return os.Remove(m.GetModelPath(info))
}
