// Package models управляет моделями распознавания речи: реестр,
// загрузка и удаление файлов моделей.
package models

// ModelInfo информация о модели.
type ModelInfo struct {
	ID       string  // Уникальный идентификатор: "tiny-q5"
	Name     string  // Отображаемое имя: "Tiny Q5"
	Filename string  // Имя файла: "ggml-tiny-q5_1.bin"
	URL      string  // URL для скачивания
	Size     int64   // Размер в байтах (для прогресса)
	Accuracy float64 // Оценка точности 0..1 (для пикера)
	Speed    float64 // Оценка скорости 0..1 (для пикера)
}

// SizeMB возвращает размер в мегабайтах для отображения.
func (m ModelInfo) SizeMB() int64 {
	return m.Size / (1024 * 1024)
}

// Registry все доступные модели.
var Registry = []ModelInfo{
	// Квантизированные модели (рекомендуется для CPU)
	{
		ID:       "tiny-q5",
		Name:     "Tiny Q5",
		Filename: "ggml-tiny-q5_1.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-tiny-q5_1.bin",
		Size:     32 * 1024 * 1024,
		Accuracy: 0.35,
		Speed:    1.0,
	},
	{
		ID:       "base-q5",
		Name:     "Base Q5",
		Filename: "ggml-base-q5_1.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base-q5_1.bin",
		Size:     60 * 1024 * 1024,
		Accuracy: 0.5,
		Speed:    0.85,
	},
	{
		ID:       "small-q5",
		Name:     "Small Q5",
		Filename: "ggml-small-q5_1.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small-q5_1.bin",
		Size:     190 * 1024 * 1024,
		Accuracy: 0.7,
		Speed:    0.6,
	},
	{
		ID:       "large-turbo",
		Name:     "Large v3 Turbo",
		Filename: "ggml-large-v3-turbo-q5_0.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-large-v3-turbo-q5_0.bin",
		Size:     574 * 1024 * 1024,
		Accuracy: 0.95,
		Speed:    0.4,
	},
	// Оригинальные модели (больше размер, чуть лучше качество)
	{
		ID:       "base",
		Name:     "Base",
		Filename: "ggml-base.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.bin",
		Size:     142 * 1024 * 1024,
		Accuracy: 0.55,
		Speed:    0.8,
	},
	{
		ID:       "small",
		Name:     "Small",
		Filename: "ggml-small.bin",
		URL:      "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small.bin",
		Size:     466 * 1024 * 1024,
		Accuracy: 0.75,
		Speed:    0.55,
	},
}

// DefaultModelID модель по умолчанию.
func DefaultModelID() string {
	return "base-q5"
}

// GetModel возвращает модель по ID.
func GetModel(id string) (ModelInfo, bool) {
	for _, m := range Registry {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}
