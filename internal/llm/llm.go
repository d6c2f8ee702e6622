// Package llm владеет нативным языковым движком для пост-обработки
// распознанного текста: llama.cpp через cgo либо локальный Ollama сервер.
package llm

import (
	"context"
	"errors"
)

// ErrUnknownModel - запрошенный ID модели отсутствует в реестре.
var ErrUnknownModel = errors.New("неизвестная модель")

// Generator - контракт текстового движка.
type Generator interface {
	// Generate генерирует продолжение для prompt, не более maxTokens токенов.
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)

	// Close освобождает ресурсы движка. Идемпотентен.
	Close()

	// Name возвращает название движка (для логирования).
	Name() string
}
