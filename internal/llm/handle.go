package llm

import (
	"context"

	"golos/internal/engine"
)

// GeneratorFactory создаёт текстовый движок для указанной модели.
type GeneratorFactory func(modelID string) (Generator, error)

// Handle владеет одним текстовым движком. Как и у речевого handle,
// все вызовы идут через выделенную последовательную очередь:
// Unload, отправленный во время генерации, дождётся её завершения
// прежде чем освобождать нативные ресурсы.
type Handle struct {
	factory   GeneratorFactory
	queue     *engine.Queue
	lifecycle engine.Lifecycle

	current Generator
	modelID string
}

// NewHandle создаёт пустой handle текстового движка.
func NewHandle(factory GeneratorFactory) *Handle {
	return &Handle{
		factory: factory,
		queue:   engine.NewQueue(),
	}
}

// Load загружает модель. Горячая замена запрещена - сначала Unload.
func (h *Handle) Load(modelID string) error {
	if err := h.lifecycle.BeginLoad(); err != nil {
		return err
	}

	var loadErr error
	qErr := h.queue.Do(func() {
		gen, err := h.factory(modelID)
		if err != nil {
			loadErr = err
			return
		}
		h.current = gen
		h.modelID = modelID
	})
	if qErr != nil {
		loadErr = qErr
	}

	h.lifecycle.FinishLoad(loadErr == nil)
	return loadErr
}

// Generate выполняет генерацию на очереди движка.
func (h *Handle) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !h.lifecycle.IsLoaded() {
		return "", engine.ErrNotLoaded
	}

	var text string
	var err error
	qErr := h.queue.Do(func() {
		if h.current == nil {
			err = engine.ErrNotLoaded
			return
		}
		text, err = h.current.Generate(ctx, prompt, maxTokens)
	})
	if qErr != nil {
		return "", qErr
	}
	return text, err
}

// Unload синхронно выгружает движок, дождавшись in-flight генерации.
func (h *Handle) Unload() error {
	if err := h.lifecycle.BeginUnload(); err != nil {
		return err
	}

	err := h.queue.Do(func() {
		if h.current != nil {
			h.current.Close()
			h.current = nil
			h.modelID = ""
		}
	})

	h.lifecycle.FinishUnload()
	return err
}

// Swap меняет модель: выгрузка, затем загрузка.
func (h *Handle) Swap(modelID string) error {
	if h.lifecycle.IsLoaded() {
		if err := h.Unload(); err != nil {
			return err
		}
	}
	return h.Load(modelID)
}

// IsLoaded возвращает true если движок загружен.
func (h *Handle) IsLoaded() bool {
	return h.lifecycle.IsLoaded()
}

// ModelID возвращает ID загруженной модели.
func (h *Handle) ModelID() string {
	var id string
	h.queue.Do(func() { id = h.modelID })
	return id
}

// Close выгружает движок и останавливает очередь. Последовательность
// та же что у Unload: ожидание, освобождение, сброс указателя.
func (h *Handle) Close() {
	if h.lifecycle.IsLoaded() {
		_ = h.Unload()
	}
	h.queue.Close()
}
