package speech

import (
	"fmt"

	"golos/internal/engine"
	"golos/internal/models"
)

// Factory создаёт распознаватель для указанной модели.
type Factory func(modelID string) (Recognizer, error)

// NewFactory создаёт фабрику распознавателей поверх менеджера моделей.
func NewFactory(manager *models.Manager) Factory {
	return func(modelID string) (Recognizer, error) {
		info, ok := models.GetModel(modelID)
		if !ok {
			return nil, fmt.Errorf("модель не найдена: %s", modelID)
		}

		if !manager.IsDownloaded(info) {
			return nil, fmt.Errorf("модель не скачана: %s", info.Name)
		}

		modelPath := manager.GetModelPath(info)

		var rec Recognizer
		var err error

		switch info.Engine {
		case models.EngineWhisper:
			rec, err = NewWhisperFromFile(modelPath)
		case models.EngineVosk:
			rec, err = NewVosk(modelPath)
		default:
			return nil, fmt.Errorf("неизвестный движок: %s", info.Engine)
		}

		if err != nil {
			return nil, fmt.Errorf("ошибка создания распознавателя: %w", err)
		}

		return rec, nil
	}
}

// Handle владеет одним нативным распознавателем. Все нативные вызовы
// исполняются на выделенной последовательной очереди: транскрипция
// никогда не пересекается ни с другой транскрипцией, ни с выгрузкой.
type Handle struct {
	factory   Factory
	queue     *engine.Queue
	lifecycle engine.Lifecycle

	// current меняется только задачами на очереди
	current Recognizer
	modelID string
}

// NewHandle создаёт пустой handle. Модель загружается отдельно через Load.
func NewHandle(factory Factory) *Handle {
	return &Handle{
		factory: factory,
		queue:   engine.NewQueue(),
	}
}

// Load загружает модель. Загрузка поверх загруженной модели запрещена -
// используйте Swap.
func (h *Handle) Load(modelID string) error {
	if err := h.lifecycle.BeginLoad(); err != nil {
		return err
	}

	var loadErr error
	qErr := h.queue.Do(func() {
		rec, err := h.factory(modelID)
		if err != nil {
			loadErr = err
			return
		}
		h.current = rec
		h.modelID = modelID
	})
	if qErr != nil {
		loadErr = qErr
	}

	h.lifecycle.FinishLoad(loadErr == nil)
	return loadErr
}

// Transcribe распознаёт речь на выделенной очереди движка.
func (h *Handle) Transcribe(samples []float32, lang string) (string, error) {
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
		text, err = h.current.Transcribe(samples, lang)
	})
	if qErr != nil {
		return "", qErr
	}
	return text, err
}

// Unload синхронно выгружает модель: задача на очереди дожидается
// in-flight транскрипции, затем освобождает ресурсы.
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

// Swap меняет модель: строго выгрузка, затем загрузка.
// Две нативные модели одного слота никогда не живут одновременно.
func (h *Handle) Swap(modelID string) error {
	if h.lifecycle.IsLoaded() {
		if err := h.Unload(); err != nil {
			return err
		}
	}
	return h.Load(modelID)
}

// IsLoaded возвращает true если модель загружена.
func (h *Handle) IsLoaded() bool {
	return h.lifecycle.IsLoaded()
}

// ModelID возвращает ID загруженной модели (пустая строка если нет).
func (h *Handle) ModelID() string {
	var id string
	h.queue.Do(func() { id = h.modelID })
	return id
}

// EngineName возвращает название загруженного движка для логов.
func (h *Handle) EngineName() string {
	var name string
	h.queue.Do(func() {
		if h.current != nil {
			name = h.current.Name()
		}
	})
	return name
}

// Close выгружает модель (если загружена) и останавливает очередь.
// Последовательность идентична Unload - это единственный путь
// гарантированного освобождения нативных ресурсов.
func (h *Handle) Close() {
	if h.lifecycle.IsLoaded() {
		_ = h.Unload()
	}
	h.queue.Close()
}
