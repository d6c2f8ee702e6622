package speech

import (
	"io"
	"strings"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"golos/internal/audio"
	"golos/internal/engine"
)

// WhisperRecognizer реализует Recognizer через whisper.cpp.
type WhisperRecognizer struct {
	mu    sync.Mutex
	model whisper.Model
}

// NewWhisperFromFile создаёт WhisperRecognizer из файла модели.
// nil-модель от биндингов поднимается как ErrAllocationFailed.
func NewWhisperFromFile(modelPath string) (*WhisperRecognizer, error) {
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, engine.ErrAllocationFailed
	}

	return &WhisperRecognizer{model: model}, nil
}

// Name возвращает название движка.
func (w *WhisperRecognizer) Name() string {
	return "whisper"
}

// Transcribe распознаёт речь из аудио сэмплов.
func (w *WhisperRecognizer) Transcribe(samples []float32, lang string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.model == nil {
		return "", engine.ErrNotLoaded
	}

	// Whisper требует минимальную длительность - дописываем тишину
	if len(samples) < audio.MinSamples {
		padding := make([]float32, audio.MinSamples-len(samples))
		samples = append(samples, padding...)
	}

	ctx, err := w.model.NewContext()
	if err != nil {
		return "", err
	}

	// Отключаем перевод - только транскрипция
	ctx.SetTranslate(false)

	// Устанавливаем язык (для "auto" включится автодетект)
	if lang != "" {
		ctx.SetLanguage(lang)
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return "", err
	}

	// Собираем результат из сегментов
	var result strings.Builder
	for {
		segment, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		result.WriteString(segment.Text)
	}

	return strings.TrimSpace(result.String()), nil
}

// Close освобождает ресурсы.
func (w *WhisperRecognizer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.model != nil {
		w.model.Close()
		w.model = nil
	}
}
