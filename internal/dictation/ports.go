package dictation

import (
	"context"
	"time"

	"golos/internal/command"
	"golos/internal/processing"
)

// AudioSource - захват микрофона (внешний коллаборатор).
type AudioSource interface {
	Start() error
	Stop()
}

// SampleBuffer - накопитель сэмплов между началом и концом записи.
type SampleBuffer interface {
	Drain() []float32
}

// Transcriber - речевой движок.
type Transcriber interface {
	Transcribe(samples []float32, lang string) (string, error)
	IsLoaded() bool
}

// TextRouter - маршрутизация обработки текста по режиму.
type TextRouter interface {
	Route(ctx context.Context, transcript string, mode processing.Mode) string
}

// ChainExecutor - исполнитель цепочек команд.
type ChainExecutor interface {
	ExecuteChain(ctx context.Context, commands []command.Command) command.ChainResult
}

// Injector - вставка текста в активное окно (внешний коллаборатор).
type Injector interface {
	Type(text string) error
}

// Announcer получает каждый переход состояния, не только успешные.
// Вызовы fire-and-forget: не должны блокировать цикл.
type Announcer interface {
	StateChanged(from, to State, reason string)
}

// SoundFeedback - звуковое подтверждение начала и конца записи.
type SoundFeedback interface {
	RecordStarted()
	RecordStopped()
}

// HistoryEntry - запись истории одной диктовки.
type HistoryEntry struct {
	Time     time.Time `json:"time"`
	Raw      string    `json:"raw"`
	Final    string    `json:"final"`
	Mode     string    `json:"mode"`
	Language string    `json:"language"`
	Injected bool      `json:"injected"`
}

// HistorySink - хранилище истории (внешний коллаборатор, fire-and-forget).
type HistorySink interface {
	Record(entry HistoryEntry)
}

// Settings - снимок настроек, действующий на один цикл. Снимается в
// момент завершения записи: смена настроек во время цикла влияет
// только на следующий цикл, никогда на текущий.
type Settings struct {
	Language       string
	WakePhrase     string
	Mode           processing.Mode
	VADSensitivity float64
	CommandsOn     bool
}
