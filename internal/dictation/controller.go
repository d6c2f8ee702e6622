package dictation

import (
	"context"
	"log"
	"sync"
	"time"

	"golos/internal/audio"
	"golos/internal/command"
)

// generateTimeout - потолок времени пост-обработки одного цикла.
const generateTimeout = 30 * time.Second

// Controller - оркестратор цикла диктовки. Владеет состоянием и
// последовательностью: запись → обрезка тишины → транскрипция →
// ветвление команда/диктовка → обработка → вставка.
//
// В один момент времени идёт не более одного цикла: hotkey-down вне
// Idle игнорируется без постановки в очередь - это сознательное
// упрощение, исключающее параллельные нативные вызовы на одной очереди
// движка. Каждый терминальный путь возвращает автомат в Idle.
type Controller struct {
	deps Deps

	mu    sync.Mutex
	state State
}

// Deps - коллабораторы контроллера. Announcer, SoundFeedback и History
// необязательны, остальные поля обязательны.
type Deps struct {
	Source   AudioSource
	Buffer   SampleBuffer
	Speech   Transcriber
	Router   TextRouter
	Executor ChainExecutor
	Injector Injector

	Announcer Announcer
	Sound     SoundFeedback
	History   HistorySink

	// Settings вызывается при завершении записи для снимка настроек.
	Settings func() Settings
}

// NewController собирает контроллер из коллабораторов.
func NewController(deps Deps) *Controller {
	return &Controller{deps: deps, state: StateIdle}
}

// State возвращает текущее состояние (только чтение).
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// setState выполняет переход и объявляет его наблюдателю.
// Объявляется каждый переход, не только успешные.
func (c *Controller) setState(to State, reason string) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.mu.Unlock()

	if c.deps.Announcer != nil {
		c.deps.Announcer.StateChanged(from, to, reason)
	}
}

// transition переводит автомат из from в to только если текущее
// состояние равно from. Возвращает false если переход не состоялся.
func (c *Controller) transition(from, to State, reason string) bool {
	c.mu.Lock()
	if c.state != from {
		c.mu.Unlock()
		return false
	}
	c.state = to
	c.mu.Unlock()

	if c.deps.Announcer != nil {
		c.deps.Announcer.StateChanged(from, to, reason)
	}
	return true
}

// HotkeyDown начинает запись. Вне Idle событие игнорируется:
// текущий цикл не отменяется, новое нажатие не ставится в очередь.
func (c *Controller) HotkeyDown() {
	if !c.transition(StateIdle, StateRecording, ReasonHotkeyDown) {
		return
	}

	if !c.deps.Speech.IsLoaded() {
		log.Printf("Речевой движок не загружен, запись отменена")
		c.fail(ReasonRecordFailed)
		return
	}

	if err := c.deps.Source.Start(); err != nil {
		log.Printf("Ошибка начала записи: %v", err)
		c.fail(ReasonRecordFailed)
		return
	}

	if c.deps.Sound != nil {
		c.deps.Sound.RecordStarted()
	}
}

// HotkeyUp завершает запись и синхронно прогоняет остаток цикла.
// Вызывающий, которому нужна неблокирующая семантика, зовёт из
// горутины - следующий hotkey-down всё равно игнорируется до Idle.
func (c *Controller) HotkeyUp() {
	c.mu.Lock()
	if c.state != StateRecording {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.deps.Source.Stop()
	if c.deps.Sound != nil {
		c.deps.Sound.RecordStopped()
	}
	samples := c.deps.Buffer.Drain()

	// Снимок настроек на весь цикл: смена режима или wake-фразы
	// во время обработки не затронет текущий цикл
	snap := c.deps.Settings()

	trimmed := audio.Trim(samples, snap.VADSensitivity)
	if len(trimmed) == 0 {
		// Чистая тишина - не ошибка, движок не трогаем
		c.transition(StateRecording, StateIdle, ReasonSilentInput)
		return
	}

	if !c.transition(StateRecording, StateTranscribing, ReasonHotkeyUp) {
		return
	}

	c.runCycle(trimmed, snap)
}

// runCycle ведёт цикл от транскрипции до терминального состояния.
func (c *Controller) runCycle(samples []float32, snap Settings) {
	transcript, err := c.deps.Speech.Transcribe(samples, snap.Language)
	if err != nil {
		log.Printf("Ошибка распознавания: %v", err)
		c.fail(ReasonTranscribeFailed)
		return
	}

	if transcript == "" {
		c.transition(StateTranscribing, StateIdle, ReasonEmptyTranscript)
		return
	}

	// Ветвление: команда или диктовка
	if snap.CommandsOn && snap.WakePhrase != "" {
		if remainder, ok := command.Detect(transcript, snap.WakePhrase); ok {
			if commands := command.Parse(remainder); len(commands) > 0 {
				c.runCommandChain(commands)
				return
			}
			// Ложное срабатывание wake-фразы: ни один сегмент не
			// распознан как команда - текст уходит в диктовку
		}
	}

	if !c.transition(StateTranscribing, StateProcessing, ReasonProcessed) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	final := c.deps.Router.Route(ctx, transcript, snap.Mode)
	cancel()

	if !c.transition(StateProcessing, StateInjecting, ReasonProcessed) {
		return
	}

	injectErr := c.deps.Injector.Type(final)

	// История пишется после вставки независимо от режима и исхода
	if c.deps.History != nil {
		c.deps.History.Record(HistoryEntry{
			Time:     time.Now(),
			Raw:      transcript,
			Final:    final,
			Mode:     snap.Mode.Kind.String(),
			Language: snap.Language,
			Injected: injectErr == nil,
		})
	}

	if injectErr != nil {
		log.Printf("Ошибка вставки текста: %v", injectErr)
		c.fail(ReasonInjectFailed)
		return
	}

	c.transition(StateInjecting, StateIdle, ReasonInjected)
}

// runCommandChain исполняет цепочку и возвращает автомат в Idle.
// Частичный успех - не повод для состояния Error: сколько исполнилось,
// столько исполнилось, об этом узнаёт наблюдатель.
func (c *Controller) runCommandChain(commands []command.Command) {
	if !c.transition(StateTranscribing, StateProcessing, ReasonCommandExecuted) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	result := c.deps.Executor.ExecuteChain(ctx, commands)
	cancel()

	reason := ReasonCommandExecuted
	if result.Stopped() {
		log.Printf("Цепочка команд остановлена: %d из %d, причина: %v",
			result.Succeeded, result.Total, result.Err)
		reason = ReasonCommandPartial
	}

	c.transition(StateProcessing, StateIdle, reason)
}

// fail проводит автомат через Error обратно в Idle. Ошибка цикла
// никогда не останавливает будущие циклы.
func (c *Controller) fail(reason string) {
	c.setState(StateError, reason)
	c.setState(StateIdle, reason)
}
