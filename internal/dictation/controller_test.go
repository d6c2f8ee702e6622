package dictation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golos/internal/audio"
	"golos/internal/command"
	"golos/internal/processing"
)

type fakeSource struct {
	started  int
	stopped  int
	startErr error
}

func (s *fakeSource) Start() error { s.started++; return s.startErr }
func (s *fakeSource) Stop()        { s.stopped++ }

type fakeBuffer struct {
	samples []float32
}

func (b *fakeBuffer) Drain() []float32 {
	out := b.samples
	b.samples = nil
	return out
}

type fakeTranscriber struct {
	text   string
	err    error
	loaded bool
	calls  int
}

func (t *fakeTranscriber) Transcribe(samples []float32, lang string) (string, error) {
	t.calls++
	return t.text, t.err
}

func (t *fakeTranscriber) IsLoaded() bool { return t.loaded }

type fakeRouter struct {
	out   func(transcript string) string
	calls int
}

func (r *fakeRouter) Route(ctx context.Context, transcript string, mode processing.Mode) string {
	r.calls++
	if r.out != nil {
		return r.out(transcript)
	}
	return transcript
}

type fakeExecutor struct {
	got    []command.Command
	result command.ChainResult
}

func (e *fakeExecutor) ExecuteChain(ctx context.Context, commands []command.Command) command.ChainResult {
	e.got = commands
	if e.result.Total == 0 {
		e.result = command.ChainResult{Total: len(commands), Succeeded: len(commands)}
	}
	return e.result
}

type fakeInjector struct {
	typed []string
	err   error
}

func (i *fakeInjector) Type(text string) error {
	i.typed = append(i.typed, text)
	return i.err
}

type recordingAnnouncer struct {
	mu     sync.Mutex
	states []State
}

func (a *recordingAnnouncer) StateChanged(from, to State, reason string) {
	a.mu.Lock()
	a.states = append(a.states, to)
	a.mu.Unlock()
}

func (a *recordingAnnouncer) sequence() []State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]State(nil), a.states...)
}

type fakeHistory struct {
	entries []HistoryEntry
}

func (h *fakeHistory) Record(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

type fakeSound struct {
	started int
	stopped int
}

func (s *fakeSound) RecordStarted() { s.started++ }
func (s *fakeSound) RecordStopped() { s.stopped++ }

type fixture struct {
	source     *fakeSource
	buffer     *fakeBuffer
	speech     *fakeTranscriber
	router     *fakeRouter
	executor   *fakeExecutor
	injector   *fakeInjector
	announcer  *recordingAnnouncer
	sound      *fakeSound
	history    *fakeHistory
	settings   Settings
	controller *Controller
}

func newFixture() *fixture {
	f := &fixture{
		source:    &fakeSource{},
		buffer:    &fakeBuffer{},
		speech:    &fakeTranscriber{loaded: true},
		router:    &fakeRouter{},
		executor:  &fakeExecutor{},
		injector:  &fakeInjector{},
		announcer: &recordingAnnouncer{},
		sound:     &fakeSound{},
		history:   &fakeHistory{},
		settings: Settings{
			Language:       "ru",
			WakePhrase:     "слушай ввод",
			Mode:           processing.Mode{Kind: processing.ModeRaw},
			VADSensitivity: 0.5,
			CommandsOn:     true,
		},
	}
	f.controller = NewController(Deps{
		Source:    f.source,
		Buffer:    f.buffer,
		Speech:    f.speech,
		Router:    f.router,
		Executor:  f.executor,
		Injector:  f.injector,
		Announcer: f.announcer,
		Sound:     f.sound,
		History:   f.history,
		Settings:  func() Settings { return f.settings },
	})
	return f
}

// speechLike заполняет буфер синусоидой достаточной амплитуды,
// чтобы обрезка тишины её не выбросила.
func speechLike(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = 0.5
		} else {
			out[i] = -0.5
		}
	}
	return out
}

func TestCycleSilenceReturnsToIdleWithoutEngine(t *testing.T) {
	f := newFixture()
	f.buffer.samples = make([]float32, audio.SampleRate*2) // 2 секунды нулей

	f.controller.HotkeyDown()
	f.controller.HotkeyUp()

	assert.Equal(t, StateIdle, f.controller.State())
	assert.Equal(t, []State{StateRecording, StateIdle}, f.announcer.sequence())
	assert.Equal(t, 0, f.speech.calls)
	assert.Equal(t, 0, f.router.calls)
	assert.Empty(t, f.injector.typed)
	assert.Empty(t, f.history.entries)
}

func TestCycleRawModeInjectsTranscript(t *testing.T) {
	f := newFixture()
	f.buffer.samples = speechLike(audio.SampleRate)
	f.speech.text = "привет мир"

	f.controller.HotkeyDown()
	f.controller.HotkeyUp()

	assert.Equal(t, []State{
		StateRecording, StateTranscribing, StateProcessing, StateInjecting, StateIdle,
	}, f.announcer.sequence())
	require.Len(t, f.injector.typed, 1)
	assert.Equal(t, "привет мир", f.injector.typed[0])

	require.Len(t, f.history.entries, 1)
	entry := f.history.entries[0]
	assert.Equal(t, "привет мир", entry.Raw)
	assert.Equal(t, "привет мир", entry.Final)
	assert.Equal(t, "raw", entry.Mode)
	assert.True(t, entry.Injected)
}

func TestCycleCleanModeDegradesLikeRaw(t *testing.T) {
	raw := newFixture()
	raw.buffer.samples = speechLike(audio.SampleRate)
	raw.speech.text = "текст без правок"
	raw.controller.HotkeyDown()
	raw.controller.HotkeyUp()

	// Clean с отказавшим текстовым движком: Route деградирует до
	// исходного текста, итог вставки совпадает с Raw
	clean := newFixture()
	clean.settings.Mode = processing.Mode{Kind: processing.ModeClean}
	clean.buffer.samples = speechLike(audio.SampleRate)
	clean.speech.text = "текст без правок"
	clean.router.out = func(transcript string) string { return transcript }
	clean.controller.HotkeyDown()
	clean.controller.HotkeyUp()

	require.Len(t, raw.injector.typed, 1)
	require.Len(t, clean.injector.typed, 1)
	assert.Equal(t, raw.injector.typed[0], clean.injector.typed[0])
	assert.Equal(t, 1, clean.router.calls)
}

func TestCycleHotkeyDownIgnoredOutsideIdle(t *testing.T) {
	f := newFixture()
	f.controller.HotkeyDown()
	require.Equal(t, StateRecording, f.controller.State())

	f.controller.HotkeyDown()
	assert.Equal(t, 1, f.source.started)
	assert.Equal(t, StateRecording, f.controller.State())
}

func TestCycleHotkeyUpIgnoredOutsideRecording(t *testing.T) {
	f := newFixture()
	f.controller.HotkeyUp()
	assert.Equal(t, 0, f.source.stopped)
	assert.Equal(t, StateIdle, f.controller.State())
	assert.Empty(t, f.announcer.sequence())
}

func TestCycleEngineNotLoadedCancelsRecording(t *testing.T) {
	f := newFixture()
	f.speech.loaded = false

	f.controller.HotkeyDown()

	assert.Equal(t, StateIdle, f.controller.State())
	assert.Equal(t, []State{StateRecording, StateError, StateIdle}, f.announcer.sequence())
	assert.Equal(t, 0, f.source.started)
}

func TestCycleRecordStartFailure(t *testing.T) {
	f := newFixture()
	f.source.startErr = errors.New("нет устройства")

	f.controller.HotkeyDown()

	assert.Equal(t, StateIdle, f.controller.State())
	assert.Equal(t, []State{StateRecording, StateError, StateIdle}, f.announcer.sequence())
}

func TestCycleTranscribeFailure(t *testing.T) {
	f := newFixture()
	f.buffer.samples = speechLike(audio.SampleRate)
	f.speech.err = errors.New("сбой движка")

	f.controller.HotkeyDown()
	f.controller.HotkeyUp()

	assert.Equal(t, StateIdle, f.controller.State())
	assert.Equal(t, []State{
		StateRecording, StateTranscribing, StateError, StateIdle,
	}, f.announcer.sequence())
	assert.Empty(t, f.injector.typed)
	assert.Empty(t, f.history.entries)
}

func TestCycleEmptyTranscriptReturnsToIdle(t *testing.T) {
	f := newFixture()
	f.buffer.samples = speechLike(audio.SampleRate)
	f.speech.text = ""

	f.controller.HotkeyDown()
	f.controller.HotkeyUp()

	assert.Equal(t, StateIdle, f.controller.State())
	assert.Equal(t, 0, f.router.calls)
	assert.Empty(t, f.injector.typed)
}

func TestCycleCommandBranchSkipsInjection(t *testing.T) {
	f := newFixture()
	f.buffer.samples = speechLike(audio.SampleRate)
	f.speech.text = "слушай ввод открой браузер"

	f.controller.HotkeyDown()
	f.controller.HotkeyUp()

	require.Len(t, f.executor.got, 1)
	assert.Equal(t, command.KindOpenApp, f.executor.got[0].Kind)
	assert.Empty(t, f.injector.typed)
	assert.Equal(t, 0, f.router.calls)
	assert.Equal(t, []State{
		StateRecording, StateTranscribing, StateProcessing, StateIdle,
	}, f.announcer.sequence())
}

func TestCycleWakePhraseWithoutCommandFallsBackToDictation(t *testing.T) {
	f := newFixture()
	f.buffer.samples = speechLike(audio.SampleRate)
	f.speech.text = "слушай ввод бормотание без смысла"

	f.controller.HotkeyDown()
	f.controller.HotkeyUp()

	assert.Empty(t, f.executor.got)
	require.Len(t, f.injector.typed, 1)
	assert.Equal(t, "слушай ввод бормотание без смысла", f.injector.typed[0])
}

func TestCycleCommandsDisabledAlwaysDictates(t *testing.T) {
	f := newFixture()
	f.settings.CommandsOn = false
	f.buffer.samples = speechLike(audio.SampleRate)
	f.speech.text = "слушай ввод открой браузер"

	f.controller.HotkeyDown()
	f.controller.HotkeyUp()

	assert.Empty(t, f.executor.got)
	require.Len(t, f.injector.typed, 1)
}

func TestCycleInjectFailureRecordedInHistory(t *testing.T) {
	f := newFixture()
	f.buffer.samples = speechLike(audio.SampleRate)
	f.speech.text = "не вставилось"
	f.injector.err = errors.New("окно пропало")

	f.controller.HotkeyDown()
	f.controller.HotkeyUp()

	assert.Equal(t, StateIdle, f.controller.State())
	require.Len(t, f.history.entries, 1)
	assert.False(t, f.history.entries[0].Injected)
	assert.Equal(t, []State{
		StateRecording, StateTranscribing, StateProcessing,
		StateInjecting, StateError, StateIdle,
	}, f.announcer.sequence())
}

func TestCycleSoundFeedbackOnRecordBoundaries(t *testing.T) {
	f := newFixture()
	f.buffer.samples = speechLike(audio.SampleRate)
	f.speech.text = "текст"

	f.controller.HotkeyDown()
	assert.Equal(t, 1, f.sound.started)
	assert.Equal(t, 0, f.sound.stopped)

	f.controller.HotkeyUp()
	assert.Equal(t, 1, f.sound.stopped)
}

func TestCycleErrorNeverBlocksNextCycle(t *testing.T) {
	f := newFixture()
	f.buffer.samples = speechLike(audio.SampleRate)
	f.speech.err = errors.New("сбой")

	f.controller.HotkeyDown()
	f.controller.HotkeyUp()
	require.Equal(t, StateIdle, f.controller.State())

	f.speech.err = nil
	f.speech.text = "второй цикл"
	f.buffer.samples = speechLike(audio.SampleRate)

	f.controller.HotkeyDown()
	f.controller.HotkeyUp()

	require.Len(t, f.injector.typed, 1)
	assert.Equal(t, "второй цикл", f.injector.typed[0])
}
