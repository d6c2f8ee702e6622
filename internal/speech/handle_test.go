package speech

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golos/internal/engine"
)

// fakeRecognizer - распознаватель с настраиваемой задержкой.
type fakeRecognizer struct {
	mu         sync.Mutex
	text       string
	err        error
	delay      time.Duration
	closed     bool
	closedAt   time.Time
	finishedAt time.Time
}

func (f *fakeRecognizer) Transcribe(samples []float32, lang string) (string, error) {
	time.Sleep(f.delay)
	f.mu.Lock()
	f.finishedAt = time.Now()
	f.mu.Unlock()
	return f.text, f.err
}

func (f *fakeRecognizer) Close() {
	f.mu.Lock()
	f.closed = true
	f.closedAt = time.Now()
	f.mu.Unlock()
}

func (f *fakeRecognizer) Name() string { return "fake" }

func fixedFactory(rec Recognizer, err error) Factory {
	return func(modelID string) (Recognizer, error) {
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
}

func TestHandleLoadTranscribeUnload(t *testing.T) {
	rec := &fakeRecognizer{text: "привет мир"}
	h := NewHandle(fixedFactory(rec, nil))
	defer h.Close()

	require.NoError(t, h.Load("whisper-tiny-q5"))
	assert.True(t, h.IsLoaded())
	assert.Equal(t, "whisper-tiny-q5", h.ModelID())
	assert.Equal(t, "fake", h.EngineName())

	text, err := h.Transcribe([]float32{0.1}, "ru")
	require.NoError(t, err)
	assert.Equal(t, "привет мир", text)

	require.NoError(t, h.Unload())
	assert.False(t, h.IsLoaded())
	assert.True(t, rec.closed)
}

func TestHandleTranscribeNotLoaded(t *testing.T) {
	h := NewHandle(fixedFactory(&fakeRecognizer{}, nil))
	defer h.Close()

	_, err := h.Transcribe([]float32{0.1}, "ru")
	assert.ErrorIs(t, err, engine.ErrNotLoaded)
}

func TestHandleLoadFailureStaysUnloaded(t *testing.T) {
	h := NewHandle(fixedFactory(nil, errors.New("файл модели повреждён")))
	defer h.Close()

	require.Error(t, h.Load("whisper-tiny-q5"))
	assert.False(t, h.IsLoaded())

	// Неудачная загрузка не мешает следующей попытке
	h.factory = fixedFactory(&fakeRecognizer{}, nil)
	assert.NoError(t, h.Load("whisper-tiny-q5"))
}

func TestHandleForbidsDoubleLoad(t *testing.T) {
	h := NewHandle(fixedFactory(&fakeRecognizer{}, nil))
	defer h.Close()

	require.NoError(t, h.Load("a"))
	assert.ErrorIs(t, h.Load("b"), engine.ErrAlreadyLoaded)
}

func TestHandleSwapUnloadsThenLoads(t *testing.T) {
	first := &fakeRecognizer{}
	second := &fakeRecognizer{}

	var created []string
	firstClosedBeforeSecond := false
	h := NewHandle(func(modelID string) (Recognizer, error) {
		created = append(created, modelID)
		if modelID == "b" {
			firstClosedBeforeSecond = first.closed
			return second, nil
		}
		return first, nil
	})
	defer h.Close()

	require.NoError(t, h.Load("a"))
	require.NoError(t, h.Swap("b"))

	assert.Equal(t, []string{"a", "b"}, created)
	// Старая модель обязана быть закрыта до создания новой
	assert.True(t, firstClosedBeforeSecond)
	assert.Equal(t, "b", h.ModelID())
	assert.False(t, second.closed)
}

func TestHandleUnloadWaitsForInflightTranscribe(t *testing.T) {
	rec := &fakeRecognizer{text: "ok", delay: 60 * time.Millisecond}
	h := NewHandle(fixedFactory(rec, nil))
	defer h.Close()

	require.NoError(t, h.Load("a"))

	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		close(started)
		_, err := h.Transcribe([]float32{0.1}, "ru")
		assert.NoError(t, err)
	}()

	<-started
	time.Sleep(10 * time.Millisecond) // транскрипция уже на очереди
	require.NoError(t, h.Unload())
	wg.Wait()

	// Close вызван строго после завершения транскрипции
	require.True(t, rec.closed)
	assert.False(t, rec.closedAt.Before(rec.finishedAt),
		"выгрузка не должна освобождать ресурсы до завершения in-flight вызова")
}

func TestHandleCloseIdempotentPath(t *testing.T) {
	rec := &fakeRecognizer{}
	h := NewHandle(fixedFactory(rec, nil))
	require.NoError(t, h.Load("a"))

	h.Close()
	assert.True(t, rec.closed)
	assert.False(t, h.IsLoaded())
}
