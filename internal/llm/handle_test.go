package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golos/internal/engine"
)

type fakeGenerator struct {
	mu         sync.Mutex
	text       string
	err        error
	delay      time.Duration
	closed     bool
	closedAt   time.Time
	finishedAt time.Time
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	time.Sleep(f.delay)
	f.mu.Lock()
	f.finishedAt = time.Now()
	f.mu.Unlock()
	return f.text, f.err
}

func (f *fakeGenerator) Close() {
	f.mu.Lock()
	f.closed = true
	f.closedAt = time.Now()
	f.mu.Unlock()
}

func (f *fakeGenerator) Name() string { return "fake" }

func TestHandleGenerateNotLoaded(t *testing.T) {
	h := NewHandle(func(string) (Generator, error) { return &fakeGenerator{}, nil })
	defer h.Close()

	_, err := h.Generate(context.Background(), "привет", 16)
	assert.ErrorIs(t, err, engine.ErrNotLoaded)
}

func TestHandleLoadGenerateUnload(t *testing.T) {
	gen := &fakeGenerator{text: "исправленный текст"}
	h := NewHandle(func(string) (Generator, error) { return gen, nil })
	defer h.Close()

	require.NoError(t, h.Load("llm-qwen2.5-0.5b"))
	assert.True(t, h.IsLoaded())

	text, err := h.Generate(context.Background(), "текст", 64)
	require.NoError(t, err)
	assert.Equal(t, "исправленный текст", text)

	require.NoError(t, h.Unload())
	assert.False(t, h.IsLoaded())
	assert.True(t, gen.closed)
	assert.Empty(t, h.ModelID())
}

func TestHandleLoadFailure(t *testing.T) {
	h := NewHandle(func(string) (Generator, error) {
		return nil, engine.ErrAllocationFailed
	})
	defer h.Close()

	err := h.Load("llm-qwen2.5-0.5b")
	assert.ErrorIs(t, err, engine.ErrAllocationFailed)
	assert.False(t, h.IsLoaded())
}

func TestHandleDoubleLoadForbidden(t *testing.T) {
	h := NewHandle(func(string) (Generator, error) { return &fakeGenerator{}, nil })
	defer h.Close()

	require.NoError(t, h.Load("a"))
	assert.ErrorIs(t, h.Load("b"), engine.ErrAlreadyLoaded)
}

func TestHandleUnloadWaitsForInflightGenerate(t *testing.T) {
	gen := &fakeGenerator{text: "ok", delay: 60 * time.Millisecond}
	h := NewHandle(func(string) (Generator, error) { return gen, nil })
	defer h.Close()

	require.NoError(t, h.Load("a"))

	started := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		close(started)
		_, err := h.Generate(context.Background(), "текст", 16)
		assert.NoError(t, err)
	}()

	<-started
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, h.Unload())
	wg.Wait()

	require.True(t, gen.closed)
	assert.False(t, gen.closedAt.Before(gen.finishedAt),
		"выгрузка не должна освобождать ресурсы до завершения генерации")
}

func TestHandleGenerateErrorPropagates(t *testing.T) {
	gen := &fakeGenerator{err: &engine.InferenceError{Engine: "fake", Code: 3}}
	h := NewHandle(func(string) (Generator, error) { return gen, nil })
	defer h.Close()

	require.NoError(t, h.Load("a"))

	_, err := h.Generate(context.Background(), "текст", 16)
	var infErr *engine.InferenceError
	require.True(t, errors.As(err, &infErr))
	assert.Equal(t, 3, infErr.Code)
}

func TestHandleSwap(t *testing.T) {
	first := &fakeGenerator{}
	second := &fakeGenerator{}
	h := NewHandle(func(id string) (Generator, error) {
		if id == "b" {
			return second, nil
		}
		return first, nil
	})
	defer h.Close()

	require.NoError(t, h.Load("a"))
	require.NoError(t, h.Swap("b"))

	assert.True(t, first.closed)
	assert.False(t, second.closed)
	assert.Equal(t, "b", h.ModelID())
}
