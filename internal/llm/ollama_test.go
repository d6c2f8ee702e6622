package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golos/internal/engine"
)

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen2.5:0.5b", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(ollamaResponse{Response: " Привет, мир. ", Done: true})
	}))
	defer srv.Close()

	c := NewOllama(OllamaConfig{URL: srv.URL})
	text, err := c.Generate(context.Background(), "привет мир", 64)
	require.NoError(t, err)
	assert.Equal(t, "Привет, мир.", text)
}

func TestOllamaGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllama(OllamaConfig{URL: srv.URL})
	_, err := c.Generate(context.Background(), "текст", 64)

	var infErr *engine.InferenceError
	require.True(t, errors.As(err, &infErr))
	assert.Equal(t, http.StatusNotFound, infErr.Code)
	assert.Equal(t, "ollama", infErr.Engine)
}

func TestOllamaPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	c := NewOllama(OllamaConfig{URL: srv.URL})
	assert.NoError(t, c.Ping(context.Background()))

	srv.Close()
	assert.Error(t, c.Ping(context.Background()))
}
