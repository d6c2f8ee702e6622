package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golos/internal/engine"
)

const (
	// DefaultOllamaURL адрес локального Ollama сервера.
	DefaultOllamaURL = "http://localhost:11434"
	// DefaultOllamaModel модель по умолчанию.
	DefaultOllamaModel = "qwen2.5:0.5b"
	// DefaultOllamaTimeout таймаут одного запроса генерации.
	DefaultOllamaTimeout = 30 * time.Second
)

// OllamaClient - Generator поверх локального Ollama сервера.
// Запасной текстовый движок когда GGUF модель не загружена в процесс.
type OllamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// OllamaConfig конфигурация клиента Ollama.
type OllamaConfig struct {
	URL     string
	Model   string
	Timeout time.Duration
}

// NewOllama создаёт клиент Ollama.
func NewOllama(cfg OllamaConfig) *OllamaClient {
	url := cfg.URL
	if url == "" {
		url = DefaultOllamaURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOllamaModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultOllamaTimeout
	}

	return &OllamaClient{
		baseURL:    url,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name возвращает название движка.
func (c *OllamaClient) Name() string {
	return "ollama"
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate выполняет запрос /api/generate без стриминга.
func (c *OllamaClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = 256
	}

	body, err := json.Marshal(ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": 0.1,
			"num_predict": maxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("запрос к Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", &engine.InferenceError{Engine: "ollama", Code: resp.StatusCode}
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ответ Ollama: %w", err)
	}

	return strings.TrimSpace(out.Response), nil
}

// Close для HTTP клиента ничего не освобождает.
func (c *OllamaClient) Close() {}

// Ping проверяет доступность сервера.
func (c *OllamaClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ollama недоступен: %s", resp.Status)
	}
	return nil
}
