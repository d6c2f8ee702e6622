package processing

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// TextEngine - то, что роутеру нужно от текстового движка.
type TextEngine interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
	IsLoaded() bool
}

// TemplateLookup расширяет TemplateEngine поиском шаблона по ID.
type TemplateLookup interface {
	TemplateEngine
	Lookup(id string) (string, bool)
}

// maxGenerateTokens - потолок генерации на один цикл диктовки.
const maxGenerateTokens = 512

// Router выбирает путь обработки транскрипта по режиму.
// Текстовый движок - необязательная роскошь: его отсутствие или ошибка
// деградирует до сырого транскрипта, но никогда не блокирует диктовку.
type Router struct {
	engine    TextEngine
	templates TemplateLookup
}

// NewRouter создаёт роутер. engine может быть nil - тогда все режимы
// кроме Raw деградируют до сырого текста.
func NewRouter(engine TextEngine, templates TemplateLookup) *Router {
	return &Router{engine: engine, templates: templates}
}

// Route возвращает текст для вставки. Для Raw - транскрипт без единого
// вызова движка. Для остальных режимов - результат генерации, либо
// сырой транскрипт при недоступности или ошибке движка.
func (r *Router) Route(ctx context.Context, transcript string, mode Mode) string {
	if !mode.RequiresTextEngine() {
		return transcript
	}

	if r.engine == nil || !r.engine.IsLoaded() {
		log.Printf("Режим %s без текстового движка: вставляем сырой текст", mode.Kind)
		return transcript
	}

	prompt, err := r.renderPrompt(transcript, mode)
	if err != nil {
		log.Printf("Ошибка шаблона режима %s: %v", mode.Kind, err)
		return transcript
	}

	generated, err := r.engine.Generate(ctx, prompt, maxGenerateTokens)
	if err != nil {
		log.Printf("Ошибка генерации в режиме %s: %v", mode.Kind, err)
		return transcript
	}

	cleaned := stripChatML(generated)
	if strings.TrimSpace(cleaned) == "" {
		return transcript
	}
	return cleaned
}

func (r *Router) renderPrompt(transcript string, mode Mode) (string, error) {
	id := templateFor(mode)
	template, ok := r.templates.Lookup(id)
	if !ok {
		return "", fmt.Errorf("шаблон не найден: %q", id)
	}
	return r.templates.Render(template, map[string]string{"text": transcript})
}
