package processing

import (
	"fmt"
	"strings"
)

// TemplateEngine - внешний коллаборатор подстановки шаблонов.
// Render - чистая функция без побочных эффектов.
type TemplateEngine interface {
	Render(template string, vars map[string]string) (string, error)
}

// Формат промптов - chatml, как ожидают инструкционные Qwen модели.
var builtinTemplates = map[string]string{
	"clean": `<|im_start|>system
Ты помощник для исправления ошибок распознавания речи. Исправь ошибки и расставь знаки препинания. Верни только исправленный текст без пояснений.<|im_end|>
<|im_start|>user
{{text}}<|im_end|>
<|im_start|>assistant
`,
	"structure": `<|im_start|>system
Оформи продиктованный текст: разбей на абзацы, оформи перечисления списками. Не меняй смысл. Верни только оформленный текст.<|im_end|>
<|im_start|>user
{{text}}<|im_end|>
<|im_start|>assistant
`,
	"code": `<|im_start|>system
Преобразуй продиктованное описание в фрагмент кода. Верни только код без пояснений и без markdown-ограждений.<|im_end|>
<|im_start|>user
{{text}}<|im_end|>
<|im_start|>assistant
`,
}

// DefaultTemplates - встроенный движок шаблонов: подстановка {{var}}.
type DefaultTemplates struct {
	custom map[string]string
}

// NewDefaultTemplates создаёт движок со встроенными шаблонами.
func NewDefaultTemplates() *DefaultTemplates {
	return &DefaultTemplates{custom: map[string]string{}}
}

// Register добавляет пользовательский шаблон.
func (d *DefaultTemplates) Register(id, template string) {
	d.custom[id] = template
}

// Lookup возвращает шаблон по ID: сначала пользовательские,
// затем встроенные.
func (d *DefaultTemplates) Lookup(id string) (string, bool) {
	if t, ok := d.custom[id]; ok {
		return t, true
	}
	t, ok := builtinTemplates[id]
	return t, ok
}

// Render подставляет переменные вида {{name}}.
func (d *DefaultTemplates) Render(template string, vars map[string]string) (string, error) {
	out := template
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}
	if i := strings.Index(out, "{{"); i >= 0 {
		return "", fmt.Errorf("неподставленная переменная шаблона: %s", out[i:min(i+24, len(out))])
	}
	return out, nil
}

// templateFor возвращает ID шаблона для режима.
func templateFor(mode Mode) string {
	switch mode.Kind {
	case ModeClean:
		return "clean"
	case ModeStructure:
		return "structure"
	case ModeCode:
		return "code"
	case ModePrompt, ModeCustom:
		return mode.TemplateID
	default:
		return ""
	}
}

// stripChatML убирает хвостовые chatml-теги из ответа модели.
func stripChatML(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "<|im_end|>"); idx != -1 {
		text = strings.TrimSpace(text[:idx])
	}
	return text
}
