// Package processing решает, как обработать распознанный текст перед
// вставкой: отдать как есть или прогнать через текстовый движок с
// подходящим промптом.
package processing

// ModeKind - вид режима обработки.
type ModeKind int

const (
	// ModeRaw - вставить транскрипт без обработки.
	ModeRaw ModeKind = iota
	// ModeClean - исправить ошибки распознавания и пунктуацию.
	ModeClean
	// ModeStructure - оформить в список/абзацы.
	ModeStructure
	// ModePrompt - пропустить через именованный шаблон промпта.
	ModePrompt
	// ModeCode - оформить как фрагмент кода.
	ModeCode
	// ModeCustom - пользовательский шаблон.
	ModeCustom
)

func (k ModeKind) String() string {
	switch k {
	case ModeClean:
		return "clean"
	case ModeStructure:
		return "structure"
	case ModePrompt:
		return "prompt"
	case ModeCode:
		return "code"
	case ModeCustom:
		return "custom"
	default:
		return "raw"
	}
}

// ParseModeKind разбирает строку из конфига. Неизвестные значения
// трактуются как raw - диктовка не должна ломаться из-за конфига.
func ParseModeKind(s string) ModeKind {
	switch s {
	case "clean":
		return ModeClean
	case "structure":
		return ModeStructure
	case "prompt":
		return ModePrompt
	case "code":
		return ModeCode
	case "custom":
		return ModeCustom
	default:
		return ModeRaw
	}
}

// Mode - режим обработки с необязательным шаблоном.
type Mode struct {
	Kind       ModeKind
	TemplateID string // для ModePrompt и ModeCustom
}

// RequiresTextEngine возвращает true для всех режимов кроме Raw.
func (m Mode) RequiresTextEngine() bool {
	return m.Kind != ModeRaw
}
