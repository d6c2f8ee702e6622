package command

import "strings"

// defaultFillers - ведущие слова-паразиты, которые допускается пропускать
// перед wake-фразой ("эй", "hey", запятые и т.п.).
var defaultFillers = []string{"hey", "ok", "okay", "so", "эй", "окей", "ну"}

// Detector ищет wake-фразу в начале транскрипта. Набор слов-паразитов
// задаётся при создании, поэтому его можно подстроить под конкретного
// пользователя.
type Detector struct {
	fillers map[string]bool
}

// NewDetector создаёт детектор с указанными словами-паразитами.
// Без аргументов используется стандартный набор.
func NewDetector(fillers ...string) *Detector {
	if len(fillers) == 0 {
		fillers = defaultFillers
	}
	set := make(map[string]bool, len(fillers))
	for _, f := range fillers {
		set[strings.ToLower(strings.TrimSpace(f))] = true
	}
	return &Detector{fillers: set}
}

// Detect проверяет, начинается ли транскрипт с wake-фразы
// (без учёта регистра и знаков препинания). Возвращает остаток
// транскрипта после фразы и разделителя. Пустой остаток считается
// отсутствием команды - текст уходит в обычную диктовку.
func (d *Detector) Detect(transcript, wakePhrase string) (string, bool) {
	wake := tokenize(wakePhrase)
	if len(wake) == 0 {
		return "", false
	}

	tokens := tokenize(transcript)

	// Пропускаем ведущие слова-паразиты, но не дальше первого
	// совпадения с началом wake-фразы
	start := 0
	for start < len(tokens) && d.fillers[tokens[start]] && tokens[start] != wake[0] {
		start++
	}

	if len(tokens)-start < len(wake) {
		return "", false
	}
	for i, w := range wake {
		if tokens[start+i] != w {
			return "", false
		}
	}

	remainder := strings.Join(tokens[start+len(wake):], " ")
	if strings.TrimSpace(remainder) == "" {
		return "", false
	}
	return remainder, true
}

var defaultDetector = NewDetector()

// Detect - удобная обёртка над детектором со стандартным набором
// слов-паразитов.
func Detect(transcript, wakePhrase string) (string, bool) {
	return defaultDetector.Detect(transcript, wakePhrase)
}

// tokenize приводит текст к нижнему регистру и режет на слова,
// отбрасывая пунктуацию.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', '!', '?', ';', ':', '-', '—', '"', '\'':
			return ' '
		}
		return r
	}, strings.ToLower(text))

	return strings.Fields(cleaned)
}
