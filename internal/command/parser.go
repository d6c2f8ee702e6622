package command

import (
	"regexp"
	"strconv"
	"strings"
)

// connectives - связки цепочки команд. Порядок важен: более длинные
// проверяются первыми, чтобы "and then" не разрезался по "and".
var connectives = []string{
	"and then",
	"и потом",
	"а затем",
	"then",
	"потом",
	"затем",
	"also",
	"а также",
	"and",
	"и",
}

// intentPattern - один элемент таблицы намерений: регулярное выражение
// и конструктор команды из групп захвата. Таблица данных, а не ветвления:
// новые намерения добавляются строкой, не кодом.
type intentPattern struct {
	re    *regexp.Regexp
	build func(groups []string) (Command, bool)
}

var intentTable = []intentPattern{
	// Громкость с указанием уровня - до общих volume-команд
	{
		re: regexp.MustCompile(`(?i)^(?:set\s+)?(?:volume|громкость)\s+(?:to\s+|на\s+)?(\d{1,3})(?:\s*(?:percent|%|процентов))?$`),
		build: func(g []string) (Command, bool) {
			level, err := strconv.Atoi(g[1])
			if err != nil || level > 100 {
				return Command{}, false
			}
			return Command{Kind: KindSetVolume, Level: level}, true
		},
	},
	{
		re:    regexp.MustCompile(`(?i)^(?:volume\s+up|louder|громче|громкость\s+выше)$`),
		build: func(g []string) (Command, bool) { return Command{Kind: KindVolumeUp}, true },
	},
	{
		re:    regexp.MustCompile(`(?i)^(?:volume\s+down|quieter|тише|громкость\s+ниже)$`),
		build: func(g []string) (Command, bool) { return Command{Kind: KindVolumeDown}, true },
	},
	{
		re:    regexp.MustCompile(`(?i)^(?:mute|unmute|toggle\s+mute|без\s+звука|звук|выключи\s+звук|включи\s+звук)$`),
		build: func(g []string) (Command, bool) { return Command{Kind: KindToggleMute}, true },
	},
	{
		re:    regexp.MustCompile(`(?i)^(?:do\s+not\s+disturb|dnd|не\s+беспокоить|режим\s+не\s+беспокоить)$`),
		build: func(g []string) (Command, bool) { return Command{Kind: KindToggleDoNotDisturb}, true },
	},
	{
		re: regexp.MustCompile(`(?i)^(?:tile|snap|move)?\s*(?:the\s+)?(?:window|окно)\s+(?:to\s+(?:the\s+)?|в|на)?\s*(left|right|top|bottom|налево|влево|направо|вправо|вверх|вниз|наверх)$`),
		build: func(g []string) (Command, bool) {
			return Command{Kind: KindTileWindow, Direction: parseDirection(g[1])}, true
		},
	},
	{
		re:    regexp.MustCompile(`(?i)^(?:maximize|fullscreen|разверни)\s*(?:the\s+)?(?:window|окно)?$`),
		build: func(g []string) (Command, bool) { return Command{Kind: KindTileWindow, Direction: DirFull}, true },
	},
	{
		re: regexp.MustCompile(`(?i)^(?:run|запусти)\s+(?:shortcut|сценарий|ярлык)\s+(.+)$`),
		build: func(g []string) (Command, bool) {
			return Command{Kind: KindRunShortcut, Arg: cleanName(g[1])}, true
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(?:press|нажми)\s+(.+)$`),
		build: func(g []string) (Command, bool) {
			combo, ok := parseKeyCombo(g[1])
			if !ok {
				return Command{}, false
			}
			return Command{Kind: KindPressKeys, Arg: combo}, true
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(?:switch\s+to|go\s+to|переключись\s+на|перейди\s+в)\s+(.+)$`),
		build: func(g []string) (Command, bool) {
			return Command{Kind: KindSwitchTo, Arg: cleanName(g[1])}, true
		},
	},
	{
		re:    regexp.MustCompile(`(?i)^(?:close|закрой)\s*(?:the\s+)?(?:window|окно)$`),
		build: func(g []string) (Command, bool) { return Command{Kind: KindCloseWindow}, true },
	},
	{
		re: regexp.MustCompile(`(?i)^(?:close|закрой)\s+(.+)$`),
		build: func(g []string) (Command, bool) {
			return Command{Kind: KindCloseWindow, Arg: cleanName(g[1])}, true
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(?:quit|выйди\s+из|заверши)\s+(.+)$`),
		build: func(g []string) (Command, bool) {
			return Command{Kind: KindQuitApp, Arg: cleanName(g[1])}, true
		},
	},
	{
		re: regexp.MustCompile(`(?i)^(?:hide|скрой|сверни)\s+(.+)$`),
		build: func(g []string) (Command, bool) {
			return Command{Kind: KindHideApp, Arg: cleanName(g[1])}, true
		},
	},
	// open в конце: самый общий глагол
	{
		re: regexp.MustCompile(`(?i)^(?:open|launch|start|открой|запусти)\s+(.+)$`),
		build: func(g []string) (Command, bool) {
			return Command{Kind: KindOpenApp, Arg: cleanName(g[1])}, true
		},
	},
}

// Parse разбирает текст после wake-фразы в упорядоченную цепочку команд.
// Нераспознанные сегменты молча выпадают из цепочки (частично понятая
// цепочка всё равно исполняется). Если не распознан ни один сегмент,
// возвращается пустой список - вызывающий трактует это как "не команда"
// (ложное срабатывание wake-фразы уходит в диктовку).
func Parse(text string) []Command {
	var commands []Command
	for _, segment := range splitChain(text) {
		if cmd, ok := matchIntent(segment); ok {
			commands = append(commands, cmd)
		}
	}
	return commands
}

// splitChain режет текст по связкам на сегменты.
func splitChain(text string) []string {
	segments := []string{strings.TrimSpace(text)}

	for _, conn := range connectives {
		var next []string
		pattern := regexp.MustCompile(`(?i)\s+` + regexp.QuoteMeta(conn) + `\s+`)
		for _, seg := range segments {
			for _, part := range pattern.Split(seg, -1) {
				part = strings.TrimSpace(part)
				if part != "" {
					next = append(next, part)
				}
			}
		}
		segments = next
	}

	return segments
}

func matchIntent(segment string) (Command, bool) {
	segment = strings.TrimRight(strings.TrimSpace(segment), ".,!?;")
	for _, p := range intentTable {
		if groups := p.re.FindStringSubmatch(segment); groups != nil {
			if cmd, ok := p.build(groups); ok {
				return cmd, true
			}
		}
	}
	return Command{}, false
}

// cleanName убирает хвостовую пунктуацию и артикли из имени аргумента.
func cleanName(name string) string {
	name = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(name), ".,!?;"))
	lower := strings.ToLower(name)
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(lower, article) {
			name = name[len(article):]
			break
		}
	}
	return strings.TrimSpace(name)
}

// spokenKeys переводит произносимые имена клавиш в канонические токены
// комбинации. Модификаторы приводятся к ctrl/shift/alt/super, остальные
// клавиши - к именам, понятным инжектору.
var spokenKeys = map[string]string{
	"control":  "ctrl",
	"ctrl":     "ctrl",
	"контрол":  "ctrl",
	"контроль": "ctrl",
	"shift":    "shift",
	"шифт":     "shift",
	"alt":      "alt",
	"альт":     "alt",
	"option":   "alt",
	"опшен":    "alt",
	"command":  "super",
	"cmd":      "super",
	"super":    "super",
	"win":      "super",
	"windows":  "super",
	"супер":    "super",
	"enter":    "enter",
	"энтер":    "enter",
	"ввод":     "enter",
	"escape":   "escape",
	"esc":      "escape",
	"эскейп":   "escape",
	"space":    "space",
	"пробел":   "space",
	"tab":      "tab",
	"таб":      "tab",
	"delete":   "delete",
	"делит":    "delete",
}

// parseKeyCombo собирает произнесённую комбинацию ("control shift t",
// "контрол плюс эф") в форму "ctrl+shift+t", которую понимает инжектор.
func parseKeyCombo(arg string) (string, bool) {
	arg = strings.TrimRight(strings.TrimSpace(arg), ".,!?;")
	var parts []string
	for _, token := range strings.Fields(strings.ToLower(arg)) {
		token = strings.Trim(token, "+")
		switch token {
		case "", "plus", "плюс":
			continue
		}
		if canon, ok := spokenKeys[token]; ok {
			parts = append(parts, canon)
			continue
		}
		parts = append(parts, token)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "+"), true
}

func parseDirection(word string) Direction {
	switch strings.ToLower(word) {
	case "left", "налево", "влево":
		return DirLeft
	case "right", "направо", "вправо":
		return DirRight
	case "top", "вверх", "наверх":
		return DirTop
	case "bottom", "вниз":
		return DirBottom
	default:
		return DirFull
	}
}
