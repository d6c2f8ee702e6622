package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleCommands(t *testing.T) {
	tests := []struct {
		text string
		want Command
	}{
		{"open safari", Command{Kind: KindOpenApp, Arg: "safari"}},
		{"open the terminal", Command{Kind: KindOpenApp, Arg: "terminal"}},
		{"Launch Firefox!", Command{Kind: KindOpenApp, Arg: "Firefox"}},
		{"открой браузер", Command{Kind: KindOpenApp, Arg: "браузер"}},
		{"switch to slack", Command{Kind: KindSwitchTo, Arg: "slack"}},
		{"переключись на хром", Command{Kind: KindSwitchTo, Arg: "хром"}},
		{"close window", Command{Kind: KindCloseWindow}},
		{"close the window", Command{Kind: KindCloseWindow}},
		{"close telegram", Command{Kind: KindCloseWindow, Arg: "telegram"}},
		{"quit spotify", Command{Kind: KindQuitApp, Arg: "spotify"}},
		{"hide discord", Command{Kind: KindHideApp, Arg: "discord"}},
		{"window left", Command{Kind: KindTileWindow, Direction: DirLeft}},
		{"snap the window to the right", Command{Kind: KindTileWindow, Direction: DirRight}},
		{"окно влево", Command{Kind: KindTileWindow, Direction: DirLeft}},
		{"maximize window", Command{Kind: KindTileWindow, Direction: DirFull}},
		{"volume up", Command{Kind: KindVolumeUp}},
		{"громче", Command{Kind: KindVolumeUp}},
		{"volume down", Command{Kind: KindVolumeDown}},
		{"set volume to 40 percent", Command{Kind: KindSetVolume, Level: 40}},
		{"громкость 70", Command{Kind: KindSetVolume, Level: 70}},
		{"mute", Command{Kind: KindToggleMute}},
		{"выключи звук", Command{Kind: KindToggleMute}},
		{"do not disturb", Command{Kind: KindToggleDoNotDisturb}},
		{"run shortcut daily notes", Command{Kind: KindRunShortcut, Arg: "daily notes"}},
		{"press control shift t", Command{Kind: KindPressKeys, Arg: "ctrl+shift+t"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Parse(tt.text)
			require.Len(t, got, 1, "должна распознаться ровно одна команда")
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestParseChainInOrder(t *testing.T) {
	got := Parse("open safari and then volume up")
	require.Len(t, got, 2)
	assert.Equal(t, Command{Kind: KindOpenApp, Arg: "safari"}, got[0])
	assert.Equal(t, Command{Kind: KindVolumeUp}, got[1])
}

func TestParseChainConnectives(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"open safari and volume up", 2},
		{"open safari then volume up", 2},
		{"open safari also mute", 2},
		{"открой терминал и потом громче", 2},
		{"open safari and then mute and then volume up", 3},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Len(t, Parse(tt.text), tt.want)
		})
	}
}

func TestParseDropsUnrecognizedSegments(t *testing.T) {
	// Частично понятая цепочка исполняет распознанные команды
	got := Parse("open safari and then mumble nonsense and then mute")
	require.Len(t, got, 2)
	assert.Equal(t, KindOpenApp, got[0].Kind)
	assert.Equal(t, KindToggleMute, got[1].Kind)
}

func TestParseNothingRecognizedReturnsEmpty(t *testing.T) {
	// Ложное срабатывание wake-фразы: ни один сегмент не команда
	assert.Empty(t, Parse("mumble nonsense"))
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("просто продиктованный текст ни о чём"))
}

func TestParseVolumeOutOfRangeRejected(t *testing.T) {
	assert.Empty(t, Parse("set volume to 150 percent"))
}

func TestParsePressKeyComboNormalized(t *testing.T) {
	// Произнесённые имена клавиш приводятся к форме, которую понимает
	// инжектор: модификаторы через "+", канонические имена.
	tests := []struct {
		text string
		want string
	}{
		{"press control shift t", "ctrl+shift+t"},
		{"press Control Plus T", "ctrl+t"},
		{"press command q", "super+q"},
		{"press option tab", "alt+tab"},
		{"press enter", "enter"},
		{"press ctrl+shift+t", "ctrl+shift+t"},
		{"нажми контрол шифт эн", "ctrl+shift+эн"},
		{"нажми контрол плюс энтер", "ctrl+enter"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Parse(tt.text)
			require.Len(t, got, 1)
			assert.Equal(t, KindPressKeys, got[0].Kind)
			assert.Equal(t, tt.want, got[0].Arg)
		})
	}
}

func TestParseTrailingPunctuationTolerated(t *testing.T) {
	got := Parse("open safari.")
	require.Len(t, got, 1)
	assert.Equal(t, "safari", got[0].Arg)
}
