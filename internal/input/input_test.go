package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golos/internal/command"
)

func TestSplitCombo(t *testing.T) {
	mods, key, err := splitCombo("ctrl+shift+t")
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl", "shift"}, mods)
	assert.Equal(t, "t", key)
}

func TestSplitComboSingleKey(t *testing.T) {
	mods, key, err := splitCombo("Escape")
	require.NoError(t, err)
	assert.Empty(t, mods)
	assert.Equal(t, "escape", key)
}

func TestSplitComboNormalizesSpacesAndCase(t *testing.T) {
	mods, key, err := splitCombo(" Ctrl + Alt + Delete ")
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl", "alt"}, mods)
	assert.Equal(t, "delete", key)
}

func TestSplitComboAcceptsParsedVoiceCombo(t *testing.T) {
	// Голосовая команда "press control shift t" должна доходить до
	// инжектора в форме, которую splitCombo разбирает на модификаторы.
	cmds := command.Parse("press control shift t")
	require.Len(t, cmds, 1)

	mods, key, err := splitCombo(cmds[0].Arg)
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl", "shift"}, mods)
	assert.Equal(t, "t", key)
}

func TestSplitComboRejectsEmpty(t *testing.T) {
	_, _, err := splitCombo("")
	assert.Error(t, err)

	_, _, err = splitCombo("ctrl++t")
	assert.Error(t, err)

	_, _, err = splitCombo("ctrl+")
	assert.Error(t, err)
}
