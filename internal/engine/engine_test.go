package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycleHappyPath(t *testing.T) {
	var l Lifecycle
	assert.Equal(t, StateUnloaded, l.State())

	require.NoError(t, l.BeginLoad())
	assert.Equal(t, StateLoading, l.State())

	l.FinishLoad(true)
	assert.Equal(t, StateLoaded, l.State())
	assert.True(t, l.IsLoaded())

	require.NoError(t, l.BeginUnload())
	assert.Equal(t, StateUnloading, l.State())

	l.FinishUnload()
	assert.Equal(t, StateUnloaded, l.State())
}

func TestLifecycleLoadFailureRollsBack(t *testing.T) {
	var l Lifecycle
	require.NoError(t, l.BeginLoad())
	l.FinishLoad(false)
	assert.Equal(t, StateUnloaded, l.State())

	// После отката можно грузить снова
	assert.NoError(t, l.BeginLoad())
}

func TestLifecycleForbidsHotSwap(t *testing.T) {
	var l Lifecycle
	require.NoError(t, l.BeginLoad())
	l.FinishLoad(true)

	// Loaded→Loading запрещён: сначала выгрузка
	assert.ErrorIs(t, l.BeginLoad(), ErrAlreadyLoaded)

	require.NoError(t, l.BeginUnload())
	assert.ErrorIs(t, l.BeginLoad(), ErrBusy)
	l.FinishUnload()
	assert.NoError(t, l.BeginLoad())
}

func TestLifecycleUnloadUnloaded(t *testing.T) {
	var l Lifecycle
	assert.ErrorIs(t, l.BeginUnload(), ErrNotLoaded)
}
