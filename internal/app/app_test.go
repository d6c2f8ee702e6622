package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInjector struct {
	typed []string
	err   error
}

func (r *recordingInjector) Type(text string) error {
	if r.err != nil {
		return r.err
	}
	r.typed = append(r.typed, text)
	return nil
}

func TestNotifyingInjectorReportsOnSuccess(t *testing.T) {
	inner := &recordingInjector{}
	var notified []string
	inj := &notifyingInjector{
		inner:    inner,
		onInject: func(text string) { notified = append(notified, text) },
	}

	require.NoError(t, inj.Type("привет мир"))

	assert.Equal(t, []string{"привет мир"}, inner.typed)
	assert.Equal(t, []string{"привет мир"}, notified)
}

func TestNotifyingInjectorSilentOnFailure(t *testing.T) {
	inner := &recordingInjector{err: errors.New("окно не в фокусе")}
	var notified []string
	inj := &notifyingInjector{
		inner:    inner,
		onInject: func(text string) { notified = append(notified, text) },
	}

	assert.Error(t, inj.Type("привет"))
	assert.Empty(t, notified, "об ошибке вставки сообщает автомат, не инжектор")
}

func TestNotifyingInjectorNilCallback(t *testing.T) {
	inj := &notifyingInjector{inner: &recordingInjector{}}
	assert.NoError(t, inj.Type("текст"))
}
