package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// tone генерирует синус 440Hz заданной амплитуды.
func tone(n int, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*440*float64(i)/float64(SampleRate)))
	}
	return out
}

func TestTrimAllZeroReturnsEmpty(t *testing.T) {
	for _, n := range []int{0, 1, TrimWindow - 1, TrimWindow, SampleRate * 2} {
		got := Trim(make([]float32, n), 0.5)
		assert.Empty(t, got, "длина %d", n)
	}
}

func TestTrimQuietNoiseBelowThreshold(t *testing.T) {
	// Шум с амплитудой сильно ниже порога при низкой чувствительности
	got := Trim(tone(SampleRate, 0.001), 0.0)
	assert.Empty(t, got)
}

func TestTrimKnownOnsetOffset(t *testing.T) {
	silence := SampleRate / 2 // 500ms
	speech := SampleRate      // 1s

	samples := make([]float32, 0, 2*silence+speech)
	samples = append(samples, make([]float32, silence)...)
	samples = append(samples, tone(speech, 0.5)...)
	samples = append(samples, make([]float32, silence)...)

	got := Trim(samples, 0.5)

	// Границы совпадают с onset/offset с точностью до окна + guard
	tolerance := 2 * TrimWindow
	assert.InDelta(t, speech, len(got), float64(2*tolerance))
	assert.NotEmpty(t, got)
}

func TestTrimNoSilenceKeepsEverything(t *testing.T) {
	samples := tone(SampleRate, 0.5)
	got := Trim(samples, 0.5)
	assert.Equal(t, len(samples), len(got))
}

func TestTrimDeterministic(t *testing.T) {
	samples := append(make([]float32, TrimWindow*3), tone(TrimWindow*10, 0.3)...)
	a := Trim(samples, 0.7)
	b := Trim(samples, 0.7)
	assert.Equal(t, a, b)
}

func TestTrimSensitivityMonotonic(t *testing.T) {
	// Тихий сигнал: при высокой чувствительности находится, при низкой нет
	samples := append(make([]float32, TrimWindow*5), tone(TrimWindow*10, 0.02)...)

	assert.Empty(t, Trim(samples, 0.0))
	assert.NotEmpty(t, Trim(samples, 1.0))
}
