package audio

import "math"

const (
	// TrimWindow - размер окна энергетической огибающей (20ms при 16kHz).
	TrimWindow = SampleRate / 50
	// trimGuardWindows - запас окон вокруг найденной речи.
	trimGuardWindows = 1
)

// Trim обрезает ведущую и хвостовую тишину по энергетической огибающей.
// sensitivity в диапазоне [0, 1]: чем выше, тем тише звук считается речью.
// Если ни одно окно не превышает порог (чистая тишина), возвращает пустой
// срез - вызывающий пропускает распознавание, это не ошибка.
func Trim(samples []float32, sensitivity float64) []float32 {
	if len(samples) == 0 {
		return []float32{}
	}

	threshold := trimThreshold(sensitivity)

	first, last := -1, -1
	for start := 0; start < len(samples); start += TrimWindow {
		end := start + TrimWindow
		if end > len(samples) {
			end = len(samples)
		}
		if windowRMS(samples[start:end]) >= threshold {
			if first < 0 {
				first = start
			}
			last = end
		}
	}

	if first < 0 {
		return []float32{}
	}

	first -= trimGuardWindows * TrimWindow
	if first < 0 {
		first = 0
	}
	last += trimGuardWindows * TrimWindow
	if last > len(samples) {
		last = len(samples)
	}

	return samples[first:last]
}

// trimThreshold переводит чувствительность [0,1] в порог RMS.
// 0 -> 0.05 (грубо), 1 -> 0.005 (чутко).
func trimThreshold(sensitivity float64) float64 {
	if sensitivity < 0 {
		sensitivity = 0
	}
	if sensitivity > 1 {
		sensitivity = 1
	}
	return 0.05 - 0.045*sensitivity
}

func windowRMS(window []float32) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, s := range window {
		f := float64(s)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(window)))
}
