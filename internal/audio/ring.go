package audio

import "sync"

// RingBuffer - кольцевой буфер аудио сэмплов фиксированной ёмкости.
// Накапливает сэмплы между началом и концом записи. При переполнении
// перезаписывает самые старые данные, никогда не растёт.
//
// Append вызывается из real-time цикла захвата аудио, поэтому внутри
// критической секции нет аллокаций, логирования и I/O.
type RingBuffer struct {
	mu    sync.Mutex
	data  []float32
	head  int // позиция следующей записи
	count int // количество валидных сэмплов (<= cap)
}

// NewRingBuffer создаёт буфер на capacity сэмплов.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = SampleRate * MaxRecordSeconds
	}
	return &RingBuffer{
		data: make([]float32, capacity),
	}
}

// Append добавляет сэмплы, перезаписывая самые старые при переполнении.
func (b *RingBuffer) Append(samples []float32) {
	if len(samples) == 0 {
		return
	}

	b.mu.Lock()

	// Если входной блок больше ёмкости, значимы только последние cap сэмплов
	if len(samples) >= len(b.data) {
		samples = samples[len(samples)-len(b.data):]
	}

	n := copy(b.data[b.head:], samples)
	if n < len(samples) {
		copy(b.data, samples[n:])
	}

	b.head = (b.head + len(samples)) % len(b.data)
	b.count += len(samples)
	if b.count > len(b.data) {
		b.count = len(b.data)
	}

	b.mu.Unlock()
}

// Drain атомарно копирует все валидные сэмплы (от старых к новым)
// и очищает буфер. Возвращает пустой срез если ничего не записано.
func (b *RingBuffer) Drain() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		return []float32{}
	}

	out := make([]float32, b.count)
	start := (b.head - b.count + len(b.data)) % len(b.data)
	n := copy(out, b.data[start:])
	if n < b.count {
		copy(out[n:], b.data)
	}

	b.head = 0
	b.count = 0
	return out
}

// Reset очищает буфер без реаллокации.
func (b *RingBuffer) Reset() {
	b.mu.Lock()
	b.head = 0
	b.count = 0
	b.mu.Unlock()
}

// Len возвращает количество валидных сэмплов.
func (b *RingBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Cap возвращает ёмкость буфера.
func (b *RingBuffer) Cap() int {
	return len(b.data)
}
