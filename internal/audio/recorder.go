// Package audio предоставляет захват аудио с микрофона и первичную
// обработку сэмплов (кольцевой буфер, обрезка тишины).
package audio

import (
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// SampleRate - частота дискретизации (требование Whisper).
	SampleRate = 16000
	// Channels - количество каналов (mono).
	Channels = 1
	// FramesPerBuffer - размер буфера захвата.
	FramesPerBuffer = 1024
	// MaxRecordSeconds - ёмкость кольцевого буфера в секундах.
	MaxRecordSeconds = 30
	// MinSamples - минимальное количество сэмплов (200ms при 16kHz).
	// Whisper требует минимум 100ms, добавляем запас.
	MinSamples = SampleRate / 5
)

// Recorder записывает аудио с микрофона в кольцевой буфер.
// Цикл захвата пишет только через RingBuffer.Append и не блокируется
// ничем кроме его критической секции.
type Recorder struct {
	mu      sync.Mutex
	stream  *portaudio.Stream
	buffer  []float32
	ring    *RingBuffer
	running bool
	done    chan struct{}
}

// New создаёт Recorder, пишущий в переданный кольцевой буфер.
func New(ring *RingBuffer) (*Recorder, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	return &Recorder{
		buffer: make([]float32, FramesPerBuffer),
		ring:   ring,
	}, nil
}

// Start начинает запись аудио. Кольцевой буфер очищается,
// предыдущие сэмплы не попадают в новый цикл.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}

	r.ring.Reset()
	r.done = make(chan struct{})

	stream, err := portaudio.OpenDefaultStream(
		Channels,        // input channels
		0,               // output channels
		SampleRate,      // sample rate
		FramesPerBuffer, // frames per buffer
		r.buffer,        // buffer
	)
	if err != nil {
		return err
	}

	r.stream = stream
	r.running = true

	if err := stream.Start(); err != nil {
		r.stream.Close()
		r.stream = nil
		r.running = false
		return err
	}

	go r.recordLoop()

	return nil
}

func (r *Recorder) recordLoop() {
	defer close(r.done)

	for {
		r.mu.Lock()
		running := r.running
		stream := r.stream
		r.mu.Unlock()

		if !running || stream == nil {
			return
		}

		available, err := stream.AvailableToRead()
		if err != nil || available == 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		if err := stream.Read(); err != nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		r.ring.Append(r.buffer)
	}
}

// Stop останавливает запись. Сэмплы остаются в кольцевом буфере,
// их забирает вызывающий через RingBuffer.Drain.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}

	r.running = false
	stream := r.stream
	r.stream = nil
	done := r.done
	r.mu.Unlock()

	// Ждём завершения recordLoop (он проверяет running каждые 10ms)
	if done != nil {
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	if stream != nil {
		stream.Stop()
		stream.Close()
	}
}

// IsRecording возвращает true если идёт запись.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Close освобождает ресурсы PortAudio.
func (r *Recorder) Close() {
	r.Stop()
	portaudio.Terminate()
}
