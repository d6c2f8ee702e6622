package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueExecutesInSubmissionOrder(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Do(func() {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
			})
		}()
		// Последовательная отправка: даём горутине отправить задачу
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	require.Len(t, order, 10)
	for i, v := range order {
		assert.Equal(t, i, v)
	}
}

func TestQueueDoBlocksUntilDone(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	done := false
	require.NoError(t, q.Do(func() {
		time.Sleep(20 * time.Millisecond)
		done = true
	}))
	assert.True(t, done)
}

func TestQueueUnloadWaitsForInflightRun(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	var mu sync.Mutex
	var trace []string

	started := make(chan struct{})
	go q.Do(func() {
		close(started)
		// Имитация долгого нативного вызова
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		trace = append(trace, "run")
		mu.Unlock()
	})

	<-started
	// "Выгрузка", отправленная во время in-flight run
	require.NoError(t, q.Do(func() {
		mu.Lock()
		trace = append(trace, "free")
		mu.Unlock()
	}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"run", "free"}, trace)
}

func TestQueueClosedRejectsTasks(t *testing.T) {
	q := NewQueue()
	q.Close()

	assert.ErrorIs(t, q.Do(func() {}), ErrQueueClosed)

	// Повторный Close безопасен
	q.Close()
}

func TestQueueCloseDrainsSubmitted(t *testing.T) {
	q := NewQueue()

	ran := false
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		q.Do(func() {
			time.Sleep(20 * time.Millisecond)
			ran = true
		})
	}()

	time.Sleep(5 * time.Millisecond)
	q.Close()
	wg.Wait()
	assert.True(t, ran)
}
