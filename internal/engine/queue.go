package engine

import (
	"errors"
	"sync"
)

// ErrQueueClosed - задача отправлена в закрытую очередь.
var ErrQueueClosed = errors.New("очередь движка закрыта")

// Queue - выделенная последовательная очередь исполнения движка.
// Задачи исполняются одной горутиной строго в порядке отправки:
// Do(unload), отправленный после Do(run), дождётся завершения run
// прежде чем освобождать что-либо.
type Queue struct {
	mu     sync.Mutex
	tasks  chan func()
	closed bool
	done   chan struct{}
}

// NewQueue создаёт и запускает очередь.
func NewQueue() *Queue {
	q := &Queue{
		tasks: make(chan func()),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for task := range q.tasks {
		task()
	}
}

// Do исполняет fn на очереди и блокируется до её завершения.
// Вызывающий поток никогда не исполняет fn сам.
func (q *Queue) Do(fn func()) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	finished := make(chan struct{})
	q.tasks <- func() {
		defer close(finished)
		fn()
	}
	q.mu.Unlock()

	<-finished
	return nil
}

// Close останавливает очередь, дождавшись уже отправленных задач.
// Повторный вызов безопасен.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()

	<-q.done
}
