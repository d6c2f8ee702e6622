// Package engine содержит общую обвязку жизненного цикла нативных
// движков инференса: выделенную последовательную очередь, конечный
// автомат загрузки/выгрузки и типизированные ошибки.
//
// Нативные вызовы одного движка никогда не исполняются параллельно
// друг с другом или с его собственной выгрузкой.
package engine

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrAllocationFailed - нативный движок не смог инициализироваться.
	ErrAllocationFailed = errors.New("не удалось выделить нативный ресурс")
	// ErrNotLoaded - операция над невыгруженным движком.
	ErrNotLoaded = errors.New("движок не загружен")
	// ErrAlreadyLoaded - загрузка поверх уже загруженного движка.
	// Смена модели - всегда выгрузка, затем загрузка.
	ErrAlreadyLoaded = errors.New("движок уже загружен")
	// ErrBusy - движок в переходном состоянии (Loading/Unloading).
	ErrBusy = errors.New("движок занят переходом состояния")
)

// InferenceError - нативный вызов вернул код ошибки.
type InferenceError struct {
	Engine string
	Code   int
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("ошибка инференса %s: код %d", e.Engine, e.Code)
}

// State - состояние жизненного цикла движка.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateUnloading
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateUnloading:
		return "unloading"
	default:
		return "unloaded"
	}
}

// Lifecycle - конечный автомат Unloaded→Loading→Loaded→Unloading→Unloaded.
// Loading может откатиться в Unloaded при ошибке. Переход Loaded→Loading
// запрещён: горячая замена модели не допускается.
type Lifecycle struct {
	mu    sync.Mutex
	state State
}

// State возвращает текущее состояние.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// IsLoaded возвращает true в состоянии Loaded.
func (l *Lifecycle) IsLoaded() bool {
	return l.State() == StateLoaded
}

// BeginLoad переводит Unloaded→Loading.
func (l *Lifecycle) BeginLoad() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateUnloaded:
		l.state = StateLoading
		return nil
	case StateLoaded:
		return ErrAlreadyLoaded
	default:
		return ErrBusy
	}
}

// FinishLoad завершает загрузку: Loading→Loaded при успехе,
// Loading→Unloaded при неудаче.
func (l *Lifecycle) FinishLoad(ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateLoading {
		return
	}
	if ok {
		l.state = StateLoaded
	} else {
		l.state = StateUnloaded
	}
}

// BeginUnload переводит Loaded→Unloading. Для незагруженного движка
// возвращает ErrNotLoaded - выгрузка тогда не нужна.
func (l *Lifecycle) BeginUnload() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case StateLoaded:
		l.state = StateUnloading
		return nil
	case StateUnloaded:
		return ErrNotLoaded
	default:
		return ErrBusy
	}
}

// FinishUnload завершает выгрузку: Unloading→Unloaded.
func (l *Lifecycle) FinishUnload() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateUnloading {
		l.state = StateUnloaded
	}
}
