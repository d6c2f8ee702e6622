package engine

import "fmt"

// AllocStep - один шаг выделения нативного ресурса.
// Alloc возвращает функцию освобождения ресурса или ошибку.
type AllocStep struct {
	Name  string
	Alloc func() (free func(), err error)
}

// AcquireAll выполняет шаги по порядку. Если шаг N падает, уже
// выделенные ресурсы освобождаются в обратном порядке до возврата
// ошибки - частичная загрузка никогда не течёт.
//
// Возвращённая функция освобождает все ресурсы строго в обратном
// порядке выделения и идемпотентна: порядок зашит здесь, а не
// оставлен на совесть вызывающих.
func AcquireAll(steps []AllocStep) (func(), error) {
	frees := make([]func(), 0, len(steps))

	releaseReverse := func() {
		for i := len(frees) - 1; i >= 0; i-- {
			frees[i]()
		}
		frees = nil
	}

	for _, step := range steps {
		free, err := step.Alloc()
		if err != nil {
			releaseReverse()
			return nil, fmt.Errorf("%s: %w", step.Name, err)
		}
		frees = append(frees, free)
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		releaseReverse()
	}, nil
}
