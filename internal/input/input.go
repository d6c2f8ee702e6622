// Package input предоставляет ввод текста и эмуляцию клавиш в активном окне.
package input

import (
	"context"
	"fmt"
	"strings"
)

// Typer вводит текст в активное поле ввода.
type Typer interface {
	// Type вводит текст в текущее активное поле.
	Type(text string) error
}

// Presser эмулирует нажатие комбинации клавиш вида "ctrl+shift+t".
type Presser interface {
	Press(ctx context.Context, combo string) error
}

// New создаёт платформо-специфичный Typer.
func New() (Typer, error) {
	return newTyper()
}

// NewPresser создаёт платформо-специфичный Presser.
func NewPresser() (Presser, error) {
	return newPresser()
}

// splitCombo разбирает комбинацию на модификаторы и клавишу.
// Последний сегмент - клавиша, остальные - модификаторы.
func splitCombo(combo string) (mods []string, key string, err error) {
	trimmed := strings.ToLower(strings.TrimSpace(combo))
	if trimmed == "" {
		return nil, "", fmt.Errorf("пустая комбинация клавиш")
	}
	parts := strings.Split(trimmed, "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil, "", fmt.Errorf("пустой сегмент в комбинации %q", combo)
		}
	}
	return parts[:len(parts)-1], parts[len(parts)-1], nil
}
