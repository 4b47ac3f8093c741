package cli

import (
	"fmt"
	"strings"

	"github.com/mayflyapp/mayfly/internal/models"
	"github.com/mayflyapp/mayfly/internal/storage"
)

// ResolveHabit finds a habit by full id, unique id prefix or case-insensitive name.
func ResolveHabit(store storage.Provider, ref string) (models.Habit, error) {
	if ref == "" {
		return models.Habit{}, fmt.Errorf("empty habit reference: %w", storage.ErrInvalidInput)
	}
	habits, err := store.GetAllHabits()
	if err != nil {
		return models.Habit{}, err
	}

	var matches []models.Habit
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
		if strings.HasPrefix(h.ID, ref) || strings.EqualFold(h.Name, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("habit %q is ambiguous (%d matches): %w", ref, len(matches), storage.ErrInvalidInput)
	}
}

// ResolveTodo finds a todo by full id or unique id prefix.
func ResolveTodo(store storage.Provider, ref string) (models.Todo, error) {
	if ref == "" {
		return models.Todo{}, fmt.Errorf("empty todo reference: %w", storage.ErrInvalidInput)
	}
	todos, err := store.GetAllTodos(true)
	if err != nil {
		return models.Todo{}, err
	}

	var matches []models.Todo
	for _, t := range todos {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return models.Todo{}, fmt.Errorf("todo %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Todo{}, fmt.Errorf("todo %q is ambiguous (%d matches): %w", ref, len(matches), storage.ErrInvalidInput)
	}
}
