// Package export writes a portable JSON snapshot of all user data.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mayflyapp/mayfly/internal/constants"
	"github.com/mayflyapp/mayfly/internal/models"
)

// Source is the subset of storage.Provider an export reads from
type Source interface {
	GetAllHabits() ([]models.Habit, error)
	GetAllTodos(showCompleted bool) ([]models.Todo, error)
	GetCharacterState() (models.CharacterState, error)
}

type Document struct {
	Version        string                `json:"version"`
	ExportedAt     time.Time             `json:"exportedAt"`
	Habits         []models.Habit        `json:"habits"`
	Todos          []models.Todo         `json:"todos"`
	CharacterState models.CharacterState `json:"characterState"`
}

// Build collects every habit, every todo including completed ones, and the character state.
func Build(src Source, now time.Time) (Document, error) {
	habits, err := src.GetAllHabits()
	if err != nil {
		return Document{}, fmt.Errorf("failed to load habits: %w", err)
	}
	todos, err := src.GetAllTodos(true)
	if err != nil {
		return Document{}, fmt.Errorf("failed to load todos: %w", err)
	}
	state, err := src.GetCharacterState()
	if err != nil {
		return Document{}, fmt.Errorf("failed to load character state: %w", err)
	}

	return Document{
		Version:        constants.ExportVersion,
		ExportedAt:     now.UTC(),
		Habits:         habits,
		Todos:          todos,
		CharacterState: state,
	}, nil
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteFile writes doc to path, creating parent directories as needed.
func WriteFile(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	return f.Close()
}

// DefaultFileName is the file name used when no output path is given.
func DefaultFileName(now time.Time) string {
	return constants.ExportFilePrefix + now.Format(constants.DateFormat) + ".json"
}
