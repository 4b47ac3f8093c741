package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mayflyapp/mayfly/internal/constants"
	"github.com/mayflyapp/mayfly/internal/models"
	"github.com/mayflyapp/mayfly/internal/storage"
)

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertDefaultCharacter(db execer, now string) error {
	_, err := db.Exec(`
		INSERT OR IGNORE INTO character_state (id, mood, total_interactions, updated_at)
		VALUES (?, ?, 0, ?)`,
		constants.CharacterStateID, string(models.MoodHappy), now)
	return err
}

func (s *Store) ensureCharacterRow() error {
	return insertDefaultCharacter(s.db, s.timestamp())
}

// GetCharacterState returns the singleton character row, creating it on first access.
func (s *Store) GetCharacterState() (models.CharacterState, error) {
	if err := s.ensureCharacterRow(); err != nil {
		return models.CharacterState{}, fmt.Errorf("failed to initialize character state: %w", err)
	}

	var state models.CharacterState
	var mood, updatedAt string
	var lastInteraction sql.NullString
	err := s.db.QueryRow(`
		SELECT mood, total_interactions, last_interaction_date, updated_at
		FROM character_state WHERE id = ?`, constants.CharacterStateID).
		Scan(&mood, &state.TotalInteractions, &lastInteraction, &updatedAt)
	if err != nil {
		return models.CharacterState{}, fmt.Errorf("failed to read character state: %w", err)
	}

	state.Mood = models.Mood(mood)
	if lastInteraction.Valid {
		t, err := parseTimestamp(lastInteraction.String, "last_interaction_date", "character")
		if err != nil {
			return models.CharacterState{}, err
		}
		state.LastInteractionDate = &t
	}
	if state.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at", "character"); err != nil {
		return models.CharacterState{}, err
	}
	return state, nil
}

func (s *Store) UpdateCharacterMood(mood models.Mood) error {
	if err := mood.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, storage.ErrInvalidInput)
	}
	if err := s.ensureCharacterRow(); err != nil {
		return err
	}

	_, err := s.db.Exec("UPDATE character_state SET mood = ?, updated_at = ? WHERE id = ?",
		string(mood), s.timestamp(), constants.CharacterStateID)
	return err
}

func (s *Store) IncrementInteractions() error {
	if err := s.ensureCharacterRow(); err != nil {
		return err
	}

	now := s.timestamp()
	_, err := s.db.Exec(`
		UPDATE character_state
		SET total_interactions = total_interactions + 1, last_interaction_date = ?, updated_at = ?
		WHERE id = ?`,
		now, now, constants.CharacterStateID)
	return err
}

// UpdateCharacterState sets the mood and counts one interaction. The two
// writes are sequential, not a single transaction; both finish before it returns.
func (s *Store) UpdateCharacterState(mood models.Mood) error {
	if err := s.UpdateCharacterMood(mood); err != nil {
		return err
	}
	return s.IncrementInteractions()
}
