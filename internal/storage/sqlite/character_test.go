package sqlite

import (
	"errors"
	"testing"

	"github.com/mayflyapp/mayfly/internal/models"
	"github.com/mayflyapp/mayfly/internal/storage"
)

func TestGetCharacterStateDefaults(t *testing.T) {
	store, _ := setupTestStore(t)

	state, err := store.GetCharacterState()
	if err != nil {
		t.Fatalf("GetCharacterState failed: %v", err)
	}
	if state.Mood != models.MoodHappy || state.TotalInteractions != 0 || state.LastInteractionDate != nil {
		t.Errorf("expected default state, got %+v", state)
	}
}

func TestGetCharacterStateCreatesMissingRow(t *testing.T) {
	store, _ := setupTestStore(t)

	if _, err := store.db.Exec("DELETE FROM character_state"); err != nil {
		t.Fatalf("failed to remove character row: %v", err)
	}

	state, err := store.GetCharacterState()
	if err != nil {
		t.Fatalf("GetCharacterState failed: %v", err)
	}
	if state.Mood != models.MoodHappy {
		t.Errorf("expected recreated row with happy mood, got %q", state.Mood)
	}
	if n := countRows(t, store.db, "SELECT COUNT(*) FROM character_state"); n != 1 {
		t.Errorf("expected exactly one character row, got %d", n)
	}
}

func TestUpdateCharacterState(t *testing.T) {
	store, _ := setupTestStore(t)

	for i, mood := range []models.Mood{models.MoodCelebrating, models.MoodEncouraging} {
		if err := store.UpdateCharacterState(mood); err != nil {
			t.Fatalf("UpdateCharacterState(%s) failed: %v", mood, err)
		}

		state, err := store.GetCharacterState()
		if err != nil {
			t.Fatalf("GetCharacterState failed: %v", err)
		}
		if state.Mood != mood {
			t.Errorf("expected mood %s, got %s", mood, state.Mood)
		}
		if state.TotalInteractions != i+1 {
			t.Errorf("expected %d interactions, got %d", i+1, state.TotalInteractions)
		}
		if state.LastInteractionDate == nil {
			t.Error("expected last interaction date to be set")
		}
	}
}

func TestUpdateCharacterMoodRejectsUnknownMood(t *testing.T) {
	store, _ := setupTestStore(t)

	err := store.UpdateCharacterState(models.Mood("grumpy"))
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	state, err := store.GetCharacterState()
	if err != nil {
		t.Fatalf("GetCharacterState failed: %v", err)
	}
	if state.Mood != models.MoodHappy || state.TotalInteractions != 0 {
		t.Errorf("expected state unchanged, got %+v", state)
	}
}
