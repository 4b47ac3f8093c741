package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mayflyapp/mayfly/internal/logger"
	"github.com/mayflyapp/mayfly/internal/models"
	"github.com/mayflyapp/mayfly/internal/storage"
	"github.com/mayflyapp/mayfly/internal/utils"
)

const habitColumns = `id, name, color, icon, streak, last_completed_date, completed_today, created_at, updated_at`

// scanHabit reads one habits row. CompletedToday is derived from the stored
// flag and the last completion day so a missed rollover never leaks into reads.
func scanHabit(row scanner, today string) (models.Habit, error) {
	var h models.Habit
	var color, icon, lastCompleted sql.NullString
	var completedToday int
	var createdAt, updatedAt string

	if err := row.Scan(&h.ID, &h.Name, &color, &icon, &h.Streak, &lastCompleted, &completedToday, &createdAt, &updatedAt); err != nil {
		return models.Habit{}, err
	}

	h.Color = color.String
	h.Icon = icon.String
	h.LastCompletedDate = lastCompleted.String
	h.CompletedToday = completedToday == 1 && lastCompleted.Valid && lastCompleted.String == today

	var err error
	if h.CreatedAt, err = parseTimestamp(createdAt, "created_at", h.ID); err != nil {
		return models.Habit{}, err
	}
	if h.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at", h.ID); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

func (s *Store) CreateHabit(name, color, icon string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, fmt.Errorf("habit name cannot be empty: %w", storage.ErrInvalidInput)
	}

	if color == "" {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
			return models.Habit{}, fmt.Errorf("failed to count habits: %w", err)
		}
		color = models.HabitColor(count)
	}

	id := uuid.New().String()
	now := s.timestamp()
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, color, icon, streak, completed_today, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, 0, ?, ?)`,
		id, name, color, nullIfEmpty(icon), now, now)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to create habit: %w", err)
	}

	logger.Debug("Created habit", "id", id, "name", name, "color", color)
	return s.GetHabit(id)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow("SELECT "+habitColumns+" FROM habits WHERE id = ?", id)

	h, err := scanHabit(row, s.Today())
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// GetAllHabits returns habits in creation order, the order that drives colour
// assignment and default layout.
func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query("SELECT " + habitColumns + " FROM habits ORDER BY created_at ASC, rowid ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	today := s.Today()
	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows, today)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) CompleteHabit(id string) (models.Habit, error) {
	now := s.now()
	today := utils.DayOf(now, s.loc)

	err := s.withTx(func(tx *sql.Tx) error {
		return completeHabitTx(tx, id, today, now)
	})
	if err != nil {
		return models.Habit{}, err
	}
	return s.GetHabit(id)
}

// completeHabitTx performs the read-compute-write of the streak and appends the
// completion log row inside one transaction.
func completeHabitTx(tx *sql.Tx, id, today string, now time.Time) error {
	var streak, completedToday int
	var lastCompleted sql.NullString

	err := tx.QueryRow(`SELECT streak, last_completed_date, completed_today FROM habits WHERE id = ?`, id).
		Scan(&streak, &lastCompleted, &completedToday)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read habit %s: %w", id, err)
	}

	if completedToday == 1 && lastCompleted.String == today {
		return nil
	}

	newStreak, err := utils.NextStreak(streak, lastCompleted.String, today)
	if err != nil {
		return fmt.Errorf("failed to compute streak for habit %s: %w", id, err)
	}

	ts := utils.FormatTimestamp(now)
	if _, err := tx.Exec(`
		UPDATE habits
		SET streak = ?, last_completed_date = ?, completed_today = 1, updated_at = ?
		WHERE id = ?`,
		newStreak, today, ts, id); err != nil {
		return fmt.Errorf("failed to update habit %s: %w", id, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO habit_completions (id, habit_id, completed_date, created_at)
		VALUES (?, ?, ?, ?)`,
		uuid.New().String(), id, today, ts); err != nil {
		return fmt.Errorf("failed to record completion for habit %s: %w", id, err)
	}

	if newStreak == 1 && streak > 0 {
		logger.Debug("Habit streak reset", "id", id, "previous", streak, "last", lastCompleted.String)
	}
	return nil
}

func (s *Store) UpdateHabit(id string, update models.HabitUpdate) (models.Habit, error) {
	var sets []string
	var args []any

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return models.Habit{}, fmt.Errorf("habit name cannot be empty: %w", storage.ErrInvalidInput)
		}
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if update.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, nullIfEmpty(*update.Color))
	}
	if update.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, nullIfEmpty(*update.Icon))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, s.timestamp(), id)

	result, err := s.db.Exec("UPDATE habits SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to update habit %s: %w", id, err)
	}
	if err := requireAffected(result, "habit", id); err != nil {
		return models.Habit{}, err
	}
	return s.GetHabit(id)
}

// DeleteHabit removes the habit; its completions go with it through ON DELETE CASCADE.
func (s *Store) DeleteHabit(id string) error {
	result, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete habit %s: %w", id, err)
	}
	return requireAffected(result, "habit", id)
}

// GetStreak returns the habit's current streak, or 0 for an unknown id.
func (s *Store) GetStreak(id string) (int, error) {
	var streak int
	err := s.db.QueryRow("SELECT streak FROM habits WHERE id = ?", id).Scan(&streak)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return streak, err
}

func (s *Store) GetTodaysCompletions() (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM habits WHERE completed_today = 1 AND last_completed_date = ?",
		s.Today()).Scan(&count)
	return count, err
}

// ResetDailyCompletions clears every stored completed_today flag. Reads already
// ignore stale flags, so this is only needed to tidy the stored column.
func (s *Store) ResetDailyCompletions() error {
	_, err := s.db.Exec("UPDATE habits SET completed_today = 0")
	return err
}

func (s *Store) GetHabitCompletions(habitID string) ([]models.HabitCompletion, error) {
	rows, err := s.db.Query(`
		SELECT id, habit_id, completed_date, created_at
		FROM habit_completions WHERE habit_id = ?
		ORDER BY completed_date ASC, created_at ASC`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completions := []models.HabitCompletion{}
	for rows.Next() {
		var c models.HabitCompletion
		var createdAt string
		if err := rows.Scan(&c.ID, &c.HabitID, &c.CompletedDate, &createdAt); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = parseTimestamp(createdAt, "created_at", c.ID); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
