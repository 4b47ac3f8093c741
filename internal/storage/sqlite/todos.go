package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mayflyapp/mayfly/internal/constants"
	"github.com/mayflyapp/mayfly/internal/logger"
	"github.com/mayflyapp/mayfly/internal/models"
	"github.com/mayflyapp/mayfly/internal/storage"
	"github.com/mayflyapp/mayfly/internal/utils"
)

const todoColumns = `id, text, completed, priority, order_index, due_at, estimated_minutes, created_at, updated_at`

func scanTodo(row scanner) (models.Todo, error) {
	var t models.Todo
	var completed, priority int
	var orderIndex, estimated sql.NullInt64
	var dueAt sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&t.ID, &t.Text, &completed, &priority, &orderIndex, &dueAt, &estimated, &createdAt, &updatedAt); err != nil {
		return models.Todo{}, err
	}

	t.Completed = completed == 1
	t.Priority = priority == 1
	if orderIndex.Valid {
		idx := int(orderIndex.Int64)
		t.OrderIndex = &idx
	}
	if estimated.Valid {
		minutes := int(estimated.Int64)
		t.EstimatedMinutes = &minutes
	}
	if dueAt.Valid && dueAt.String != "" {
		due, err := parseTimestamp(dueAt.String, "due_at", t.ID)
		if err != nil {
			return models.Todo{}, err
		}
		t.DueAt = &due
	}

	var err error
	if t.CreatedAt, err = parseTimestamp(createdAt, "created_at", t.ID); err != nil {
		return models.Todo{}, err
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at", t.ID); err != nil {
		return models.Todo{}, err
	}
	return t, nil
}

func countOpenPriorities(q interface {
	QueryRow(query string, args ...any) *sql.Row
}, excludeID string) (int, error) {
	var count int
	err := q.QueryRow(
		"SELECT COUNT(*) FROM todos WHERE priority = 1 AND completed = 0 AND id != ?",
		excludeID).Scan(&count)
	return count, err
}

// CreateTodo appends a todo after the current highest index. A priority
// request beyond the cap is downgraded rather than rejected so quick-add never blocks.
func (s *Store) CreateTodo(text string, priority bool) (models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, fmt.Errorf("todo text cannot be empty: %w", storage.ErrInvalidInput)
	}

	id := uuid.New().String()
	now := s.timestamp()

	err := s.withTx(func(tx *sql.Tx) error {
		if priority {
			open, err := countOpenPriorities(tx, id)
			if err != nil {
				return fmt.Errorf("failed to count priority todos: %w", err)
			}
			if open >= constants.MaxPriorityTodos {
				logger.Debug("Priority cap reached, creating todo without priority", "open", open)
				priority = false
			}
		}

		var maxOrder sql.NullInt64
		if err := tx.QueryRow("SELECT MAX(order_index) FROM todos").Scan(&maxOrder); err != nil {
			return fmt.Errorf("failed to read max order index: %w", err)
		}
		next := int64(0)
		if maxOrder.Valid {
			next = maxOrder.Int64 + 1
		}

		_, err := tx.Exec(`
			INSERT INTO todos (id, text, completed, priority, order_index, due_at, estimated_minutes, created_at, updated_at)
			VALUES (?, ?, 0, ?, ?, NULL, NULL, ?, ?)`,
			id, text, boolToInt(priority), next, now, now)
		return err
	})
	if err != nil {
		return models.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return s.GetTodo(id)
}

func (s *Store) GetTodo(id string) (models.Todo, error) {
	t, err := scanTodo(s.db.QueryRow("SELECT "+todoColumns+" FROM todos WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, fmt.Errorf("todo %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Todo{}, err
	}
	return t, nil
}

// GetAllTodos lists incomplete before completed, priority first, then manual
// order with unindexed rows last, newest first on ties.
func (s *Store) GetAllTodos(showCompleted bool) ([]models.Todo, error) {
	query := "SELECT " + todoColumns + " FROM todos"
	if !showCompleted {
		query += " WHERE completed = 0"
	}
	query += " ORDER BY completed ASC, priority DESC, (order_index IS NULL) ASC, order_index ASC, created_at DESC, rowid DESC"

	return s.queryTodos(query)
}

func (s *Store) queryTodos(query string, args ...any) ([]models.Todo, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (s *Store) ToggleTodo(id string) (models.Todo, error) {
	result, err := s.db.Exec(
		"UPDATE todos SET completed = 1 - completed, updated_at = ? WHERE id = ?",
		s.timestamp(), id)
	if err != nil {
		return models.Todo{}, fmt.Errorf("failed to toggle todo %s: %w", id, err)
	}
	if err := requireAffected(result, "todo", id); err != nil {
		return models.Todo{}, err
	}
	return s.GetTodo(id)
}

func (s *Store) SetPriority(id string, priority bool) (models.Todo, error) {
	err := s.withTx(func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRow("SELECT 1 FROM todos WHERE id = ?", id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("todo %s: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return err
		}

		if priority {
			open, err := countOpenPriorities(tx, id)
			if err != nil {
				return fmt.Errorf("failed to count priority todos: %w", err)
			}
			if open >= constants.MaxPriorityTodos {
				return storage.ErrMaxPriorityExceeded
			}
		}

		_, err = tx.Exec("UPDATE todos SET priority = ?, updated_at = ? WHERE id = ?",
			boolToInt(priority), s.timestamp(), id)
		return err
	})
	if err != nil {
		return models.Todo{}, err
	}
	return s.GetTodo(id)
}

func (s *Store) GetPriorityTodos() ([]models.Todo, error) {
	return s.queryTodos(
		"SELECT "+todoColumns+" FROM todos WHERE priority = 1 AND completed = 0"+
			" ORDER BY (order_index IS NULL) ASC, order_index ASC, created_at ASC, rowid ASC LIMIT ?",
		constants.MaxPriorityTodos)
}

// ReorderTodos splices the given ids, in order, into the index space at the
// lowest index any of them currently holds. Todos outside the list keep their
// index, so gaps or shared indices with untouched rows are possible.
func (s *Store) ReorderTodos(idsInOrder []string) error {
	if len(idsInOrder) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(idsInOrder))
	args := make([]any, len(idsInOrder))
	for i, id := range idsInOrder {
		if seen[id] {
			return fmt.Errorf("todo %s listed more than once: %w", id, storage.ErrInvalidInput)
		}
		seen[id] = true
		args[i] = id
	}

	return s.withTx(func(tx *sql.Tx) error {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(idsInOrder)), ",")
		rows, err := tx.Query("SELECT id, order_index FROM todos WHERE id IN ("+placeholders+")", args...)
		if err != nil {
			return fmt.Errorf("failed to read current order: %w", err)
		}

		found := make(map[string]bool, len(idsInOrder))
		var start sql.NullInt64
		for rows.Next() {
			var id string
			var idx sql.NullInt64
			if err := rows.Scan(&id, &idx); err != nil {
				rows.Close()
				return err
			}
			found[id] = true
			if idx.Valid && (!start.Valid || idx.Int64 < start.Int64) {
				start = idx
			}
		}
		if err := rows.Close(); err != nil {
			return err
		}

		for _, id := range idsInOrder {
			if !found[id] {
				return fmt.Errorf("todo %s: %w", id, storage.ErrNotFound)
			}
		}

		// Every listed todo is unindexed: place them after everything else.
		if !start.Valid {
			var maxOrder sql.NullInt64
			if err := tx.QueryRow("SELECT MAX(order_index) FROM todos").Scan(&maxOrder); err != nil {
				return err
			}
			start = sql.NullInt64{Int64: 0, Valid: true}
			if maxOrder.Valid {
				start.Int64 = maxOrder.Int64 + 1
			}
		}

		for i, id := range idsInOrder {
			if _, err := tx.Exec("UPDATE todos SET order_index = ? WHERE id = ?", start.Int64+int64(i), id); err != nil {
				return fmt.Errorf("failed to move todo %s: %w", id, err)
			}
		}
		return nil
	})
}

func (s *Store) UpdateTodo(id, text string) (models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, fmt.Errorf("todo text cannot be empty: %w", storage.ErrInvalidInput)
	}

	result, err := s.db.Exec("UPDATE todos SET text = ?, updated_at = ? WHERE id = ?", text, s.timestamp(), id)
	if err != nil {
		return models.Todo{}, fmt.Errorf("failed to update todo %s: %w", id, err)
	}
	if err := requireAffected(result, "todo", id); err != nil {
		return models.Todo{}, err
	}
	return s.GetTodo(id)
}

// UpdateTodoDetails replaces both due date and estimate; nil values clear them.
func (s *Store) UpdateTodoDetails(id string, details models.TodoDetails) (models.Todo, error) {
	var dueAt sql.NullString
	if details.DueAt != nil {
		dueAt = sql.NullString{String: utils.FormatTimestamp(*details.DueAt), Valid: true}
	}
	var estimated sql.NullInt64
	if details.EstimatedMinutes != nil {
		if *details.EstimatedMinutes < 0 {
			return models.Todo{}, fmt.Errorf("estimated minutes cannot be negative: %w", storage.ErrInvalidInput)
		}
		estimated = sql.NullInt64{Int64: int64(*details.EstimatedMinutes), Valid: true}
	}

	result, err := s.db.Exec(
		"UPDATE todos SET due_at = ?, estimated_minutes = ?, updated_at = ? WHERE id = ?",
		dueAt, estimated, s.timestamp(), id)
	if err != nil {
		return models.Todo{}, fmt.Errorf("failed to update todo details %s: %w", id, err)
	}
	if err := requireAffected(result, "todo", id); err != nil {
		return models.Todo{}, err
	}
	return s.GetTodo(id)
}

func (s *Store) DeleteTodo(id string) error {
	result, err := s.db.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete todo %s: %w", id, err)
	}
	return requireAffected(result, "todo", id)
}

func (s *Store) GetTodoStats() (models.TodoStats, error) {
	var stats models.TodoStats
	err := s.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM todos").
		Scan(&stats.Total, &stats.Completed)
	if err != nil {
		return models.TodoStats{}, err
	}

	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
