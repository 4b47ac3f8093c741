package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mayflyapp/mayfly/internal/logger"
)

// ClearAllData wipes every table and recreates the default character row.
func (s *Store) ClearAllData() error {
	err := s.withTx(func(tx *sql.Tx) error {
		for _, table := range []string{"habit_completions", "habits", "todos", "character_state"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return insertDefaultCharacter(tx, s.timestamp())
	})
	if err != nil {
		return err
	}

	logger.Info("Cleared all data", "path", s.path)
	return nil
}
