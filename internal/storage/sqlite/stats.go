package sqlite

import (
	"fmt"

	"github.com/mayflyapp/mayfly/internal/constants"
	"github.com/mayflyapp/mayfly/internal/models"
	"github.com/mayflyapp/mayfly/internal/utils"
)

// GetLongestStreak returns the highest current streak across habits. It is not
// a historical maximum: a broken streak stops counting here.
func (s *Store) GetLongestStreak() (int, error) {
	var longest int
	err := s.db.QueryRow("SELECT COALESCE(MAX(streak), 0) FROM habits").Scan(&longest)
	return longest, err
}

func (s *Store) GetTotalCompletions() (int, error) {
	var total int
	err := s.db.QueryRow("SELECT COUNT(*) FROM habit_completions").Scan(&total)
	return total, err
}

// GetWeeklyStats returns one point per day for the trailing week, oldest
// first and today last, with days without completions reported as zero.
func (s *Store) GetWeeklyStats() ([]models.DayCount, error) {
	today := s.Today()
	start, err := utils.AddDays(today, -(constants.WeeklyStatsDays - 1))
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT completed_date, COUNT(DISTINCT habit_id)
		FROM habit_completions
		WHERE completed_date >= ? AND completed_date <= ?
		GROUP BY completed_date`, start, today)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly stats: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	points := make([]models.DayCount, 0, constants.WeeklyStatsDays)
	for i := 0; i < constants.WeeklyStatsDays; i++ {
		day, err := utils.AddDays(start, i)
		if err != nil {
			return nil, err
		}
		points = append(points, models.DayCount{Date: day, Count: counts[day]})
	}
	return points, nil
}
