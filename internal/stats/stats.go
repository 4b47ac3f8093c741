// Package stats composes the dashboard summary from store reads.
package stats

import (
	"fmt"

	"github.com/mayflyapp/mayfly/internal/models"
)

// Source is the read side of storage.Provider the dashboard needs
type Source interface {
	GetAllHabits() ([]models.Habit, error)
	GetTodaysCompletions() (int, error)
	GetLongestStreak() (int, error)
	GetTotalCompletions() (int, error)
	GetWeeklyStats() ([]models.DayCount, error)
	GetTodoStats() (models.TodoStats, error)
	GetPriorityTodos() ([]models.Todo, error)
	GetCharacterState() (models.CharacterState, error)
}

type Summary struct {
	TotalHabits      int                   `json:"totalHabits"`
	CompletedToday   int                   `json:"completedToday"`
	LongestStreak    int                   `json:"longestStreak"`
	TotalCompletions int                   `json:"totalCompletions"`
	Weekly           []models.DayCount     `json:"weekly"`
	Todos            models.TodoStats      `json:"todos"`
	PriorityTodos    []models.Todo         `json:"priorityTodos"`
	Character        models.CharacterState `json:"character"`
}

// HabitRate is the share of habits done today, 0-100.
func (s Summary) HabitRate() float64 {
	if s.TotalHabits == 0 {
		return 0
	}
	return float64(s.CompletedToday) / float64(s.TotalHabits) * 100
}

// BestDay returns the weekly point with the most completions, the latest on ties.
func (s Summary) BestDay() (models.DayCount, bool) {
	var best models.DayCount
	found := false
	for _, p := range s.Weekly {
		if p.Count > 0 && p.Count >= best.Count {
			best = p
			found = true
		}
	}
	return best, found
}

func Summarize(src Source) (Summary, error) {
	var sum Summary

	habits, err := src.GetAllHabits()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load habits: %w", err)
	}
	sum.TotalHabits = len(habits)

	if sum.CompletedToday, err = src.GetTodaysCompletions(); err != nil {
		return Summary{}, fmt.Errorf("failed to count today's completions: %w", err)
	}
	if sum.LongestStreak, err = src.GetLongestStreak(); err != nil {
		return Summary{}, fmt.Errorf("failed to read longest streak: %w", err)
	}
	if sum.TotalCompletions, err = src.GetTotalCompletions(); err != nil {
		return Summary{}, fmt.Errorf("failed to count completions: %w", err)
	}
	if sum.Weekly, err = src.GetWeeklyStats(); err != nil {
		return Summary{}, fmt.Errorf("failed to load weekly stats: %w", err)
	}
	if sum.Todos, err = src.GetTodoStats(); err != nil {
		return Summary{}, fmt.Errorf("failed to load todo stats: %w", err)
	}
	if sum.PriorityTodos, err = src.GetPriorityTodos(); err != nil {
		return Summary{}, fmt.Errorf("failed to load priority todos: %w", err)
	}
	if sum.Character, err = src.GetCharacterState(); err != nil {
		return Summary{}, fmt.Errorf("failed to load character state: %w", err)
	}
	return sum, nil
}
