package storage

import "github.com/mayflyapp/mayfly/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Close() error
	// ValidateSchema reports a schema that is behind or ahead of this build, or missing columns
	ValidateSchema() error

	// Habits
	CreateHabit(name, color, icon string) (models.Habit, error)
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	// CompleteHabit records today's completion and advances the streak.
	// Repeated calls on the same calendar day return the habit unchanged.
	CompleteHabit(id string) (models.Habit, error)
	UpdateHabit(id string, update models.HabitUpdate) (models.Habit, error)
	DeleteHabit(id string) error
	GetStreak(id string) (int, error)
	GetTodaysCompletions() (int, error)
	ResetDailyCompletions() error
	GetHabitCompletions(habitID string) ([]models.HabitCompletion, error)

	// Todos
	// CreateTodo silently drops the priority flag when the priority cap is already reached.
	CreateTodo(text string, priority bool) (models.Todo, error)
	GetTodo(id string) (models.Todo, error)
	GetAllTodos(showCompleted bool) ([]models.Todo, error)
	ToggleTodo(id string) (models.Todo, error)
	// SetPriority fails with ErrMaxPriorityExceeded when the cap is already reached by other todos.
	SetPriority(id string, priority bool) (models.Todo, error)
	GetPriorityTodos() ([]models.Todo, error)
	// ReorderTodos assigns consecutive indices to the given ids, starting at the
	// lowest index currently held by any of them. Other todos are not touched.
	ReorderTodos(idsInOrder []string) error
	UpdateTodo(id, text string) (models.Todo, error)
	UpdateTodoDetails(id string, details models.TodoDetails) (models.Todo, error)
	DeleteTodo(id string) error
	GetTodoStats() (models.TodoStats, error)

	// Character
	GetCharacterState() (models.CharacterState, error)
	UpdateCharacterMood(mood models.Mood) error
	IncrementInteractions() error
	UpdateCharacterState(mood models.Mood) error

	// Stats
	GetLongestStreak() (int, error)
	GetTotalCompletions() (int, error)
	GetWeeklyStats() ([]models.DayCount, error)

	// Admin
	ClearAllData() error

	// Utils
	GetConfigPath() string
	Today() string
}
