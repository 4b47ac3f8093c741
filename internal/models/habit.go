package models

import "time"

// Habit represents a daily practice with its current streak
type Habit struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Color             string    `json:"color,omitempty"`
	Icon              string    `json:"icon,omitempty"`
	Streak            int       `json:"streak"`
	LastCompletedDate string    `json:"lastCompletedDate,omitempty"` // YYYY-MM-DD format
	CompletedToday    bool      `json:"completedToday"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// HabitCompletion is an append-only record of a habit being done on a day
type HabitCompletion struct {
	ID            string    `json:"id"`
	HabitID       string    `json:"habitId"`
	CompletedDate string    `json:"completedDate"` // YYYY-MM-DD format
	CreatedAt     time.Time `json:"createdAt"`
}

// HabitUpdate carries a partial update. Nil fields are left unchanged;
// an empty Color or Icon clears the stored value.
type HabitUpdate struct {
	Name  *string
	Color *string
	Icon  *string
}

// StreakStage is the lifecycle stage shown for a streak
type StreakStage struct {
	Stage int
	Emoji string
	Label string
	Color string
}

// StageForStreak maps a streak length onto its lifecycle stage.
func StageForStreak(streak int) StreakStage {
	switch {
	case streak <= 0:
		return StreakStage{Stage: 0, Emoji: "🌱", Label: "Seed", Color: "#8B7355"}
	case streak <= 2:
		return StreakStage{Stage: 1, Emoji: "🥚", Label: "Egg", Color: "#E8D5B7"}
	case streak <= 6:
		return StreakStage{Stage: 2, Emoji: "🐛", Label: "Caterpillar", Color: "#7CB342"}
	case streak <= 13:
		return StreakStage{Stage: 3, Emoji: "🟢", Label: "Chrysalis", Color: "#4CAF50"}
	case streak >= 30:
		return StreakStage{Stage: 4, Emoji: "🦋", Label: "Rare Butterfly", Color: "#9C27B0"}
	case streak >= 21:
		return StreakStage{Stage: 4, Emoji: "🦋", Label: "Beautiful Butterfly", Color: "#FF9800"}
	default:
		return StreakStage{Stage: 4, Emoji: "🦋", Label: "Butterfly", Color: "#2196F3"}
	}
}
