package models

import "time"

// Todo is a single task in the manually ordered todo list
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Priority  bool   `json:"priority"`
	// OrderIndex is nil for legacy rows, which sort last
	OrderIndex       *int       `json:"orderIndex,omitempty"`
	DueAt            *time.Time `json:"dueAt"`
	EstimatedMinutes *int       `json:"estimatedMinutes"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// TodoDetails replaces both optional scheduling fields of a todo. Nil clears.
type TodoDetails struct {
	DueAt            *time.Time
	EstimatedMinutes *int
}

// TodoStats summarises completion across all todos
type TodoStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	CompletionRate float64 `json:"completionRate"`
}
