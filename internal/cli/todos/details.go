package todos

import (
	"fmt"
	"time"

	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/models"
)

var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

type TodoDetailsCmd struct {
	Todo     string `arg:"" help:"Todo id or id prefix."`
	Due      string `help:"Due date: YYYY-MM-DD, 'YYYY-MM-DD HH:MM' or RFC3339."`
	Estimate int    `help:"Estimated minutes." default:"-1"`
	Clear    bool   `help:"Clear both due date and estimate."`
}

// Run replaces the todo's details. Values not passed keep their current setting.
func (c *TodoDetailsCmd) Run(ctx *cli.Context) error {
	todo, err := cli.ResolveTodo(ctx.Store, c.Todo)
	if err != nil {
		return err
	}

	details := models.TodoDetails{DueAt: todo.DueAt, EstimatedMinutes: todo.EstimatedMinutes}
	if c.Clear {
		details = models.TodoDetails{}
	}

	if c.Due != "" {
		loc, err := ctx.Config.Location()
		if err != nil {
			return err
		}
		due, err := ParseDue(c.Due, loc)
		if err != nil {
			return err
		}
		details.DueAt = &due
	}
	if c.Estimate >= 0 {
		minutes := c.Estimate
		details.EstimatedMinutes = &minutes
	}

	updated, err := ctx.Store.UpdateTodoDetails(todo.ID, details)
	if err != nil {
		return err
	}
	ctx.Printf("Updated todo: %s\n", cli.TodoLine(updated))
	return nil
}

// ParseDue parses a due date in loc. A bare date means the end of that day.
func ParseDue(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dueLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = t.Add(23*time.Hour + 59*time.Minute)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date %q (expected YYYY-MM-DD, 'YYYY-MM-DD HH:MM' or RFC3339)", s)
}
