package habits

import (
	"fmt"
	"strings"

	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/utils"
)

type HabitLogCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or name."`
	Days  int    `help:"Number of days to show." default:"28"`
}

// Run prints the last N days oldest first, one cell per day.
func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}
	completions, err := ctx.Store.GetHabitCompletions(habit.ID)
	if err != nil {
		return err
	}

	done := make(map[string]bool, len(completions))
	for _, comp := range completions {
		done[comp.CompletedDate] = true
	}

	today := ctx.Store.Today()
	start, err := utils.AddDays(today, -(c.Days - 1))
	if err != nil {
		return err
	}

	var cells strings.Builder
	count := 0
	for i := 0; i < c.Days; i++ {
		day, err := utils.AddDays(start, i)
		if err != nil {
			return err
		}
		if done[day] {
			cells.WriteString(cli.SuccessStyle.Render("■"))
			count++
		} else {
			cells.WriteString(cli.MutedStyle.Render("·"))
		}
	}

	ctx.Println(cli.TitleStyle.Render(habit.Name))
	ctx.Printf("%s → %s\n", start, today)
	ctx.Println(cells.String())
	ctx.Printf("%d of %d days, current streak %d, %d completions total\n", count, c.Days, habit.Streak, len(completions))
	return nil
}
