package habits

import (
	"fmt"

	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/messages"
	"github.com/mayflyapp/mayfly/internal/models"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits with their streaks." default:"1"`
	Done     HabitDoneCmd     `cmd:"" help:"Mark a habit as done today."`
	Edit     HabitEditCmd     `cmd:"" help:"Rename or restyle a habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit and its history."`
	Log      HabitLogCmd      `cmd:"" help:"Show the completion history of a habit."`
	Rollover HabitRolloverCmd `cmd:"" help:"Clear stored daily completion flags."`
}

type HabitAddCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Color string `help:"Hex colour (default: next palette colour)."`
	Icon  string `help:"Emoji or short icon."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.CreateHabit(c.Name, c.Color, c.Icon)
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s\n", cli.HabitLine(habit))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	if len(habits) == 0 {
		ctx.Println("No habits yet. Add one with 'mayfly habit add <name>'.")
		return nil
	}

	done := 0
	for _, h := range habits {
		if h.CompletedToday {
			done++
		}
	}

	ctx.Println(cli.TitleStyle.Render(fmt.Sprintf("Habits for %s (%d/%d done)", ctx.Store.Today(), done, len(habits))))
	for _, h := range habits {
		ctx.Println("  " + cli.HabitLine(h))
	}
	return nil
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or name."`
	Quiet bool   `help:"Do not show a character message." short:"q"`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}
	if habit.CompletedToday {
		ctx.Printf("%s is already done today (streak %d).\n", habit.Name, habit.Streak)
		return nil
	}

	updated, err := ctx.Store.CompleteHabit(habit.ID)
	if err != nil {
		return err
	}

	stage := models.StageForStreak(updated.Streak)
	ctx.Printf("%s %s done! Streak: %d day%s (%s)\n",
		cli.SuccessStyle.Render("✓"), updated.Name, updated.Streak, cli.Plural(updated.Streak), stage.Label)

	if c.Quiet {
		return nil
	}

	completions, err := ctx.Store.GetHabitCompletions(updated.ID)
	if err != nil {
		return err
	}
	data := messages.Data{
		HabitStreak:       updated.Streak,
		IsFirstCompletion: len(completions) == 1,
	}
	ctx.React(messages.HabitContext(data), data)
	return nil
}

type HabitEditCmd struct {
	Habit   string `arg:"" help:"Habit id, id prefix or name."`
	Name    string `help:"New name."`
	Color   string `help:"New hex colour."`
	Icon    string `help:"New icon."`
	NoColor bool   `help:"Remove the colour."`
	NoIcon  bool   `help:"Remove the icon."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	var update models.HabitUpdate
	if c.Name != "" {
		update.Name = &c.Name
	}
	if c.Color != "" || c.NoColor {
		update.Color = &c.Color
	}
	if c.Icon != "" || c.NoIcon {
		update.Icon = &c.Icon
	}
	if update.Name == nil && update.Color == nil && update.Icon == nil {
		return fmt.Errorf("nothing to change; pass --name, --color or --icon")
	}

	updated, err := ctx.Store.UpdateHabit(habit.ID, update)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s\n", cli.HabitLine(updated))
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or name."`
	Yes   bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := cli.ResolveHabit(ctx.Store, c.Habit)
	if err != nil {
		return err
	}

	ok, err := ctx.Confirmed(c.Yes,
		fmt.Sprintf("Delete %q?", habit.Name),
		fmt.Sprintf("Its %d-day streak and completion history will be removed.", habit.Streak))
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Delete cancelled.")
		return nil
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitRolloverCmd struct{}

func (c *HabitRolloverCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ResetDailyCompletions(); err != nil {
		return fmt.Errorf("failed to reset daily completions: %w", err)
	}
	ctx.Println("Daily completion flags cleared.")
	return nil
}
