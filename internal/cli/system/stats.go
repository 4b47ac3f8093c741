package system

import (
	"fmt"

	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/stats"
)

type StatsCmd struct {
	JSON bool `help:"Print the summary as JSON." name:"json"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	sum, err := stats.Summarize(ctx.Store)
	if err != nil {
		return err
	}
	if c.JSON {
		return jsonEncode(ctx, sum)
	}

	ctx.Println(cli.TitleStyle.Render("Today " + ctx.Store.Today()))
	ctx.Printf("  Habits   %s %d/%d (%.0f%%)\n", cli.Bar(sum.CompletedToday, sum.TotalHabits, 20),
		sum.CompletedToday, sum.TotalHabits, sum.HabitRate())
	ctx.Printf("  Todos    %s %d/%d (%.0f%%)\n", cli.Bar(sum.Todos.Completed, sum.Todos.Total, 20),
		sum.Todos.Completed, sum.Todos.Total, sum.Todos.CompletionRate)
	ctx.Printf("  Longest streak %d day%s, %d completion%s all time\n",
		sum.LongestStreak, cli.Plural(sum.LongestStreak), sum.TotalCompletions, cli.Plural(sum.TotalCompletions))

	ctx.Println()
	ctx.Println(cli.TitleStyle.Render("This week"))
	peak := 0
	for _, p := range sum.Weekly {
		peak = max(peak, p.Count)
	}
	for _, p := range sum.Weekly {
		ctx.Printf("  %s %s %d\n", p.Date, cli.Bar(p.Count, peak, 14), p.Count)
	}
	if best, ok := sum.BestDay(); ok {
		ctx.Println(cli.MutedStyle.Render(fmt.Sprintf("  best day: %s", best.Date)))
	}

	if len(sum.PriorityTodos) > 0 {
		ctx.Println()
		ctx.Println(cli.TitleStyle.Render("Priorities"))
		for _, t := range sum.PriorityTodos {
			ctx.Println("  " + cli.TodoLine(t))
		}
	}

	ctx.Println()
	ctx.Printf("%s  %s, %d interaction%s\n", cli.MoodFace(sum.Character.Mood), sum.Character.Mood,
		sum.Character.TotalInteractions, cli.Plural(sum.Character.TotalInteractions))
	return nil
}
