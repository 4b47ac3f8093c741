package todos

import (
	"errors"
	"fmt"

	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/constants"
	"github.com/mayflyapp/mayfly/internal/messages"
	"github.com/mayflyapp/mayfly/internal/storage"
)

type TodoCmd struct {
	Add      TodoAddCmd      `cmd:"" help:"Add a todo."`
	List     TodoListCmd     `cmd:"" help:"List todos." default:"1"`
	Done     TodoDoneCmd     `cmd:"" help:"Toggle a todo between done and not done."`
	Priority TodoPriorityCmd `cmd:"" help:"Mark or unmark a todo as priority."`
	Reorder  TodoReorderCmd  `cmd:"" help:"Move todos into the given order."`
	Details  TodoDetailsCmd  `cmd:"" help:"Set or clear a todo's due date and estimate."`
	Edit     TodoEditCmd     `cmd:"" help:"Change a todo's text."`
	Delete   TodoDeleteCmd   `cmd:"" help:"Delete a todo."`
	Stats    TodoStatsCmd    `cmd:"" help:"Show todo completion stats."`
}

type TodoAddCmd struct {
	Text     string `arg:"" help:"Todo text."`
	Priority bool   `help:"Mark as one of today's priorities." short:"p"`
}

func (c *TodoAddCmd) Run(ctx *cli.Context) error {
	todo, err := ctx.Store.CreateTodo(c.Text, c.Priority)
	if err != nil {
		return err
	}

	ctx.Printf("Added todo: %s\n", cli.TodoLine(todo))
	if c.Priority && !todo.Priority {
		ctx.Println(cli.WarnStyle.Render(fmt.Sprintf(
			"Already %d priorities; added as a regular todo. Focus on 3 things, not 30.", constants.MaxPriorityTodos)))
	}
	return nil
}

type TodoListCmd struct {
	All bool `help:"Include completed todos." short:"a"`
}

func (c *TodoListCmd) Run(ctx *cli.Context) error {
	todos, err := ctx.Store.GetAllTodos(c.All)
	if err != nil {
		return fmt.Errorf("failed to get todos: %w", err)
	}
	if len(todos) == 0 {
		ctx.Println("Nothing to do. Add a todo with 'mayfly todo add <text>'.")
		return nil
	}

	for _, t := range todos {
		ctx.Println("  " + cli.TodoLine(t))
	}
	return nil
}

type TodoDoneCmd struct {
	Todo  string `arg:"" help:"Todo id or id prefix."`
	Quiet bool   `help:"Do not show a character message." short:"q"`
}

func (c *TodoDoneCmd) Run(ctx *cli.Context) error {
	todo, err := cli.ResolveTodo(ctx.Store, c.Todo)
	if err != nil {
		return err
	}

	toggled, err := ctx.Store.ToggleTodo(todo.ID)
	if err != nil {
		return err
	}
	if !toggled.Completed {
		ctx.Printf("Reopened: %s\n", toggled.Text)
		return nil
	}

	ctx.Printf("%s %s\n", cli.SuccessStyle.Render("✓"), toggled.Text)
	if c.Quiet {
		return nil
	}

	stats, err := ctx.Store.GetTodoStats()
	if err != nil {
		return err
	}
	data := messages.Data{CompletedTodos: stats.Completed, TotalTodos: stats.Total}
	ctx.React(messages.TodoContext(stats.Completed, stats.Total), data)
	return nil
}

type TodoPriorityCmd struct {
	Todo string `arg:"" help:"Todo id or id prefix."`
	Off  bool   `help:"Remove the priority flag instead."`
}

func (c *TodoPriorityCmd) Run(ctx *cli.Context) error {
	todo, err := cli.ResolveTodo(ctx.Store, c.Todo)
	if err != nil {
		return err
	}

	updated, err := ctx.Store.SetPriority(todo.ID, !c.Off)
	if errors.Is(err, storage.ErrMaxPriorityExceeded) {
		return fmt.Errorf("cannot prioritize %q: %w", todo.Text, err)
	}
	if err != nil {
		return err
	}

	if updated.Priority {
		ctx.Printf("Prioritized: %s\n", cli.TodoLine(updated))
	} else {
		ctx.Printf("Priority removed: %s\n", cli.TodoLine(updated))
	}
	return nil
}

type TodoReorderCmd struct {
	Todos []string `arg:"" help:"Todo ids or id prefixes in the desired order."`
}

func (c *TodoReorderCmd) Run(ctx *cli.Context) error {
	ids := make([]string, 0, len(c.Todos))
	for _, ref := range c.Todos {
		todo, err := cli.ResolveTodo(ctx.Store, ref)
		if err != nil {
			return err
		}
		ids = append(ids, todo.ID)
	}

	if err := ctx.Store.ReorderTodos(ids); err != nil {
		return fmt.Errorf("failed to reorder todos: %w", err)
	}
	ctx.Printf("Reordered %d todo%s.\n", len(ids), cli.Plural(len(ids)))
	return nil
}

type TodoEditCmd struct {
	Todo string `arg:"" help:"Todo id or id prefix."`
	Text string `arg:"" help:"New text."`
}

func (c *TodoEditCmd) Run(ctx *cli.Context) error {
	todo, err := cli.ResolveTodo(ctx.Store, c.Todo)
	if err != nil {
		return err
	}
	updated, err := ctx.Store.UpdateTodo(todo.ID, c.Text)
	if err != nil {
		return err
	}
	ctx.Printf("Updated todo: %s\n", cli.TodoLine(updated))
	return nil
}

type TodoDeleteCmd struct {
	Todo string `arg:"" help:"Todo id or id prefix."`
}

func (c *TodoDeleteCmd) Run(ctx *cli.Context) error {
	todo, err := cli.ResolveTodo(ctx.Store, c.Todo)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteTodo(todo.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted todo: %s\n", todo.Text)
	return nil
}

type TodoStatsCmd struct{}

func (c *TodoStatsCmd) Run(ctx *cli.Context) error {
	stats, err := ctx.Store.GetTodoStats()
	if err != nil {
		return err
	}
	ctx.Printf("%d total, %d done, %d pending\n", stats.Total, stats.Completed, stats.Pending)
	ctx.Printf("%s %.0f%%\n", cli.Bar(stats.Completed, stats.Total, 20), stats.CompletionRate)
	return nil
}
