package system

import (
	"github.com/mayflyapp/mayfly/internal/cli"
)

type ClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

// Run wipes every habit, completion, todo and the character state. A backup
// is taken first when auto_backup is on.
func (c *ClearCmd) Run(ctx *cli.Context) error {
	ok, err := ctx.Confirmed(c.Yes,
		"Delete all mayfly data?",
		"Habits, streaks, completions, todos and the character's mood will be reset.")
	if err != nil {
		return err
	}
	if !ok {
		ctx.Println("Clear cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.ClearAllData(); err != nil {
		return err
	}
	ctx.Println("All data cleared. Fresh start!")
	return nil
}
