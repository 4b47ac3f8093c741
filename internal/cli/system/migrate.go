package system

import (
	"fmt"

	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/storage/sqlite"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite storage")
	}

	count, err := sqliteStore.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	current, _, err := sqliteStore.SchemaVersion()
	if err != nil {
		return err
	}
	if count == 0 {
		ctx.Printf("No migrations to apply. Database is up to date (version %d).\n", current)
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s), now at version %d.\n", count, current)
	}
	return nil
}
