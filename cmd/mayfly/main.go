package main

import (
	"github.com/alecthomas/kong"

	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/cli/backups"
	"github.com/mayflyapp/mayfly/internal/cli/character"
	"github.com/mayflyapp/mayfly/internal/cli/habits"
	"github.com/mayflyapp/mayfly/internal/cli/system"
	"github.com/mayflyapp/mayfly/internal/cli/todos"
	"github.com/mayflyapp/mayfly/internal/config"
	"github.com/mayflyapp/mayfly/internal/constants"
	"github.com/mayflyapp/mayfly/internal/errors"
	"github.com/mayflyapp/mayfly/internal/logger"
	"github.com/mayflyapp/mayfly/internal/storage/sqlite"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path (default: ~/.config/mayfly/config.*)." type:"path"`
	DB       string `name:"db" help:"Database file path." type:"path"`
	Timezone string `help:"IANA timezone that defines the calendar day."`
	Debug    bool   `help:"Enable debug logging."`

	Habit     habits.HabitCmd        `cmd:"" help:"Manage habits and streaks."`
	Todo      todos.TodoCmd          `cmd:"" help:"Manage todos and priorities."`
	Character character.CharacterCmd `cmd:"" help:"Check in with your companion."`
	Stats     system.StatsCmd        `cmd:"" help:"Show the progress dashboard."`
	Export    system.ExportCmd       `cmd:"" help:"Export all data as JSON."`
	Clear     system.ClearCmd        `cmd:"" help:"Delete all habits, todos and history."`
	Backup    backups.BackupCmd      `cmd:"" help:"Manage database backups."`
	Migrate   system.MigrateCmd      `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A tiny companion for daily habits and todos"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := config.LoadEnv(); err != nil {
		errors.Fatal(err)
	}
	cfg, err := config.LoadWithOverrides(CLI.Config, config.Overrides{
		Database: CLI.DB,
		Timezone: CLI.Timezone,
		Debug:    CLI.Debug,
	})
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, LogDir: cfg.LogDir}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		errors.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	store := sqlite.NewStore(cfg.Database, sqlite.WithLocation(loc))

	// doctor opens the store itself so it can report a database that fails to load
	if ctx.Command() != "doctor" {
		if err := store.Init(); err != nil {
			store.Close()
			errors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, cfg)
	err = ctx.Run(appCtx)
	store.Close()
	errors.Fatal(err)
}
