package system

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mayflyapp/mayfly/internal/backup"
	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/constants"
	"github.com/mayflyapp/mayfly/internal/logger"
	"github.com/mayflyapp/mayfly/internal/storage/sqlite"
	"github.com/mayflyapp/mayfly/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(ctx *cli.Context) error
	// warn marks checks whose failure is reported but does not fail the run
	warn bool
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Schema columns", run: checkColumns, needsDB: true},
	{name: "Character state", run: checkCharacterRow, needsDB: true},
	{name: "Habit integrity", run: checkHabitsIntegrity, needsDB: true},
	{name: "Completion log", run: checkCompletionLog, needsDB: true},
	{name: "Priority todos", run: checkPriorityCap, needsDB: true, warn: true},
	{name: "Todo order", run: checkTodoOrder, needsDB: true, warn: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Backups present", run: checkBackupsPresent, warn: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	if path := logger.File(); path != "" {
		ctx.Printf("\nLogs: %s\n", path)
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func sqliteDB(ctx *cli.Context) (*sqlite.Store, *sql.DB, error) {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, nil, fmt.Errorf("doctor only supports SQLite storage")
	}
	db := store.GetDB()
	if db == nil {
		return nil, nil, fmt.Errorf("database connection is nil")
	}
	return store, db, nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	_, db, err := sqliteDB(ctx)
	if err != nil {
		return err
	}
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, _, err := sqliteDB(ctx)
	if err != nil {
		return err
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkColumns(ctx *cli.Context) error {
	return ctx.Store.ValidateSchema()
}

func checkCharacterRow(ctx *cli.Context) error {
	_, db, err := sqliteDB(ctx)
	if err != nil {
		return err
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM character_state").Scan(&n); err != nil {
		return err
	}
	if n != 1 {
		return fmt.Errorf("expected exactly one character row, found %d", n)
	}
	state, err := ctx.Store.GetCharacterState()
	if err != nil {
		return err
	}
	return state.Mood.Validate()
}

func checkHabitsIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	today := ctx.Store.Today()
	for _, h := range habits {
		if h.Name == "" {
			return fmt.Errorf("habit %s has an empty name", h.ID)
		}
		if h.Streak < 0 {
			return fmt.Errorf("habit %q has negative streak %d", h.Name, h.Streak)
		}
		if h.LastCompletedDate == "" {
			if h.Streak != 0 {
				return fmt.Errorf("habit %q has streak %d but was never completed", h.Name, h.Streak)
			}
			continue
		}
		gap, err := utils.DaysBetween(h.LastCompletedDate, today)
		if err != nil {
			return fmt.Errorf("habit %q: %w", h.Name, err)
		}
		if gap < 0 {
			return fmt.Errorf("habit %q was last completed in the future (%s)", h.Name, h.LastCompletedDate)
		}
		if h.Streak == 0 {
			return fmt.Errorf("habit %q was completed on %s but has streak 0", h.Name, h.LastCompletedDate)
		}
	}
	return nil
}

func checkCompletionLog(ctx *cli.Context) error {
	_, db, err := sqliteDB(ctx)
	if err != nil {
		return err
	}

	var orphans int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM habit_completions c
		LEFT JOIN habits h ON h.id = c.habit_id
		WHERE h.id IS NULL`).Scan(&orphans)
	if err != nil {
		return err
	}
	if orphans > 0 {
		return fmt.Errorf("%d completion(s) reference deleted habits", orphans)
	}

	var dupes int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM (
			SELECT habit_id, completed_date FROM habit_completions
			GROUP BY habit_id, completed_date HAVING COUNT(*) > 1
		)`).Scan(&dupes)
	if err != nil {
		return err
	}
	if dupes > 0 {
		return fmt.Errorf("%d habit/day pair(s) are logged more than once", dupes)
	}
	return nil
}

// checkPriorityCap warns when reopening completed priority todos has pushed
// the open count past the cap.
func checkPriorityCap(ctx *cli.Context) error {
	_, db, err := sqliteDB(ctx)
	if err != nil {
		return err
	}
	var open int
	if err := db.QueryRow("SELECT COUNT(*) FROM todos WHERE priority = 1 AND completed = 0").Scan(&open); err != nil {
		return err
	}
	if open > constants.MaxPriorityTodos {
		return fmt.Errorf("%d open priority todos (limit %d); unmark some with 'mayfly todo priority <id> --off'", open, constants.MaxPriorityTodos)
	}
	return nil
}

func checkTodoOrder(ctx *cli.Context) error {
	_, db, err := sqliteDB(ctx)
	if err != nil {
		return err
	}
	var unindexed int
	if err := db.QueryRow("SELECT COUNT(*) FROM todos WHERE order_index IS NULL").Scan(&unindexed); err != nil {
		return err
	}
	if unindexed > 0 {
		return fmt.Errorf("%d todo(s) have no order index and sort last; 'mayfly todo reorder' assigns one", unindexed)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	loc, err := ctx.Config.Location()
	if err != nil {
		return err
	}
	now := time.Now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if want, got := utils.DayOf(now, loc), ctx.Store.Today(); want != got {
		return fmt.Errorf("store day %s does not match %s day %s", got, loc, want)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	_, ok, err := mgr.Latest()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if !ok {
		return fmt.Errorf("no backups found in %s; run 'mayfly backup create'", mgr.GetBackupDir())
	}
	return nil
}
