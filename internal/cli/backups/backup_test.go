package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mayflyapp/mayfly/internal/cli"
	"github.com/mayflyapp/mayfly/internal/storage/sqlite"
)

func setup(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "mayfly.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	return &cli.Context{Store: store, Out: &out}, store, &out
}

func TestBackupListEmpty(t *testing.T) {
	ctx, _, out := setup(t)
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, _, out := setup(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: mayfly-") {
		t.Errorf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total, keeping most recent 14") {
		t.Errorf("unexpected listing %q", out.String())
	}
}

func TestBackupRestoreLatest(t *testing.T) {
	ctx, store, out := setup(t)
	if _, err := store.CreateHabit("Read", "", ""); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := store.CreateHabit("Walk", "", ""); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	if err := (&BackupRestoreCmd{}).Run(ctx); err == nil {
		t.Fatal("expected restore to require confirmation")
	}
	if err := (&BackupRestoreCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database restored successfully") {
		t.Errorf("unexpected output %q", out.String())
	}

	if err := store.Init(); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	habits, err := store.GetAllHabits()
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("expected only the backed-up habit, got %+v", habits)
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _, _ := setup(t)
	if err := (&BackupRestoreCmd{Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error with no backups")
	}
	if err := (&BackupRestoreCmd{BackupFile: "mayfly-19990101-000000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown file")
	}
}
