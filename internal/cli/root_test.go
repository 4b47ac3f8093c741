package cli

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mayflyapp/mayfly/internal/config"
	"github.com/mayflyapp/mayfly/internal/messages"
	"github.com/mayflyapp/mayfly/internal/models"
	"github.com/mayflyapp/mayfly/internal/storage"
	"github.com/mayflyapp/mayfly/internal/storage/sqlite"
)

func setupContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "mayfly.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	return &Context{
		Store:    store,
		Config:   config.Config{Database: store.GetConfigPath()},
		Messages: messages.NewGenerator(rand.New(rand.NewPCG(1, 2))),
		Out:      &out,
	}, &out
}

func TestConfirmed(t *testing.T) {
	ctx, _ := setupContext(t)

	ok, err := ctx.Confirmed(true, "Delete?", "")
	if err != nil || !ok {
		t.Errorf("skip should confirm without asking, got %v, %v", ok, err)
	}

	if _, err := ctx.Confirmed(false, "Delete?", ""); err == nil {
		t.Error("expected an error without a prompt")
	}

	var asked string
	ctx.Confirm = func(title, _ string) (bool, error) {
		asked = title
		return false, nil
	}
	ok, err = ctx.Confirmed(false, "Delete?", "")
	if err != nil || ok {
		t.Errorf("expected a declined prompt, got %v, %v", ok, err)
	}
	if asked != "Delete?" {
		t.Errorf("prompt title = %q", asked)
	}
}

func TestReactUpdatesCharacter(t *testing.T) {
	ctx, out := setupContext(t)

	msg := ctx.React(messages.AllTodosDone, messages.Data{CompletedTodos: 4, TotalTodos: 4})
	if msg.Mood != models.MoodCelebrating {
		t.Errorf("expected celebrating mood, got %s", msg.Mood)
	}
	if !strings.Contains(out.String(), "All 4 done!") {
		t.Errorf("expected the message to be printed, got %q", out.String())
	}

	state, err := ctx.Store.GetCharacterState()
	if err != nil {
		t.Fatalf("GetCharacterState failed: %v", err)
	}
	if state.Mood != models.MoodCelebrating || state.TotalInteractions != 1 {
		t.Errorf("unexpected character state: %+v", state)
	}
}

func TestPerformAutomaticBackup(t *testing.T) {
	ctx, _ := setupContext(t)
	backups := filepath.Join(filepath.Dir(ctx.Store.GetConfigPath()), "backups", "*.db")

	ctx.PerformAutomaticBackup()
	if matches, _ := filepath.Glob(backups); len(matches) != 0 {
		t.Fatalf("auto_backup off should not write backups, found %v", matches)
	}

	ctx.Config.AutoBackup = true
	ctx.PerformAutomaticBackup()
	if matches, _ := filepath.Glob(backups); len(matches) != 1 {
		t.Errorf("expected one backup, found %v", matches)
	}
}

func TestResolveHabit(t *testing.T) {
	ctx, _ := setupContext(t)
	read, err := ctx.Store.CreateHabit("Read", "", "")
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if _, err := ctx.Store.CreateHabit("Walk", "", ""); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	for _, ref := range []string{read.ID, read.ID[:8], "read", "READ"} {
		h, err := ResolveHabit(ctx.Store, ref)
		if err != nil {
			t.Errorf("ResolveHabit(%q) failed: %v", ref, err)
			continue
		}
		if h.ID != read.ID {
			t.Errorf("ResolveHabit(%q) = %s, want %s", ref, h.Name, read.Name)
		}
	}

	if _, err := ResolveHabit(ctx.Store, "swim"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := ResolveHabit(ctx.Store, ""); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty ref, got %v", err)
	}

	if _, err := ctx.Store.CreateHabit("read", "", ""); err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	if _, err := ResolveHabit(ctx.Store, "Read"); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected an ambiguous match, got %v", err)
	}
}

func TestResolveTodo(t *testing.T) {
	ctx, _ := setupContext(t)
	todo, err := ctx.Store.CreateTodo("Buy milk", false)
	if err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}
	if _, err := ctx.Store.ToggleTodo(todo.ID); err != nil {
		t.Fatalf("ToggleTodo failed: %v", err)
	}

	got, err := ResolveTodo(ctx.Store, ShortID(todo.ID))
	if err != nil {
		t.Fatalf("completed todos should still resolve: %v", err)
	}
	if got.ID != todo.ID {
		t.Errorf("resolved %s, want %s", got.ID, todo.ID)
	}
	if _, err := ResolveTodo(ctx.Store, "zzzz"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		n, total, width int
		filled          int
	}{
		{0, 10, 10, 0},
		{5, 10, 10, 5},
		{1, 100, 10, 1},
		{10, 10, 10, 10},
		{12, 10, 10, 10},
		{3, 0, 10, 0},
	}
	for _, tt := range tests {
		bar := Bar(tt.n, tt.total, tt.width)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("Bar(%d, %d, %d) filled %d, want %d", tt.n, tt.total, tt.width, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "·"); got != tt.width {
			t.Errorf("Bar(%d, %d, %d) width %d, want %d", tt.n, tt.total, tt.width, got, tt.width)
		}
	}
}

func TestPlural(t *testing.T) {
	if Plural(1) != "" || Plural(0) != "s" || Plural(2) != "s" {
		t.Error("unexpected plural suffixes")
	}
}
