package sqlite

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mayflyapp/mayfly/internal/models"
	"github.com/mayflyapp/mayfly/internal/storage"
)

func mustCreateTodo(t *testing.T, store *Store, text string, priority bool) models.Todo {
	t.Helper()
	todo, err := store.CreateTodo(text, priority)
	if err != nil {
		t.Fatalf("CreateTodo(%s) failed: %v", text, err)
	}
	return todo
}

func setOrderIndex(t *testing.T, store *Store, id string, idx any) {
	t.Helper()
	if _, err := store.db.Exec("UPDATE todos SET order_index = ? WHERE id = ?", idx, id); err != nil {
		t.Fatalf("failed to set order index: %v", err)
	}
}

func orderIndexOf(t *testing.T, store *Store, id string) *int {
	t.Helper()
	todo, err := store.GetTodo(id)
	if err != nil {
		t.Fatalf("GetTodo(%s) failed: %v", id, err)
	}
	return todo.OrderIndex
}

func TestCreateTodoAppendsOrderIndex(t *testing.T) {
	store, _ := setupTestStore(t)

	for want, text := range []string{"one", "two", "three"} {
		todo := mustCreateTodo(t, store, text, false)
		if todo.OrderIndex == nil || *todo.OrderIndex != want {
			t.Errorf("%s: expected index %d, got %v", text, want, todo.OrderIndex)
		}
		if todo.Completed || todo.Priority || todo.DueAt != nil || todo.EstimatedMinutes != nil {
			t.Errorf("%s: expected a plain todo, got %+v", text, todo)
		}
	}

	if _, err := store.CreateTodo("  ", false); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty text, got %v", err)
	}
}

func TestPriorityCap(t *testing.T) {
	store, _ := setupTestStore(t)

	var priorities []models.Todo
	for _, text := range []string{"p1", "p2", "p3"} {
		todo := mustCreateTodo(t, store, text, true)
		if !todo.Priority {
			t.Fatalf("%s: expected priority below the cap", text)
		}
		priorities = append(priorities, todo)
	}

	// Creating past the cap quietly drops the flag
	fourth := mustCreateTodo(t, store, "p4", true)
	if fourth.Priority {
		t.Error("expected fourth priority todo to be created without priority")
	}

	// Setting past the cap is an error
	if _, err := store.SetPriority(fourth.ID, true); !errors.Is(err, storage.ErrMaxPriorityExceeded) {
		t.Errorf("expected ErrMaxPriorityExceeded, got %v", err)
	}
	if got, _ := store.GetTodo(fourth.ID); got.Priority {
		t.Error("expected rejected SetPriority to leave the todo unchanged")
	}

	// Re-asserting an existing priority does not count against itself
	if _, err := store.SetPriority(priorities[0].ID, true); err != nil {
		t.Errorf("expected SetPriority on an existing priority todo to succeed, got %v", err)
	}

	// Completed priorities free a slot
	if _, err := store.ToggleTodo(priorities[0].ID); err != nil {
		t.Fatalf("ToggleTodo failed: %v", err)
	}
	got, err := store.SetPriority(fourth.ID, true)
	if err != nil {
		t.Fatalf("expected SetPriority to succeed after completing one, got %v", err)
	}
	if !got.Priority {
		t.Error("expected todo to become priority")
	}

	cleared, err := store.SetPriority(fourth.ID, false)
	if err != nil {
		t.Fatalf("SetPriority(false) failed: %v", err)
	}
	if cleared.Priority {
		t.Error("expected priority cleared")
	}

	if _, err := store.SetPriority("missing", true); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPriorityTodos(t *testing.T) {
	store, _ := setupTestStore(t)

	a := mustCreateTodo(t, store, "a", true)
	b := mustCreateTodo(t, store, "b", true)
	mustCreateTodo(t, store, "plain", false)
	c := mustCreateTodo(t, store, "c", true)
	setOrderIndex(t, store, a.ID, 10)

	done := mustCreateTodo(t, store, "done", false)
	if _, err := store.ToggleTodo(done.ID); err != nil {
		t.Fatalf("ToggleTodo failed: %v", err)
	}

	got, err := store.GetPriorityTodos()
	if err != nil {
		t.Fatalf("GetPriorityTodos failed: %v", err)
	}
	want := []string{b.ID, c.ID, a.ID}
	if len(got) != len(want) {
		t.Fatalf("expected %d priority todos, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i].Text)
		}
	}
}

func TestGetAllTodosOrdering(t *testing.T) {
	store, _ := setupTestStore(t)

	plainA := mustCreateTodo(t, store, "plain a", false)
	prio := mustCreateTodo(t, store, "prio", true)
	plainB := mustCreateTodo(t, store, "plain b", false)
	legacy := mustCreateTodo(t, store, "legacy", false)
	done := mustCreateTodo(t, store, "done", false)

	setOrderIndex(t, store, legacy.ID, nil)
	if _, err := store.ToggleTodo(done.ID); err != nil {
		t.Fatalf("ToggleTodo failed: %v", err)
	}

	all, err := store.GetAllTodos(true)
	if err != nil {
		t.Fatalf("GetAllTodos failed: %v", err)
	}
	want := []string{prio.ID, plainA.ID, plainB.ID, legacy.ID, done.ID}
	if len(all) != len(want) {
		t.Fatalf("expected %d todos, got %d", len(want), len(all))
	}
	for i := range want {
		if all[i].ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], all[i].Text)
		}
	}
	if all[3].OrderIndex != nil {
		t.Errorf("expected legacy todo to have no index, got %v", *all[3].OrderIndex)
	}

	open, err := store.GetAllTodos(false)
	if err != nil {
		t.Fatalf("GetAllTodos failed: %v", err)
	}
	if len(open) != 4 {
		t.Errorf("expected 4 open todos, got %d", len(open))
	}
	for _, todo := range open {
		if todo.Completed {
			t.Errorf("expected completed todos to be hidden, got %s", todo.Text)
		}
	}
}

func TestGetAllTodosNewestFirstOnTies(t *testing.T) {
	store, _ := setupTestStore(t)

	older := mustCreateTodo(t, store, "older", false)
	newer := mustCreateTodo(t, store, "newer", false)
	setOrderIndex(t, store, older.ID, 4)
	setOrderIndex(t, store, newer.ID, 4)

	todos, err := store.GetAllTodos(false)
	if err != nil {
		t.Fatalf("GetAllTodos failed: %v", err)
	}
	if todos[0].ID != newer.ID || todos[1].ID != older.ID {
		t.Errorf("expected newer todo first on an index tie, got %s then %s", todos[0].Text, todos[1].Text)
	}
}

func TestReorderTodosSplicesAtLowestIndex(t *testing.T) {
	store, _ := setupTestStore(t)

	a := mustCreateTodo(t, store, "a", false)
	b := mustCreateTodo(t, store, "b", false)
	other := mustCreateTodo(t, store, "other", false)
	setOrderIndex(t, store, a.ID, 2)
	setOrderIndex(t, store, b.ID, 5)
	setOrderIndex(t, store, other.ID, 7)

	if err := store.ReorderTodos([]string{b.ID, a.ID}); err != nil {
		t.Fatalf("ReorderTodos failed: %v", err)
	}

	want := map[string]int{b.ID: 2, a.ID: 3, other.ID: 7}
	for id, idx := range want {
		got := orderIndexOf(t, store, id)
		if got == nil || *got != idx {
			t.Errorf("todo %s: expected index %d, got %v", id, idx, got)
		}
	}
}

func TestReorderTodosUnindexedGoLast(t *testing.T) {
	store, _ := setupTestStore(t)

	mustCreateTodo(t, store, "indexed", false)
	mustCreateTodo(t, store, "indexed too", false)
	x := mustCreateTodo(t, store, "x", false)
	y := mustCreateTodo(t, store, "y", false)
	setOrderIndex(t, store, x.ID, nil)
	setOrderIndex(t, store, y.ID, nil)

	if err := store.ReorderTodos([]string{y.ID, x.ID}); err != nil {
		t.Fatalf("ReorderTodos failed: %v", err)
	}
	if got := orderIndexOf(t, store, y.ID); got == nil || *got != 2 {
		t.Errorf("expected y at index 2, got %v", got)
	}
	if got := orderIndexOf(t, store, x.ID); got == nil || *got != 3 {
		t.Errorf("expected x at index 3, got %v", got)
	}
}

func TestReorderTodosRejectsUnknownID(t *testing.T) {
	store, _ := setupTestStore(t)

	a := mustCreateTodo(t, store, "a", false)
	b := mustCreateTodo(t, store, "b", false)

	err := store.ReorderTodos([]string{b.ID, "missing", a.ID})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := orderIndexOf(t, store, a.ID); got == nil || *got != 0 {
		t.Errorf("expected a to keep index 0, got %v", got)
	}
	if got := orderIndexOf(t, store, b.ID); got == nil || *got != 1 {
		t.Errorf("expected b to keep index 1, got %v", got)
	}
}

func TestReorderTodosRollsBackFailedUpdate(t *testing.T) {
	store, _ := setupTestStore(t)

	a := mustCreateTodo(t, store, "a", false)
	b := mustCreateTodo(t, store, "b", false)
	c := mustCreateTodo(t, store, "c", false)

	// a is moved last, so c and b have already been rewritten when it fails
	trigger := fmt.Sprintf(`
		CREATE TRIGGER block_reorder BEFORE UPDATE OF order_index ON todos
		WHEN OLD.id = '%s'
		BEGIN SELECT RAISE(ABORT, 'blocked'); END`, a.ID)
	if _, err := store.db.Exec(trigger); err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}

	err := store.ReorderTodos([]string{c.ID, b.ID, a.ID})
	if err == nil {
		t.Fatal("expected the blocked update to fail the reorder")
	}
	if !strings.Contains(err.Error(), a.ID) {
		t.Errorf("expected the failing todo in the error, got %v", err)
	}

	for _, want := range []struct {
		id  string
		idx int
	}{{a.ID, 0}, {b.ID, 1}, {c.ID, 2}} {
		if got := orderIndexOf(t, store, want.id); got == nil || *got != want.idx {
			t.Errorf("expected todo %s to keep index %d, got %v", want.id, want.idx, got)
		}
	}
}

func TestReorderTodosRejectsDuplicates(t *testing.T) {
	store, _ := setupTestStore(t)

	a := mustCreateTodo(t, store, "a", false)
	if err := store.ReorderTodos([]string{a.ID, a.ID}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if err := store.ReorderTodos(nil); err != nil {
		t.Errorf("expected empty reorder to be a no-op, got %v", err)
	}
}

func TestToggleTodo(t *testing.T) {
	store, _ := setupTestStore(t)

	todo := mustCreateTodo(t, store, "toggle me", false)
	done, err := store.ToggleTodo(todo.ID)
	if err != nil {
		t.Fatalf("ToggleTodo failed: %v", err)
	}
	if !done.Completed {
		t.Error("expected todo to be completed")
	}
	undone, err := store.ToggleTodo(todo.ID)
	if err != nil {
		t.Fatalf("ToggleTodo failed: %v", err)
	}
	if undone.Completed {
		t.Error("expected todo to be incomplete again")
	}

	if _, err := store.ToggleTodo("missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTodo(t *testing.T) {
	store, _ := setupTestStore(t)

	todo := mustCreateTodo(t, store, "draft", false)
	updated, err := store.UpdateTodo(todo.ID, " final ")
	if err != nil {
		t.Fatalf("UpdateTodo failed: %v", err)
	}
	if updated.Text != "final" {
		t.Errorf("expected trimmed text, got %q", updated.Text)
	}
	if _, err := store.UpdateTodo(todo.ID, ""); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := store.UpdateTodo("missing", "x"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTodoDetails(t *testing.T) {
	store, _ := setupTestStore(t)

	todo := mustCreateTodo(t, store, "plan", false)
	due := time.Date(2024, 1, 3, 17, 30, 0, 0, time.UTC)
	minutes := 45

	updated, err := store.UpdateTodoDetails(todo.ID, models.TodoDetails{DueAt: &due, EstimatedMinutes: &minutes})
	if err != nil {
		t.Fatalf("UpdateTodoDetails failed: %v", err)
	}
	if updated.DueAt == nil || !updated.DueAt.Equal(due) {
		t.Errorf("expected due %v, got %v", due, updated.DueAt)
	}
	if updated.EstimatedMinutes == nil || *updated.EstimatedMinutes != 45 {
		t.Errorf("expected 45 minutes, got %v", updated.EstimatedMinutes)
	}

	cleared, err := store.UpdateTodoDetails(todo.ID, models.TodoDetails{})
	if err != nil {
		t.Fatalf("UpdateTodoDetails failed: %v", err)
	}
	if cleared.DueAt != nil || cleared.EstimatedMinutes != nil {
		t.Errorf("expected details cleared, got %+v", cleared)
	}

	negative := -5
	if _, err := store.UpdateTodoDetails(todo.ID, models.TodoDetails{EstimatedMinutes: &negative}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := store.UpdateTodoDetails("missing", models.TodoDetails{}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTodo(t *testing.T) {
	store, _ := setupTestStore(t)

	todo := mustCreateTodo(t, store, "bye", false)
	if err := store.DeleteTodo(todo.ID); err != nil {
		t.Fatalf("DeleteTodo failed: %v", err)
	}
	if _, err := store.GetTodo(todo.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteTodo(todo.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestGetTodoStats(t *testing.T) {
	store, _ := setupTestStore(t)

	empty, err := store.GetTodoStats()
	if err != nil {
		t.Fatalf("GetTodoStats failed: %v", err)
	}
	if empty != (models.TodoStats{}) {
		t.Errorf("expected zero stats, got %+v", empty)
	}

	for _, text := range []string{"a", "b", "c", "d"} {
		todo := mustCreateTodo(t, store, text, false)
		if text == "a" || text == "b" {
			if _, err := store.ToggleTodo(todo.ID); err != nil {
				t.Fatalf("ToggleTodo failed: %v", err)
			}
		}
	}

	stats, err := store.GetTodoStats()
	if err != nil {
		t.Fatalf("GetTodoStats failed: %v", err)
	}
	want := models.TodoStats{Total: 4, Completed: 2, Pending: 2, CompletionRate: 50}
	if stats != want {
		t.Errorf("expected %+v, got %+v", want, stats)
	}
}
