package sqlite

import (
	"testing"
)

func TestStatsOnEmptyStore(t *testing.T) {
	store, _ := setupTestStore(t)

	longest, err := store.GetLongestStreak()
	if err != nil {
		t.Fatalf("GetLongestStreak failed: %v", err)
	}
	total, err := store.GetTotalCompletions()
	if err != nil {
		t.Fatalf("GetTotalCompletions failed: %v", err)
	}
	if longest != 0 || total != 0 {
		t.Errorf("expected zeros, got longest=%d total=%d", longest, total)
	}

	points, err := store.GetWeeklyStats()
	if err != nil {
		t.Fatalf("GetWeeklyStats failed: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Count != 0 {
			t.Errorf("expected zero count on %s, got %d", p.Date, p.Count)
		}
	}
}

func TestLongestStreakIsCurrentNotHistorical(t *testing.T) {
	store, clock := setupTestStore(t)

	habit, err := store.CreateHabit("Read", "", "")
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	for _, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-10"} {
		clock.setDay(t, day)
		if _, err := store.CompleteHabit(habit.ID); err != nil {
			t.Fatalf("CompleteHabit failed: %v", err)
		}
	}

	longest, err := store.GetLongestStreak()
	if err != nil {
		t.Fatalf("GetLongestStreak failed: %v", err)
	}
	if longest != 1 {
		t.Errorf("expected longest current streak 1, got %d", longest)
	}

	total, err := store.GetTotalCompletions()
	if err != nil {
		t.Fatalf("GetTotalCompletions failed: %v", err)
	}
	if total != 4 {
		t.Errorf("expected 4 completions, got %d", total)
	}
}

func TestGetWeeklyStats(t *testing.T) {
	store, clock := setupTestStore(t)

	a, err := store.CreateHabit("A", "", "")
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}
	b, err := store.CreateHabit("B", "", "")
	if err != nil {
		t.Fatalf("CreateHabit failed: %v", err)
	}

	complete := func(day string, ids ...string) {
		clock.setDay(t, day)
		for _, id := range ids {
			if _, err := store.CompleteHabit(id); err != nil {
				t.Fatalf("CompleteHabit on %s failed: %v", day, err)
			}
		}
	}
	complete("2024-01-01", a.ID) // outside the window
	complete("2024-01-05", a.ID, b.ID)
	complete("2024-01-08", b.ID)
	complete("2024-01-10", a.ID, b.ID)

	points, err := store.GetWeeklyStats()
	if err != nil {
		t.Fatalf("GetWeeklyStats failed: %v", err)
	}

	want := []struct {
		date  string
		count int
	}{
		{"2024-01-04", 0},
		{"2024-01-05", 2},
		{"2024-01-06", 0},
		{"2024-01-07", 0},
		{"2024-01-08", 1},
		{"2024-01-09", 0},
		{"2024-01-10", 2},
	}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i, w := range want {
		if points[i].Date != w.date || points[i].Count != w.count {
			t.Errorf("point %d: expected %s=%d, got %s=%d", i, w.date, w.count, points[i].Date, points[i].Count)
		}
	}
}
