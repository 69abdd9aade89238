package view

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nibzard/todolist-go/internal/todo"
)

// fixedNow is 15 June 2025, mid-morning local time.
var fixedNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

func newStore(t *testing.T) *todo.Store {
	t.Helper()
	return todo.NewStore(filepath.Join(t.TempDir(), todo.DefaultFileName))
}

func add(t *testing.T, s *todo.Store, desc, deadline string) *todo.Task {
	t.Helper()
	task := todo.NewTask(desc, desc+" details", todo.MustParseDate(deadline))
	if err := s.Add(task); err != nil {
		t.Fatalf("Add(%q): %v", desc, err)
	}
	return task
}

func descriptions(tasks []*todo.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Description
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVisibleSortedStable(t *testing.T) {
	s := newStore(t)
	add(t, s, "A", "01-01-2025")
	add(t, s, "B", "15-06-2025")
	add(t, s, "C", "01-01-2025")

	p := New(s, WithClock(clock))
	got := descriptions(p.Visible())
	want := []string{"A", "C", "B"}
	if !equalStrings(got, want) {
		t.Errorf("Visible: got %v, want %v", got, want)
	}
}

func TestSortInvariant(t *testing.T) {
	s := newStore(t)
	for _, d := range []string{"03-03-2025", "01-01-2025", "31-12-2024", "15-06-2025", "01-01-2025", "02-02-2026"} {
		add(t, s, d, d)
	}
	p := New(s, WithClock(clock))
	visible := p.Visible()
	for i := 1; i < len(visible); i++ {
		if visible[i].Deadline.Before(visible[i-1].Deadline) {
			t.Fatalf("sort invariant broken at %d: %v after %v", i, visible[i].Deadline, visible[i-1].Deadline)
		}
	}
}

func TestTodayFilter(t *testing.T) {
	s := newStore(t)
	add(t, s, "yesterday", "14-06-2025")
	add(t, s, "today 1", "15-06-2025")
	add(t, s, "tomorrow", "16-06-2025")
	add(t, s, "today 2", "15-06-2025")

	p := New(s, WithClock(clock))
	all := p.Visible()
	p.SetFilter(FilterToday)
	today := p.Visible()

	want := []string{"today 1", "today 2"}
	if got := descriptions(today); !equalStrings(got, want) {
		t.Fatalf("today view: got %v, want %v", got, want)
	}
	for _, task := range today {
		if !task.DueOn(todo.Today(fixedNow)) {
			t.Errorf("%q is not due today", task.Description)
		}
		found := false
		for _, a := range all {
			if a == task {
				found = true
			}
		}
		if !found {
			t.Errorf("%q missing from the all view", task.Description)
		}
	}

	if n, d := p.Counts(); n != 4 || d != 2 {
		t.Errorf("Counts: got (%d, %d), want (4, 2)", n, d)
	}
}

func TestTodayFilterEmptyClearsDetail(t *testing.T) {
	s := newStore(t)
	add(t, s, "later", "20-06-2025")

	p := New(s, WithClock(clock))
	if p.Selected() == nil {
		t.Fatal("expected first task selected initially")
	}

	p.SetFilter(FilterToday)
	if p.Len() != 0 {
		t.Fatalf("expected empty today view, got %d", p.Len())
	}
	if p.Selected() != nil {
		t.Error("selection should be cleared")
	}
	if !p.Detail().Empty() {
		t.Errorf("detail should be empty, got %+v", p.Detail())
	}
	if p.Cursor() != -1 {
		t.Errorf("Cursor: got %d, want -1", p.Cursor())
	}
}

func TestFilterSelectionPolicy(t *testing.T) {
	t.Run("today keeps a visible selection", func(t *testing.T) {
		s := newStore(t)
		add(t, s, "today 1", "15-06-2025")
		due := add(t, s, "today 2", "15-06-2025")
		p := New(s, WithClock(clock))
		p.Select(due)

		p.SetFilter(FilterToday)
		if p.Selected() != due {
			t.Errorf("Selected: got %v, want today 2", p.Selected())
		}
	})

	t.Run("today selects first when selection hidden", func(t *testing.T) {
		s := newStore(t)
		later := add(t, s, "later", "20-06-2025")
		first := add(t, s, "today", "15-06-2025")
		p := New(s, WithClock(clock))
		p.Select(later)

		p.SetFilter(FilterToday)
		if p.Selected() != first {
			t.Errorf("Selected: got %v, want first visible", p.Selected())
		}
	})

	t.Run("all restores selection from before today", func(t *testing.T) {
		s := newStore(t)
		later := add(t, s, "later", "20-06-2025")
		add(t, s, "earlier", "01-06-2025")
		p := New(s, WithClock(clock))
		p.Select(later)

		p.SetFilter(FilterToday) // empty
		if p.Selected() != nil {
			t.Fatal("expected cleared selection")
		}
		p.SetFilter(FilterAll)
		if p.Selected() != later {
			t.Errorf("Selected: got %v, want later", p.Selected())
		}
	})

	t.Run("all keeps selection made in today view", func(t *testing.T) {
		s := newStore(t)
		other := add(t, s, "other", "20-06-2025")
		add(t, s, "today 1", "15-06-2025")
		chosen := add(t, s, "today 2", "15-06-2025")
		p := New(s, WithClock(clock))
		p.Select(other)

		p.SetFilter(FilterToday)
		p.Select(chosen)
		p.SetFilter(FilterAll)
		if p.Selected() != chosen {
			t.Errorf("Selected: got %v, want today 2", p.Selected())
		}
	})

	t.Run("all skips a deleted previous selection", func(t *testing.T) {
		s := newStore(t)
		gone := add(t, s, "gone", "20-06-2025")
		first := add(t, s, "first", "01-06-2025")
		p := New(s, WithClock(clock))
		p.Select(gone)

		p.SetFilter(FilterToday)
		s.Delete(gone)
		p.SetFilter(FilterAll)
		if p.Selected() != first {
			t.Errorf("Selected: got %v, want first", p.Selected())
		}
	})
}

func TestLiveUpdates(t *testing.T) {
	s := newStore(t)
	p := New(s, WithClock(clock))
	if p.Len() != 0 || p.Selected() != nil {
		t.Fatal("expected empty projection")
	}

	b := add(t, s, "B", "10-07-2025")
	if p.Len() != 1 {
		t.Fatalf("add not reflected: Len %d", p.Len())
	}
	if p.Selected() != b {
		t.Error("first task added to an empty view should be selected")
	}

	a := add(t, s, "A", "01-07-2025")
	if got := descriptions(p.Visible()); !equalStrings(got, []string{"A", "B"}) {
		t.Errorf("Visible: got %v", got)
	}
	if p.Selected() != b {
		t.Error("adding a task must not move the selection")
	}

	s.Delete(b)
	if p.Selected() != a {
		t.Errorf("after deleting the selection: got %v, want A", p.Selected())
	}
	s.Delete(a)
	if p.Len() != 0 || p.Selected() != nil {
		t.Error("expected empty view after deleting everything")
	}

	p.Close()
	add(t, s, "C", "01-07-2025")
	if p.Len() != 0 {
		t.Error("closed projection must not follow the store")
	}
}

func TestDeleteSelectionStaysOnRow(t *testing.T) {
	s := newStore(t)
	add(t, s, "1", "01-06-2025")
	mid := add(t, s, "2", "02-06-2025")
	third := add(t, s, "3", "03-06-2025")
	p := New(s, WithClock(clock))
	p.Select(mid)

	s.Delete(mid)
	if p.Selected() != third {
		t.Errorf("Selected: got %v, want 3", p.Selected())
	}
	s.Delete(third)
	if p.Selected() == nil || p.Selected().Description != "1" {
		t.Errorf("Selected: got %v, want 1", p.Selected())
	}
}

func TestReloadKeepsCursorRow(t *testing.T) {
	s := newStore(t)
	add(t, s, "1", "01-06-2025")
	second := add(t, s, "2", "02-06-2025")
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	p := New(s, WithClock(clock))
	p.Select(second)

	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if p.Cursor() != 1 {
		t.Errorf("Cursor after reload: got %d, want 1", p.Cursor())
	}
}

func TestMoveCursor(t *testing.T) {
	s := newStore(t)
	add(t, s, "1", "01-06-2025")
	add(t, s, "2", "02-06-2025")
	add(t, s, "3", "03-06-2025")
	p := New(s, WithClock(clock))

	p.MoveCursor(1)
	if p.Cursor() != 1 {
		t.Errorf("Cursor: got %d, want 1", p.Cursor())
	}
	p.MoveCursor(10)
	if p.Cursor() != 2 {
		t.Errorf("Cursor: got %d, want 2", p.Cursor())
	}
	p.MoveCursor(-10)
	if p.Cursor() != 0 {
		t.Errorf("Cursor: got %d, want 0", p.Cursor())
	}
	if p.SelectIndex(3) {
		t.Error("SelectIndex out of range should fail")
	}
}

func TestDetail(t *testing.T) {
	s := newStore(t)
	task := todo.NewTask("Dentist", "Bring insurance card", todo.MustParseDate("15-06-2025"))
	if err := s.Add(task); err != nil {
		t.Fatal(err)
	}
	p := New(s, WithClock(clock))

	got := p.Detail()
	want := Detail{Description: "Dentist", Details: "Bring insurance card", Deadline: "June 15, 2025"}
	if got != want {
		t.Errorf("Detail: got %+v, want %+v", got, want)
	}
}

func TestToggleTodayAndParseFilter(t *testing.T) {
	s := newStore(t)
	p := New(s, WithClock(clock), WithFilter(FilterToday))
	if p.Filter() != FilterToday {
		t.Fatal("WithFilter not applied")
	}
	if f := p.ToggleToday(); f != FilterAll {
		t.Errorf("ToggleToday: got %v, want all", f)
	}
	if f := p.ToggleToday(); f != FilterToday {
		t.Errorf("ToggleToday: got %v, want today", f)
	}

	for in, want := range map[string]Filter{"all": FilterAll, "": FilterAll, "Today": FilterToday} {
		got, err := ParseFilter(in)
		if err != nil || got != want {
			t.Errorf("ParseFilter(%q): got %v, %v", in, got, err)
		}
	}
	if _, err := ParseFilter("week"); err == nil {
		t.Error("expected error for unknown filter")
	}
}
