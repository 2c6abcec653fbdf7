package view

import (
	"fmt"
	"sync"
	"testing"

	"taskapp/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{TaskID: "t1", Title: "Buy milk", Description: "2 liters", Status: model.StatusPending},
		{TaskID: "t2", Title: "Write report", Description: "quarterly numbers", Status: model.StatusCompleted},
		{TaskID: "t3", Title: "Call plumber", Description: "kitchen sink", Status: model.StatusPending},
		{TaskID: "t4", Title: "Milk the cows", Description: "", Status: model.StatusCompleted},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.TaskID
	}
	return out
}

func assertIDs(t *testing.T, got []model.Task, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("derived ids = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("derived ids = %v, want %v", gotIDs, want)
		}
	}
}

func TestDeriveFilters(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll(sampleTasks())

	// Default filter is All, original order preserved.
	assertIDs(t, c.Derive(), "t1", "t2", "t3", "t4")

	c.SetFilter(FilterPending)
	assertIDs(t, c.Derive(), "t1", "t3")

	c.SetFilter(FilterCompleted)
	assertIDs(t, c.Derive(), "t2", "t4")
}

func TestDeriveQueryOverridesFilter(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll(sampleTasks())
	c.SetFilter(FilterCompleted)

	// The query searches the whole snapshot regardless of the filter,
	// matching title or description case-insensitively.
	c.SetQuery("MILK")
	assertIDs(t, c.Derive(), "t1", "t4")

	c.SetQuery("sink")
	assertIDs(t, c.Derive(), "t3")

	// Empty query falls back to the active filter.
	c.SetQuery("")
	assertIDs(t, c.Derive(), "t2", "t4")
}

func TestSetFilterClearsQuery(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll(sampleTasks())

	c.SetQuery("milk")
	c.SetFilter(FilterPending)
	if c.Query() != "" {
		t.Fatalf("query = %q after SetFilter, want empty", c.Query())
	}
	assertIDs(t, c.Derive(), "t1", "t3")
}

func TestSetFilterIdempotent(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll(sampleTasks())

	c.SetFilter(FilterPending)
	first := ids(c.Derive())
	c.SetFilter(FilterPending)
	second := ids(c.Derive())

	if len(first) != len(second) {
		t.Fatalf("derive after repeated SetFilter differs: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("derive after repeated SetFilter differs: %v vs %v", first, second)
		}
	}
}

func TestDeriveNoMatches(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll(sampleTasks())

	c.SetQuery("no such task")
	if got := c.Derive(); len(got) != 0 {
		t.Fatalf("derive = %v, want empty", ids(got))
	}
}

// Every derived view must come from exactly one snapshot: concurrent
// ReplaceAll calls never produce a view mixing generations.
func TestReplaceAllAtomic(t *testing.T) {
	c := NewCollection()

	snapshotOf := func(gen int) []model.Task {
		tasks := make([]model.Task, 5)
		for i := range tasks {
			tasks[i] = model.Task{
				TaskID: fmt.Sprintf("g%d-t%d", gen, i),
				Title:  fmt.Sprintf("gen %d", gen),
				Status: model.StatusPending,
			}
		}
		return tasks
	}
	c.ReplaceAll(snapshotOf(0))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for gen := 1; ; gen++ {
			select {
			case <-done:
				return
			default:
				c.ReplaceAll(snapshotOf(gen))
			}
		}
	}()

	for i := 0; i < 200; i++ {
		got := c.Derive()
		if len(got) != 5 {
			t.Fatalf("derived %d tasks, want 5", len(got))
		}
		title := got[0].Title
		for _, task := range got {
			if task.Title != title {
				t.Fatalf("derived view mixes snapshots: %v", ids(got))
			}
		}
	}
	close(done)
	wg.Wait()
}
