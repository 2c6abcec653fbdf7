package store

import (
	"testing"

	"taskapp/model"
)

func openTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := OpenLocalStore(":memory:")
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLocalStoreTaskCRUD(t *testing.T) {
	s := openTestStore(t)

	id, err := s.AddTask(model.Task{
		Title:       "Buy milk",
		Description: "2 liters",
		DueDate:     "5/6/2025",
		Priority:    model.PriorityHigh,
		Status:      model.StatusPending,
		OwnerID:     "owner1",
		CreatedAt:   1748700000000,
	})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if _, err := s.AddTask(model.Task{Title: "Other owner", OwnerID: "owner2", Status: model.StatusPending}); err != nil {
		t.Fatalf("add task: %v", err)
	}

	tasks, err := s.AllTasks("owner1")
	if err != nil {
		t.Fatalf("all tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("owner1 tasks = %d, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Title != "Buy milk" || got.DueDate != "5/6/2025" || got.Priority != model.PriorityHigh ||
		got.Status != model.StatusPending || got.CreatedAt != 1748700000000 {
		t.Fatalf("task = %+v", got)
	}

	if err := s.UpdateTaskStatus(id, model.StatusCompleted); err != nil {
		t.Fatalf("update status: %v", err)
	}
	tasks, _ = s.AllTasks("owner1")
	if tasks[0].Status != model.StatusCompleted {
		t.Fatalf("status = %s, want Completed", tasks[0].Status)
	}

	if err := s.DeleteTask(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tasks, _ = s.AllTasks("owner1")
	if len(tasks) != 0 {
		t.Fatalf("tasks after delete = %d, want 0", len(tasks))
	}
}

func TestLocalStoreUsers(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.AddUser(model.User{Username: "bob", Email: "bob@example.com", Password: "hash"}); err != nil {
		t.Fatalf("add user: %v", err)
	}

	// Email is unique.
	if _, err := s.AddUser(model.User{Username: "bob2", Email: "bob@example.com", Password: "hash"}); err == nil {
		t.Fatal("duplicate email insert succeeded")
	}

	u, err := s.UserByEmail("bob@example.com")
	if err != nil {
		t.Fatalf("user by email: %v", err)
	}
	if u == nil || u.Username != "bob" {
		t.Fatalf("user = %+v", u)
	}

	missing, err := s.UserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("user by email: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing user = %+v, want nil", missing)
	}
}

func TestLocalStoreUpgradeDropsData(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.AddTask(model.Task{Title: "Buy milk", OwnerID: "owner1", Status: model.StatusPending}); err != nil {
		t.Fatalf("add task: %v", err)
	}
	if err := s.Upgrade(); err != nil {
		t.Fatalf("upgrade: %v", err)
	}

	tasks, err := s.AllTasks("owner1")
	if err != nil {
		t.Fatalf("all tasks after upgrade: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("tasks after upgrade = %d, want 0", len(tasks))
	}
}
