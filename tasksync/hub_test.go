package tasksync

import (
	"errors"
	"testing"

	"taskapp/model"
	"taskapp/store"
)

func TestHubSharesControllerPerOwner(t *testing.T) {
	fs := newFakeStore()
	h := NewHub(fs)

	c1, err := h.Session("owner1")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	defer h.Release("owner1")

	c2, err := h.Session("owner1")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if c1 != c2 {
		t.Fatal("same owner got two controllers")
	}

	fs.push(model.Task{TaskID: "t1", Title: "Buy milk", Status: model.StatusPending})
	waitFor(t, func() bool { return len(c1.View().Derive()) == 1 })
}

func TestHubDropStopsSubscription(t *testing.T) {
	fs := newFakeStore()
	h := NewHub(fs)

	ctrl, err := h.Session("owner1")
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	fs.events <- store.Event{Err: errors.New("subscription lost")}

	// The dropped controller must release its subscription, not just
	// vanish from the session map.
	waitFor(t, func() bool { return !ctrl.Started() })
	waitFor(t, func() bool {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		return fs.subCtx != nil && fs.subCtx.Err() != nil
	})

	next, err := h.Session("owner1")
	if err != nil {
		t.Fatalf("session after drop: %v", err)
	}
	defer h.Release("owner1")
	if next == ctrl {
		t.Fatal("dropped controller was reused")
	}
}

func TestHubReleaseStopsController(t *testing.T) {
	fs := newFakeStore()
	h := NewHub(fs)

	ctrl, err := h.Session("owner1")
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	h.Release("owner1")
	if ctrl.Started() {
		t.Fatal("released controller still started")
	}
}
