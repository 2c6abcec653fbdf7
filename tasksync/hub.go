package tasksync

import (
	"context"
	"log"
	"sync"

	"taskapp/store"
	"taskapp/view"
)

// Hub lazily creates one running Controller per owner so every request
// and websocket client for that owner shares the same view.
type Hub struct {
	store store.TaskStore

	mu       sync.Mutex
	sessions map[string]*Controller
}

func NewHub(st store.TaskStore) *Hub {
	return &Hub{
		store:    st,
		sessions: make(map[string]*Controller),
	}
}

// Session returns the owner's controller, starting its subscription on
// first use.
func (h *Hub) Session(ownerID string) (*Controller, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ctrl, ok := h.sessions[ownerID]; ok {
		return ctrl, nil
	}

	ctrl := New(h.store, view.NewCollection())
	err := ctrl.Start(context.Background(), ownerID, func(err error) {
		// No automatic retry; the next request for this owner
		// re-subscribes through a fresh controller.
		log.Printf("task subscription for %s ended: %v", ownerID, err)
		h.drop(ownerID, ctrl)
	})
	if err != nil {
		return nil, err
	}

	h.sessions[ownerID] = ctrl
	return ctrl, nil
}

func (h *Hub) drop(ownerID string, ctrl *Controller) {
	h.mu.Lock()
	if h.sessions[ownerID] == ctrl {
		delete(h.sessions, ownerID)
	}
	h.mu.Unlock()

	// Stop waits for the pump goroutine, which is the one calling drop,
	// so it has to run on its own goroutine.
	go ctrl.Stop()
}

// Release stops the owner's controller, typically on sign-out.
func (h *Hub) Release(ownerID string) {
	h.mu.Lock()
	ctrl := h.sessions[ownerID]
	delete(h.sessions, ownerID)
	h.mu.Unlock()

	if ctrl != nil {
		ctrl.Stop()
	}
}
