package tasksync

import (
	"context"
	"errors"
	"sync"
	"time"

	"taskapp/model"
	"taskapp/services"
	"taskapp/store"
	"taskapp/view"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyStarted   = errors.New("sync already started")
)

// Controller bridges the push-based task store and the pull-based
// collection view, and serializes user-initiated mutations. Mutations
// never update the view directly; the view is reconciled on the next
// full-snapshot push.
type Controller struct {
	store store.TaskStore
	view  *view.Collection

	mu       sync.Mutex
	ownerID  string
	cancel   context.CancelFunc
	done     chan struct{}
	watchers map[chan struct{}]struct{}
}

func New(st store.TaskStore, v *view.Collection) *Controller {
	return &Controller{
		store:    st,
		view:     v,
		watchers: make(map[chan struct{}]struct{}),
	}
}

func (c *Controller) View() *view.Collection {
	return c.view
}

// Start opens the standing subscription for ownerID. Subscription errors
// are reported through onError and end the pump; there is no automatic
// retry. The last known-good snapshot stays in the view.
func (c *Controller) Start(ctx context.Context, ownerID string, onError func(error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return ErrAlreadyStarted
	}

	subCtx, cancel := context.WithCancel(ctx)
	events, err := c.store.Subscribe(subCtx, ownerID)
	if err != nil {
		cancel()
		return err
	}

	done := make(chan struct{})
	c.ownerID = ownerID
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		for ev := range events {
			if ev.Err != nil {
				if onError != nil {
					onError(ev.Err)
				}
				return
			}
			c.view.ReplaceAll(ev.Tasks)
			c.notify()
		}
	}()
	return nil
}

// Stop cancels the subscription. Idempotent and safe before Start.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	c.done = nil
	c.ownerID = ""
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (c *Controller) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

func (c *Controller) owner() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ownerID == "" {
		return "", ErrNotAuthenticated
	}
	return c.ownerID, nil
}

// Create validates the draft, pre-allocates an id and writes the full
// record. The new task shows up in the view only after the next push.
func (c *Controller) Create(ctx context.Context, draft model.Task) (string, error) {
	ownerID, err := c.owner()
	if err != nil {
		return "", err
	}
	if err := services.ValidateTaskTitle(draft.Title); err != nil {
		return "", err
	}

	taskID := c.store.GenerateID(ownerID)
	draft.TaskID = taskID
	draft.OwnerID = ownerID
	if draft.Status == "" {
		draft.Status = model.StatusPending
	}
	if draft.CreatedAt == 0 {
		draft.CreatedAt = time.Now().UnixMilli()
	}

	if err := c.store.Write(ctx, ownerID, taskID, draft); err != nil {
		return "", err
	}
	return taskID, nil
}

// SetStatus writes only the status field. Fire-and-forget relative to
// the view.
func (c *Controller) SetStatus(ctx context.Context, taskID string, completed bool) error {
	ownerID, err := c.owner()
	if err != nil {
		return err
	}
	status := model.StatusPending
	if completed {
		status = model.StatusCompleted
	}
	return c.store.WriteField(ctx, ownerID, taskID, "status", status)
}

func (c *Controller) Delete(ctx context.Context, taskID string) error {
	ownerID, err := c.owner()
	if err != nil {
		return err
	}
	return c.store.Remove(ctx, ownerID, taskID)
}

// Updates registers a watcher that is poked after every applied
// snapshot. The second return value unregisters it.
func (c *Controller) Updates() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.watchers[ch] = struct{}{}
	c.mu.Unlock()

	off := func() {
		c.mu.Lock()
		delete(c.watchers, ch)
		c.mu.Unlock()
	}
	return ch, off
}

func (c *Controller) notify() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
