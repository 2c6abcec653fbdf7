package view

import (
	"strings"
	"sync"

	"taskapp/model"
)

type Filter string

const (
	FilterAll       Filter = "All"
	FilterPending   Filter = "Pending"
	FilterCompleted Filter = "Completed"
)

// Collection mirrors the last snapshot delivered by the task store and
// derives the filtered or searched view over it. The subscription
// goroutine and request handlers touch it concurrently, so every
// operation holds the lock.
type Collection struct {
	mu       sync.Mutex
	allTasks []model.Task
	filter   Filter
	query    string
}

func NewCollection() *Collection {
	return &Collection{filter: FilterAll}
}

// ReplaceAll swaps in a full snapshot. Partial patching never happens;
// every push from the store is authoritative.
func (c *Collection) ReplaceAll(tasks []model.Task) {
	copied := make([]model.Task, len(tasks))
	copy(copied, tasks)

	c.mu.Lock()
	c.allTasks = copied
	c.mu.Unlock()
}

// SetFilter activates a status filter and clears any active query.
func (c *Collection) SetFilter(f Filter) {
	c.mu.Lock()
	c.filter = f
	c.query = ""
	c.mu.Unlock()
}

// SetQuery activates a search. A non-empty query searches the whole
// snapshot and ignores the active filter; the empty query falls back to
// the filter. This override behavior is deliberate.
func (c *Collection) SetQuery(q string) {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
}

func (c *Collection) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Collection) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Derive returns the current derived view in snapshot order.
func (c *Collection) Derive() []model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.query != "" {
		q := strings.ToLower(c.query)
		results := make([]model.Task, 0)
		for _, task := range c.allTasks {
			if strings.Contains(strings.ToLower(task.Title), q) ||
				strings.Contains(strings.ToLower(task.Description), q) {
				results = append(results, task)
			}
		}
		return results
	}

	if c.filter == FilterAll {
		results := make([]model.Task, len(c.allTasks))
		copy(results, c.allTasks)
		return results
	}

	results := make([]model.Task, 0)
	for _, task := range c.allTasks {
		if task.Status == model.Status(c.filter) {
			results = append(results, task)
		}
	}
	return results
}
