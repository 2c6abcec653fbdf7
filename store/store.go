package store

import (
	"context"

	"taskapp/model"
)

// Event is one delivery from a standing subscription: the full current
// collection of the owner's tasks, or a terminal subscription error.
type Event struct {
	Tasks []model.Task
	Err   error
}

// TaskStore is the remote key-value task store, addressed by
// owner-id/task-id. Subscribe pushes the entire collection on every
// change; there is no diffing.
type TaskStore interface {
	Subscribe(ctx context.Context, ownerID string) (<-chan Event, error)
	GenerateID(ownerID string) string
	Write(ctx context.Context, ownerID, taskID string, task model.Task) error
	WriteField(ctx context.Context, ownerID, taskID, field string, value interface{}) error
	Remove(ctx context.Context, ownerID, taskID string) error
}
