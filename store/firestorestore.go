package store

import (
	"context"
	"fmt"
	"log"

	"taskapp/model"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore keeps each owner's tasks in
// Tasks/{ownerId}/Items/{taskId}.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) items(ownerID string) *firestore.CollectionRef {
	return s.client.Collection("Tasks").Doc(ownerID).Collection("Items")
}

// GenerateID pre-allocates a document key before the first write.
func (s *FirestoreStore) GenerateID(ownerID string) string {
	return s.items(ownerID).NewDoc().ID
}

func (s *FirestoreStore) Write(ctx context.Context, ownerID, taskID string, task model.Task) error {
	_, err := s.items(ownerID).Doc(taskID).Set(ctx, task)
	if err != nil {
		return fmt.Errorf("store write failed: %w", err)
	}
	return nil
}

func (s *FirestoreStore) WriteField(ctx context.Context, ownerID, taskID, field string, value interface{}) error {
	_, err := s.items(ownerID).Doc(taskID).Update(ctx, []firestore.Update{
		{Path: field, Value: value},
	})
	if err != nil {
		return fmt.Errorf("store write failed: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Remove(ctx context.Context, ownerID, taskID string) error {
	_, err := s.items(ownerID).Doc(taskID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("store write failed: %w", err)
	}
	return nil
}

// Subscribe opens a query-snapshot listener on the owner's collection and
// pumps every full snapshot into the returned channel. The channel closes
// when ctx is cancelled or the listener fails; a failure is delivered as
// a final Event with Err set.
func (s *FirestoreStore) Subscribe(ctx context.Context, ownerID string) (<-chan Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("store subscribe failed: %w", err)
	}

	snaps := s.items(ownerID).Snapshots(ctx)
	events := make(chan Event)

	go func() {
		defer close(events)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || ctx.Err() != nil {
					return
				}
				select {
				case events <- Event{Err: fmt.Errorf("store subscribe failed: %w", err)}:
				case <-ctx.Done():
				}
				return
			}

			var tasks []model.Task
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					select {
					case events <- Event{Err: fmt.Errorf("store subscribe failed: %w", err)}:
					case <-ctx.Done():
					}
					return
				}
				var task model.Task
				if err := doc.DataTo(&task); err != nil {
					log.Printf("store: dropping malformed task %s for %s: %v", doc.Ref.ID, ownerID, err)
					continue
				}
				task.TaskID = doc.Ref.ID
				tasks = append(tasks, task)
			}

			select {
			case events <- Event{Tasks: tasks}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}
