package model

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

type Task struct {
	TaskID      string   `firestore:"taskid,omitempty" json:"taskId"`
	Title       string   `firestore:"title,omitempty" json:"title"`
	Description string   `firestore:"description,omitempty" json:"description"`
	DueDate     string   `firestore:"duedate,omitempty" json:"dueDate"` // "D/M/YYYY", formatted by the producer
	Priority    Priority `firestore:"priority,omitempty" json:"priority"`
	Status      Status   `firestore:"status,omitempty" json:"status"`
	AssignedTo  string   `firestore:"assignedto,omitempty" json:"assignedTo"`
	OwnerID     string   `firestore:"ownerid,omitempty" json:"ownerId"`
	CreatedAt   int64    `firestore:"createdat,omitempty" json:"createdAt"` // epoch milliseconds, set once
}
