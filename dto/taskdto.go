package dto

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assignedTo"`
}

type UpdateStatusRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}
