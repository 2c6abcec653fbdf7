package task

import (
	"context"
	"errors"
	"net/http"
	"time"

	"taskapp/dto"
	"taskapp/middleware"
	"taskapp/model"
	"taskapp/services"
	"taskapp/tasksync"
	"taskapp/view"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
)

func TaskController(router *gin.Engine, hub *tasksync.Hub, firestoreClient *firestore.Client) {
	routes := router.Group("/tasks", middleware.AccessTokenMiddleware())
	{
		routes.GET("", func(c *gin.Context) {
			ListTasks(c, hub, firestoreClient)
		})
		routes.POST("", func(c *gin.Context) {
			CreateTask(c, hub, firestoreClient)
		})
		routes.PATCH("/:id/status", func(c *gin.Context) {
			UpdateTaskStatus(c, hub, firestoreClient)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteTask(c, hub, firestoreClient)
		})
	}
}

// ownerSession resolves the caller's sync controller. Unverified
// accounts stay gated behind the verification flow and never reach the
// task store.
func ownerSession(c *gin.Context, hub *tasksync.Hub, firestoreClient *firestore.Client) (*tasksync.Controller, bool) {
	userID := c.MustGet("userId").(string)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := services.GetUserDataByUserID(ctx, firestoreClient, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	if !user.Verified {
		c.JSON(http.StatusForbidden, gin.H{"error": "User account is not verified"})
		return nil, false
	}

	ctrl, err := hub.Session(userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return nil, false
	}
	return ctrl, true
}

// ListTasks returns the derived view. A non-empty q searches the whole
// snapshot; otherwise the filter parameter (All, Pending, Completed)
// applies. Both settings stick for the session, like the tabs in the
// mobile client.
func ListTasks(c *gin.Context, hub *tasksync.Hub, firestoreClient *firestore.Client) {
	ctrl, ok := ownerSession(c, hub, firestoreClient)
	if !ok {
		return
	}
	v := ctrl.View()

	if q, exists := c.GetQuery("q"); exists {
		v.SetQuery(q)
	} else if f, exists := c.GetQuery("filter"); exists {
		switch view.Filter(f) {
		case view.FilterAll, view.FilterPending, view.FilterCompleted:
			v.SetFilter(view.Filter(f))
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown filter"})
			return
		}
	}

	tasks := v.Derive()
	c.JSON(http.StatusOK, gin.H{
		"tasks":  tasks,
		"filter": v.Filter(),
		"query":  v.Query(),
	})
}

func CreateTask(c *gin.Context, hub *tasksync.Hub, firestoreClient *firestore.Client) {
	ctrl, ok := ownerSession(c, hub, firestoreClient)
	if !ok {
		return
	}

	var taskReq dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&taskReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := services.ValidateTaskPriority(model.Priority(taskReq.Priority)); err != nil {
		writeTaskError(c, err)
		return
	}

	draft := model.Task{
		Title:       taskReq.Title,
		Description: taskReq.Description,
		DueDate:     taskReq.DueDate,
		Priority:    model.Priority(taskReq.Priority),
		AssignedTo:  taskReq.AssignedTo,
		Status:      model.StatusPending,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	taskID, err := ctrl.Create(ctx, draft)
	if err != nil {
		writeTaskError(c, err)
		return
	}

	// The view reflects the new task only after the next snapshot push.
	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"taskID":  taskID,
	})
}

func UpdateTaskStatus(c *gin.Context, hub *tasksync.Hub, firestoreClient *firestore.Client) {
	ctrl, ok := ownerSession(c, hub, firestoreClient)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := ctrl.SetStatus(ctx, c.Param("id"), *req.Completed); err != nil {
		writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task status updated successfully"})
}

func DeleteTask(c *gin.Context, hub *tasksync.Hub, firestoreClient *firestore.Client) {
	ctrl, ok := ownerSession(c, hub, firestoreClient)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := ctrl.Delete(ctx, c.Param("id")); err != nil {
		writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func writeTaskError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, tasksync.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Store request timed out"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
