package task

import (
	"log"
	"net/http"

	"taskapp/middleware"
	"taskapp/model"
	"taskapp/tasksync"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func StreamController(router *gin.Engine, hub *tasksync.Hub, firestoreClient *firestore.Client) {
	router.GET("/tasks/stream", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		StreamTasks(c, hub, firestoreClient)
	})
}

type streamFrame struct {
	Tasks []model.Task `json:"tasks"`
}

// StreamTasks pushes the owner's derived view over a websocket: once on
// connect, then again after every snapshot applied by the sync
// controller.
func StreamTasks(c *gin.Context, hub *tasksync.Hub, firestoreClient *firestore.Client) {
	ctrl, ok := ownerSession(c, hub, firestoreClient)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, off := ctrl.Updates()
	defer off()

	// Reader goroutine: only to notice the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(streamFrame{Tasks: ctrl.View().Derive()}); err != nil {
		return
	}
	for {
		select {
		case <-updates:
			if err := conn.WriteJSON(streamFrame{Tasks: ctrl.View().Derive()}); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
