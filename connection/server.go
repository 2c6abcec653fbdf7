package connection

import (
	"log"

	authcontroller "taskapp/controller/auth"
	taskcontroller "taskapp/controller/task"
	"taskapp/session"
	"taskapp/store"
	"taskapp/tasksync"
	"taskapp/verification"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	router := gin.Default()

	fb, err := FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}

	taskStore := store.NewFirestoreStore(fb)
	hub := tasksync.NewHub(taskStore)
	flows := verification.NewManager(func(ownerID, email string) session.Guard {
		return session.NewFirestoreGuard(fb, ownerID, email, false)
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	authcontroller.SignUpController(router, fb)
	authcontroller.SignInController(router, fb)
	authcontroller.SignOutController(router, fb, hub, flows)
	authcontroller.TokenController(router, fb)
	authcontroller.VerifyController(router, fb, flows)
	taskcontroller.TaskController(router, hub, fb)
	taskcontroller.StreamController(router, hub, fb)

	router.Run()
}
