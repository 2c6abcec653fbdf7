package auth

import (
	"context"
	"net/http"
	"time"

	"taskapp/middleware"
	"taskapp/tasksync"
	"taskapp/verification"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
)

func SignOutController(router *gin.Engine, firestoreClient *firestore.Client, hub *tasksync.Hub, flows *verification.Manager) {
	router.POST("/auth/signout", middleware.AccessTokenMiddleware(), func(c *gin.Context) {
		Signout(c, firestoreClient, hub, flows)
	})
}

// Signout revokes the refresh token and tears down the owner's
// subscription and any pending verification flow.
func Signout(c *gin.Context, firestoreClient *firestore.Client, hub *tasksync.Hub, flows *verification.Manager) {
	userID := c.MustGet("userId").(string)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := firestoreClient.Collection("refreshTokens").Doc(userID).Delete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke refresh token"})
		return
	}

	hub.Release(userID)
	flows.Drop(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
