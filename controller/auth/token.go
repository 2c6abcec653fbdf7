package auth

import (
	"context"
	"net/http"
	"time"

	"taskapp/middleware"
	"taskapp/model"
	"taskapp/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
)

func TokenController(router *gin.Engine, firestoreClient *firestore.Client) {
	router.POST("/auth/token", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
		RefreshAccessToken(c, firestoreClient)
	})
}

func RefreshAccessToken(c *gin.Context, firestoreClient *firestore.Client) {
	userID := c.MustGet("userId").(string)
	refreshToken := c.MustGet("refreshToken").(string)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	docSnap, err := firestoreClient.Collection("refreshTokens").Doc(userID).Get(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
		return
	}
	var stored model.TokenResponse
	if err := docSnap.DataTo(&stored); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse refresh token record"})
		return
	}
	if stored.Revoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token has been revoked"})
		return
	}
	if err := services.CompareRefreshToken(stored.RefreshToken, refreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token mismatch"})
		return
	}

	user, err := services.GetUserDataByUserID(ctx, firestoreClient, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := services.CreateAccessToken(userID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}
