package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"taskapp/dto"
	"taskapp/model"
	"taskapp/services"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func SignUpController(router *gin.Engine, firestoreClient *firestore.Client) {
	router.POST("/auth/signup", func(c *gin.Context) {
		Signup(c, firestoreClient)
	})
}

func Signup(c *gin.Context, firestoreClient *firestore.Client) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// First failed check wins; the client shows a single reason.
	checks := []error{
		services.ValidateUsername(request.Username),
		services.ValidateEmail(request.Email),
		services.ValidatePassword(request.Password),
		services.ValidateConfirmPassword(request.Password, request.ConfirmPassword),
	}
	for _, err := range checks {
		if err != nil {
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	exists, err := services.UserExist(ctx, firestoreClient, request.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing email"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	docid := uuid.New().String()
	newUser := model.User{
		UserID:    docid,
		Username:  request.Username,
		Email:     request.Email,
		Password:  string(hashedPassword),
		Verified:  false,
		CreatedAt: time.Now(),
	}

	if _, err := firestoreClient.Collection("Users").Doc(docid).Set(ctx, newUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"docID":   docid,
	})
}
