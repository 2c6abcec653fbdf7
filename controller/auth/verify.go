package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"taskapp/middleware"
	"taskapp/services"
	"taskapp/session"
	"taskapp/verification"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
)

func VerifyController(router *gin.Engine, firestoreClient *firestore.Client, flows *verification.Manager) {
	// Link landing: visited from the mail client, no access token.
	router.GET("/auth/verify", func(c *gin.Context) {
		VerifyLink(c, firestoreClient)
	})

	routes := router.Group("/auth/verify", middleware.AccessTokenMiddleware())
	{
		routes.POST("/send", func(c *gin.Context) {
			ResendVerification(c, flows)
		})
		routes.POST("/check", func(c *gin.Context) {
			CheckVerification(c, flows)
		})
		routes.POST("/cancel", func(c *gin.Context) {
			CancelVerification(c, flows)
		})
	}
}

// VerifyLink validates the signed token from the mailed link and flips
// the user's verified flag.
func VerifyLink(c *gin.Context, firestoreClient *firestore.Client) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing verification token"})
		return
	}

	claims, err := services.ParseVerifyToken(tokenString)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired verification link"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := services.SetUserVerified(ctx, firestoreClient, claims.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update verify field"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

func enterFlow(c *gin.Context, flows *verification.Manager) *verification.Flow {
	userID := c.MustGet("userId").(string)
	email, _ := c.Get("email")
	emailStr, _ := email.(string)
	return flows.Flow(userID, emailStr)
}

func ResendVerification(c *gin.Context, flows *verification.Manager) {
	flow := enterFlow(c, flows)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	state, sent, err := flow.Enter(ctx)
	if state == verification.StateLoggedInVerified {
		c.JSON(http.StatusOK, gin.H{"message": "Email already verified", "state": state})
		return
	}
	if state == verification.StateUnauthenticated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": session.ErrNotLoggedIn.Error()})
		return
	}
	if sent && err == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Verification email sent",
			"state":    state,
			"resendIn": int(flow.ResendIn().Seconds()),
		})
		return
	}

	if err := flow.Resend(ctx); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, verification.ErrResendCooldown):
			status = http.StatusTooManyRequests
		case errors.Is(err, verification.ErrTimeout):
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": err.Error(), "resendIn": int(flow.ResendIn().Seconds())})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Verification email sent",
		"state":    flow.State(),
		"resendIn": int(flow.ResendIn().Seconds()),
	})
}

func CheckVerification(c *gin.Context, flows *verification.Manager) {
	flow := enterFlow(c, flows)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if state, _, _ := flow.Enter(ctx); state == verification.StateUnauthenticated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": session.ErrNotLoggedIn.Error()})
		return
	}

	state, err := flow.CheckNow(ctx)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrNotYetVerified):
			c.JSON(http.StatusOK, gin.H{"state": state, "verified": false})
		case errors.Is(err, session.ErrNotLoggedIn):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, verification.ErrTimeout):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	userID := c.MustGet("userId").(string)
	flows.Drop(userID)
	c.JSON(http.StatusOK, gin.H{"state": state, "verified": true})
}

// CancelVerification abandons the flow; the session is forfeited rather
// than left pending.
func CancelVerification(c *gin.Context, flows *verification.Manager) {
	flow := enterFlow(c, flows)
	flow.Cancel()

	userID := c.MustGet("userId").(string)
	flows.Drop(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Verification cancelled, session logged out"})
}
