package session

import (
	"context"
	"fmt"
	"os"
	"sync"

	"taskapp/services"

	"cloud.google.com/go/firestore"
)

// FirestoreGuard is the Guard over the Firestore user record. The
// verified flag lives on the user document and is flipped by the
// verification-link landing endpoint; Reload re-reads it.
type FirestoreGuard struct {
	client *firestore.Client

	mu       sync.Mutex
	ownerID  string
	email    string
	verified bool
}

func NewFirestoreGuard(client *firestore.Client, ownerID, email string, verified bool) *FirestoreGuard {
	return &FirestoreGuard{
		client:   client,
		ownerID:  ownerID,
		email:    email,
		verified: verified,
	}
}

func (g *FirestoreGuard) IsLoggedIn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ownerID != ""
}

func (g *FirestoreGuard) IsVerified() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.verified
}

func (g *FirestoreGuard) OwnerID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ownerID
}

func (g *FirestoreGuard) CurrentEmail() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.email
}

func (g *FirestoreGuard) SendVerificationEmail(ctx context.Context) error {
	g.mu.Lock()
	ownerID, email, verified := g.ownerID, g.email, g.verified
	g.mu.Unlock()

	if ownerID == "" {
		return ErrNotLoggedIn
	}
	if verified {
		return nil
	}

	token, err := services.CreateVerifyToken(ownerID, email)
	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}

	baseURL := os.Getenv("VERIFY_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	link := baseURL + "/auth/verify?token=" + token

	body := services.GenerateVerifyEmailContent(link)
	return services.SendingEmail(email, "Verify your Task Planner email", body)
}

func (g *FirestoreGuard) Reload(ctx context.Context) error {
	g.mu.Lock()
	ownerID := g.ownerID
	g.mu.Unlock()

	if ownerID == "" {
		return ErrNotLoggedIn
	}

	user, err := services.GetUserDataByUserID(ctx, g.client, ownerID)
	if err != nil {
		return fmt.Errorf("session reload failed: %w", err)
	}

	g.mu.Lock()
	g.verified = user.Verified
	g.mu.Unlock()
	return nil
}

func (g *FirestoreGuard) Logout() {
	g.mu.Lock()
	ownerID := g.ownerID
	g.ownerID = ""
	g.email = ""
	g.verified = false
	g.mu.Unlock()

	if ownerID == "" {
		return
	}
	// Best effort: revoke the stored refresh token so the forfeited
	// session cannot be resumed.
	_, _ = g.client.Collection("refreshTokens").Doc(ownerID).Delete(context.Background())
}
