package session

import (
	"context"
	"errors"
)

var ErrNotLoggedIn = errors.New("no user is currently signed in")

// Guard exposes the identity-service session state the verification flow
// and task controllers depend on. Implementations wrap a concrete
// identity backend; tests use fakes.
type Guard interface {
	IsLoggedIn() bool
	IsVerified() bool
	OwnerID() string
	CurrentEmail() string
	// SendVerificationEmail is a no-op success when the session is
	// already verified.
	SendVerificationEmail(ctx context.Context) error
	// Reload refreshes the verification state from the backend.
	Reload(ctx context.Context) error
	// Logout invalidates the session.
	Logout()
}
