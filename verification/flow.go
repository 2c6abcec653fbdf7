package verification

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"taskapp/session"
)

type State string

const (
	StateUnauthenticated    State = "Unauthenticated"
	StateLoggedInUnverified State = "LoggedInUnverified"
	StateLoggedInVerified   State = "LoggedInVerified"
)

// ResendCooldown is how long a user waits between verification mails.
const ResendCooldown = 60 * time.Second

var (
	ErrNotYetVerified = errors.New("email not verified yet")
	ErrResendCooldown = errors.New("please wait before resending")
	ErrTimeout        = errors.New("verification request timed out")
)

// Flow gates access to the task list until the session is verified.
// Unauthenticated -> LoggedInUnverified -> LoggedInVerified; only the
// last state unlocks task sync. Cancelling the flow forfeits the
// session.
type Flow struct {
	guard session.Guard
	now   func() time.Time

	mu         sync.Mutex
	state      State
	entered    bool
	nextResend time.Time
}

func NewFlow(guard session.Guard) *Flow {
	return &Flow{
		guard: guard,
		now:   time.Now,
		state: StateUnauthenticated,
	}
}

// Enter resolves the starting state. On an unverified session the first
// verification mail is sent automatically, exactly once per flow; the
// second return value reports whether this call performed that send. A
// send failure is reported but leaves resend enabled immediately so the
// user is not penalized for a transport fault.
func (f *Flow) Enter(ctx context.Context) (State, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.guard.IsLoggedIn() {
		f.state = StateUnauthenticated
		return f.state, false, nil
	}
	// Best effort refresh; a failed reload falls back to cached flags.
	_ = f.guard.Reload(ctx)
	if f.guard.IsVerified() {
		f.state = StateLoggedInVerified
		return f.state, false, nil
	}

	f.state = StateLoggedInUnverified
	if f.entered {
		return f.state, false, nil
	}
	f.entered = true

	if err := f.guard.SendVerificationEmail(ctx); err != nil {
		f.nextResend = time.Time{}
		return f.state, false, mapErr(err)
	}
	f.nextResend = f.now().Add(ResendCooldown)
	return f.state, true, nil
}

// CheckNow reloads the session and transitions to LoggedInVerified when
// the backend reports the flag.
func (f *Flow) CheckNow(ctx context.Context) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateUnauthenticated {
		return f.state, session.ErrNotLoggedIn
	}
	if err := f.guard.Reload(ctx); err != nil {
		return f.state, mapErr(err)
	}
	if f.guard.IsVerified() {
		f.state = StateLoggedInVerified
		return f.state, nil
	}
	return f.state, ErrNotYetVerified
}

// Resend sends another verification mail once the cooldown has elapsed.
// A successful send re-arms the cooldown; a failed one waives it.
func (f *Flow) Resend(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateLoggedInUnverified {
		return fmt.Errorf("resend not available in state %s", f.state)
	}
	if f.now().Before(f.nextResend) {
		return ErrResendCooldown
	}

	if err := f.guard.SendVerificationEmail(ctx); err != nil {
		f.nextResend = time.Time{}
		return mapErr(err)
	}
	f.nextResend = f.now().Add(ResendCooldown)
	return nil
}

// ResendIn reports how long until Resend is permitted; zero means now.
func (f *Flow) ResendIn() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	remaining := f.nextResend.Sub(f.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Cancel abandons verification. Failing to verify forfeits the session
// rather than leaving it pending.
func (f *Flow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.guard.Logout()
	f.state = StateUnauthenticated
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func mapErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
