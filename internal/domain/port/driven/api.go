package driven

import (
	"context"

	"github.com/placepulse/placepulse/internal/domain/model"
)

// AuthAPI defines the driven port for the remote authentication operations.
// Server-side validation failures surface as *model.FormError.
type AuthAPI interface {
	// Login exchanges credentials for a session.
	Login(ctx context.Context, email, password string) (*model.Session, error)

	// SignUp registers a new account and returns its session.
	SignUp(ctx context.Context, name, email, password string) (*model.Session, error)
}

// CheckInAPI defines the driven port for authenticated check-in operations.
type CheckInAPI interface {
	// Me fetches the authenticated user's profile.
	Me(ctx context.Context) (*model.UserProfile, error)

	// CheckIn records a visit at the given coordinates.
	CheckIn(ctx context.Context, input model.CheckInInput) (*model.CheckIn, error)
}
