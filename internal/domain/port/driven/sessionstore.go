package driven

import (
	"context"
	"errors"

	"github.com/placepulse/placepulse/internal/domain/model"
)

// SessionSlot is the single storage slot holding the authenticated session.
// The store keeps at most one session at a time.
const SessionSlot = "auth_user"

// ErrPartialSession is returned by Save when the session is missing a token
// or the user profile. Only complete sessions are persisted.
var ErrPartialSession = errors.New("session is missing tokens or user profile")

// SessionStore defines the driven port for session persistence. The adapter
// layer is responsible for encryption/decryption; this interface operates on
// plaintext sessions at the domain boundary.
type SessionStore interface {
	// Load retrieves the stored session. Returns (nil, nil) when no session
	// exists or the stored record cannot be read back.
	Load(ctx context.Context) (*model.Session, error)

	// Save stores or replaces the session as a single atomic record.
	// Returns ErrPartialSession if the session is incomplete.
	Save(ctx context.Context, session *model.Session) error

	// Clear removes the stored session. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}
