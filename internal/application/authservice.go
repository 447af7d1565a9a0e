// Package application wires the domain ports into the credential lifecycle
// the rest of the client consumes.
package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/placepulse/placepulse/internal/domain/model"
	"github.com/placepulse/placepulse/internal/domain/port/driven"
)

// AuthService owns the process-wide authentication state and the credential
// lifecycle: bootstrap at startup, login/signup, logout. It is the only
// writer of the session store besides the transport's refresh stage.
//
// All state reads go through an RWMutex so callers on any goroutine get a
// consistent snapshot.
type AuthService struct {
	api    driven.AuthAPI
	store  driven.SessionStore
	logger *slog.Logger

	mu      sync.RWMutex
	user    *model.UserProfile
	loading bool
	formErr *model.FormError
}

// NewAuthService creates an AuthService. The state reports Loading until
// Bootstrap has run.
func NewAuthService(api driven.AuthAPI, store driven.SessionStore, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		api:     api,
		store:   store,
		logger:  logger,
		loading: true,
	}
}

// Bootstrap restores session state from the store at process start. It never
// fails: any storage error resolves to the unauthenticated state.
func (s *AuthService) Bootstrap(ctx context.Context) {
	session, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("auth: bootstrap read failed, starting unauthenticated", "error", err)
		session = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.formErr = nil
	if session != nil {
		user := session.User
		s.user = &user
	}
}

// Login authenticates and updates the in-memory state. With remember set the
// session is persisted; without it the store is cleared so the session lives
// only in this process. Validation failures are recorded for Errors and
// returned as *model.FormError.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (*model.Session, error) {
	s.ClearError()

	session, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, s.recordError(err, "login failed")
	}

	s.setUser(&session.User)

	if remember {
		if err := s.store.Save(ctx, session); err != nil {
			s.logger.Warn("auth: persisting login failed, session is in-memory only", "error", err)
		}
	} else if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("auth: clearing store after non-remembered login failed", "error", err)
	}

	return session, nil
}

// SignUp registers a new account, updates the in-memory state and always
// persists the session. Validation failures are recorded for Errors and
// returned as *model.FormError.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*model.Session, error) {
	s.ClearError()

	session, err := s.api.SignUp(ctx, name, email, password)
	if err != nil {
		return nil, s.recordError(err, "signup failed")
	}

	s.setUser(&session.User)

	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Warn("auth: persisting signup failed, session is in-memory only", "error", err)
	}

	return session, nil
}

// Logout clears the in-memory state and the session store unconditionally.
// Server-side session invalidation, where deployed, is a separate boundary
// call and not part of this lifecycle.
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.formErr = nil
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("auth: clearing store on logout failed", "error", err)
	}
}

// ClearError resets only the recorded validation error; tokens and state are
// untouched.
func (s *AuthService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formErr = nil
}

// Errors returns the validation error recorded by the last failed login or
// signup, or nil.
func (s *AuthService) Errors() *model.FormError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formErr
}

// State returns a snapshot of the authentication state.
func (s *AuthService) State() model.AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.AuthState{
		IsAuthenticated: s.user != nil,
		User:            s.user,
		Loading:         s.loading,
	}
}

func (s *AuthService) setUser(user *model.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// recordError normalizes err into the FormError surfaced to forms. Anything
// that is not already a FormError becomes a general one with the fallback
// message; the cause is logged, not shown.
func (s *AuthService) recordError(err error, fallback string) error {
	var fe *model.FormError
	if !errors.As(err, &fe) {
		s.logger.Warn("auth: request failed", "error", err)
		fe = model.GeneralFormError(fallback)
	}

	s.mu.Lock()
	s.formErr = fe
	s.mu.Unlock()
	return fe
}
