package graphql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/placepulse/placepulse/internal/domain/model"
	"github.com/placepulse/placepulse/internal/domain/port/driven"
)

// ErrSessionExpired is surfaced when the refresh handshake cannot produce a
// new token pair. The stored session has been cleared by the time callers see
// it, forcing the application to its unauthenticated state.
var ErrSessionExpired = errors.New("session expired")

// ErrNoRefreshToken is the cause when the unauthenticated signal arrives and
// no refresh token is stored. No refresh call is attempted in that case.
var ErrNoRefreshToken = errors.New("no refresh token")

// refreshStage intercepts the unauthenticated error code, performs the
// token-refresh handshake through a direct path to the executor, and replays
// the original operation exactly once with the renewed token. Every other
// result, including transport errors and business GraphQL errors, passes
// through untouched.
//
// Concurrent operations failing on the same stale refresh token share a
// single refresh flight; each replays independently with the shared result.
type refreshStage struct {
	next    Executor // downstream path carrying the original operation
	direct  Executor // bare path for the refresh mutation; must not re-enter the pipeline
	store   driven.SessionStore
	timeout time.Duration
	group   singleflight.Group
	logger  *slog.Logger
}

func (s *refreshStage) Execute(ctx context.Context, op *Operation) (*Response, error) {
	resp, err := s.next.Execute(ctx, op)
	if err != nil {
		// Transport errors are not retried here.
		return nil, err
	}
	if !resp.HasErrorCode(CodeUnauthenticated) {
		return resp, nil
	}

	session, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("graphql: session read failed during refresh", "error", err)
		session = nil
	}
	if session == nil || session.RefreshToken == "" {
		s.clear(ctx, "missing refresh token")
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, ErrNoRefreshToken)
	}

	renewed, err := s.refresh(ctx, session)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			// The caller went away; the shared flight may still complete but
			// no result is applied on its behalf.
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	op.Header.Set("Authorization", bearer(renewed.AccessToken))
	// The replayed result is final either way; a second unauthenticated
	// response passes through rather than looping.
	return s.next.Execute(ctx, op)
}

// refresh mints a new token pair and persists it with the cached user
// preserved. The flight is keyed on the stale refresh token and detached from
// any single caller's cancellation; only the configured timeout bounds it.
func (s *refreshStage) refresh(ctx context.Context, stale *model.Session) (*model.Session, error) {
	ch := s.group.DoChan(stale.RefreshToken, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		pair, err := refreshTokenPair(rctx, s.direct, stale.RefreshToken)
		if err != nil {
			s.clear(rctx, "refresh failed")
			return nil, err
		}

		renewed := &model.Session{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			User:         stale.User,
		}
		if err := s.store.Save(rctx, renewed); err != nil {
			// Degrades to a non-persistent session; the renewed pair still
			// serves in-flight operations.
			s.logger.Warn("graphql: persisting renewed session failed", "error", err)
		}
		return renewed, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.Session), nil
	}
}

func (s *refreshStage) clear(ctx context.Context, reason string) {
	// Clearing must go through even when the triggering context is done.
	if err := s.store.Clear(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("graphql: clearing session failed", "reason", reason, "error", err)
	}
}
