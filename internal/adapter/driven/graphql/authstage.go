package graphql

import (
	"context"
	"log/slog"

	"github.com/placepulse/placepulse/internal/domain/port/driven"
)

// authStage sets the Authorization header from the stored session before
// forwarding. It never fails a request itself: a store read error forwards
// the operation unauthenticated, at worst provoking the downstream rejection
// the refresh stage knows how to handle.
type authStage struct {
	next   Executor
	store  driven.SessionStore
	logger *slog.Logger
}

func (s *authStage) Execute(ctx context.Context, op *Operation) (*Response, error) {
	session, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("graphql: session read failed, forwarding unauthenticated",
			"operation", op.OperationName,
			"error", err,
		)
		return s.next.Execute(ctx, op)
	}

	token := ""
	if session != nil {
		token = session.AccessToken
	}
	op.Header.Set("Authorization", bearer(token))

	return s.next.Execute(ctx, op)
}

// bearer formats the Authorization value; no token yields an empty value,
// not an absent header.
func bearer(token string) string {
	if token == "" {
		return ""
	}
	return "Bearer " + token
}
