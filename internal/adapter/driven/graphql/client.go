package graphql

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/placepulse/placepulse/internal/domain/port/driven"
)

// DefaultRefreshTimeout bounds the token-refresh mutation when no explicit
// timeout is configured.
const DefaultRefreshTimeout = 15 * time.Second

// Compile-time interface satisfaction checks.
var (
	_ Executor = (*Client)(nil)
)

// Client is the authenticated transport. Every operation handed to Execute
// travels auth attachment -> refresh-and-retry -> HTTP executor; the refresh
// mutation itself takes a direct path to the executor so it can never recurse
// into the pipeline.
type Client struct {
	exec   Executor
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpClient     *http.Client
	logger         *slog.Logger
	refreshTimeout time.Duration
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger overrides the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRefreshTimeout overrides DefaultRefreshTimeout.
func WithRefreshTimeout(d time.Duration) Option {
	return func(o *options) { o.refreshTimeout = d }
}

// NewClient assembles the pipeline against the given endpoint and session
// store.
func NewClient(endpoint string, store driven.SessionStore, opts ...Option) *Client {
	o := options{
		logger:         slog.Default(),
		refreshTimeout: DefaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := newHTTPExecutor(endpoint, o.httpClient, o.logger)
	refresh := &refreshStage{
		next:    base,
		direct:  base,
		store:   store,
		timeout: o.refreshTimeout,
		logger:  o.logger,
	}
	auth := &authStage{
		next:   refresh,
		store:  store,
		logger: o.logger,
	}

	return &Client{exec: auth, logger: o.logger}
}

// Execute runs one operation through the full pipeline. Cancelling ctx
// detaches the caller: the upstream HTTP call is torn down and any pending
// retry is abandoned before it can apply side effects.
func (c *Client) Execute(ctx context.Context, op *Operation) (*Response, error) {
	return c.exec.Execute(ctx, op)
}
