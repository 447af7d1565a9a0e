package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// defaultHTTPClient enforces a 30-second timeout as a safety net alongside
// context cancellation.
var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// Executor sends one GraphQL operation and returns its decoded response.
// A non-nil Response may still carry GraphQL errors in Response.Errors;
// the error return is reserved for transport failures (network, non-2xx,
// malformed body).
type Executor interface {
	Execute(ctx context.Context, op *Operation) (*Response, error)
}

// httpExecutor POSTs operations as JSON to a single endpoint.
type httpExecutor struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func newHTTPExecutor(endpoint string, client *http.Client, logger *slog.Logger) *httpExecutor {
	if client == nil {
		client = defaultHTTPClient
	}
	return &httpExecutor{endpoint: endpoint, client: client, logger: logger}
}

func (e *httpExecutor) Execute(ctx context.Context, op *Operation) (*Response, error) {
	body, err := json.Marshal(op)
	if err != nil {
		return nil, fmt.Errorf("marshal operation %s: %w", op.OperationName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", op.OperationName, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range op.Header {
		req.Header[key] = values
	}

	id := uuid.NewString()
	start := time.Now()

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", op.OperationName, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.logger.Warn("graphql: non-2xx response",
			"id", id,
			"operation", op.OperationName,
			"status", resp.StatusCode,
		)
		return nil, fmt.Errorf("execute %s: HTTP %d", op.OperationName, resp.StatusCode)
	}

	var decoded Response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response for %s: %w", op.OperationName, err)
	}

	e.logger.Debug("graphql: request complete",
		"id", id,
		"operation", op.OperationName,
		"errors", len(decoded.Errors),
		"duration", time.Since(start).Round(time.Microsecond),
	)

	return &decoded, nil
}
