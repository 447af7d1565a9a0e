package graphql

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/placepulse/placepulse/internal/domain/model"
	"github.com/placepulse/placepulse/internal/domain/port/driven"
)

// memStore is an in-memory SessionStore with fault injection.
type memStore struct {
	mu       sync.Mutex
	session  *model.Session
	loadErr  error
	saveErr  error
	clearErr error
	loads    int
	saves    int
	clears   int
}

var _ driven.SessionStore = (*memStore)(nil)

func (m *memStore) Load(ctx context.Context) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.session == nil {
		return nil, nil
	}
	copied := *m.session
	return &copied, nil
}

func (m *memStore) Save(ctx context.Context, session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *session
	m.session = &copied
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.session = nil
	return nil
}

func (m *memStore) current() *model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// execFunc adapts a function to the Executor interface.
type execFunc func(ctx context.Context, op *Operation) (*Response, error)

func (f execFunc) Execute(ctx context.Context, op *Operation) (*Response, error) {
	return f(ctx, op)
}

func okResponse(data string) *Response {
	return &Response{Data: json.RawMessage(data)}
}

func unauthenticatedResponse() *Response {
	return &Response{Errors: []ResponseError{{
		Message:    "Unauthorized",
		Extensions: ErrorExtensions{Code: CodeUnauthenticated},
	}}}
}

func refreshResponse(access, refresh string) *Response {
	data, _ := json.Marshal(map[string]any{
		"refreshToken": map[string]string{
			"accessToken":  access,
			"refreshToken": refresh,
		},
	})
	return &Response{Data: data}
}

func storedSession() *model.Session {
	return &model.Session{
		AccessToken:  "stale-access",
		RefreshToken: "stale-refresh",
		User:         model.UserProfile{ID: "u1", Name: "Ada"},
	}
}
