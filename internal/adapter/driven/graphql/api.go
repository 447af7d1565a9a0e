package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/placepulse/placepulse/internal/domain/model"
	"github.com/placepulse/placepulse/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.AuthAPI    = (*Client)(nil)
	_ driven.CheckInAPI = (*Client)(nil)
)

const userSelection = `id
		email
		name
		avatar
		bio
		location`

const loginMutation = `mutation Login($input: LoginInput!) {
	login(input: $input) {
		accessToken
		refreshToken
		user {
			` + userSelection + `
		}
	}
}`

const signupMutation = `mutation Signup($input: SignupInput!) {
	signup(input: $input) {
		accessToken
		refreshToken
		user {
			` + userSelection + `
		}
	}
}`

const refreshMutation = `mutation RefreshToken($refreshToken: String!) {
	refreshToken(refreshToken: $refreshToken) {
		accessToken
		refreshToken
	}
}`

const meQuery = `query Me {
	me {
		` + userSelection + `
	}
}`

const checkInMutation = `mutation CheckIn($latitude: Float!, $longitude: Float!, $timestamp: String!, $content: String) {
	checkIn(input: { latitude: $latitude, longitude: $longitude, timestamp: $timestamp, content: $content }) {
		id
		latitude
		longitude
		timestamp
		content
		place {
			id
			name
		}
	}
}`

// Login exchanges credentials for a session payload. Server validation
// failures come back as *model.FormError.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	op := NewOperation("Login", loginMutation, map[string]any{
		"input": map[string]any{"email": email, "password": password},
	})
	return c.sessionPayload(ctx, op, "login")
}

// SignUp registers a new account and returns its session payload. Server
// validation failures come back as *model.FormError.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (*model.Session, error) {
	op := NewOperation("Signup", signupMutation, map[string]any{
		"input": map[string]any{"name": name, "email": email, "password": password},
	})
	return c.sessionPayload(ctx, op, "signup")
}

// sessionPayload runs an auth mutation and decodes its session-shaped
// payload, which sits under the field named by the mutation.
func (c *Client) sessionPayload(ctx context.Context, op *Operation, field string) (*model.Session, error) {
	resp, err := c.Execute(ctx, op)
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, normalizeFormError(resp.Errors, field+" failed")
	}

	var payload map[string]*model.Session
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", field, err)
	}
	session := payload[field]
	if !session.Valid() {
		return nil, model.GeneralFormError(field + " failed")
	}
	return session, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*model.UserProfile, error) {
	resp, err := c.Execute(ctx, NewOperation("Me", meQuery, nil))
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("me: %s", resp.Errors[0].Message)
	}

	var payload struct {
		Me *model.UserProfile `json:"me"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode me payload: %w", err)
	}
	if payload.Me == nil {
		return nil, errors.New("me: empty payload")
	}
	return payload.Me, nil
}

// CheckIn records a visit at the given coordinates. An empty Timestamp is
// filled with the current time in RFC 3339.
func (c *Client) CheckIn(ctx context.Context, input model.CheckInInput) (*model.CheckIn, error) {
	if input.Timestamp == "" {
		input.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	op := NewOperation("CheckIn", checkInMutation, map[string]any{
		"latitude":  input.Latitude,
		"longitude": input.Longitude,
		"timestamp": input.Timestamp,
		"content":   input.Content,
	})
	resp, err := c.Execute(ctx, op)
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("checkIn: %s", resp.Errors[0].Message)
	}

	var payload struct {
		CheckIn *model.CheckIn `json:"checkIn"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode checkIn payload: %w", err)
	}
	if payload.CheckIn == nil {
		return nil, errors.New("checkIn: empty payload")
	}
	return payload.CheckIn, nil
}

// tokenPair is the refresh mutation payload. Both tokens are required; a
// response missing either counts as refresh failure.
type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// refreshTokenPair issues the dedicated refresh mutation over the given
// executor, which must be the bare path so the call cannot re-enter the
// pipeline.
func refreshTokenPair(ctx context.Context, exec Executor, refreshToken string) (*tokenPair, error) {
	op := NewOperation("RefreshToken", refreshMutation, map[string]any{
		"refreshToken": refreshToken,
	})
	resp, err := exec.Execute(ctx, op)
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("refresh rejected: %s", resp.Errors[0].Message)
	}

	var payload struct {
		RefreshToken tokenPair `json:"refreshToken"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		return nil, fmt.Errorf("decode refresh payload: %w", err)
	}
	pair := payload.RefreshToken
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, errors.New("refresh response missing tokens")
	}
	return &pair, nil
}

// fieldViolation is the array element shape the backend uses for per-field
// validation messages.
type fieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// normalizeFormError decides the server validation error shape exactly once:
// extensions.originalError.message is either an array of field violations or
// a plain string, and anything unrecognized falls back to a general message.
func normalizeFormError(respErrors []ResponseError, fallback string) *model.FormError {
	first := respErrors[0]
	original := first.Extensions.OriginalError
	if original == nil || len(original.Message) == 0 {
		if first.Message != "" {
			return model.GeneralFormError(first.Message)
		}
		return model.GeneralFormError(fallback)
	}

	var violations []fieldViolation
	if err := json.Unmarshal(original.Message, &violations); err == nil && len(violations) > 0 {
		fields := make(map[string]string, len(violations))
		for _, v := range violations {
			fields[v.Field] = v.Message
		}
		return model.FieldFormError(fields)
	}

	var message string
	if err := json.Unmarshal(original.Message, &message); err == nil && message != "" {
		return model.GeneralFormError(message)
	}

	return model.GeneralFormError(fallback)
}
