// Package graphql implements the authenticated transport to the placepulse
// GraphQL endpoint: an HTTP executor wrapped by an auth-attachment stage and
// a refresh-and-retry stage, plus the typed API calls built on top of it.
package graphql

import (
	"encoding/json"
	"net/http"
)

// CodeUnauthenticated is the error code the backend attaches to a response
// whose bearer token was missing, expired or rejected. It is the only error
// code the transport intercepts; everything else passes through untouched.
const CodeUnauthenticated = "UNAUTHENTICATED"

// Operation is one outgoing GraphQL call: an opaque document, its variables,
// and the mutable header set the pipeline stages write into.
type Operation struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`

	// Header is mutated in place by the pipeline; the auth stage owns the
	// Authorization entry.
	Header http.Header `json:"-"`
}

// NewOperation builds an Operation with an initialized header map.
func NewOperation(name, query string, variables map[string]any) *Operation {
	return &Operation{
		Query:         query,
		OperationName: name,
		Variables:     variables,
		Header:        make(http.Header),
	}
}

// ResponseError is one entry of a GraphQL response's structured error list.
type ResponseError struct {
	Message    string          `json:"message"`
	Extensions ErrorExtensions `json:"extensions"`
}

// ErrorExtensions carries the machine-readable part of a response error.
type ErrorExtensions struct {
	Code          string         `json:"code"`
	OriginalError *OriginalError `json:"originalError,omitempty"`
}

// OriginalError wraps the backend's underlying error. Message is either a
// plain string or an array of field violations; it is kept raw here and
// decoded once at the API boundary.
type OriginalError struct {
	Message json.RawMessage `json:"message"`
}

// Response is the decoded body of a GraphQL HTTP response. A response can
// carry both partial data and errors; the transport only inspects Errors.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ResponseError `json:"errors,omitempty"`
}

// HasErrorCode reports whether any entry in the error list carries the given
// extensions code.
func (r *Response) HasErrorCode(code string) bool {
	for _, e := range r.Errors {
		if e.Extensions.Code == code {
			return true
		}
	}
	return false
}
