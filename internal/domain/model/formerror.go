package model

import (
	"fmt"
	"sort"
	"strings"
)

// FormErrorKind discriminates the two server validation error shapes.
type FormErrorKind string

const (
	// FormErrorFields carries per-field validation messages.
	FormErrorFields FormErrorKind = "fieldErrors"
	// FormErrorGeneral carries a single operation-wide message.
	FormErrorGeneral FormErrorKind = "general"
)

// FormError is the normalized server validation error, decided once at the
// API boundary. Either Fields is populated (Kind == FormErrorFields) or
// Message is (Kind == FormErrorGeneral), never both.
type FormError struct {
	Kind    FormErrorKind
	Message string
	Fields  map[string]string
}

// GeneralFormError builds a FormError carrying a single message.
func GeneralFormError(message string) *FormError {
	return &FormError{Kind: FormErrorGeneral, Message: message}
}

// FieldFormError builds a FormError keyed by field name.
func FieldFormError(fields map[string]string) *FormError {
	return &FormError{Kind: FormErrorFields, Fields: fields}
}

func (e *FormError) Error() string {
	if e.Kind == FormErrorFields {
		parts := make([]string, 0, len(e.Fields))
		for field, msg := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
		sort.Strings(parts)
		return strings.Join(parts, "; ")
	}
	return e.Message
}
