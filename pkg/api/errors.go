package api

import (
	"errors"
	"fmt"
	"strings"
)

// GenericReason is shown when the server gave no structured error list.
const GenericReason = "Unable to complete request at this time."

// FieldError is one entry of the API's error list. Field may be empty for
// errors that are not tied to a particular input.
type FieldError struct {
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// errorBody is the wire shape of a 4xx response.
type errorBody struct {
	Errors []FieldError `json:"errors"`
}

// Error is a failed API call. It always carries at least one FieldError so
// callers can distribute reasons into per-field slots without special cases.
type Error struct {
	StatusCode int
	Summary    string
	Errors     []FieldError
}

func (e *Error) Error() string {
	reasons := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field != "" {
			reasons = append(reasons, fmt.Sprintf("%s: %s", fe.Field, fe.Reason))
		} else {
			reasons = append(reasons, fe.Reason)
		}
	}
	if len(reasons) == 0 {
		return e.Summary
	}
	return fmt.Sprintf("%s: %s", e.Summary, strings.Join(reasons, "; "))
}

// FieldErrors extracts the structured error list from any error returned by
// this package. Errors without a structured list (network failures, decode
// failures) collapse to a single generic entry.
func FieldErrors(err error) []FieldError {
	var apiErr *Error
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		return apiErr.Errors
	}
	return []FieldError{{Reason: GenericReason}}
}
