package services

import "fmt"

// APIError is a failure reported by (or while reaching) an upstream
// generation provider. Kind carries the provider's own error classification
// when one was returned, or a transport-level tag otherwise.
type APIError struct {
	Provider string
	Kind     string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Kind)
}

// ErrorKind returns the diagnostic kind for err when it is an *APIError,
// or "api_error" for anything else.
func ErrorKind(err error) string {
	if apiErr, ok := err.(*APIError); ok && apiErr.Kind != "" {
		return apiErr.Kind
	}
	return "api_error"
}
