package pricing

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigurationError.
	ErrConfiguration = errors.New("invalid pricing rules")
	// ErrInvalidRequest is matched by every *InvalidRequestError.
	ErrInvalidRequest = errors.New("invalid quote request")
)

// ConfigurationError reports a malformed rule override. Field is the dotted
// rule path, e.g. "labor.weeklyRate".
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// InvalidRequestError reports a request that cannot be priced.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidRequest, e.Field, e.Reason)
}

func (e *InvalidRequestError) Unwrap() error { return ErrInvalidRequest }

func invalidRequest(field, reason string) error {
	return &InvalidRequestError{Field: field, Reason: reason}
}

func invalidConfig(field, reason string) error {
	return &ConfigurationError{Field: field, Reason: reason}
}
