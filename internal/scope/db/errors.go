package db

import (
	"fmt"

	"github.com/dsjohal14/quickspot/internal/scope/preprocess"
	"github.com/dsjohal14/quickspot/internal/scope/search"
)

// ConfigurationError is returned when a store cannot be set up from its
// options or data.
type ConfigurationError struct {
	Option string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("invalid %s: %v", e.Option, e.Err)
	case e.Reason != "":
		return fmt.Sprintf("invalid %s: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("invalid %s", e.Option)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Aliases so callers of the store can match every failure from one package
type (
	MissingKeyFieldError = preprocess.MissingKeyFieldError
	InvalidScorerError   = search.InvalidScorerError
)
