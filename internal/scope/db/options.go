package db

import (
	"github.com/dsjohal14/quickspot/internal/scope/preprocess"
	"github.com/dsjohal14/quickspot/internal/scope/search"
	"github.com/dsjohal14/quickspot/internal/scope/textnorm"
	"github.com/rs/zerolog"
)

// Setting is an option given either as a literal value or as a callback that
// produces it. New resolves every Setting exactly once.
type Setting[T any] struct {
	value T
	fn    func() (T, error)
	set   bool
}

// Literal wraps a fixed value
func Literal[T any](v T) Setting[T] {
	return Setting[T]{value: v, set: true}
}

// Callback wraps a function called once at setup
func Callback[T any](fn func() (T, error)) Setting[T] {
	return Setting[T]{fn: fn, set: fn != nil}
}

// IsSet reports whether the setting was given at all
func (s Setting[T]) IsSet() bool {
	return s.set
}

// Resolve returns the setting's value, calling the callback if there is one
func (s Setting[T]) Resolve() (T, error) {
	if s.fn != nil {
		return s.fn()
	}
	return s.value, nil
}

// PreParseFunc reshapes raw data before it is preprocessed
type PreParseFunc func(data any, cfg Config) (any, error)

// Config holds datastore options
type Config struct {
	// KeyValue names the primary field used for title scoring (default "name")
	KeyValue Setting[string]

	// SearchOn lists the fields folded into the search blob (default all)
	SearchOn Setting[[]string]

	// DisableOccurrenceWeighting stops repeats of the query adding to the score
	DisableOccurrenceWeighting bool

	// Normalizer cleans stored values and queries (default textnorm.Simplify)
	Normalizer textnorm.Normalizer

	// Scorer replaces the default scorer
	Scorer search.Scorer

	// PreParse runs once on the raw data before preprocessing
	PreParse PreParseFunc

	// OnLoaded fires after the store has been created
	OnLoaded func(*Store)

	// Logger overrides the store's logger
	Logger *zerolog.Logger
}

// resolved is a Config with every Setting evaluated
type resolved struct {
	keyField string
	searchOn []string
}

func (c Config) resolve() (resolved, error) {
	out := resolved{keyField: preprocess.DefaultKeyField}

	if c.KeyValue.IsSet() {
		key, err := c.KeyValue.Resolve()
		if err != nil {
			return out, &ConfigurationError{Option: "keyValue", Err: err}
		}
		if key == "" {
			return out, &ConfigurationError{Option: "keyValue", Reason: "key field name is empty"}
		}
		out.keyField = key
	}

	if c.SearchOn.IsSet() {
		fields, err := c.SearchOn.Resolve()
		if err != nil {
			return out, &ConfigurationError{Option: "searchOn", Err: err}
		}
		for _, f := range fields {
			if f == "" {
				return out, &ConfigurationError{Option: "searchOn", Reason: "empty field name"}
			}
		}
		out.searchOn = fields
	}

	return out, nil
}
