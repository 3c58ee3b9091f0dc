// Package loader reads datasets from external sources so the datastore itself
// never performs I/O.
package loader

import (
	"context"
	"strings"

	"github.com/dsjohal14/quickspot/internal/scope/record"
)

// DefaultQuery selects every row of the records table
const DefaultQuery = "SELECT * FROM records"

// Source supplies a dataset
type Source interface {
	// Name identifies the source in logs
	Name() string

	// Load reads the whole dataset
	Load(ctx context.Context) (record.Dataset, error)
}

// Open picks a source for location: postgres:// and postgresql:// URLs are
// read with query, anything else is treated as a file path.
func Open(location, query string) Source {
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return NewPostgresSource(location, query)
	}
	return NewFileSource(location)
}
