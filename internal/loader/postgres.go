package loader

import (
	"context"
	"database/sql/driver"
	"fmt"
	"net/url"
	"time"

	"github.com/dsjohal14/quickspot/internal/scope/record"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads one record per row of a query, fields in column order
type PostgresSource struct {
	connString string
	query      string
}

// NewPostgresSource creates a source running query against connString.
// An empty query selects the records table.
func NewPostgresSource(connString, query string) *PostgresSource {
	if query == "" {
		query = DefaultQuery
	}
	return &PostgresSource{connString: connString, query: query}
}

// Name returns the connection target without credentials
func (s *PostgresSource) Name() string {
	u, err := url.Parse(s.connString)
	if err != nil {
		return "postgres"
	}
	return u.Redacted()
}

// Load runs the query and converts every row into a record
func (s *PostgresSource) Load(ctx context.Context) (record.Dataset, error) {
	pool, err := connect(ctx, s.connString)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	ds := make(record.Dataset, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(ds), err)
		}

		rec := record.New()
		for i, fd := range fields {
			rec.Set(fd.Name, columnValue(values[i]))
		}
		ds = append(ds, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	return ds, nil
}

// connect opens a pool and checks it is reachable
func connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// columnValue maps pgx column values onto types the record stringifier knows
func columnValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		return t.Format(time.RFC3339)
	case [16]byte:
		return uuid.UUID(t).String()
	case []byte:
		return string(t)
	case driver.Valuer:
		val, err := t.Value()
		if err != nil {
			return nil
		}
		return columnValue(val)
	}
	return v
}
