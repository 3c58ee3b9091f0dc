// Package httpapi provides HTTP handlers and data transfer objects for the quickspot API.
package httpapi

import (
	"time"

	"github.com/dsjohal14/quickspot/internal/scope/record"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	RecordCount int    `json:"record_count"`
	Sessions    int    `json:"sessions"`
}

// SearchRequest represents search request
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"` // Default: MAX_RESULTS
}

// SearchResult represents a single ranked record
type SearchResult struct {
	Record      *record.Record `json:"record"`
	KeyValue    string         `json:"key_value"`
	Score       float64        `json:"score"`
	LengthDelta int            `json:"length_delta"`
}

// SearchResponse represents search results
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Count   int            `json:"count"` // Results returned after the limit
	Total   int            `json:"total"` // Matches before the limit
	Query   string         `json:"query"`
}

// FilterRequest narrows a session's scope
type FilterRequest struct {
	Query  string `json:"query"`
	Column string `json:"column,omitempty"` // Record field, default searches all
}

// FilterResponse reports a session's scope after a filter change
type FilterResponse struct {
	Count int `json:"count"` // Records in scope
	Total int `json:"total"` // Records in the dataset
}

// AddRecordsRequest appends records to a dataset
type AddRecordsRequest struct {
	Records record.Dataset `json:"records"`
}

// AddRecordsResponse represents record ingestion response
type AddRecordsResponse struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

// SessionResponse describes a search session
type SessionResponse struct {
	ID            string    `json:"id"`
	RecordCount   int       `json:"record_count"`
	FilteredCount int       `json:"filtered_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
