// Package search provides substring matching and relevance ranking over
// preprocessed records.
package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dsjohal14/quickspot/internal/scope/record"
	"github.com/dsjohal14/quickspot/internal/scope/textnorm"
)

// Columns that address derived values instead of a record field
const (
	ColumnSearchBlob = "$searchBlob"
	ColumnKeyValue   = "$keyValue"
)

// Config configures an Engine
type Config struct {
	// Normalizer is applied to lowercased queries (default textnorm.Simplify)
	Normalizer textnorm.Normalizer

	// Scorer replaces the default scoring function
	Scorer Scorer

	// DisableOccurrenceWeighting stops the default scorer from counting repeats
	DisableOccurrenceWeighting bool
}

// Engine filters, scores and sorts records. It holds no per-query state and
// is not safe for concurrent use on the same records, because ranking writes
// each record's Score and LengthDelta.
type Engine struct {
	normalizer textnorm.Normalizer
	scorer     Scorer
}

// NewEngine creates a new engine from cfg
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		normalizer: cfg.Normalizer,
		scorer:     cfg.Scorer,
	}
	if e.normalizer == nil {
		e.normalizer = textnorm.Simplify
	}
	if e.scorer == nil {
		e.scorer = DefaultScorer(!cfg.DisableOccurrenceWeighting)
	}
	return e
}

// Normalize lowercases and normalizes a query
func (e *Engine) Normalize(query string) string {
	return e.normalizer(strings.ToLower(query))
}

// Find returns the records of scope whose column contains query, keeping
// their relative order. An empty column means ColumnSearchBlob.
//
// A query that normalizes to "" is used as-is and so matches every record.
func (e *Engine) Find(query string, scope []*record.Record, column string) []*record.Record {
	needle := e.Normalize(query)

	matches := make([]*record.Record, 0)
	for _, rec := range scope {
		if strings.Contains(e.columnValue(rec, column), needle) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// FindFunc returns the records of scope accepted by pred, keeping their order
func (e *Engine) FindFunc(pred func(*record.Record) bool, scope []*record.Record) []*record.Record {
	matches := make([]*record.Record, 0)
	for _, rec := range scope {
		if pred(rec) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// SortByMatch scores results against query and sorts them in place:
// score descending, then LengthDelta ascending, then SearchBlob ascending.
func (e *Engine) SortByMatch(results []*record.Record, query string) error {
	needle := e.Normalize(query)
	needleLen := utf8.RuneCountInString(needle)

	for _, rec := range results {
		score, err := e.score(rec, needle)
		if err != nil {
			return err
		}
		rec.Score = score
		rec.LengthDelta = abs(needleLen - utf8.RuneCountInString(rec.KeyValue))
	}

	slices.SortFunc(results, compareMatch)
	return nil
}

func compareMatch(a, b *record.Record) int {
	if a.Score != b.Score {
		return cmp.Compare(b.Score, a.Score)
	}
	if a.LengthDelta != b.LengthDelta {
		return cmp.Compare(a.LengthDelta, b.LengthDelta)
	}
	return strings.Compare(a.SearchBlob, b.SearchBlob)
}

// columnValue returns the comparable text of a column. Record fields are
// lowercased and normalized on the fly; derived columns already are.
func (e *Engine) columnValue(rec *record.Record, column string) string {
	switch column {
	case "", ColumnSearchBlob:
		return rec.SearchBlob
	case ColumnKeyValue:
		return rec.KeyValue
	}
	return e.Normalize(rec.GetString(column))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
