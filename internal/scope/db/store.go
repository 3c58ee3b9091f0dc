// Package db provides the in-memory datastore behind quickspot: a dataset of
// preprocessed records with a persistent filtered view and transient searches.
package db

import (
	"fmt"
	"slices"
	"sort"

	"github.com/dsjohal14/quickspot/internal/libs/obs"
	"github.com/dsjohal14/quickspot/internal/scope/preprocess"
	"github.com/dsjohal14/quickspot/internal/scope/record"
	"github.com/dsjohal14/quickspot/internal/scope/search"
	"github.com/rs/zerolog"
)

// Store holds a dataset and the session state layered on top of it.
//
// A Store has a single owner: it does no locking, and callers sharing one
// across goroutines must serialize every call.
type Store struct {
	cfg      Config
	opts     resolved
	pre      *preprocess.Preprocessor
	engine   *search.Engine
	logger   zerolog.Logger
	data     []*record.Record // full dataset
	filtered []*record.Record // active scope
	results  []*record.Record // last query result
}

// New creates a store from raw data.
//
// data may be a record.Dataset, []*record.Record, []record.Record,
// *record.Record, []map[string]any, []any of maps or records, or a
// map[string]any of records (keys discarded, sorted for a stable order).
func New(data any, cfg Config) (*Store, error) {
	opts, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	logger := obs.Logger("datastore")
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	s := &Store{
		cfg:    cfg,
		opts:   opts,
		pre:    preprocess.New(opts.keyField, opts.searchOn, cfg.Normalizer),
		logger: logger,
		engine: search.NewEngine(search.Config{
			Normalizer:                 cfg.Normalizer,
			Scorer:                     cfg.Scorer,
			DisableOccurrenceWeighting: cfg.DisableOccurrenceWeighting,
		}),
	}

	if cfg.PreParse != nil {
		data, err = cfg.PreParse(data, cfg)
		if err != nil {
			return nil, &ConfigurationError{Option: "preParse", Err: err}
		}
	}

	raw, err := toRecords(data)
	if err != nil {
		return nil, err
	}

	s.data, err = s.pre.ProcessAll(raw)
	if err != nil {
		return nil, err
	}
	s.filtered = s.data
	s.results = []*record.Record{}

	s.logger.Debug().
		Int("records", len(s.data)).
		Str("key_field", opts.keyField).
		Strs("search_on", opts.searchOn).
		Msg("datastore loaded")

	if cfg.OnLoaded != nil {
		cfg.OnLoaded(s)
	}

	return s, nil
}

// Find returns records of the active scope containing query and keeps them as
// the current results. column selects a record field or one of
// search.ColumnSearchBlob / search.ColumnKeyValue.
func (s *Store) Find(query string, column ...string) []*record.Record {
	s.results = s.engine.Find(query, s.filtered, firstColumn(column))
	return s.results
}

// SortResultsBy ranks the current results against query
func (s *Store) SortResultsBy(query string) ([]*record.Record, error) {
	if err := s.engine.SortByMatch(s.results, query); err != nil {
		return nil, err
	}
	return s.results, nil
}

// Search finds query in the active scope and ranks the matches
func (s *Store) Search(query string) ([]*record.Record, error) {
	s.Find(query)
	return s.SortResultsBy(query)
}

// Filter narrows the active scope to records containing query. The filter
// persists across searches until ClearFilters or Add.
func (s *Store) Filter(query string, column ...string) []*record.Record {
	s.filtered = s.engine.Find(query, s.filtered, firstColumn(column))
	s.results = slices.Clone(s.filtered)

	s.logger.Debug().
		Str("filter", query).
		Int("scope", len(s.filtered)).
		Msg("filter applied")

	return s.results
}

// FilterFunc narrows the active scope to records accepted by pred
func (s *Store) FilterFunc(pred func(*record.Record) bool) []*record.Record {
	s.filtered = s.engine.FindFunc(pred, s.filtered)
	s.results = slices.Clone(s.filtered)

	s.logger.Debug().Int("scope", len(s.filtered)).Msg("predicate filter applied")

	return s.results
}

// ClearFilters resets the active scope to the full dataset
func (s *Store) ClearFilters() {
	s.filtered = s.data
	s.logger.Debug().Int("scope", len(s.filtered)).Msg("filters cleared")
}

// Add preprocesses and appends records, then discards any filter. Nothing is
// added if any record fails to preprocess.
func (s *Store) Add(recs ...*record.Record) error {
	processed, err := s.pre.ProcessAll(recs)
	if err != nil {
		return err
	}

	data := make([]*record.Record, 0, len(s.data)+len(processed))
	data = append(data, s.data...)
	s.data = append(data, processed...)
	s.filtered = s.data

	s.logger.Debug().
		Int("added", len(processed)).
		Int("records", len(s.data)).
		Msg("records added")

	return nil
}

// AddData adds raw data in any of the shapes accepted by New
func (s *Store) AddData(data any) error {
	recs, err := toRecords(data)
	if err != nil {
		return err
	}
	return s.Add(recs...)
}

// Results returns the result of the last query or filter
func (s *Store) Results() []*record.Record {
	return s.results
}

// All returns the full dataset
func (s *Store) All() []*record.Record {
	return s.data
}

// Scope returns the active (possibly filtered) scope
func (s *Store) Scope() []*record.Record {
	return s.filtered
}

// Len returns the number of records in the dataset
func (s *Store) Len() int {
	return len(s.data)
}

// FilteredLen returns the number of records in the active scope
func (s *Store) FilteredLen() int {
	return len(s.filtered)
}

// KeyField returns the resolved key field name
func (s *Store) KeyField() string {
	return s.opts.keyField
}

// Clone returns an independent store over copies of the same records,
// carrying over the active filter and current results.
func (s *Store) Clone() *Store {
	copies := make(map[*record.Record]*record.Record, len(s.data))
	data := make([]*record.Record, len(s.data))
	for i, rec := range s.data {
		data[i] = rec.Clone()
		copies[rec] = data[i]
	}

	remap := func(in []*record.Record) []*record.Record {
		out := make([]*record.Record, 0, len(in))
		for _, rec := range in {
			if c, ok := copies[rec]; ok {
				out = append(out, c)
			}
		}
		return out
	}

	return &Store{
		cfg:      s.cfg,
		opts:     s.opts,
		pre:      s.pre,
		engine:   s.engine,
		logger:   s.logger,
		data:     data,
		filtered: remap(s.filtered),
		results:  remap(s.results),
	}
}

func firstColumn(column []string) string {
	if len(column) == 0 {
		return ""
	}
	return column[0]
}

// toRecords converts the data shapes accepted by New into records
func toRecords(data any) ([]*record.Record, error) {
	switch d := data.(type) {
	case nil:
		return []*record.Record{}, nil
	case record.Dataset:
		return []*record.Record(d), nil
	case []*record.Record:
		return d, nil
	case []record.Record:
		out := make([]*record.Record, len(d))
		for i := range d {
			out[i] = &d[i]
		}
		return out, nil
	case *record.Record:
		return []*record.Record{d}, nil
	case map[string]any:
		return recordsFromKeyed(d)
	case []map[string]any:
		out := make([]*record.Record, len(d))
		for i, m := range d {
			out[i] = record.FromMap(m)
		}
		return out, nil
	case []any:
		out := make([]*record.Record, 0, len(d))
		for i, item := range d {
			rec, err := toRecord(item)
			if err != nil {
				return nil, &ConfigurationError{Option: "data", Reason: fmt.Sprintf("item %d: %v", i, err)}
			}
			out = append(out, rec)
		}
		return out, nil
	}
	return nil, &ConfigurationError{Option: "data", Reason: fmt.Sprintf("unsupported data type %T", data)}
}

func recordsFromKeyed(m map[string]any) ([]*record.Record, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*record.Record, 0, len(keys))
	for _, k := range keys {
		rec, err := toRecord(m[k])
		if err != nil {
			return nil, &ConfigurationError{Option: "data", Reason: fmt.Sprintf("key %q: %v", k, err)}
		}
		out = append(out, rec)
	}
	return out, nil
}

func toRecord(item any) (*record.Record, error) {
	switch v := item.(type) {
	case *record.Record:
		return v, nil
	case map[string]any:
		return record.FromMap(v), nil
	}
	return nil, fmt.Errorf("expected a record, got %T", item)
}
