// Package preprocess turns raw records into their searchable form.
package preprocess

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dsjohal14/quickspot/internal/scope/record"
	"github.com/dsjohal14/quickspot/internal/scope/textnorm"
)

// DefaultKeyField is the primary field used when none is configured
const DefaultKeyField = "name"

// MissingKeyFieldError is returned when a record has no usable key field.
// Index is the record's position in the batch being processed, or -1.
type MissingKeyFieldError struct {
	Field string
	Index int
}

func (e *MissingKeyFieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("record is missing key field %q", e.Field)
	}
	return fmt.Sprintf("record %d is missing key field %q", e.Index, e.Field)
}

// Preprocessor derives SearchBlob and KeyValue for records
type Preprocessor struct {
	keyField   string
	searchOn   []string
	normalizer textnorm.Normalizer
}

// New creates a preprocessor. A nil searchOn searches every field; an empty
// keyField or nil normalizer fall back to the defaults.
func New(keyField string, searchOn []string, normalizer textnorm.Normalizer) *Preprocessor {
	if keyField == "" {
		keyField = DefaultKeyField
	}
	if normalizer == nil {
		normalizer = textnorm.Simplify
	}
	var fields []string
	if searchOn != nil {
		fields = make([]string, len(searchOn))
		copy(fields, searchOn)
	}
	return &Preprocessor{
		keyField:   keyField,
		searchOn:   fields,
		normalizer: normalizer,
	}
}

// KeyField returns the configured key field name
func (p *Preprocessor) KeyField() string {
	return p.keyField
}

// Normalize lowercases s and runs it through the normalizer
func (p *Preprocessor) Normalize(s string) string {
	return p.normalizer(strings.ToLower(s))
}

// Process returns an augmented copy of rec carrying SearchBlob and KeyValue.
// The caller's record is left untouched.
func (p *Preprocessor) Process(rec *record.Record) (*record.Record, error) {
	out := rec.Clone()

	fields := rec.Fields()
	if p.searchOn != nil {
		fields = make([]record.Field, len(p.searchOn))
		for i, name := range p.searchOn {
			v, _ := rec.Get(name)
			fields[i] = record.Field{Name: name, Value: v}
		}
	}

	var blob strings.Builder
	for _, f := range fields {
		s, err := record.Stringify(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		blob.WriteByte(' ')
		blob.WriteString(s)
	}
	out.SearchBlob = p.Normalize(blob.String())

	key, ok := rec.Get(p.keyField)
	if !ok || !record.IsScalar(key) {
		return nil, &MissingKeyFieldError{Field: p.keyField, Index: -1}
	}
	keyStr, err := record.Stringify(key)
	if err != nil {
		return nil, &MissingKeyFieldError{Field: p.keyField, Index: -1}
	}
	out.KeyValue = p.Normalize(keyStr)
	out.Score = 0
	out.LengthDelta = 0

	return out, nil
}

// ProcessAll processes every record, stopping at the first failure
func (p *Preprocessor) ProcessAll(recs []*record.Record) ([]*record.Record, error) {
	out := make([]*record.Record, 0, len(recs))
	for i, rec := range recs {
		processed, err := p.Process(rec)
		if err != nil {
			var mk *MissingKeyFieldError
			if errors.As(err, &mk) {
				mk.Index = i
				return nil, mk
			}
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, processed)
	}
	return out, nil
}
