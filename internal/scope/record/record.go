// Package record provides the ordered, schema-less record type searched by quickspot.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNotObject is returned when a record is decoded from something other than an object
var ErrNotObject = errors.New("record must be an object")

// Field is a single named value on a record
type Field struct {
	Name  string
	Value any
}

// Record is an ordered mapping of field names to values.
//
// SearchBlob and KeyValue are derived once at ingestion. Score and
// LengthDelta are scratch values rewritten on every ranking pass.
type Record struct {
	fields []Field
	index  map[string]int

	SearchBlob  string
	KeyValue    string
	Score       float64
	LengthDelta int
}

// New creates a record from fields, keeping their order
func New(fields ...Field) *Record {
	r := &Record{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// FromMap creates a record from a map. Go maps carry no order, so fields are
// sorted by name.
func FromMap(m map[string]any) *Record {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	r := New()
	for _, name := range names {
		r.Set(name, m[name])
	}
	return r
}

// Set adds a field, or replaces the value of an existing field in place
func (r *Record) Set(name string, value any) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Get returns the value of a field and whether it exists
func (r *Record) Get(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.fields[i].Value, true
}

// GetString returns the string form of a field, empty if absent
func (r *Record) GetString(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	s, err := Stringify(v)
	if err != nil {
		return ""
	}
	return s
}

// Fields returns a copy of the record's fields in order
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields
func (r *Record) Len() int {
	return len(r.fields)
}

// Clone returns a copy that shares no mutable state with r
func (r *Record) Clone() *Record {
	c := &Record{
		fields:      make([]Field, len(r.fields)),
		index:       make(map[string]int, len(r.index)),
		SearchBlob:  r.SearchBlob,
		KeyValue:    r.KeyValue,
		Score:       r.Score,
		LengthDelta: r.LengthDelta,
	}
	copy(c.fields, r.fields)
	for k, v := range r.index {
		c.index[k] = v
	}
	return c
}

// MarshalJSON encodes the record's fields as an object in field order.
// Derived and scratch values are not part of the encoding.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	out := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		out.Set(name, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = *out
	return nil
}
