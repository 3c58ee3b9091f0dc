package record

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Dataset is an ordered sequence of records.
//
// It decodes from either a list of records or a keyed mapping of records.
// For a mapping the keys are thrown away and document order is kept.
type Dataset []*Record

// UnmarshalJSON decodes a JSON array or object of records
func (d *Dataset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = nil
		return nil
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '[' && delim != '{') {
		return fmt.Errorf("dataset must be an array or object, got %v", tok)
	}

	out := make(Dataset, 0)
	for dec.More() {
		if delim == '{' {
			if _, err := dec.Token(); err != nil {
				return err
			}
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		rec := new(Record)
		if err := rec.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = out
	return nil
}

// UnmarshalYAML decodes a YAML mapping, keeping the document's key order
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return ErrNotObject
	}

	out := New()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		var value any
		if err := val.Decode(&value); err != nil {
			return fmt.Errorf("field %q: %w", key.Value, err)
		}
		out.Set(key.Value, value)
	}

	*r = *out
	return nil
}

// UnmarshalYAML decodes a YAML sequence or mapping of records
func (d *Dataset) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}

	var items []*yaml.Node
	switch node.Kind {
	case yaml.SequenceNode:
		items = node.Content
	case yaml.MappingNode:
		for i := 1; i < len(node.Content); i += 2 {
			items = append(items, node.Content[i])
		}
	default:
		return fmt.Errorf("dataset must be a sequence or mapping, got %s", node.Tag)
	}

	out := make(Dataset, 0, len(items))
	for _, item := range items {
		rec := new(Record)
		if err := rec.UnmarshalYAML(item); err != nil {
			return fmt.Errorf("record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}

	*d = out
	return nil
}
