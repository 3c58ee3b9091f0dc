package record

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Stringify returns the searchable string form of a field value.
// Missing and null values are empty, nested values are compact JSON.
func Stringify(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return numberString(t)
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	s, err := cast.ToStringE(v)
	if err == nil {
		return s, nil
	}

	b, jerr := json.Marshal(v)
	if jerr != nil {
		return "", fmt.Errorf("cannot stringify %T: %w", v, err)
	}
	return string(b), nil
}

// numberString formats a decoded JSON number the way cast formats the
// equivalent Go number, so "1.0" and "1e3" read as "1" and "1000"
func numberString(n json.Number) (string, error) {
	if i, err := n.Int64(); err == nil {
		return cast.ToStringE(i)
	}
	f, err := n.Float64()
	if err != nil {
		return "", fmt.Errorf("invalid number %q: %w", n, err)
	}
	return cast.ToStringE(f)
}

// IsScalar reports whether v is a non-null string, number or boolean
func IsScalar(v any) bool {
	switch v.(type) {
	case string, json.Number, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
