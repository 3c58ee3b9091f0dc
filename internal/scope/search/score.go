package search

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dsjohal14/quickspot/internal/scope/record"
)

// Score weights of the default scorer
const (
	WordStartBonus   = 5
	KeyMatchBonus    = 10
	KeyPrefixBonus   = 25
	KeyExactBonus    = 10
	minOccurrenceLen = 2
)

// Scorer computes the relevance of a record for an already normalized query.
// Higher is better.
type Scorer func(rec *record.Record, query string) (float64, error)

// InvalidScorerError is returned when a scorer fails, panics, or produces a
// value that cannot be ordered.
type InvalidScorerError struct {
	KeyValue string
	Value    float64
	Err      error
}

func (e *InvalidScorerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scorer failed for %q: %v", e.KeyValue, e.Err)
	}
	return fmt.Sprintf("scorer returned non-numeric score %v for %q", e.Value, e.KeyValue)
}

func (e *InvalidScorerError) Unwrap() error { return e.Err }

// DefaultScorer returns the built-in scorer. With occurrence weighting on,
// every repeat of a query longer than two characters adds one point.
func DefaultScorer(occurrenceWeighting bool) Scorer {
	return func(rec *record.Record, query string) (float64, error) {
		return float64(Score(rec, query, occurrenceWeighting)), nil
	}
}

// Score is the default relevance function
func Score(rec *record.Record, query string, occurrenceWeighting bool) int {
	score := 0

	if occurrenceWeighting && utf8.RuneCountInString(query) > minOccurrenceLen {
		score += Occurrences(rec.SearchBlob, query)
	}
	if strings.Contains(rec.SearchBlob, " "+query) {
		score += WordStartBonus
	}

	idx := strings.Index(rec.KeyValue, query)
	if idx != -1 {
		score += KeyMatchBonus
	}
	if idx == 0 {
		score += KeyPrefixBonus
	}
	if idx == 0 && utf8.RuneCountInString(rec.KeyValue) == utf8.RuneCountInString(query) {
		score += KeyExactBonus
	}

	return score
}

// Occurrences counts non-overlapping occurrences of needle in haystack.
// An empty needle yields the haystack's length plus one.
func Occurrences(haystack, needle string) int {
	return strings.Count(haystack, needle)
}

func (e *Engine) score(rec *record.Record, query string) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InvalidScorerError{KeyValue: rec.KeyValue, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	score, err = e.scorer(rec, query)
	if err != nil {
		return 0, &InvalidScorerError{KeyValue: rec.KeyValue, Err: err}
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, &InvalidScorerError{KeyValue: rec.KeyValue, Value: score}
	}
	return score, nil
}
