// Package textnorm provides the text normalizers applied to stored search
// values and incoming queries before they are compared.
package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer rewrites already lowercased text into its comparable form
type Normalizer func(string) string

// Names accepted by ByName
const (
	NameSimplify = "simplify"
	NameFold     = "fold"
	NameNone     = "none"
)

var simplifier = strings.NewReplacer(
	`"`, "",
	"'", "",
	",", "",
	".", "",
	")", "",
	"(", "",
	"-", "",
	"&", "and",
)

// Simplify strips ' " , . ) ( - and spells & as "and"
func Simplify(s string) string {
	return simplifier.Replace(s)
}

// Fold case-folds, removes combining marks (so "café" compares equal to
// "cafe") and then applies Simplify.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return Simplify(cases.Fold().String(stripped))
}

// None leaves text untouched
func None(s string) string {
	return s
}

// ByName resolves a normalizer from its configuration name.
// An empty name selects Simplify.
func ByName(name string) (Normalizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSimplify:
		return Simplify, nil
	case NameFold:
		return Fold, nil
	case NameNone:
		return None, nil
	}
	return nil, fmt.Errorf("unknown normalizer %q", name)
}
