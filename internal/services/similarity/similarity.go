// Package similarity compares two texts character by character.
package similarity

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Result holds a similarity ratio and its display percentage.
type Result struct {
	Ratio      float64 `json:"ratio"`
	Percentage float64 `json:"percentage"`
}

// Ratio returns how alike a and b are, in [0, 1].
//
// It is the SequenceMatcher measure 2*M/T where M is the number of matching
// characters and T the combined length. The matcher looks for the longest
// matching blocks of a inside b, so Ratio(a, b) and Ratio(b, a) can differ.
func Ratio(a, b string) float64 {
	// Go Pattern: go-difflib works on []string, so every rune becomes a
	// one-character "line". Splitting on "" splits a string into UTF-8 runes.
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// Compare returns the ratio together with the percentage rounded to two
// decimals.
func Compare(a, b string) Result {
	r := Ratio(a, b)
	return Result{
		Ratio:      r,
		Percentage: math.Round(r*100*100) / 100,
	}
}
