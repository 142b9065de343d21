package search

import (
	"math"
	"strings"

	"github.com/agext/levenshtein"
)

const (
	// Threshold is the worst field score a search still accepts.
	Threshold = 0.4
	// SuggestThreshold is the stricter cut-off used for suggestions.
	SuggestThreshold = 0.3

	// epsilon stands in for a zero field score so weights still apply.
	epsilon = 1e-3
	// closeness scales the whole-field distance added to a field score, so an
	// exact field beats the same text found inside a longer one.
	closeness = 0.01
)

// field names a searchable attribute of a component.
type field int

const (
	fieldName field = iota
	fieldDescription
	fieldTeam
)

type weightedField struct {
	field  field
	weight float64
}

var (
	teamModeWeights = []weightedField{
		{fieldName, 0.5},
		{fieldDescription, 0.3},
		{fieldTeam, 0.2},
	}
	labelModeWeights = []weightedField{
		{fieldName, 0.6},
		{fieldDescription, 0.4},
	}
)

func weightsFor(kind DimensionKind) []weightedField {
	if kind == DimensionLabel {
		return labelModeWeights
	}
	return teamModeWeights
}

// fieldScore scores pattern against text in [0,1], 0 being exact. The score
// is the smallest edit distance between pattern and any substring of text,
// over the pattern length, so where the match sits in the field does not
// matter. ok is false when the raw score is above threshold.
func fieldScore(pattern, text []rune, threshold float64) (score float64, ok bool) {
	if len(pattern) == 0 || len(text) == 0 {
		return 1, false
	}
	var dist int
	if strings.Contains(string(text), string(pattern)) {
		dist = 0
	} else {
		dist = substringDistance(pattern, text)
	}
	raw := float64(dist) / float64(len(pattern))
	if raw > threshold {
		return raw, false
	}

	longest := max(len(pattern), len(text))
	whole := float64(levenshtein.Distance(string(pattern), string(text), nil)) / float64(longest)
	return math.Min(1, raw+closeness*whole), true
}

// substringDistance returns the minimum edit distance between pattern and
// any substring of text (Sellers' algorithm: free start and end in text).
func substringDistance(pattern, text []rune) int {
	m := len(pattern)
	prev := make([]int, len(text)+1)
	cur := make([]int, len(text)+1)
	// Row 0 is all zeros: a match may start anywhere.
	for i := 1; i <= m; i++ {
		cur[0] = i
		for j := 1; j <= len(text); j++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	best := prev[0]
	for _, d := range prev[1:] {
		best = min(best, d)
	}
	return best
}

// combine merges matched field scores into one item score. Each matched
// field contributes score^weight; fields that did not match contribute 1.
func combine(scores []float64, weights []float64) float64 {
	total := 1.0
	for i, s := range scores {
		if s < epsilon {
			s = epsilon
		}
		total *= math.Pow(s, weights[i])
	}
	return total
}
