package resolver

import "strings"

// DefaultNameThreshold is the token-set similarity required for two
// normalized names to count as the same business.
const DefaultNameThreshold = 0.85

// MatchNames fuzzy-matches two company names. Exact match after
// normalization scores 1.0; a substring relationship scores 0.9;
// otherwise the score is the Jaccard similarity of the token sets.
// Token overlap is used instead of edit distance on purpose: company
// names reorder words ("Electric ABC" vs "ABC Electric") far more often
// than they misspell them.
func MatchNames(a, b string, threshold float64) (bool, float64) {
	if a == "" || b == "" {
		return false, 0
	}

	na := NormalizeName(a)
	nb := NormalizeName(b)
	if na == "" || nb == "" {
		return false, 0
	}

	if na == nb {
		return true, 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true, 0.9
	}

	score := tokenJaccard(na, nb)
	return score >= threshold, score
}

// tokenJaccard computes the Jaccard similarity of whitespace-split token
// sets.
func tokenJaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}
