package outline

import "strings"

// Similarity computes the token-set Jaccard similarity between two short
// strings. Tokens are whitespace-separated as-is: case and punctuation are
// preserved, which keeps parity with the behavior the rest of the pipeline
// was tuned against. Duplicate tokens collapse (word sets, not multisets).
//
// Two strings with no tokens at all have no defined Jaccard index; that
// case is fixed at 0.
func Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	union := len(setB)
	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}
