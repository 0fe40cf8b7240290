package outline

import (
	"sort"
	"strings"

	"github.com/kimuponpon0312-alt/ronbun/models"
)

// dedupThreshold is the near-duplicate cutoff for candidate filtering.
// Deliberately stricter than the 0.7 "unchanged" band the differ uses;
// the two thresholds belong to their call sites and are not unified.
const dedupThreshold = 0.5

var (
	exampleKeywords         = []string{"事例", "例", "具体"}
	counterargumentKeywords = []string{"反論", "批判", "異論", "問題"}
	theoryTerms             = []string{"理論", "概念", "フレームワーク", "枠組み", "モデル", "分析", "検証"}
	practicalTerms          = []string{"実務", "実践", "適用", "事例", "具体", "実際", "運用"}
)

// FilterNew retains each candidate that is not a near-duplicate of any
// existing point. Candidates with similarity above 0.5 to some existing
// point are dropped. The filter never caps the result; capping belongs to
// the caller.
func FilterNew(candidates, existing []string) []string {
	filtered := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		duplicate := false
		for _, e := range existing {
			if Similarity(candidate, e) > dedupThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}

// ReorderByIntent re-prioritizes already-filtered candidates according to
// the generation intent. Intents without a reorder rule return the input
// order unchanged.
func ReorderByIntent(points []string, intent models.GenerationIntent, existing []string) []string {
	switch intent {
	case models.IntentChangeViewpoint:
		// 既存と異なる用語を含むものを優先
		return sortByDiversity(points, existing)
	case models.IntentLeanTheory:
		return sortByTermCount(points, theoryTerms)
	case models.IntentLeanPractical:
		return sortByTermCount(points, practicalTerms)
	case models.IntentAddExample:
		return partitionByKeywords(points, exampleKeywords)
	case models.IntentCounterargument:
		return partitionByKeywords(points, counterargumentKeywords)
	default:
		return points
	}
}

// Diversity scores how different a point is from a set of existing points:
// one minus the mean similarity. An empty existing set yields 1.
func Diversity(point string, existing []string) float64 {
	if len(existing) == 0 {
		return 1
	}
	total := 0.0
	for _, e := range existing {
		total += Similarity(point, e)
	}
	return 1 - total/float64(len(existing))
}

func sortByDiversity(points, existing []string) []string {
	sorted := append([]string(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Diversity(sorted[i], existing) > Diversity(sorted[j], existing)
	})
	return sorted
}

func sortByTermCount(points []string, terms []string) []string {
	sorted := append([]string(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return countTerms(sorted[i], terms) > countTerms(sorted[j], terms)
	})
	return sorted
}

func countTerms(text string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			count++
		}
	}
	return count
}

// partitionByKeywords moves points containing any keyword to the front,
// preserving relative order within both partitions. A stable partition,
// not a sort.
func partitionByKeywords(points []string, keywords []string) []string {
	matched := make([]string, 0, len(points))
	rest := make([]string, 0, len(points))
	for _, p := range points {
		if containsAny(p, keywords) {
			matched = append(matched, p)
		} else {
			rest = append(rest, p)
		}
	}
	return append(matched, rest...)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
