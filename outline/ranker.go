package outline

import (
	"sort"

	"github.com/kimuponpon0312-alt/ronbun/models"
)

// Rank orders template items by their adjusted weight, descending, and
// returns the point texts. The instructor type picks the primary weight
// column: the practice-oriented type uses the practical weight, everything
// else (theory-oriented, custom profiles, unrecognized values) uses the
// theory weight. A nil intent applies no adjustment.
//
// The sort is stable: ties keep the template order, so the output is
// deterministic for identical inputs.
func Rank(items []models.TemplateItem, instructorType models.InstructorType, intent *models.GenerationIntent) []string {
	usePractical := instructorType == models.InstructorPractice

	type weighted struct {
		text   string
		weight int
	}

	adjusted := make([]weighted, len(items))
	for i, item := range items {
		w := item.WeightTheory
		if usePractical {
			w = item.WeightPractical
		}
		if intent != nil {
			w += intentAdjustment(*intent, !usePractical)
		}
		adjusted[i] = weighted{text: item.Text, weight: w}
	}

	sort.SliceStable(adjusted, func(i, j int) bool {
		return adjusted[i].weight > adjusted[j].weight
	})

	texts := make([]string, len(adjusted))
	for i, a := range adjusted {
		texts[i] = a.text
	}
	return texts
}

// intentAdjustment returns the fixed weight delta for a generation intent.
// isTheory indicates which weight column is being adjusted.
func intentAdjustment(intent models.GenerationIntent, isTheory bool) int {
	switch intent {
	case models.IntentLeanTheory:
		if isTheory {
			return 3
		}
		return -2
	case models.IntentLeanPractical:
		if isTheory {
			return -2
		}
		return 3
	case models.IntentAddPoint:
		// 既存論点と差別化するため少し重みを上げる
		return 1
	case models.IntentChangeViewpoint:
		// より多様な視点を得るため重みを上げる
		return 2
	case models.IntentAddExample:
		// 実務寄りの具体例を優先
		if isTheory {
			return -1
		}
		return 2
	case models.IntentCounterargument:
		// 理論的な反論を優先
		if isTheory {
			return 1
		}
		return -1
	default:
		return 0
	}
}
