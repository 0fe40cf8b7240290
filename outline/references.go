package outline

import (
	_ "embed"
	"encoding/json"
	"log"
	"strings"

	"github.com/kimuponpon0312-alt/ronbun/models"
)

//go:embed references.json
var referencesJSON []byte

// ReferenceCategory groups suggested readings
type ReferenceCategory string

const (
	CategoryTheory      ReferenceCategory = "理論的基盤"
	CategoryMethodology ReferenceCategory = "方法論・アプローチ"
	CategoryConcrete    ReferenceCategory = "具体的検討"
)

// ReferenceSuggestion is a category with its matched readings
type ReferenceSuggestion struct {
	Category   ReferenceCategory `json:"category"`
	References []string          `json:"references"`
}

var references map[models.Field]map[ReferenceCategory][]string

func init() {
	if err := json.Unmarshal(referencesJSON, &references); err != nil {
		log.Fatalf("Failed to parse embedded references: %v", err)
	}
}

// referenceKeywordGroups are the academic term groups extracted from
// points and matched against reference titles.
var referenceKeywordGroups = [][]string{
	{"理論", "概念", "フレームワーク", "モデル"},
	{"分析", "検討", "考察", "解釈"},
	{"方法", "手法", "アプローチ", "技法"},
	{"事例", "具体", "例", "ケース"},
	{"比較", "対比", "相違", "類似"},
	{"歴史", "史料", "時代", "背景"},
	{"実務", "実践", "適用", "運用"},
}

// categoryOrder fixes iteration order over a field's reference categories
var categoryOrder = []ReferenceCategory{CategoryTheory, CategoryMethodology, CategoryConcrete}

// SuggestReferences picks readings whose titles share keywords with the
// outline points, up to three per category. When nothing matches it
// falls back to the head of the theory and methodology lists so the
// caller always has something to show. Unknown fields yield nil.
func SuggestReferences(field models.Field, points []string) []ReferenceSuggestion {
	fieldRefs, ok := references[field]
	if !ok {
		return nil
	}

	keywords := extractPointKeywords(points)

	suggestions := make([]ReferenceSuggestion, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		matched := make([]string, 0, 3)
		for _, ref := range fieldRefs[category] {
			if matchesAnyKeyword(ref, keywords) {
				matched = append(matched, ref)
				if len(matched) == 3 {
					break
				}
			}
		}
		if len(matched) > 0 {
			suggestions = append(suggestions, ReferenceSuggestion{
				Category:   category,
				References: matched,
			})
		}
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			ReferenceSuggestion{Category: CategoryTheory, References: headOf(fieldRefs[CategoryTheory], 2)},
			ReferenceSuggestion{Category: CategoryMethodology, References: headOf(fieldRefs[CategoryMethodology], 2)},
		)
	}

	return suggestions
}

func extractPointKeywords(points []string) []string {
	seen := make(map[string]struct{})
	keywords := make([]string, 0)
	for _, point := range points {
		for _, group := range referenceKeywordGroups {
			for _, kw := range group {
				if strings.Contains(point, kw) {
					if _, ok := seen[kw]; !ok {
						seen[kw] = struct{}{}
						keywords = append(keywords, kw)
					}
				}
			}
		}
	}
	return keywords
}

func matchesAnyKeyword(ref string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(ref, kw) {
			return true
		}
	}
	return false
}

func headOf(refs []string, n int) []string {
	if len(refs) < n {
		n = len(refs)
	}
	return append([]string(nil), refs[:n]...)
}
