package outline

import (
	"testing"

	"github.com/kimuponpon0312-alt/ronbun/models"
)

func TestSuggestReferences_MatchesKeywords(t *testing.T) {
	points := []string{"E・H・カーの歴史観を手がかりに史料批判の方法を検討する"}

	suggestions := SuggestReferences(models.FieldHistory, points)
	if len(suggestions) == 0 {
		t.Fatal("expected suggestions for keyword-bearing points")
	}
	for _, s := range suggestions {
		if len(s.References) == 0 {
			t.Errorf("category %s suggested with no references", s.Category)
		}
		if len(s.References) > 3 {
			t.Errorf("category %s exceeds three references: %v", s.Category, s.References)
		}
	}
}

func TestSuggestReferences_UnknownField(t *testing.T) {
	if s := SuggestReferences(models.Field("economics"), []string{"理論の検討"}); s != nil {
		t.Fatalf("expected nil for unknown field, got %v", s)
	}
}

func TestSuggestReferences_FallbackWhenNothingMatches(t *testing.T) {
	suggestions := SuggestReferences(models.FieldPhilosophy, []string{"あいうえお"})
	if len(suggestions) != 2 {
		t.Fatalf("expected the two fallback categories, got %v", suggestions)
	}
	if suggestions[0].Category != CategoryTheory || suggestions[1].Category != CategoryMethodology {
		t.Fatalf("unexpected fallback categories: %v", suggestions)
	}
	for _, s := range suggestions {
		if len(s.References) != 2 {
			t.Errorf("fallback category %s should carry two readings, got %v", s.Category, s.References)
		}
	}
}

func TestSuggestReferences_AllFieldsCovered(t *testing.T) {
	for _, field := range allFields {
		suggestions := SuggestReferences(field, []string{"理論と方法の検討"})
		if len(suggestions) == 0 {
			t.Errorf("field %s yields no suggestions", field)
		}
	}
}
