// Package outline implements the point-generation and scoring core:
// weighted template ranking, token-set similarity, near-duplicate
// filtering, keyword tagging, reference suggestion, and outline diffing.
// Every function is pure over its arguments and the embedded constant
// tables, so callers may invoke them concurrently without coordination.
package outline

import (
	_ "embed"
	"encoding/json"
	"log"

	"github.com/kimuponpon0312-alt/ronbun/models"
)

//go:embed templates.json
var templatesJSON []byte

// FieldTemplate holds the candidate points for one field, keyed by section
type FieldTemplate struct {
	CoreQuestion string                `json:"coreQuestion"`
	Intro        []models.TemplateItem `json:"intro"`
	Body         []models.TemplateItem `json:"body"`
	Conclusion   []models.TemplateItem `json:"conclusion"`
}

var templates map[models.Field]FieldTemplate

func init() {
	if err := json.Unmarshal(templatesJSON, &templates); err != nil {
		log.Fatalf("Failed to parse embedded templates: %v", err)
	}
}

// TemplateItems returns the candidate points for a field and section title.
// Unknown fields or section titles yield nil rather than an error so that
// the generation pipeline can fall back instead of failing.
func TemplateItems(field models.Field, sectionTitle string) []models.TemplateItem {
	tmpl, ok := templates[field]
	if !ok {
		return nil
	}

	switch sectionTitle {
	case models.SectionIntro:
		return tmpl.Intro
	case models.SectionBody:
		return tmpl.Body
	case models.SectionConclusion:
		return tmpl.Conclusion
	}
	return nil
}

// CoreQuestion returns the guiding question for a field, or "" if the
// field is unknown
func CoreQuestion(field models.Field) string {
	tmpl, ok := templates[field]
	if !ok {
		return ""
	}
	return tmpl.CoreQuestion
}
