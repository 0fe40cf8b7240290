package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Field represents an academic discipline
type Field string

const (
	FieldLiterature Field = "literature"
	FieldLaw        Field = "law"
	FieldPhilosophy Field = "philosophy"
	FieldSociology  Field = "sociology"
	FieldHistory    Field = "history"
)

// IsValid reports whether the field is one of the supported disciplines
func (f Field) IsValid() bool {
	switch f {
	case FieldLiterature, FieldLaw, FieldPhilosophy, FieldSociology, FieldHistory:
		return true
	}
	return false
}

// InstructorType represents a supervisor's weighting profile.
// Anything other than the practice-oriented type (custom profiles included)
// ranks by the theory weight.
type InstructorType string

const (
	InstructorTheory   InstructorType = "理論重視型"
	InstructorPractice InstructorType = "実務重視型"
)

// GenerationIntent expresses the kind of revision requested when
// generating additional points
type GenerationIntent string

const (
	IntentAddPoint        GenerationIntent = "論点追加"
	IntentChangeViewpoint GenerationIntent = "視点変更"
	IntentLeanTheory      GenerationIntent = "理論寄り"
	IntentLeanPractical   GenerationIntent = "実務寄り"
	IntentAddExample      GenerationIntent = "具体例追加"
	IntentCounterargument GenerationIntent = "反論考慮"
)

// Section titles (fixed set, Japanese locale)
const (
	SectionIntro      = "序論"
	SectionBody       = "本論"
	SectionConclusion = "結論"
)

// TemplateItem is a candidate argument point with two affinity weights
type TemplateItem struct {
	Text            string `json:"text"`
	WeightTheory    int    `json:"weight_theory"`
	WeightPractical int    `json:"weight_practical"`
}

// Section represents one part of a report outline
type Section struct {
	Title      string   `json:"title"`
	Points     []string `json:"points"`
	IsFallback bool     `json:"isFallback,omitempty"`
}

// Sections represents the ordered sections of an outline
type Sections []Section

// Value implements driver.Valuer for JSONB
func (s Sections) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSONB
func (s *Sections) Scan(value interface{}) error {
	if value == nil {
		*s = make(Sections, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*s = make(Sections, 0)
		return nil
	}

	if len(bytes) == 0 {
		*s = make(Sections, 0)
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// ReportOutline represents one generated or edited outline structure
type ReportOutline struct {
	Sections     Sections `json:"sections"`
	CoreQuestion string   `json:"coreQuestion,omitempty"`
}

// SavedOutline is a persisted outline snapshot
type SavedOutline struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"` // email of the owner
	Field          Field     `json:"field"`
	Topic          string    `json:"topic"`
	WordCount      int       `json:"word_count"`
	SupervisorType string    `json:"supervisor_type"`
	Sections       Sections  `json:"sections"`
	CoreQuestion   *string   `json:"core_question,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PointTag is one of the closed set of categorical labels for a point
type PointTag string

const (
	TagTheory          PointTag = "理論"
	TagPractice        PointTag = "実務"
	TagHistory         PointTag = "歴史"
	TagComparison      PointTag = "比較"
	TagExample         PointTag = "事例"
	TagCounterargument PointTag = "反論"
	TagDefinition      PointTag = "定義"
	TagAnalysis        PointTag = "分析"
	TagMethodology     PointTag = "方法論"
	TagVerification    PointTag = "検証"
)

// TagScore pairs a tag with its matching confidence
type TagScore struct {
	Tag        PointTag `json:"tag"`
	Confidence float64  `json:"confidence"`
}

// TaggedPoint is a point of text with its assigned tags, sorted by
// confidence descending and capped at three
type TaggedPoint struct {
	Text string     `json:"text"`
	Tags []TagScore `json:"tags"`
}

// ModifiedPoint records a point rewritten between two outline snapshots
type ModifiedPoint struct {
	Before string `json:"before"`
	After  string `json:"after"`
	Index  int    `json:"index"`
}

// OutlineDiff holds the per-section changes between two outlines
type OutlineDiff struct {
	SectionTitle   string          `json:"sectionTitle"`
	AddedPoints    []string        `json:"addedPoints"`
	RemovedPoints  []string        `json:"removedPoints"`
	ModifiedPoints []ModifiedPoint `json:"modifiedPoints"`
}

// OutlineDiffResult is the full diff between two outline snapshots
type OutlineDiffResult struct {
	Diffs      []OutlineDiff `json:"diffs"`
	HasChanges bool          `json:"hasChanges"`
}

// Grade is an instructor-style letter grade for an outline
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// IsValid reports whether the grade is one of S/A/B/C/D
func (g Grade) IsValid() bool {
	switch g {
	case GradeS, GradeA, GradeB, GradeC, GradeD:
		return true
	}
	return false
}

// GradeResult is the evaluation of an outline
type GradeResult struct {
	Grade         Grade    `json:"grade"`
	Comment       string   `json:"comment"`
	MissingPoints []string `json:"missingPoints"`
}
