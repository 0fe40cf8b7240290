package service

import (
	"context"
	"log"
	"strings"

	"github.com/kimuponpon0312-alt/ronbun/models"
	"github.com/kimuponpon0312-alt/ronbun/outline"
)

// CommentType classifies an instructor comment on an outline
type CommentType string

const (
	CommentCriticism    CommentType = "criticism"
	CommentAddition     CommentType = "addition"
	CommentModification CommentType = "modification"
	CommentDeletion     CommentType = "deletion"
)

// commentIntent is the action derived from a comment
type commentIntent string

const (
	intentAdd        commentIntent = "add"
	intentModify     commentIntent = "modify"
	intentDelete     commentIntent = "delete"
	intentStrengthen commentIntent = "strengthen"
)

// commentAnalysis is the parsed reading of an instructor comment
type commentAnalysis struct {
	intent           commentIntent
	targetKeywords   []string
	suggestedChanges []string
}

// commentKeywordGroups are the academic term groups recognized inside
// instructor comments
var commentKeywordGroups = [][]string{
	{"文体分析", "修辞技法", "表現技法", "言語分析"},
	{"理論", "実務", "事例", "具体例"},
	{"比較", "対比", "相違", "類似"},
	{"先行研究", "既存研究", "関連研究"},
	{"歴史的背景", "文化的文脈"},
	{"解釈", "検証", "妥当性"},
	{"反論", "批判", "異論"},
	{"実証", "データ", "統計"},
}

// GeneratePointsFromCommentRequest carries an instructor comment and the
// outline it targets
type GeneratePointsFromCommentRequest struct {
	Field            models.Field
	ExistingOutline  []models.Section
	TargetSection    string
	CommentText      string
	CommentType      CommentType
	Question         string
	InstructorType   models.InstructorType
	TargetPointIndex *int // comment aimed at one specific point
}

// ModifiedPointPair records a point replaced during comment handling
type ModifiedPointPair struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// GeneratePointsFromCommentResult represents the outline update derived
// from a comment
type GeneratePointsFromCommentResult struct {
	UpdatedPoints       []string            `json:"updatedPoints"`
	AddedPoints         []string            `json:"addedPoints"`
	ModifiedPoints      []ModifiedPointPair `json:"modifiedPoints"`
	RemovedPointIndices []int               `json:"removedPointIndices"`
	Suggestions         []string            `json:"suggestions,omitempty"`
	IsFallback          bool                `json:"isFallback"`
}

// GeneratePointsFromComment interprets an instructor comment and applies
// the implied change to the target section: adding, replacing, deleting,
// or reinforcing points from the field template.
func (s *OutlineService) GeneratePointsFromComment(ctx context.Context, req GeneratePointsFromCommentRequest) *GeneratePointsFromCommentResult {
	analysis := analyzeComment(req.CommentText, req.CommentType)

	existingPoints := sectionPoints(req.ExistingOutline, req.TargetSection)
	if existingPoints == nil {
		log.Printf("[GeneratePointsFromComment] section %q not found", req.TargetSection)
		return &GeneratePointsFromCommentResult{
			UpdatedPoints:       []string{},
			AddedPoints:         []string{},
			ModifiedPoints:      []ModifiedPointPair{},
			RemovedPointIndices: []int{},
			IsFallback:          true,
		}
	}

	result := &GeneratePointsFromCommentResult{
		UpdatedPoints:       append([]string(nil), existingPoints...),
		AddedPoints:         []string{},
		ModifiedPoints:      []ModifiedPointPair{},
		RemovedPointIndices: []int{},
		Suggestions:         analysis.suggestedChanges,
	}

	items := outline.TemplateItems(req.Field, req.TargetSection)
	if items == nil {
		log.Printf("[GeneratePointsFromComment] no template for field %q", req.Field)
		result.IsFallback = true
		return result
	}

	// A comment never changes the weighting column, so the plain
	// instructor ranking applies for every comment intent.
	allPoints := outline.Rank(items, req.InstructorType, nil)

	switch analysis.intent {
	case intentAdd:
		added := selectRelevant(outline.FilterNew(allPoints, existingPoints), analysis.targetKeywords, 2)
		result.UpdatedPoints = append(result.UpdatedPoints, added...)
		result.AddedPoints = added

	case intentModify:
		if req.TargetPointIndex != nil && *req.TargetPointIndex < len(existingPoints) {
			idx := *req.TargetPointIndex
			target := existingPoints[idx]
			replacement := findReplacement(allPoints, target, analysis.targetKeywords)
			if replacement != "" {
				result.UpdatedPoints[idx] = replacement
				result.ModifiedPoints = append(result.ModifiedPoints, ModifiedPointPair{
					Before: target,
					After:  replacement,
				})
			}
		} else {
			// No specific target, reinforce the whole section
			added := firstN(outline.FilterNew(allPoints, existingPoints), 2)
			result.UpdatedPoints = append(result.UpdatedPoints, added...)
			result.AddedPoints = added
		}

	case intentDelete:
		if req.TargetPointIndex != nil && *req.TargetPointIndex < len(existingPoints) {
			idx := *req.TargetPointIndex
			result.UpdatedPoints = append(result.UpdatedPoints[:idx], result.UpdatedPoints[idx+1:]...)
			result.RemovedPointIndices = append(result.RemovedPointIndices, idx)
		}

	case intentStrengthen:
		added := selectRelevant(outline.FilterNew(allPoints, existingPoints), analysis.targetKeywords, 2)
		result.UpdatedPoints = append(result.UpdatedPoints, added...)
		result.AddedPoints = added
	}

	return result
}

// analyzeComment derives the intended action and keywords from a comment
func analyzeComment(commentText string, commentType CommentType) commentAnalysis {
	keywords := extractCommentKeywords(commentText)

	intent := intentAdd
	switch commentType {
	case CommentCriticism:
		// Criticism asks for reinforcement unless it explicitly asks
		// for a rewrite
		if strings.Contains(commentText, "修正") || strings.Contains(commentText, "変更") {
			intent = intentModify
		} else {
			intent = intentStrengthen
		}
	case CommentAddition:
		intent = intentAdd
	case CommentModification:
		intent = intentModify
	case CommentDeletion:
		intent = intentDelete
	}

	return commentAnalysis{
		intent:           intent,
		targetKeywords:   keywords,
		suggestedChanges: suggestChanges(commentText, keywords),
	}
}

func extractCommentKeywords(text string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, group := range commentKeywordGroups {
		for _, kw := range group {
			if strings.Contains(text, kw) {
				if _, ok := seen[kw]; !ok {
					seen[kw] = struct{}{}
					keywords = append(keywords, kw)
				}
			}
		}
	}
	return keywords
}

// suggestChanges maps the recognized keywords to concrete revision
// suggestions shown alongside the updated points
func suggestChanges(commentText string, keywords []string) []string {
	var suggestions []string

	if matchesAny(keywords, "文体", "修辞") {
		suggestions = append(suggestions,
			"修辞技法の分析と意味生成への影響を検討する",
			"文体の特徴と解釈の妥当性を検証する")
	}
	if matchesAny(keywords, "比較", "対比") {
		suggestions = append(suggestions,
			"先行研究との比較による位置づけを明確化する",
			"同時代作品との比較による解釈の妥当性を検証する")
	}
	if matchesAny(keywords, "事例", "具体") {
		suggestions = append(suggestions,
			"具体的事例を用いて理論的観点を補強する",
			"実証データに基づく検証を追加する")
	}
	if matchesAny(keywords, "理論") {
		suggestions = append(suggestions, "理論的フレームワークの適用を明確化する")
	}
	if matchesAny(keywords, "歴史", "文化的") {
		suggestions = append(suggestions, "歴史的背景と文化的文脈の整理を追加する")
	}

	if len(suggestions) == 0 {
		suggestions = []string{"コメントに基づく改善を反映する"}
	}
	return suggestions
}

func matchesAny(keywords []string, substrings ...string) bool {
	for _, kw := range keywords {
		for _, sub := range substrings {
			if strings.Contains(kw, sub) {
				return true
			}
		}
	}
	return false
}

// selectRelevant prefers points containing any of the keywords, falling
// back to the head of the list, capped at n
func selectRelevant(points, keywords []string, n int) []string {
	var relevant []string
	for _, p := range points {
		for _, kw := range keywords {
			if strings.Contains(p, kw) {
				relevant = append(relevant, p)
				break
			}
		}
	}
	if len(relevant) > 0 {
		return firstN(relevant, n)
	}
	return firstN(points, n)
}

// findReplacement picks the first keyword-relevant point that is not a
// near-duplicate of the point being replaced
func findReplacement(points []string, target string, keywords []string) string {
	for _, p := range points {
		if outline.Similarity(p, target) >= 0.7 {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(p, kw) {
				return p
			}
		}
	}
	return ""
}

func firstN(points []string, n int) []string {
	if len(points) < n {
		n = len(points)
	}
	return append([]string(nil), points[:n]...)
}
