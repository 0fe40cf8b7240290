package service

import (
	"context"
	"testing"

	"github.com/kimuponpon0312-alt/ronbun/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentOutline(points ...string) []models.Section {
	return []models.Section{
		{Title: models.SectionBody, Points: points},
	}
}

func TestAnalyzeComment_Intents(t *testing.T) {
	cases := []struct {
		comment     string
		commentType CommentType
		want        commentIntent
	}{
		{"理論の検討を追加してほしい", CommentAddition, intentAdd},
		{"この論点を修正してください", CommentModification, intentModify},
		{"この論点は不要です", CommentDeletion, intentDelete},
		{"論拠が不足しています", CommentCriticism, intentStrengthen},
		{"ここは修正が必要です", CommentCriticism, intentModify},
	}

	for _, tc := range cases {
		analysis := analyzeComment(tc.comment, tc.commentType)
		assert.Equal(t, tc.want, analysis.intent, "comment %q", tc.comment)
	}
}

func TestAnalyzeComment_ExtractsKeywords(t *testing.T) {
	analysis := analyzeComment("先行研究との比較と理論の検証が足りません", CommentCriticism)

	assert.Contains(t, analysis.targetKeywords, "先行研究")
	assert.Contains(t, analysis.targetKeywords, "比較")
	assert.Contains(t, analysis.targetKeywords, "理論")
	assert.NotEmpty(t, analysis.suggestedChanges)
}

func TestAnalyzeComment_DefaultSuggestion(t *testing.T) {
	analysis := analyzeComment("もっと良くしてください", CommentCriticism)
	assert.Equal(t, []string{"コメントに基づく改善を反映する"}, analysis.suggestedChanges)
}

func TestGeneratePointsFromComment_Addition(t *testing.T) {
	s := NewOutlineService()

	result := s.GeneratePointsFromComment(context.Background(), GeneratePointsFromCommentRequest{
		Field:           models.FieldLiterature,
		ExistingOutline: commentOutline("既存 の 論点"),
		TargetSection:   models.SectionBody,
		CommentText:     "理論的な観点を追加してほしい",
		CommentType:     CommentAddition,
		InstructorType:  models.InstructorTheory,
	})

	require.False(t, result.IsFallback)
	assert.NotEmpty(t, result.AddedPoints)
	assert.LessOrEqual(t, len(result.AddedPoints), 2)
	assert.Len(t, result.UpdatedPoints, 1+len(result.AddedPoints))
	assert.Empty(t, result.RemovedPointIndices)
}

func TestGeneratePointsFromComment_Deletion(t *testing.T) {
	s := NewOutlineService()

	idx := 1
	result := s.GeneratePointsFromComment(context.Background(), GeneratePointsFromCommentRequest{
		Field:            models.FieldLiterature,
		ExistingOutline:  commentOutline("論点A", "論点B", "論点C"),
		TargetSection:    models.SectionBody,
		CommentText:      "二つ目は不要です",
		CommentType:      CommentDeletion,
		InstructorType:   models.InstructorTheory,
		TargetPointIndex: &idx,
	})

	assert.Equal(t, []string{"論点A", "論点C"}, result.UpdatedPoints)
	assert.Equal(t, []int{1}, result.RemovedPointIndices)
}

func TestGeneratePointsFromComment_DeletionOutOfRange(t *testing.T) {
	s := NewOutlineService()

	idx := 9
	result := s.GeneratePointsFromComment(context.Background(), GeneratePointsFromCommentRequest{
		Field:            models.FieldLiterature,
		ExistingOutline:  commentOutline("論点A"),
		TargetSection:    models.SectionBody,
		CommentText:      "消してください",
		CommentType:      CommentDeletion,
		InstructorType:   models.InstructorTheory,
		TargetPointIndex: &idx,
	})

	assert.Equal(t, []string{"論点A"}, result.UpdatedPoints)
	assert.Empty(t, result.RemovedPointIndices)
}

func TestGeneratePointsFromComment_MissingSection(t *testing.T) {
	s := NewOutlineService()

	result := s.GeneratePointsFromComment(context.Background(), GeneratePointsFromCommentRequest{
		Field:           models.FieldLiterature,
		ExistingOutline: []models.Section{{Title: models.SectionIntro, Points: []string{"x"}}},
		TargetSection:   models.SectionConclusion,
		CommentText:     "追加してほしい",
		CommentType:     CommentAddition,
		InstructorType:  models.InstructorTheory,
	})

	assert.True(t, result.IsFallback)
	assert.Empty(t, result.UpdatedPoints)
}

func TestGeneratePointsFromComment_UnknownFieldKeepsPoints(t *testing.T) {
	s := NewOutlineService()

	result := s.GeneratePointsFromComment(context.Background(), GeneratePointsFromCommentRequest{
		Field:           models.Field("economics"),
		ExistingOutline: commentOutline("論点A"),
		TargetSection:   models.SectionBody,
		CommentText:     "追加してほしい",
		CommentType:     CommentAddition,
		InstructorType:  models.InstructorTheory,
	})

	assert.True(t, result.IsFallback)
	assert.Equal(t, []string{"論点A"}, result.UpdatedPoints)
}

func TestGeneratePointsFromComment_StrengthenAddsPoints(t *testing.T) {
	s := NewOutlineService()

	result := s.GeneratePointsFromComment(context.Background(), GeneratePointsFromCommentRequest{
		Field:           models.FieldSociology,
		ExistingOutline: commentOutline("既存 の 論点"),
		TargetSection:   models.SectionBody,
		CommentText:     "データによる実証が不足しています",
		CommentType:     CommentCriticism,
		InstructorType:  models.InstructorPractice,
	})

	require.False(t, result.IsFallback)
	assert.NotEmpty(t, result.AddedPoints)
	assert.LessOrEqual(t, len(result.AddedPoints), 2)
}
