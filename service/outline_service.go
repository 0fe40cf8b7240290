package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/kimuponpon0312-alt/ronbun/models"
	"github.com/kimuponpon0312-alt/ronbun/outline"
	"github.com/kimuponpon0312-alt/ronbun/repository"

	"github.com/google/uuid"
)

// OutlineService handles outline generation and persistence
type OutlineService struct {
	outlineRepo *repository.OutlineRepository
	usageRepo   *repository.UsageRepository
}

// OutlineServiceOption is a functional option for OutlineService
type OutlineServiceOption func(*OutlineService)

// WithOutlineRepository sets the outline repository
func WithOutlineRepository(repo *repository.OutlineRepository) OutlineServiceOption {
	return func(s *OutlineService) {
		s.outlineRepo = repo
	}
}

// WithUsageRepository sets the usage repository for field statistics
func WithUsageRepository(repo *repository.UsageRepository) OutlineServiceOption {
	return func(s *OutlineService) {
		s.usageRepo = repo
	}
}

// NewOutlineService creates a new outline service
func NewOutlineService(opts ...OutlineServiceOption) *OutlineService {
	s := &OutlineService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrOutlineNotFound = errors.New("outline not found")
	ErrSectionNotFound = errors.New("target section not found in outline")
	ErrInvalidField    = errors.New("unknown field")
)

const maxAdditionalPoints = 3

// GeneratePointsRequest represents a request to generate section points
type GeneratePointsRequest struct {
	Field          models.Field
	Question       string
	WordCount      int
	SectionTitle   string
	InstructorType models.InstructorType
}

// GeneratePointsResult represents generated section points
type GeneratePointsResult struct {
	Points       []string `json:"points"`
	IsFallback   bool     `json:"isFallback"`
	CoreQuestion string   `json:"coreQuestion,omitempty"`
}

// GeneratePoints returns the ranked template points for a field and
// section. A failed template lookup degrades to dummy data so the UI
// flow is never interrupted.
func (s *OutlineService) GeneratePoints(ctx context.Context, req GeneratePointsRequest) *GeneratePointsResult {
	items := outline.TemplateItems(req.Field, req.SectionTitle)
	if items == nil {
		log.Printf("[GeneratePoints] no template for field %q section %q, returning dummy data", req.Field, req.SectionTitle)
		return dummyPointsResult()
	}

	points := outline.Rank(items, req.InstructorType, nil)

	s.recordFieldStatistic(ctx, req.Field)

	return &GeneratePointsResult{
		Points:       points,
		IsFallback:   false,
		CoreQuestion: outline.CoreQuestion(req.Field),
	}
}

// dummyPointsResult is the development fallback used when template
// lookup fails
func dummyPointsResult() *GeneratePointsResult {
	return &GeneratePointsResult{
		Points: []string{
			"【テスト用】序論の論点1: この問題の歴史的背景を確認する",
			"【テスト用】序論の論点2: 現代における課題を定義する",
			"【テスト用】序論の論点3: 本稿の目的を提示する",
			"【テスト用】本論の論点1: 先行研究の限界を指摘する",
			"【テスト用】本論の論点2: 新しいアプローチを提案する",
			"【テスト用】結論の論点1: 議論の総括と今後の展望",
		},
		IsFallback:   true,
		CoreQuestion: "【テスト用】なぜAPIなしでも開発が進められるのか？",
	}
}

// GenerateAdditionalPointsRequest represents a request for extra points
// in one section of an existing outline
type GenerateAdditionalPointsRequest struct {
	Field           models.Field
	ExistingOutline []models.Section
	TargetSection   string
	Intent          models.GenerationIntent
	Question        string
	InstructorType  models.InstructorType
}

// GenerateAdditionalPointsResult represents newly generated points
type GenerateAdditionalPointsResult struct {
	NewPoints  []string `json:"newPoints"`
	IsFallback bool     `json:"isFallback"`
}

// GenerateAdditionalPoints ranks the section template under the given
// intent, drops near-duplicates of the existing points, reorders by
// intent, and returns at most three new points.
func (s *OutlineService) GenerateAdditionalPoints(ctx context.Context, req GenerateAdditionalPointsRequest) *GenerateAdditionalPointsResult {
	items := outline.TemplateItems(req.Field, req.TargetSection)
	if items == nil {
		log.Printf("[GenerateAdditionalPoints] no template for field %q section %q", req.Field, req.TargetSection)
		return &GenerateAdditionalPointsResult{
			NewPoints:  []string{"テンプレートの読み込みに失敗しました"},
			IsFallback: false,
		}
	}

	existingPoints := sectionPoints(req.ExistingOutline, req.TargetSection)

	allPoints := outline.Rank(items, req.InstructorType, &req.Intent)
	newPoints := outline.FilterNew(allPoints, existingPoints)
	adjusted := outline.ReorderByIntent(newPoints, req.Intent, existingPoints)

	if len(adjusted) > maxAdditionalPoints {
		adjusted = adjusted[:maxAdditionalPoints]
	}
	if len(adjusted) == 0 {
		adjusted = []string{"新しい論点を生成中..."}
	}

	return &GenerateAdditionalPointsResult{
		NewPoints:  adjusted,
		IsFallback: false,
	}
}

// BuildOutlineRequest represents a request for a full outline
type BuildOutlineRequest struct {
	Field          models.Field
	Question       string
	WordCount      int
	InstructorType models.InstructorType
}

// BuildOutline generates the three standard sections in order and
// assembles them into a full report outline.
func (s *OutlineService) BuildOutline(ctx context.Context, req BuildOutlineRequest) models.ReportOutline {
	sectionTitles := []string{models.SectionIntro, models.SectionBody, models.SectionConclusion}

	result := models.ReportOutline{
		Sections: make(models.Sections, 0, len(sectionTitles)),
	}

	for _, title := range sectionTitles {
		generated := s.GeneratePoints(ctx, GeneratePointsRequest{
			Field:          req.Field,
			Question:       req.Question,
			WordCount:      req.WordCount,
			SectionTitle:   title,
			InstructorType: req.InstructorType,
		})
		result.Sections = append(result.Sections, models.Section{
			Title:      title,
			Points:     generated.Points,
			IsFallback: generated.IsFallback,
		})
		if result.CoreQuestion == "" {
			result.CoreQuestion = generated.CoreQuestion
		}
	}

	return result
}

// SaveOutline persists an outline snapshot for a user
func (s *OutlineService) SaveOutline(ctx context.Context, saved *models.SavedOutline) error {
	if s.outlineRepo == nil {
		return errors.New("outline repository not set")
	}
	return s.outlineRepo.Create(ctx, saved)
}

// GetOutline retrieves an outline owned by the given user
func (s *OutlineService) GetOutline(ctx context.Context, id uuid.UUID, userID string) (*models.SavedOutline, error) {
	if s.outlineRepo == nil {
		return nil, errors.New("outline repository not set")
	}

	saved, err := s.outlineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrOutlineNotFound
	}
	if saved.UserID != userID {
		return nil, ErrOutlineNotFound
	}
	return saved, nil
}

// ListOutlines retrieves a user's saved outlines
func (s *OutlineService) ListOutlines(ctx context.Context, userID string, limit, offset int) ([]*models.SavedOutline, error) {
	if s.outlineRepo == nil {
		return nil, errors.New("outline repository not set")
	}
	return s.outlineRepo.ListByUserID(ctx, userID, limit, offset)
}

// recordFieldStatistic bumps today's per-field counter. Statistics are
// best-effort and never fail a generation.
func (s *OutlineService) recordFieldStatistic(ctx context.Context, field models.Field) {
	if s.usageRepo == nil {
		return
	}
	today := time.Now().UTC().Format("2006-01-02")
	if err := s.usageRepo.IncrementFieldCount(ctx, field, today); err != nil {
		log.Printf("[recordFieldStatistic] failed to record statistic: %v", err)
	}
}

func sectionPoints(sections []models.Section, title string) []string {
	for _, s := range sections {
		if s.Title == title {
			return s.Points
		}
	}
	return nil
}
