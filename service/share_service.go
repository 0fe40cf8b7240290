package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/kimuponpon0312-alt/ronbun/cache"
	"github.com/kimuponpon0312-alt/ronbun/models"
	"github.com/kimuponpon0312-alt/ronbun/repository"
)

// shareTTL is how long a share link stays resolvable
const shareTTL = 30 * 24 * time.Hour

var ErrShareNotFound = errors.New("shared report not found or expired")

// ShareService manages share links and the public report gallery.
// Share payloads live in the TTL cache; gallery entries persist.
type ShareService struct {
	store      *cache.TTLCache
	sharedRepo *repository.SharedReportRepository
	now        func() time.Time
}

// ShareServiceOption is a functional option for ShareService
type ShareServiceOption func(*ShareService)

// WithShareCache sets the TTL cache backing share links
func WithShareCache(store *cache.TTLCache) ShareServiceOption {
	return func(s *ShareService) {
		s.store = store
	}
}

// WithSharedReportRepository sets the gallery repository
func WithSharedReportRepository(repo *repository.SharedReportRepository) ShareServiceOption {
	return func(s *ShareService) {
		s.sharedRepo = repo
	}
}

// WithShareClock replaces the time source. Used in tests.
func WithShareClock(now func() time.Time) ShareServiceOption {
	return func(s *ShareService) {
		s.now = now
	}
}

// NewShareService creates a new share service
func NewShareService(opts ...ShareServiceOption) *ShareService {
	s := &ShareService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateShare stores a share snapshot and returns its report ID. When
// the snapshot is marked public it is also persisted to the gallery;
// gallery failures are logged, not surfaced.
func (s *ShareService) CreateShare(ctx context.Context, data models.ShareData, isPublic bool) (string, error) {
	if s.store == nil {
		return "", errors.New("share cache not set")
	}

	data.CreatedAt = s.now()
	reportID := s.newReportID()
	s.store.Put(reportID, data, shareTTL)

	if isPublic && s.sharedRepo != nil {
		report := &models.SharedReport{Content: data, IsPublic: true}
		if err := s.sharedRepo.Create(ctx, report); err != nil {
			log.Printf("[CreateShare] failed to persist public report: %v", err)
		}
	}

	return reportID, nil
}

// GetShare resolves a report ID to its snapshot
func (s *ShareService) GetShare(ctx context.Context, reportID string) (*models.ShareData, error) {
	if s.store == nil {
		return nil, errors.New("share cache not set")
	}

	value, ok := s.store.Get(reportID)
	if !ok {
		return nil, ErrShareNotFound
	}

	data, ok := value.(models.ShareData)
	if !ok {
		return nil, ErrShareNotFound
	}
	return &data, nil
}

// ListPublicReports returns the newest public gallery entries
func (s *ShareService) ListPublicReports(ctx context.Context, limit int) ([]models.PublicReport, error) {
	if s.sharedRepo == nil {
		return []models.PublicReport{}, nil
	}

	reports, err := s.sharedRepo.ListPublic(ctx, limit)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []models.PublicReport{}
	}
	return reports, nil
}

// newReportID builds a base36 timestamp plus a base36 random suffix,
// matching the share-link format already in the wild.
func (s *ShareService) newReportID() string {
	timestamp := strconv.FormatInt(s.now().UnixMilli(), 36)
	random := strconv.FormatInt(rand.Int63n(36*36*36*36*36*36*36), 36)
	return fmt.Sprintf("%s-%s", timestamp, random)
}
