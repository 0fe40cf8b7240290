package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kimuponpon0312-alt/ronbun/models"
	"github.com/kimuponpon0312-alt/ronbun/repository"
)

// freePlanDailyLimit is the number of billable generations per day on
// the free plan
const freePlanDailyLimit = 3

// UsageService enforces the freemium daily limit. Store errors fail
// open so a broken statistics table never blocks generation.
type UsageService struct {
	usageRepo        *repository.UsageRepository
	subscriptionRepo *repository.SubscriptionRepository
	now              func() time.Time
}

// UsageServiceOption is a functional option for UsageService
type UsageServiceOption func(*UsageService)

// WithUsageLogRepository sets the usage log repository
func WithUsageLogRepository(repo *repository.UsageRepository) UsageServiceOption {
	return func(s *UsageService) {
		s.usageRepo = repo
	}
}

// WithSubscriptionRepository sets the subscription repository
func WithSubscriptionRepository(repo *repository.SubscriptionRepository) UsageServiceOption {
	return func(s *UsageService) {
		s.subscriptionRepo = repo
	}
}

// WithUsageClock replaces the time source. Used in tests.
func WithUsageClock(now func() time.Time) UsageServiceOption {
	return func(s *UsageService) {
		s.now = now
	}
}

// NewUsageService creates a new usage service
func NewUsageService(opts ...UsageServiceOption) *UsageService {
	s := &UsageService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UsageStatus reports a user's standing against the daily limit
type UsageStatus struct {
	Allowed   bool   `json:"allowed"`
	Count     int    `json:"count"`
	Limit     int    `json:"limit"`
	Unlimited bool   `json:"unlimited"`
	Error     string `json:"error,omitempty"`
}

// CheckLimit returns whether the email may run another generation
// today. Active subscribers are unlimited; an unreachable store allows
// the request with a warning.
func (s *UsageService) CheckLimit(ctx context.Context, email string) *UsageStatus {
	if email == "" {
		return &UsageStatus{
			Allowed: false,
			Limit:   0,
			Error:   "ログインが必要です",
		}
	}

	if s.subscriptionRepo != nil {
		active, err := s.subscriptionRepo.IsActive(ctx, email)
		if err != nil {
			log.Printf("[CheckLimit] subscription lookup failed: %v", err)
		} else if active {
			return &UsageStatus{Allowed: true, Unlimited: true}
		}
	}

	if s.usageRepo == nil {
		log.Println("[CheckLimit] usage store not configured, allowing unlimited usage")
		return &UsageStatus{Allowed: true, Unlimited: true}
	}

	count, err := s.usageRepo.CountForDay(ctx, email, s.today())
	if err != nil {
		log.Printf("[CheckLimit] failed to count usage, allowing request: %v", err)
		return &UsageStatus{Allowed: true, Unlimited: true}
	}

	status := &UsageStatus{
		Allowed: count < freePlanDailyLimit,
		Count:   count,
		Limit:   freePlanDailyLimit,
	}
	if !status.Allowed {
		status.Error = fmt.Sprintf("1日の制限（%d回）に達しました", freePlanDailyLimit)
	}
	return status
}

// LogUsage records a billable action. Best-effort: failures are logged
// and swallowed.
func (s *UsageService) LogUsage(ctx context.Context, email, actionType string) {
	if email == "" || s.usageRepo == nil {
		return
	}

	entry := &models.UsageLog{
		Email:      email,
		Date:       s.today(),
		ActionType: actionType,
	}
	if err := s.usageRepo.Log(ctx, entry); err != nil {
		log.Printf("[LogUsage] failed to log usage: %v", err)
	}
}

func (s *UsageService) today() string {
	return s.now().UTC().Format("2006-01-02")
}
