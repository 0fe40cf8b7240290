package repository

import (
	"context"
	"errors"

	"github.com/kimuponpon0312-alt/ronbun/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubscriptionRepository handles database operations for subscriptions
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Upsert records a verified checkout session, keyed by email
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (email, stripe_session_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET
			stripe_session_id = EXCLUDED.stripe_session_id,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		sub.Email,
		sub.StripeSessionID,
		sub.Status,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)

	return err
}

// GetByEmail retrieves the subscription for an email
func (r *SubscriptionRepository) GetByEmail(ctx context.Context, email string) (*models.Subscription, error) {
	sub := &models.Subscription{}
	query := `
		SELECT id, email, stripe_session_id, status, created_at, updated_at
		FROM subscriptions
		WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&sub.ID,
		&sub.Email,
		&sub.StripeSessionID,
		&sub.Status,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return sub, nil
}

// IsActive reports whether an email has an active subscription. A
// missing row is not an error.
func (r *SubscriptionRepository) IsActive(ctx context.Context, email string) (bool, error) {
	sub, err := r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return sub.Status == models.SubscriptionActive, nil
}

// Cancel marks a subscription canceled
func (r *SubscriptionRepository) Cancel(ctx context.Context, email string) error {
	query := `
		UPDATE subscriptions SET status = $2, updated_at = NOW()
		WHERE email = $1`

	_, err := r.db.Exec(ctx, query, email, models.SubscriptionCanceled)
	return err
}
