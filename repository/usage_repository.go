package repository

import (
	"context"

	"github.com/kimuponpon0312-alt/ronbun/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UsageRepository handles database operations for usage logs and the
// per-field generation statistics
type UsageRepository struct {
	db *pgxpool.Pool
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{db: db}
}

// Log records one billable action
func (r *UsageRepository) Log(ctx context.Context, entry *models.UsageLog) error {
	query := `
		INSERT INTO usage_logs (email, date, action_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		entry.Email,
		entry.Date,
		entry.ActionType,
	).Scan(&entry.ID, &entry.CreatedAt)

	return err
}

// CountForDay returns the number of billable actions for an email on a
// given YYYY-MM-DD date
func (r *UsageRepository) CountForDay(ctx context.Context, email, date string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM usage_logs WHERE email = $1 AND date = $2`

	if err := r.db.QueryRow(ctx, query, email, date).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// IncrementFieldCount bumps the generation counter for a field on a date
func (r *UsageRepository) IncrementFieldCount(ctx context.Context, field models.Field, date string) error {
	query := `
		INSERT INTO field_statistics (field, date, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (field, date) DO UPDATE SET count = field_statistics.count + 1`

	_, err := r.db.Exec(ctx, query, field, date)
	return err
}

// FieldCounts returns the per-field totals for a date
func (r *UsageRepository) FieldCounts(ctx context.Context, date string) ([]models.FieldStatistic, error) {
	query := `
		SELECT field, date, count
		FROM field_statistics
		WHERE date = $1
		ORDER BY count DESC`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.FieldStatistic
	for rows.Next() {
		var s models.FieldStatistic
		if err := rows.Scan(&s.Field, &s.Date, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
