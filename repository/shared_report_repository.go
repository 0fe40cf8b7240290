package repository

import (
	"context"

	"github.com/kimuponpon0312-alt/ronbun/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SharedReportRepository handles database operations for the public
// report gallery. Share-link payloads themselves live in the TTL cache;
// only gallery entries are persisted.
type SharedReportRepository struct {
	db *pgxpool.Pool
}

// NewSharedReportRepository creates a new shared report repository
func NewSharedReportRepository(db *pgxpool.Pool) *SharedReportRepository {
	return &SharedReportRepository{db: db}
}

// Create persists a shared report snapshot
func (r *SharedReportRepository) Create(ctx context.Context, report *models.SharedReport) error {
	query := `
		INSERT INTO shared_reports (content, is_public)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		report.Content,
		report.IsPublic,
	).Scan(&report.ID, &report.CreatedAt)

	return err
}

// GetByID retrieves a shared report
func (r *SharedReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SharedReport, error) {
	report := &models.SharedReport{}
	query := `
		SELECT id, content, is_public, created_at
		FROM shared_reports
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.Content,
		&report.IsPublic,
		&report.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return report, nil
}

// ListPublic retrieves gallery entries, newest first
func (r *SharedReportRepository) ListPublic(ctx context.Context, limit int) ([]models.PublicReport, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, content, created_at
		FROM shared_reports
		WHERE is_public = TRUE
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.PublicReport
	for rows.Next() {
		var entry models.PublicReport
		var content models.ShareData
		if err := rows.Scan(&entry.ID, &content, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.Field = content.Field
		entry.Topic = content.Question
		reports = append(reports, entry)
	}

	return reports, rows.Err()
}
