package repository

import (
	"context"

	"github.com/kimuponpon0312-alt/ronbun/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutlineRepository handles database operations for saved outlines
type OutlineRepository struct {
	db *pgxpool.Pool
}

// NewOutlineRepository creates a new outline repository
func NewOutlineRepository(db *pgxpool.Pool) *OutlineRepository {
	return &OutlineRepository{db: db}
}

// Create persists a new outline snapshot
func (r *OutlineRepository) Create(ctx context.Context, outline *models.SavedOutline) error {
	query := `
		INSERT INTO report_outlines (
			user_id, field, topic, word_count, supervisor_type,
			sections, core_question
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		outline.UserID,
		outline.Field,
		outline.Topic,
		outline.WordCount,
		outline.SupervisorType,
		outline.Sections,
		outline.CoreQuestion,
	).Scan(&outline.ID, &outline.CreatedAt, &outline.UpdatedAt)

	return err
}

// GetByID retrieves an outline by ID
func (r *OutlineRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedOutline, error) {
	outline := &models.SavedOutline{}
	query := `
		SELECT id, user_id, field, topic, word_count, supervisor_type,
			sections, core_question, created_at, updated_at
		FROM report_outlines
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&outline.ID,
		&outline.UserID,
		&outline.Field,
		&outline.Topic,
		&outline.WordCount,
		&outline.SupervisorType,
		&outline.Sections,
		&outline.CoreQuestion,
		&outline.CreatedAt,
		&outline.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return outline, nil
}

// Update replaces the stored outline content
func (r *OutlineRepository) Update(ctx context.Context, outline *models.SavedOutline) error {
	query := `
		UPDATE report_outlines SET
			field = $2,
			topic = $3,
			word_count = $4,
			supervisor_type = $5,
			sections = $6,
			core_question = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		outline.ID,
		outline.Field,
		outline.Topic,
		outline.WordCount,
		outline.SupervisorType,
		outline.Sections,
		outline.CoreQuestion,
	).Scan(&outline.UpdatedAt)

	return err
}

// ListByUserID retrieves a user's outlines, newest first
func (r *OutlineRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*models.SavedOutline, error) {
	query := `
		SELECT id, user_id, field, topic, word_count, supervisor_type,
			sections, core_question, created_at, updated_at
		FROM report_outlines
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outlines []*models.SavedOutline
	for rows.Next() {
		outline := &models.SavedOutline{}
		err := rows.Scan(
			&outline.ID,
			&outline.UserID,
			&outline.Field,
			&outline.Topic,
			&outline.WordCount,
			&outline.SupervisorType,
			&outline.Sections,
			&outline.CoreQuestion,
			&outline.CreatedAt,
			&outline.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		outlines = append(outlines, outline)
	}

	return outlines, rows.Err()
}

// Delete removes an outline owned by the given user
func (r *OutlineRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	query := `DELETE FROM report_outlines WHERE id = $1 AND user_id = $2`
	_, err := r.db.Exec(ctx, query, id, userID)
	return err
}
