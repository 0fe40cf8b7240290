package repository

import (
	"context"

	"github.com/kimuponpon0312-alt/ronbun/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users and sessions
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, name, plan)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.Plan,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	return err
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, name, plan, created_at, updated_at
		FROM users
		WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Plan,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePlan switches a user's plan
func (r *UserRepository) UpdatePlan(ctx context.Context, email string, plan models.Plan) error {
	query := `UPDATE users SET plan = $2, updated_at = NOW() WHERE email = $1`
	_, err := r.db.Exec(ctx, query, email, plan)
	return err
}

// CreateSession stores a session token digest
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, session.TokenHash, session.UserID, session.ExpiresAt)
	return err
}

// GetUserBySessionToken resolves an unexpired session token digest to its user
func (r *UserRepository) GetUserBySessionToken(ctx context.Context, tokenHash string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT u.id, u.email, u.password_hash, u.name, u.plan, u.created_at, u.updated_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token_hash = $1 AND s.expires_at > NOW()`

	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Plan,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteExpiredSessions drops sessions past their expiry
func (r *UserRepository) DeleteExpiredSessions(ctx context.Context) error {
	query := `DELETE FROM sessions WHERE expires_at <= NOW()`
	_, err := r.db.Exec(ctx, query)
	return err
}
