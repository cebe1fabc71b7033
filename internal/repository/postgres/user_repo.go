package postgres

import (
	"context"
	"database/sql"

	"volunteerhub/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

// Upsert records the identity-provider user, refreshing the email if it changed.
// CreatedAt is set from the stored row.
func (r *userRepository) Upsert(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, email, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email
		RETURNING created_at
	`
	return r.DB.QueryRowContext(ctx, query, u.ID, u.Email, u.CreatedAt).Scan(&u.CreatedAt)
}
