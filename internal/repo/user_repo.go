package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storebot/internal/models"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Touch creates the user on first contact and refreshes username and locale.
func (r *UserRepo) Touch(ctx context.Context, id int64, username, locale string) error {
	query := `
		INSERT INTO users (id, username, locale)
		VALUES ($1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET username = EXCLUDED.username, locale = EXCLUDED.locale`

	if _, err := r.db.ExecContext(ctx, query, id, username, locale); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *UserRepo) UserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, full_name, phone, address, locale, created_at
		FROM users
		WHERE id = $1`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.FullName, &user.Phone,
		&user.Address, &user.Locale, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// SaveProfile upserts the contact fields. Blank and "-" values keep what is stored.
func (r *UserRepo) SaveProfile(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, full_name, phone, address)
		VALUES ($1, COALESCE(NULLIF(NULLIF($2, ''), '-'), '-'),
		            COALESCE(NULLIF(NULLIF($3, ''), '-'), '-'),
		            COALESCE(NULLIF(NULLIF($4, ''), '-'), '-'))
		ON CONFLICT (id) DO UPDATE SET
			full_name = COALESCE(NULLIF(NULLIF($2, ''), '-'), users.full_name),
			phone     = COALESCE(NULLIF(NULLIF($3, ''), '-'), users.phone),
			address   = COALESCE(NULLIF(NULLIF($4, ''), '-'), users.address)`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.FullName, user.Phone, user.Address)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
