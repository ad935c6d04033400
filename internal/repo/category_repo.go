package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storebot/internal/models"
)

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name, created_at`

	var category models.Category
	err := r.db.QueryRowContext(ctx, query, name).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrCategoryExists
	}
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &category, nil
}

func (r *CategoryRepo) AllCategories(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, created_at FROM categories ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepo) CategoryByID(ctx context.Context, id int) (*models.Category, error) {
	query := `SELECT id, name, created_at FROM categories WHERE id = $1`

	var category models.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name, &category.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select category: %w", err)
	}
	return &category, nil
}

// RenameCategory fails with ErrCategoryExists and changes nothing when another
// category already has the name.
func (r *CategoryRepo) RenameCategory(ctx context.Context, id int, name string) error {
	query := `UPDATE categories SET name = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, name)
	if isUniqueViolation(err) {
		return ErrCategoryExists
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return affectedOne(res)
}

// DeleteCategory refuses while an active product references the category.
// Archived products are detached so their order history stays intact.
func (r *CategoryRepo) DeleteCategory(ctx context.Context, id int) error {
	_, err := withTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var locked int
		err := tx.QueryRowContext(ctx, `SELECT id FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return struct{}{}, ErrNotFound
		}
		if err != nil {
			return struct{}{}, fmt.Errorf("lock category: %w", err)
		}

		var active int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM products WHERE category_id = $1 AND is_active = true`, id,
		).Scan(&active)
		if err != nil {
			return struct{}{}, fmt.Errorf("count products: %w", err)
		}
		if active > 0 {
			return struct{}{}, ErrCategoryInUse
		}

		if _, err := tx.ExecContext(ctx, `UPDATE products SET category_id = NULL WHERE category_id = $1`, id); err != nil {
			return struct{}{}, fmt.Errorf("detach products: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
			return struct{}{}, fmt.Errorf("delete category: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}
