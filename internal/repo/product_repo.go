package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storebot/internal/models"
)

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, name, description, price, stock, category_id, photo, is_active, created_at`

func scanProduct(row interface{ Scan(...any) error }, product *models.Product) error {
	var categoryID sql.NullInt64
	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock,
		&categoryID, &product.Photo, &product.IsActive, &product.CreatedAt,
	)
	if err != nil {
		return err
	}
	product.CategoryID = nil
	if categoryID.Valid {
		id := int(categoryID.Int64)
		product.CategoryID = &id
	}
	return nil
}

func (r *ProductRepo) listProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var product models.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, stock, category_id, photo, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING id, is_active, created_at`

	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.Stock,
		product.CategoryID, product.Photo,
	).Scan(&product.ID, &product.IsActive, &product.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// AllProducts returns active products, newest last.
func (r *ProductRepo) AllProducts(ctx context.Context) ([]models.Product, error) {
	return r.listProducts(ctx, `SELECT `+productColumns+` FROM products WHERE is_active = true ORDER BY id`)
}

func (r *ProductRepo) ProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	return r.listProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_active = true AND category_id = $1
		ORDER BY id`, categoryID)
}

// SearchProducts matches active products by exact id or a name substring.
func (r *ProductRepo) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	return r.listProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE is_active = true AND (id::text = $1 OR name ILIKE '%' || $1 || '%')
		ORDER BY id`, query)
}

// ProductByID returns the product even when archived; callers check IsActive.
func (r *ProductRepo) ProductByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	err := scanProduct(row, &product)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &product, nil
}

func (r *ProductRepo) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, category_id = $6, photo = $7
		WHERE id = $1 AND is_active = true`

	res, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Stock, product.CategoryID, product.Photo,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return affectedOne(res)
}

// DeleteProduct archives the product and drops it from every cart.
// Order items keep pointing at the archived row.
func (r *ProductRepo) DeleteProduct(ctx context.Context, id int) error {
	_, err := withTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		res, err := tx.ExecContext(ctx, `UPDATE products SET is_active = false WHERE id = $1 AND is_active = true`, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("archive product: %w", err)
		}
		if err := affectedOne(res); err != nil {
			return struct{}{}, err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE product_id = $1`, id); err != nil {
			return struct{}{}, fmt.Errorf("delete cart items: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}
