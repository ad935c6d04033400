package repo

import (
	"context"
	"database/sql"
	"fmt"

	"storebot/internal/models"
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

// AddItem adds quantity to the (user, product) row, creating it when absent.
func (r *CartRepo) AddItem(ctx context.Context, userID int64, productID, quantity int) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		SELECT $1, id, $3 FROM products WHERE id = $2 AND is_active = true
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`

	res, err := r.db.ExecContext(ctx, query, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return affectedOne(res)
}

func (r *CartRepo) RemoveItem(ctx context.Context, userID int64, productID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return affectedOne(res)
}

func (r *CartRepo) Clear(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Lines returns the cart joined with current product names and prices.
func (r *CartRepo) Lines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	return cartLines(ctx, r.db, userID, false)
}

func cartLines(ctx context.Context, q querier, userID int64, forUpdate bool) ([]models.CartLine, error) {
	query := `
		SELECT c.product_id, p.name, p.price, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1 AND p.is_active = true
		ORDER BY c.product_id`
	if forUpdate {
		query += ` FOR UPDATE OF c`
	}

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart: %w", err)
	}
	defer rows.Close()

	var lines []models.CartLine
	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Price, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
