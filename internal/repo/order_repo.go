package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"storebot/internal/models"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

const orderColumns = `id, user_id, full_name, phone, address, comment, payment, delivery, status, total_price, created_at`

func scanOrder(row interface{ Scan(...any) error }, order *models.Order) error {
	return row.Scan(
		&order.ID, &order.UserID, &order.FullName, &order.Phone, &order.Address, &order.Comment,
		&order.Payment, &order.Delivery, &order.Status, &order.Total, &order.CreatedAt,
	)
}

func (r *OrderRepo) listOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// PlaceOrder turns the user's cart into an order in one transaction.
// Commits for the same user are serialized by an advisory lock, so a double
// tap yields one order and ErrCartEmpty for the second attempt.
func (r *OrderRepo) PlaceOrder(ctx context.Context, userID int64, details models.OrderDetails, status string) (*models.OrderWithItems, error) {
	details = details.Normalize()

	return withTx(ctx, r.db, func(tx *sql.Tx) (*models.OrderWithItems, error) {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
			return nil, fmt.Errorf("advisory lock: %w", err)
		}

		lines, err := cartLines(ctx, tx, userID, true)
		if err != nil {
			return nil, err
		}
		if len(lines) == 0 {
			return nil, ErrCartEmpty
		}

		order := models.Order{
			UserID:   userID,
			FullName: details.FullName,
			Phone:    details.Phone,
			Address:  details.Address,
			Comment:  details.Comment,
			Payment:  details.Payment,
			Delivery: details.Delivery,
			Status:   status,
			Total:    decimal.Zero,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, full_name, phone, address, comment, payment, delivery, status, total_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0)
			RETURNING id, created_at`,
			order.UserID, order.FullName, order.Phone, order.Address, order.Comment,
			order.Payment, order.Delivery, order.Status,
		).Scan(&order.ID, &order.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			// цена берётся из товара на момент оформления, а не из черновика
			item := models.OrderItem{
				OrderID:      order.ID,
				ProductID:    line.ProductID,
				ProductName:  line.Name,
				Quantity:     line.Quantity,
				PriceAtOrder: line.Price,
			}
			err := tx.QueryRowContext(ctx, `
				INSERT INTO order_items (order_id, product_id, quantity, price_at_order)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				item.OrderID, item.ProductID, item.Quantity, item.PriceAtOrder,
			).Scan(&item.ID)
			if err != nil {
				return nil, fmt.Errorf("insert order item: %w", err)
			}
			order.Total = order.Total.Add(item.Subtotal())
			items = append(items, item)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE orders SET total_price = $2 WHERE id = $1`, order.ID, order.Total); err != nil {
			return nil, fmt.Errorf("update order total: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
			return nil, fmt.Errorf("clear cart: %w", err)
		}

		return &models.OrderWithItems{Order: order, Items: items}, nil
	})
}

func (r *OrderRepo) OrderByID(ctx context.Context, id int) (*models.Order, error) {
	var order models.Order
	err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), &order)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	return &order, nil
}

func (r *OrderRepo) OrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.price_at_order
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.PriceAtOrder)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *OrderRepo) OrderWithItems(ctx context.Context, id int) (*models.OrderWithItems, error) {
	order, err := r.OrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := r.OrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.OrderWithItems{Order: *order, Items: items}, nil
}

// UserOrders returns the user's orders, newest first. Empty statuses means all.
func (r *OrderRepo) UserOrders(ctx context.Context, userID int64, statuses []string) ([]models.Order, error) {
	if len(statuses) == 0 {
		return r.listOrders(ctx, `
			SELECT `+orderColumns+` FROM orders
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC`, userID)
	}
	return r.listOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1 AND status = ANY($2)
		ORDER BY created_at DESC, id DESC`, userID, pq.Array(statuses))
}

func (r *OrderRepo) AllOrders(ctx context.Context) ([]models.Order, error) {
	return r.listOrders(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
}

// SearchOrders matches an exact id or a substring of customer name or phone.
func (r *OrderRepo) SearchOrders(ctx context.Context, query string) ([]models.Order, error) {
	return r.listOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE id::text = $1
		   OR full_name ILIKE '%' || $1 || '%'
		   OR phone ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC, id DESC`, query)
}

// SetStatus writes the status unconditionally and returns the previous one.
func (r *OrderRepo) SetStatus(ctx context.Context, id int, status string) (string, error) {
	return withTx(ctx, r.db, func(tx *sql.Tx) (string, error) {
		var prev string
		err := tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&prev)
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		if err != nil {
			return "", fmt.Errorf("select order status: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status); err != nil {
			return "", fmt.Errorf("update order status: %w", err)
		}
		return prev, nil
	})
}

// OrdersSince returns orders created at or after since, newest first.
func (r *OrderRepo) OrdersSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	return r.listOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE created_at >= $1
		ORDER BY created_at DESC, id DESC`, since)
}

func (r *OrderRepo) Stats(ctx context.Context, since time.Time, top int) (*models.OrderStats, error) {
	stats := &models.OrderStats{}
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_price), 0)
		FROM orders WHERE created_at >= $1`, since,
	).Scan(&stats.Count, &stats.Revenue)
	if err != nil {
		return nil, fmt.Errorf("select order totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.name, SUM(i.quantity) AS qty
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		JOIN products p ON p.id = i.product_id
		WHERE o.created_at >= $1
		GROUP BY p.id, p.name
		ORDER BY qty DESC, p.name
		LIMIT $2`, since, top)
	if err != nil {
		return nil, fmt.Errorf("select top products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.ProductSales
		if err := rows.Scan(&s.Name, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		stats.TopProducts = append(stats.TopProducts, s)
	}
	return stats, rows.Err()
}
