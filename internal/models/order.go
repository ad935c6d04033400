package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentCard     = "card"
	PaymentCash     = "cash"
	PaymentYooMoney = "yoomoney"

	DeliveryCourier = "courier"
	DeliveryPickup  = "pickup"
)

type Order struct {
	ID        int             `json:"id"`
	UserID    int64           `json:"user_id"`
	FullName  string          `json:"full_name"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Comment   string          `json:"comment"`
	Payment   string          `json:"payment"`
	Delivery  string          `json:"delivery"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total_price"`
	CreatedAt time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID           int             `json:"id"`
	OrderID      int             `json:"order_id"`
	ProductID    int             `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type OrderWithItems struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// OrderDetails are the customer-entered fields copied onto the order at commit.
type OrderDetails struct {
	FullName string
	Phone    string
	Address  string
	Comment  string
	Payment  string
	Delivery string
}

// Normalize replaces blank fields with NotSpecified so nothing is stored as empty.
func (d OrderDetails) Normalize() OrderDetails {
	for _, f := range []*string{&d.FullName, &d.Phone, &d.Address, &d.Comment, &d.Payment, &d.Delivery} {
		if strings.TrimSpace(*f) == "" {
			*f = NotSpecified
		}
	}
	return d
}

// ProductSales is one row of the top-products statistics.
type ProductSales struct {
	Name     string
	Quantity int
}

// OrderStats summarizes orders placed since a point in time.
type OrderStats struct {
	Count       int
	Revenue     decimal.Decimal
	TopProducts []ProductSales
}
