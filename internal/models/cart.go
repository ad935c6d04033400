package models

import "github.com/shopspring/decimal"

// CartItem is a stored (user, product, quantity) row.
type CartItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"qty"`
}

// CartLine is a cart row joined with the product's current name and price.
type CartLine struct {
	ProductID int
	Name      string
	Price     decimal.Decimal
	Quantity  int
}
