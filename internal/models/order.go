package models

import "time"

// Order is an immutable snapshot of a basket taken at checkout
type Order struct {
	ID         string       `json:"id"`
	UserID     string       `json:"userId"`
	TotalPrice float64      `json:"totalPrice"`
	Items      []BasketItem `json:"items"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// OrderRequest is the body of POST /orders
type OrderRequest struct {
	TotalPrice *float64 `json:"totalPrice" validate:"required,min=0"`
}

// OrderUser is the owner summary attached to admin order listings
type OrderUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderView is an order with item foods and, for admin listings, its owner
type OrderView struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	User       *OrderUser      `json:"user,omitempty"`
	TotalPrice float64         `json:"totalPrice"`
	Items      []PopulatedItem `json:"items"`
	CreatedAt  time.Time       `json:"createdAt"`
}
