package models

import "time"

// BasketItem is a line in a basket.
// Title and Price are copied from the food when the item is first added.
type BasketItem struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Amount int     `json:"amount"`
	Price  float64 `json:"price"`
	FoodID string  `json:"foodId"`
}

// Basket is the per-user collection of pending items.
// Version is incremented by the store on every successful write.
type Basket struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userID"`
	Items     []BasketItem `json:"items"`
	Version   int64        `json:"version"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Clone returns a deep copy of the basket
func (b *Basket) Clone() *Basket {
	c := *b
	c.Items = CloneItems(b.Items)
	return &c
}

// Total sums price*amount over all items
func (b *Basket) Total() float64 {
	var total float64
	for _, item := range b.Items {
		total += item.Price * float64(item.Amount)
	}
	return total
}

// CloneItems copies a slice of basket items, never returning nil
func CloneItems(items []BasketItem) []BasketItem {
	out := make([]BasketItem, len(items))
	copy(out, items)
	return out
}

// MaxItemAmount caps the amount of a single basket item
const MaxItemAmount = 10000

// AmountRequest is the body of add-to-basket and basket item update
type AmountRequest struct {
	Amount *int `json:"amount" validate:"required,min=0,max=10000"`
}

// PopulatedItem is a basket or order item joined with its current food
type PopulatedItem struct {
	BasketItem
	Food *Food `json:"food"`
}

// BasketView is a basket with food references expanded for display
type BasketView struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userID"`
	Items     []PopulatedItem `json:"items"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
