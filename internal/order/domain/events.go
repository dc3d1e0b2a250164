package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderCreatedEvent announces a new order.
type OrderCreatedEvent struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	Timestamp  time.Time       `json:"timestamp"`
}

// OrderStatusChangedEvent announces a status transition.
type OrderStatusChangedEvent struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	OldStatus  Status    `json:"old_status"`
	NewStatus  Status    `json:"new_status"`
	Timestamp  time.Time `json:"timestamp"`
}
