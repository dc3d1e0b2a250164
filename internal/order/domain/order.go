// Package domain holds the order ledger: immutable order records and
// their status lifecycle.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
)

var (
	// ErrEmptyCart rejects checkout of a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderNotFound reports an unknown order id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyShipped rejects cancellation of a shipped or
	// delivered order.
	ErrAlreadyShipped = errors.New("order already shipped")
)

// Status is the order lifecycle state.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// PaymentType enumerates the accepted payment methods.
type PaymentType string

const (
	PaymentCreditCard PaymentType = "credit_card"
	PaymentDebitCard  PaymentType = "debit_card"
	PaymentPix        PaymentType = "pix"
	PaymentBoleto     PaymentType = "boleto"
)

// Address is the shipping destination captured at checkout.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// PaymentMethod describes how the order is paid.
type PaymentMethod struct {
	Type    PaymentType `json:"type"`
	Details string      `json:"details"`
}

// Line is a cart line frozen at order creation. Later catalog or
// price changes never alter it.
type Line struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// Order is an immutable purchase record. It is created once, only
// its status and updated timestamp change, and it is never deleted;
// cancellation is a status.
type Order struct {
	OrderID         string          `json:"order_id"`
	CustomerID      string          `json:"customer_id"`
	Items           []Line          `json:"items"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress Address         `json:"shipping_address"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
}

// NewOrderID builds a unique order id: time-based with a random
// suffix to avoid collision.
func NewOrderID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// NewOrderFromCart snapshots every cart line and freezes the cart's
// derived totals at this instant. It fails on an empty cart and
// leaves the cart untouched.
func NewOrderFromCart(customerID string, summary cartdomain.Summary, address Address, payment PaymentMethod) (*Order, error) {
	if len(summary.Items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]Line, 0, len(summary.Items))
	for _, item := range summary.Items {
		lines = append(lines, Line{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Total:       item.LineTotal(),
		})
	}

	now := time.Now()
	return &Order{
		OrderID:         NewOrderID(),
		CustomerID:      customerID,
		Items:           lines,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		Subtotal:        summary.Subtotal,
		Shipping:        summary.Shipping,
		Tax:             summary.Tax,
		Total:           summary.Total,
		ShippingAddress: address,
		PaymentMethod:   payment,
	}, nil
}

// CanBeCancelled is true only before shipment.
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending || o.Status == StatusProcessing
}

// SetStatus performs a transition and bumps the updated timestamp.
// General transitions are unconstrained; only cancellation carries a
// guard, which the application layer enforces via CanBeCancelled.
func (o *Order) SetStatus(status Status) {
	o.Status = status
	o.UpdatedAt = time.Now()
}

// OrderRepository is the storage port for the order history.
// Get returns (nil, nil) when the order does not exist.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	Get(ctx context.Context, orderID string) (*Order, error)
	// ListByCustomer returns the customer's orders newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}
