// Package domain holds the cart aggregate and its pricing rules.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
)

// Pricing carries the cart business parameters. Values come from
// configuration, not from constants inside the ledger.
type Pricing struct {
	TaxRate               decimal.Decimal `json:"tax_rate"`
	FreeShippingThreshold decimal.Decimal `json:"free_shipping_threshold"`
	ShippingCost          decimal.Decimal `json:"shipping_cost"`
}

// DefaultPricing returns the reference rules: 8% tax, free shipping
// at 500, 25 fee below it.
func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:               decimal.NewFromFloat(0.08),
		FreeShippingThreshold: decimal.NewFromInt(500),
		ShippingCost:          decimal.NewFromInt(25),
	}
}

// Item is one product line in a cart. Quantity is always >= 1; a
// requested quantity <= 0 removes the line instead.
type Item struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	AddedAt     time.Time       `json:"added_at"`
}

// LineTotal is unit price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Summary is a consistent snapshot of the cart's derived values.
// It is computed per read and never stored.
type Summary struct {
	Items      []Item          `json:"items"`
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
}

// Cart is the ledger of a user's pending purchase. At most one item
// per product id; insertion order is preserved for display.
type Cart struct {
	UserID  string  `json:"user_id"`
	Lines   []Item  `json:"lines"`
	Pricing Pricing `json:"pricing"`
}

// NewCart builds an empty cart with the given pricing rules.
func NewCart(userID string, pricing Pricing) *Cart {
	return &Cart{UserID: userID, Pricing: pricing}
}

// AddItem appends a line or increments the existing one. Stock
// validation belongs to the caller; the ledger always succeeds.
func (c *Cart) AddItem(product *catalogdomain.Product, quantity int) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == product.ID {
			c.Lines[i].Quantity += quantity
			return true
		}
	}
	c.Lines = append(c.Lines, Item{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    quantity,
		AddedAt:     time.Now(),
	})
	return true
}

// RemoveItem deletes the line, false when absent.
func (c *Cart) RemoveItem(productID uint) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity sets the line quantity. A quantity <= 0 removes the
// line so a stored zero or negative quantity can never exist.
func (c *Cart) UpdateQuantity(productID uint, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.Lines))
	copy(out, c.Lines)
	return out
}

// ItemCount sums the line quantities.
func (c *Cart) ItemCount() int {
	total := 0
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}

// Subtotal sums unit price times quantity over all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// Shipping is zero at or above the free-shipping threshold, the
// configured fee below it.
func (c *Cart) Shipping() decimal.Decimal {
	if c.Subtotal().GreaterThanOrEqual(c.Pricing.FreeShippingThreshold) {
		return decimal.Zero
	}
	return c.Pricing.ShippingCost
}

// Tax is subtotal times the configured rate.
func (c *Cart) Tax() decimal.Decimal {
	return c.Subtotal().Mul(c.Pricing.TaxRate)
}

// Total is subtotal + shipping + tax.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.Shipping()).Add(c.Tax())
}

// Summary aggregates every derived value for one consistent read.
func (c *Cart) Summary() Summary {
	return Summary{
		Items:      c.Items(),
		TotalItems: c.ItemCount(),
		Subtotal:   c.Subtotal(),
		Shipping:   c.Shipping(),
		Tax:        c.Tax(),
		Total:      c.Total(),
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) HasItem(productID uint) bool {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return true
		}
	}
	return false
}

// ItemQuantity returns the line quantity, 0 when absent.
func (c *Cart) ItemQuantity(productID uint) int {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}
