package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
)

func newProduct(id uint, name string, price float64, stock int) *catalogdomain.Product {
	return &catalogdomain.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromFloat(price),
		Stock: stock,
	}
}

func TestCartAddItem(t *testing.T) {
	cart := NewCart("u1", DefaultPricing())

	cart.AddItem(newProduct(1, "Mouse", 100, 10), 2)
	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, 1, len(cart.Items()))

	// Same product id merges into one line.
	cart.AddItem(newProduct(1, "Mouse", 100, 10), 3)
	assert.Equal(t, 5, cart.ItemCount())
	assert.Equal(t, 1, len(cart.Items()))
	assert.Equal(t, 5, cart.ItemQuantity(1))

	cart.AddItem(newProduct(2, "Keyboard", 50, 10), 1)
	assert.Equal(t, 2, len(cart.Items()))
	assert.Equal(t, uint(1), cart.Items()[0].ProductID)
	assert.Equal(t, uint(2), cart.Items()[1].ProductID)
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCart("u1", DefaultPricing())
	cart.AddItem(newProduct(1, "Mouse", 100, 10), 2)

	assert.False(t, cart.RemoveItem(99))
	assert.True(t, cart.RemoveItem(1))
	assert.True(t, cart.IsEmpty())
	assert.False(t, cart.RemoveItem(1))
}

func TestCartUpdateQuantity(t *testing.T) {
	cart := NewCart("u1", DefaultPricing())
	cart.AddItem(newProduct(1, "Mouse", 100, 10), 2)

	assert.True(t, cart.UpdateQuantity(1, 7))
	assert.Equal(t, 7, cart.ItemQuantity(1))

	assert.False(t, cart.UpdateQuantity(99, 3))

	// Zero or negative removes the line.
	assert.True(t, cart.UpdateQuantity(1, 0))
	assert.False(t, cart.HasItem(1))

	cart.AddItem(newProduct(1, "Mouse", 100, 10), 2)
	assert.True(t, cart.UpdateQuantity(1, -5))
	assert.True(t, cart.IsEmpty())
}

func TestCartTotalsBelowFreeShipping(t *testing.T) {
	cart := NewCart("u1", DefaultPricing())
	cart.AddItem(newProduct(1, "Camiseta", 100, 50), 2)
	cart.AddItem(newProduct(2, "Meia", 50, 50), 1)

	summary := cart.Summary()
	assert.Equal(t, 3, summary.TotalItems)
	assert.True(t, summary.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal %s", summary.Subtotal)
	assert.True(t, summary.Shipping.Equal(decimal.NewFromInt(25)), "shipping %s", summary.Shipping)
	assert.True(t, summary.Tax.Equal(decimal.NewFromInt(20)), "tax %s", summary.Tax)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(295)), "total %s", summary.Total)
}

func TestCartFreeShippingAtThreshold(t *testing.T) {
	cart := NewCart("u1", DefaultPricing())
	cart.AddItem(newProduct(1, "Fone", 500, 10), 1)

	require.True(t, cart.Subtotal().Equal(decimal.NewFromInt(500)))
	assert.True(t, cart.Shipping().IsZero())
	assert.True(t, cart.Total().Equal(decimal.NewFromInt(540)), "total %s", cart.Total())
}

func TestCartEmptyTotals(t *testing.T) {
	cart := NewCart("u1", DefaultPricing())

	summary := cart.Summary()
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, summary.TotalItems)
	assert.True(t, summary.Subtotal.IsZero())
	// An empty cart still quotes the shipping fee below the threshold.
	assert.True(t, summary.Shipping.Equal(decimal.NewFromInt(25)))
	assert.True(t, summary.Tax.IsZero())
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(25)))
}

func TestCartClear(t *testing.T) {
	cart := NewCart("u1", DefaultPricing())
	cart.AddItem(newProduct(1, "Mouse", 100, 10), 2)

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.ItemCount())
	assert.True(t, cart.Subtotal().IsZero())
}

func TestCartItemsReturnsCopy(t *testing.T) {
	cart := NewCart("u1", DefaultPricing())
	cart.AddItem(newProduct(1, "Mouse", 100, 10), 2)

	items := cart.Items()
	items[0].Quantity = 99
	assert.Equal(t, 2, cart.ItemQuantity(1))
}
