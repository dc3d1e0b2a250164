package domain

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
)

func filledSummary() cartdomain.Summary {
	cart := cartdomain.NewCart("u1", cartdomain.DefaultPricing())
	cart.AddItem(&catalogdomain.Product{ID: 1, Name: "Tênis", Price: decimal.NewFromInt(100), Stock: 10}, 2)
	cart.AddItem(&catalogdomain.Product{ID: 2, Name: "Meia", Price: decimal.NewFromInt(50), Stock: 10}, 1)
	return cart.Summary()
}

func TestNewOrderFromCartFreezesTotals(t *testing.T) {
	summary := filledSummary()

	order, err := NewOrderFromCart("u1", summary, Address{City: "São Paulo"}, PaymentMethod{Type: PaymentPix})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, "u1", order.CustomerID)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Tênis", order.Items[0].ProductName)
	assert.True(t, order.Items[0].Total.Equal(decimal.NewFromInt(200)))
	assert.True(t, order.Items[1].Total.Equal(decimal.NewFromInt(50)))

	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal %s", order.Subtotal)
	assert.True(t, order.Shipping.Equal(decimal.NewFromInt(25)), "shipping %s", order.Shipping)
	assert.True(t, order.Tax.Equal(decimal.NewFromInt(20)), "tax %s", order.Tax)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(295)), "total %s", order.Total)
}

func TestNewOrderFromCartEmpty(t *testing.T) {
	empty := cartdomain.NewCart("u1", cartdomain.DefaultPricing()).Summary()

	order, err := NewOrderFromCart("u1", empty, Address{}, PaymentMethod{})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
}

func TestNewOrderID(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d+-[0-9a-f]{8}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewOrderID()
		assert.Regexp(t, pattern, id)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate order id %s", id)
		seen[id] = struct{}{}
	}
}

func TestCanBeCancelled(t *testing.T) {
	cases := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusProcessing, true},
		{StatusShipped, false},
		{StatusDelivered, false},
		{StatusCancelled, false},
	}
	for _, tc := range cases {
		order := &Order{Status: tc.status}
		assert.Equal(t, tc.want, order.CanBeCancelled(), "status %s", tc.status)
	}
}

func TestSetStatusBumpsUpdatedAt(t *testing.T) {
	order, err := NewOrderFromCart("u1", filledSummary(), Address{}, PaymentMethod{})
	require.NoError(t, err)

	created := order.UpdatedAt
	order.SetStatus(StatusProcessing)

	assert.Equal(t, StatusProcessing, order.Status)
	assert.False(t, order.UpdatedAt.Before(created))
	assert.Equal(t, created, order.CreatedAt)
}
