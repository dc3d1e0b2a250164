package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/shopping/internal/cart/domain"
	cartmem "github.com/wyfcoding/shopping/internal/cart/infrastructure/persistence/memory"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
)

func newService(t *testing.T) *CartApplicationService {
	t.Helper()
	return NewCartApplicationService(cartmem.NewCartRepository(), domain.DefaultPricing())
}

func product(id uint, price float64) *catalogdomain.Product {
	return &catalogdomain.Product{ID: id, Name: "Produto", Price: decimal.NewFromFloat(price), Stock: 10}
}

func TestGetCartMaterializesEmptyCart(t *testing.T) {
	svc := newService(t)

	cart, err := svc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, "u1", cart.UserID)
	assert.True(t, cart.IsEmpty())
}

func TestGetCartAppliesCurrentPricing(t *testing.T) {
	repo := cartmem.NewCartRepository()
	ctx := context.Background()

	// A cart persisted under older pricing rules.
	stale := domain.NewCart("u1", domain.Pricing{
		TaxRate:               decimal.NewFromFloat(0.05),
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingCost:          decimal.NewFromInt(10),
	})
	stale.AddItem(product(1, 50), 1)
	require.NoError(t, repo.Save(ctx, stale))

	svc := NewCartApplicationService(repo, domain.DefaultPricing())
	summary, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, summary.Shipping.Equal(decimal.NewFromInt(25)), "shipping %s", summary.Shipping)
	assert.True(t, summary.Tax.Equal(decimal.NewFromInt(4)), "tax %s", summary.Tax)
}

func TestAddItemPersistsAcrossReads(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "u1", product(1, 100), 2))
	require.NoError(t, svc.AddItem(ctx, "u1", product(1, 100), 1))

	summary, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 3, summary.Items[0].Quantity)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddItem(ctx, "u1", product(1, 100), 1))

	other, err := svc.Summary(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestRemoveItemAbsentLine(t *testing.T) {
	svc := newService(t)

	removed, err := svc.RemoveItem(context.Background(), "u1", 99)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, "u1", product(1, 100), 2))

	updated, err := svc.UpdateQuantity(ctx, "u1", 1, 0)
	require.NoError(t, err)
	assert.True(t, updated)

	summary, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestClearDeletesCart(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	require.NoError(t, svc.AddItem(ctx, "u1", product(1, 100), 2))

	require.NoError(t, svc.Clear(ctx, "u1"))

	summary, err := svc.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}
