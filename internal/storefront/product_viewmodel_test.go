package storefront

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/wyfcoding/shopping/internal/cart/application"
	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	cartmem "github.com/wyfcoding/shopping/internal/cart/infrastructure/persistence/memory"
	catalogapp "github.com/wyfcoding/shopping/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	catalogmem "github.com/wyfcoding/shopping/internal/catalog/infrastructure/persistence/memory"
)

func catalogSeed() []*catalogdomain.Product {
	return []*catalogdomain.Product{
		{ID: 1, Name: "Notebook", Description: "Notebook potente", Price: decimal.NewFromFloat(1899.99), Category: "electronics", Stock: 5, Rating: 4.8, Reviews: 320},
		{ID: 2, Name: "Camiseta", Description: "Algodão", Price: decimal.NewFromFloat(49.90), Category: "clothing", Stock: 30, Rating: 4.2, Reviews: 80},
		{ID: 3, Name: "Fone", Description: "Sem fio", Price: decimal.NewFromFloat(299.90), Category: "electronics", Stock: 0, Rating: 4.6, Reviews: 150},
		{ID: 4, Name: "Garrafa", Description: "Térmica", Price: decimal.NewFromFloat(79.90), Category: "home", Stock: 2, Rating: 3.9, Reviews: 15},
	}
}

func newProductVM(t *testing.T) (*ProductViewModel, *catalogapp.CatalogApplicationService) {
	t.Helper()
	catalog := catalogapp.NewCatalogApplicationService(catalogmem.NewProductRepository(catalogSeed()))
	cart := cartapp.NewCartApplicationService(cartmem.NewCartRepository(), cartdomain.DefaultPricing())
	return NewProductViewModel(catalog, cart, "u1"), catalog
}

func TestLoadProducts(t *testing.T) {
	vm, _ := newProductVM(t)

	products := vm.LoadProducts(context.Background())
	assert.Len(t, products, 4)
	assert.Empty(t, vm.Err())
	assert.False(t, vm.Loading())
}

func TestSearchProductsRemembersFilter(t *testing.T) {
	vm, _ := newProductVM(t)
	filter := catalogdomain.Filter{Category: "electronics", SortBy: catalogdomain.SortByPrice}

	products := vm.SearchProducts(context.Background(), filter)
	assert.Len(t, products, 2)
	assert.Equal(t, filter, vm.CurrentFilter())
}

func TestAddToCartHappyPath(t *testing.T) {
	vm, catalog := newProductVM(t)
	ctx := context.Background()

	ok := vm.AddToCart(ctx, 1, 2)
	require.True(t, ok)
	assert.Empty(t, vm.Err())
	assert.Equal(t, 2, vm.CartQuantity(ctx, 1))

	// The reservation came out of catalog stock.
	p, err := catalog.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestAddToCartInsufficientStock(t *testing.T) {
	vm, catalog := newProductVM(t)
	ctx := context.Background()

	ok := vm.AddToCart(ctx, 1, 10)
	require.False(t, ok)
	assert.Equal(t, "Estoque insuficiente. Disponível: 5", vm.Err())

	// Nothing moved: stock intact, cart untouched.
	p, err := catalog.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
	assert.Zero(t, vm.CartItemCount(ctx))
}

func TestAddToCartInvalidQuantity(t *testing.T) {
	vm, _ := newProductVM(t)

	require.False(t, vm.AddToCart(context.Background(), 1, 0))
	assert.Equal(t, "Quantidade deve ser maior que zero", vm.Err())

	require.False(t, vm.AddToCart(context.Background(), 1, -1))
	assert.Equal(t, "Quantidade deve ser maior que zero", vm.Err())
}

func TestAddToCartUnavailableProduct(t *testing.T) {
	vm, _ := newProductVM(t)
	ctx := context.Background()

	// Unknown id.
	require.False(t, vm.AddToCart(ctx, 999, 1))
	assert.Equal(t, "Produto indisponível", vm.Err())

	// Known but out of stock.
	require.False(t, vm.AddToCart(ctx, 3, 1))
	assert.Equal(t, "Produto indisponível", vm.Err())
}

func TestValidateAddToCart(t *testing.T) {
	vm, _ := newProductVM(t)
	product := catalogSeed()[0]

	assert.False(t, vm.ValidateAddToCart(product, 0).Valid)
	assert.False(t, vm.ValidateAddToCart(nil, 1).Valid)
	assert.False(t, vm.ValidateAddToCart(product, 6).Valid)
	assert.Equal(t, "Estoque insuficiente. Disponível: 5", vm.ValidateAddToCart(product, 6).Message)
	assert.True(t, vm.ValidateAddToCart(product, 5).Valid)
}

func TestRemoveFromCart(t *testing.T) {
	vm, catalog := newProductVM(t)
	ctx := context.Background()
	require.True(t, vm.AddToCart(ctx, 1, 2))

	assert.True(t, vm.RemoveFromCart(ctx, 1))
	assert.False(t, vm.IsProductInCart(ctx, 1))
	assert.False(t, vm.RemoveFromCart(ctx, 1))

	// Removal does not return stock to the catalog.
	p, err := catalog.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestUpdateCartQuantity(t *testing.T) {
	vm, _ := newProductVM(t)
	ctx := context.Background()
	require.True(t, vm.AddToCart(ctx, 2, 1))

	assert.True(t, vm.UpdateCartQuantity(ctx, 2, 5))
	assert.Equal(t, 5, vm.CartQuantity(ctx, 2))

	require.False(t, vm.UpdateCartQuantity(ctx, 2, 31))
	assert.Equal(t, "Estoque insuficiente. Disponível: 30", vm.Err())
	assert.Equal(t, 5, vm.CartQuantity(ctx, 2))

	// Zero removes the line.
	assert.True(t, vm.UpdateCartQuantity(ctx, 2, 0))
	assert.False(t, vm.IsProductInCart(ctx, 2))
}

func TestCartSummaryTotals(t *testing.T) {
	vm, _ := newProductVM(t)
	ctx := context.Background()
	require.True(t, vm.AddToCart(ctx, 2, 2))

	summary := vm.CartSummary(ctx)
	assert.Equal(t, 2, summary.TotalItems)
	assert.True(t, summary.Subtotal.Equal(decimal.NewFromFloat(99.80)), "subtotal %s", summary.Subtotal)
	assert.True(t, summary.Shipping.Equal(decimal.NewFromInt(25)), "shipping %s", summary.Shipping)
}

func TestClearCart(t *testing.T) {
	vm, _ := newProductVM(t)
	ctx := context.Background()
	require.True(t, vm.AddToCart(ctx, 1, 1))

	vm.ClearCart(ctx)
	assert.Zero(t, vm.CartItemCount(ctx))
}

func TestFormatPrice(t *testing.T) {
	vm, _ := newProductVM(t)

	assert.Equal(t, "R$ 1899,99", vm.FormatPrice(decimal.NewFromFloat(1899.99)))
	assert.Equal(t, "R$ 50,00", vm.FormatPrice(decimal.NewFromInt(50)))
	assert.Equal(t, "R$ 0,00", vm.FormatPrice(decimal.Zero))
}

func TestStockStatus(t *testing.T) {
	vm, _ := newProductVM(t)

	assert.Equal(t, "Esgotado", vm.StockStatus(&catalogdomain.Product{Stock: 0}))
	assert.Equal(t, "Últimas unidades", vm.StockStatus(&catalogdomain.Product{Stock: 9}))
	assert.Equal(t, "Disponível", vm.StockStatus(&catalogdomain.Product{Stock: 10}))
}

func TestPopularProducts(t *testing.T) {
	vm, _ := newProductVM(t)

	popular := vm.PopularProducts(context.Background())
	require.Len(t, popular, 4)
	assert.Equal(t, uint(1), popular[0].ID)
	assert.Equal(t, uint(3), popular[1].ID)
}

func TestHighRatedProducts(t *testing.T) {
	vm, _ := newProductVM(t)

	rated := vm.HighRatedProducts(context.Background())
	require.Len(t, rated, 2)
	assert.Equal(t, uint(1), rated[0].ID)
	assert.Equal(t, uint(3), rated[1].ID)
}

func TestLowStockProducts(t *testing.T) {
	vm, _ := newProductVM(t)

	low := vm.LowStockProducts(context.Background())
	require.Len(t, low, 2)
	assert.Equal(t, uint(4), low[0].ID)
	assert.Equal(t, uint(1), low[1].ID)
}
