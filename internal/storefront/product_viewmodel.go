package storefront

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	cartapp "github.com/wyfcoding/shopping/internal/cart/application"
	cartdomain "github.com/wyfcoding/shopping/internal/cart/domain"
	catalogapp "github.com/wyfcoding/shopping/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
	"github.com/wyfcoding/shopping/pkg/metrics"
)

// User-facing messages, pt-BR like the storefront itself.
const (
	msgInvalidQuantity    = "Quantidade deve ser maior que zero"
	msgProductUnavailable = "Produto indisponível"
	msgLoadProductsFailed = "Erro ao carregar produtos"
	msgSearchFailed       = "Erro na busca de produtos"
	msgLoadProductFailed  = "Erro ao carregar produto"
	msgAddToCartFailed    = "Erro ao adicionar produto ao carrinho"
	msgRemoveFailed       = "Erro ao remover produto do carrinho"
	msgUpdateQtyFailed    = "Erro ao atualizar quantidade"
)

func msgInsufficientStock(available int) string {
	return fmt.Sprintf("Estoque insuficiente. Disponível: %d", available)
}

// ProductViewModel orchestrates the catalog and the user's cart.
// Adding to the cart reserves stock eagerly: the reservation and the
// cart line either both happen or neither does.
type ProductViewModel struct {
	viewState
	catalog *catalogapp.CatalogApplicationService
	cart    *cartapp.CartApplicationService
	userID  string
	metrics *metrics.Metrics

	currentFilter catalogdomain.Filter
}

// ProductViewModelOption customizes construction.
type ProductViewModelOption func(*ProductViewModel)

// WithProductLatency sets the artificial delay emulating a remote
// API. Mock setups only.
func WithProductLatency(d time.Duration) ProductViewModelOption {
	return func(vm *ProductViewModel) { vm.latency = d }
}

// WithProductMetrics attaches the Prometheus counters.
func WithProductMetrics(m *metrics.Metrics) ProductViewModelOption {
	return func(vm *ProductViewModel) { vm.metrics = m }
}

func NewProductViewModel(
	catalog *catalogapp.CatalogApplicationService,
	cart *cartapp.CartApplicationService,
	userID string,
	opts ...ProductViewModelOption,
) *ProductViewModel {
	vm := &ProductViewModel{catalog: catalog, cart: cart, userID: userID}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// CurrentFilter returns the filter of the most recent search.
func (vm *ProductViewModel) CurrentFilter() catalogdomain.Filter {
	return vm.currentFilter
}

// LoadProducts fetches the whole catalog.
func (vm *ProductViewModel) LoadProducts(ctx context.Context) []*catalogdomain.Product {
	vm.begin()
	defer vm.end()
	vm.simulateLatency(ctx)

	products, err := vm.catalog.ListProducts(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load products", "error", err)
		vm.setErr(msgLoadProductsFailed)
		return nil
	}
	return products
}

// SearchProducts applies the filter and remembers it as current.
func (vm *ProductViewModel) SearchProducts(ctx context.Context, filter catalogdomain.Filter) []*catalogdomain.Product {
	vm.begin()
	defer vm.end()
	vm.currentFilter = filter
	vm.simulateLatency(ctx)

	products, err := vm.catalog.Search(ctx, filter)
	if err != nil {
		logger.Error(ctx, "product search failed", "error", err)
		vm.setErr(msgSearchFailed)
		return nil
	}
	return products
}

// ProductByID returns nil for unknown ids without setting an error;
// not-found is a normal outcome.
func (vm *ProductViewModel) ProductByID(ctx context.Context, id uint) *catalogdomain.Product {
	vm.begin()
	defer vm.end()
	vm.simulateLatency(ctx)

	product, err := vm.catalog.GetProduct(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to load product", "product_id", id, "error", err)
		vm.setErr(msgLoadProductFailed)
		return nil
	}
	return product
}

func (vm *ProductViewModel) Categories(ctx context.Context) []string {
	categories, err := vm.catalog.Categories(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load categories", "error", err)
		return nil
	}
	return categories
}

// ValidationResult is the outcome of a pre-condition check.
type ValidationResult struct {
	Valid   bool
	Message string
}

// ValidateAddToCart checks the add-to-cart pre-conditions against
// the given product snapshot without mutating anything.
func (vm *ProductViewModel) ValidateAddToCart(product *catalogdomain.Product, quantity int) ValidationResult {
	if quantity <= 0 {
		return ValidationResult{Message: msgInvalidQuantity}
	}
	if product == nil || !product.Available() {
		return ValidationResult{Message: msgProductUnavailable}
	}
	if quantity > product.Stock {
		return ValidationResult{Message: msgInsufficientStock(product.Stock)}
	}
	return ValidationResult{Valid: true}
}

// AddToCart validates, then runs the two-step transaction: reserve
// stock, append the cart line, release the reservation if the append
// fails. Either both mutations happen or neither does.
func (vm *ProductViewModel) AddToCart(ctx context.Context, productID uint, quantity int) bool {
	vm.ClearErr()

	if quantity <= 0 {
		vm.setErr(msgInvalidQuantity)
		return false
	}

	product, err := vm.catalog.GetProduct(ctx, productID)
	if err != nil {
		logger.Error(ctx, "failed to load product for cart add", "product_id", productID, "error", err)
		vm.setErr(msgAddToCartFailed)
		return false
	}
	if product == nil || !product.Available() {
		vm.setErr(msgProductUnavailable)
		return false
	}
	if quantity > product.Stock {
		vm.countReservationFailure()
		vm.setErr(msgInsufficientStock(product.Stock))
		return false
	}

	reserved, err := vm.catalog.ReserveStock(ctx, productID, quantity)
	if err != nil {
		logger.Error(ctx, "stock reservation failed", "product_id", productID, "error", err)
		vm.setErr(msgAddToCartFailed)
		return false
	}
	if !reserved {
		vm.countReservationFailure()
		vm.setErr(msgInsufficientStock(product.Stock))
		return false
	}

	if err := vm.cart.AddItem(ctx, vm.userID, product, quantity); err != nil {
		// Compensate so the reservation is not leaked.
		if relErr := vm.catalog.ReleaseStock(ctx, productID, quantity); relErr != nil {
			logger.Error(ctx, "failed to release reserved stock",
				"product_id", productID,
				"quantity", quantity,
				"error", relErr,
			)
		}
		logger.Error(ctx, "failed to add cart item", "product_id", productID, "error", err)
		vm.setErr(msgAddToCartFailed)
		return false
	}

	if vm.metrics != nil {
		vm.metrics.CartAddsTotal.Inc()
	}
	return true
}

// RemoveFromCart deletes the product's line, false when absent.
func (vm *ProductViewModel) RemoveFromCart(ctx context.Context, productID uint) bool {
	removed, err := vm.cart.RemoveItem(ctx, vm.userID, productID)
	if err != nil {
		logger.Error(ctx, "failed to remove cart item", "product_id", productID, "error", err)
		vm.setErr(msgRemoveFailed)
		return false
	}
	if removed && vm.metrics != nil {
		vm.metrics.CartRemovesTotal.Inc()
	}
	return removed
}

// UpdateCartQuantity sets the line quantity after validating against
// available stock; <= 0 removes the line.
func (vm *ProductViewModel) UpdateCartQuantity(ctx context.Context, productID uint, quantity int) bool {
	product, err := vm.catalog.GetProduct(ctx, productID)
	if err != nil {
		logger.Error(ctx, "failed to load product for quantity update", "product_id", productID, "error", err)
		vm.setErr(msgUpdateQtyFailed)
		return false
	}
	if product != nil && quantity > product.Stock {
		vm.setErr(msgInsufficientStock(product.Stock))
		return false
	}

	updated, err := vm.cart.UpdateQuantity(ctx, vm.userID, productID, quantity)
	if err != nil {
		logger.Error(ctx, "failed to update cart quantity", "product_id", productID, "error", err)
		vm.setErr(msgUpdateQtyFailed)
		return false
	}
	return updated
}

// CartSummary returns one consistent read of the cart.
func (vm *ProductViewModel) CartSummary(ctx context.Context) cartdomain.Summary {
	summary, err := vm.cart.Summary(ctx, vm.userID)
	if err != nil {
		logger.Error(ctx, "failed to read cart summary", "error", err)
		return cartdomain.Summary{}
	}
	return summary
}

func (vm *ProductViewModel) CartItemCount(ctx context.Context) int {
	return vm.CartSummary(ctx).TotalItems
}

func (vm *ProductViewModel) ClearCart(ctx context.Context) {
	if err := vm.cart.Clear(ctx, vm.userID); err != nil {
		logger.Error(ctx, "failed to clear cart", "error", err)
	}
}

func (vm *ProductViewModel) IsProductInCart(ctx context.Context, productID uint) bool {
	return vm.CartQuantity(ctx, productID) > 0
}

// CartQuantity returns the line quantity for the product, 0 when the
// product is not in the cart.
func (vm *ProductViewModel) CartQuantity(ctx context.Context, productID uint) int {
	for _, item := range vm.CartSummary(ctx).Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// FormatPrice renders a price in the storefront locale.
func (vm *ProductViewModel) FormatPrice(price decimal.Decimal) string {
	s := price.StringFixed(2)
	return "R$ " + replaceDot(s)
}

// StockStatus maps stock levels to storefront labels.
func (vm *ProductViewModel) StockStatus(product *catalogdomain.Product) string {
	switch {
	case product.Stock == 0:
		return "Esgotado"
	case product.Stock < 10:
		return "Últimas unidades"
	default:
		return "Disponível"
	}
}

// PopularProducts returns the five most reviewed products.
func (vm *ProductViewModel) PopularProducts(ctx context.Context) []*catalogdomain.Product {
	products, err := vm.catalog.ListProducts(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load products", "error", err)
		return nil
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Reviews > products[j].Reviews
	})
	if len(products) > 5 {
		products = products[:5]
	}
	return products
}

// HighRatedProducts returns products rated 4.5 or higher, best
// first.
func (vm *ProductViewModel) HighRatedProducts(ctx context.Context) []*catalogdomain.Product {
	products, err := vm.catalog.ListProducts(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load products", "error", err)
		return nil
	}
	out := make([]*catalogdomain.Product, 0)
	for _, p := range products {
		if p.Rating >= 4.5 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}

// LowStockProducts returns in-stock products below ten units,
// scarcest first.
func (vm *ProductViewModel) LowStockProducts(ctx context.Context) []*catalogdomain.Product {
	products, err := vm.catalog.ListProducts(ctx)
	if err != nil {
		logger.Error(ctx, "failed to load products", "error", err)
		return nil
	}
	out := make([]*catalogdomain.Product, 0)
	for _, p := range products {
		if p.Stock > 0 && p.Stock < 10 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stock < out[j].Stock
	})
	return out
}

func (vm *ProductViewModel) countReservationFailure() {
	if vm.metrics != nil {
		vm.metrics.StockReservationFailed.Inc()
	}
}

func replaceDot(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == '.' {
			b[i] = ','
		}
	}
	return string(b)
}
