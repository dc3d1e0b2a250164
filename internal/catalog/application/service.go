// Package application exposes catalog use cases over the repository
// port.
package application

import (
	"context"
	"errors"

	"github.com/wyfcoding/shopping/internal/catalog/domain"
	"github.com/wyfcoding/shopping/pkg/logger"
)

type CatalogApplicationService struct{ repo domain.ProductRepository }

func NewCatalogApplicationService(repo domain.ProductRepository) *CatalogApplicationService {
	return &CatalogApplicationService{repo: repo}
}

func (s *CatalogApplicationService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProduct returns (nil, nil) when the product does not exist;
// not-found is data, not an error.
func (s *CatalogApplicationService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogApplicationService) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.GetByCategory(ctx, category)
}

func (s *CatalogApplicationService) Search(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	return s.repo.Search(ctx, filter)
}

func (s *CatalogApplicationService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// ReserveStock decrements stock for a cart add. It reports false,
// without error, when stock is insufficient; the repository mutates
// nothing in that case.
func (s *CatalogApplicationService) ReserveStock(ctx context.Context, id uint, qty int) (bool, error) {
	err := s.repo.ReserveStock(ctx, id, qty)
	if errors.Is(err, domain.ErrInsufficientStock) {
		logger.Warn(ctx, "stock reservation rejected", "product_id", id, "quantity", qty)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ReleaseStock compensates a reservation after a failed cart add.
func (s *CatalogApplicationService) ReleaseStock(ctx context.Context, id uint, qty int) error {
	return s.repo.ReleaseStock(ctx, id, qty)
}

func (s *CatalogApplicationService) CreateProduct(ctx context.Context, product *domain.Product) (uint, error) {
	if err := s.repo.Save(ctx, product); err != nil {
		return 0, err
	}
	logger.Info(ctx, "product created", "product_id", product.ID, "name", product.Name)
	return product.ID, nil
}
