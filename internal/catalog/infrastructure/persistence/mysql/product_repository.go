// Package mysql implements the catalog repository on GORM.
package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/shopping/internal/catalog/domain"
	"gorm.io/gorm"
)

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).Find(&products).Error
	return products, err
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.db.WithContext(ctx).Where("category = ?", category).Find(&products).Error
	return products, err
}

func (r *productRepository) Search(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", filter.MaxPrice)
	}
	if filter.SearchTerm != "" {
		term := "%" + filter.SearchTerm + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", term, term)
	}

	if filter.SortBy != "" {
		column := "name"
		switch filter.SortBy {
		case domain.SortByPrice:
			column = "price"
		case domain.SortByRating:
			column = "rating"
		}
		if filter.SortOrder == domain.SortDesc {
			column += " DESC"
		}
		// Secondary key keeps the ordering deterministic.
		q = q.Order(column).Order("id")
	}

	var products []*domain.Product
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepository) ReserveStock(ctx context.Context, id uint, qty int) error {
	if qty == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (r *productRepository) ReleaseStock(ctx context.Context, id uint, qty int) error {
	if qty == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}

func (r *productRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Distinct("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}
