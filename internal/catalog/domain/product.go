// Package domain holds the catalog domain model.
package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInsufficientStock is returned when a reservation asks for more
// units than are available.
var ErrInsufficientStock = errors.New("insufficient stock")

// Product is a catalog entry. Stock is mutated only through
// reservation and release; everything else is read-only data.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(20,2);not null" json:"price"`
	ImageURL    string          `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	Category    string          `gorm:"column:category;type:varchar(100);index" json:"category"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	Rating      float64         `gorm:"column:rating" json:"rating,omitempty"`
	Reviews     int             `gorm:"column:reviews" json:"reviews,omitempty"`
}

func (Product) TableName() string { return "products" }

// Available reports whether at least one unit is in stock.
func (p *Product) Available() bool {
	return p.Stock > 0
}

// SortField selects the key used to order search results.
type SortField string

const (
	SortByName   SortField = "name"
	SortByPrice  SortField = "price"
	SortByRating SortField = "rating"
)

// SortOrder selects the direction of a sorted search.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filter narrows a catalog search. All set fields apply together.
// An empty SearchTerm matches everything.
type Filter struct {
	Category   string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SearchTerm string
	SortBy     SortField
	SortOrder  SortOrder
}

// ProductRepository is the storage port for the catalog.
// Lookups return (nil, nil) when the product does not exist.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetByCategory(ctx context.Context, category string) ([]*Product, error)
	Search(ctx context.Context, filter Filter) ([]*Product, error)
	// ReserveStock decrements stock by qty only when qty does not
	// exceed the current stock. It returns ErrInsufficientStock
	// without mutating anything otherwise. A qty of 0 is a no-op.
	ReserveStock(ctx context.Context, id uint, qty int) error
	// ReleaseStock returns previously reserved units to stock.
	ReleaseStock(ctx context.Context, id uint, qty int) error
	Categories(ctx context.Context) ([]string, error)
	Save(ctx context.Context, product *Product) error
}
