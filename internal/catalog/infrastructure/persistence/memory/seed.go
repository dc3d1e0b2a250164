package memory

import (
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopping/internal/catalog/domain"
)

// SampleProducts returns the demo catalog used when no database is
// configured. Tests inject their own fixtures instead.
func SampleProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID:          1,
			Name:        "iPhone 15 Pro",
			Price:       decimal.NewFromFloat(8999.99),
			Description: "O mais avançado iPhone com chip A17 Pro",
			ImageURL:    "https://via.placeholder.com/300x300/007AFF/FFFFFF?text=iPhone+15+Pro",
			Category:    "electronics",
			Stock:       50,
			Rating:      4.8,
			Reviews:     1250,
		},
		{
			ID:          2,
			Name:        "MacBook Air M2",
			Price:       decimal.NewFromFloat(12999.99),
			Description: "Notebook ultrafino com chip M2",
			ImageURL:    "https://via.placeholder.com/300x300/34C759/FFFFFF?text=MacBook+Air",
			Category:    "electronics",
			Stock:       25,
			Rating:      4.9,
			Reviews:     890,
		},
		{
			ID:          3,
			Name:        "Camiseta Nike Dri-FIT",
			Price:       decimal.NewFromFloat(89.99),
			Description: "Camiseta esportiva com tecnologia Dri-FIT",
			ImageURL:    "https://via.placeholder.com/300x300/FF3B30/FFFFFF?text=Nike+Dri-FIT",
			Category:    "clothing",
			Stock:       100,
			Rating:      4.5,
			Reviews:     320,
		},
		{
			ID:          4,
			Name:        "Tênis Adidas Ultraboost",
			Price:       decimal.NewFromFloat(299.99),
			Description: "Tênis de corrida com tecnologia Boost",
			ImageURL:    "https://via.placeholder.com/300x300/FF9500/FFFFFF?text=Ultraboost",
			Category:    "sports",
			Stock:       75,
			Rating:      4.7,
			Reviews:     540,
		},
		{
			ID:          5,
			Name:        "Sofá Moderno 3 Lugares",
			Price:       decimal.NewFromFloat(1899.99),
			Description: "Sofá contemporâneo em couro sintético premium",
			ImageURL:    "https://via.placeholder.com/300x300/8E4EC6/FFFFFF?text=Sofa+Moderno",
			Category:    "home",
			Stock:       15,
			Rating:      4.6,
			Reviews:     180,
		},
		{
			ID:          6,
			Name:        "AirPods Pro 2ª Geração",
			Price:       decimal.NewFromFloat(1999.99),
			Description: "Fones sem fio com cancelamento ativo de ruído",
			ImageURL:    "https://via.placeholder.com/300x300/007AFF/FFFFFF?text=AirPods+Pro",
			Category:    "electronics",
			Stock:       60,
			Rating:      4.8,
			Reviews:     720,
		},
	}
}
