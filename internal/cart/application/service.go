// Package application exposes per-user cart use cases.
package application

import (
	"context"

	"github.com/wyfcoding/shopping/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/shopping/internal/catalog/domain"
)

type CartApplicationService struct {
	repo    domain.CartRepository
	pricing domain.Pricing
}

func NewCartApplicationService(repo domain.CartRepository, pricing domain.Pricing) *CartApplicationService {
	return &CartApplicationService{repo: repo, pricing: pricing}
}

// GetCart loads the user's cart, materializing an empty one when the
// user has none yet.
func (s *CartApplicationService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return domain.NewCart(userID, s.pricing), nil
	}
	// Older carts may predate a pricing change; current rules win.
	cart.Pricing = s.pricing
	return cart, nil
}

func (s *CartApplicationService) AddItem(ctx context.Context, userID string, product *catalogdomain.Product, quantity int) error {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return err
	}
	cart.AddItem(product, quantity)
	return s.repo.Save(ctx, cart)
}

// RemoveItem deletes the product's line. The bool reports whether a
// line existed.
func (s *CartApplicationService) RemoveItem(ctx context.Context, userID string, productID uint) (bool, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return false, err
	}
	removed := cart.RemoveItem(productID)
	if !removed {
		return false, nil
	}
	return true, s.repo.Save(ctx, cart)
}

// UpdateQuantity sets the line quantity; <= 0 removes the line.
func (s *CartApplicationService) UpdateQuantity(ctx context.Context, userID string, productID uint, quantity int) (bool, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return false, err
	}
	updated := cart.UpdateQuantity(productID, quantity)
	if !updated {
		return false, nil
	}
	return true, s.repo.Save(ctx, cart)
}

// Summary returns one consistent read of the cart's derived values.
func (s *CartApplicationService) Summary(ctx context.Context, userID string) (domain.Summary, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return domain.Summary{}, err
	}
	return cart.Summary(), nil
}

func (s *CartApplicationService) Clear(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}
