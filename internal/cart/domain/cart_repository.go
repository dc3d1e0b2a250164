package domain

import "context"

// CartRepository is the storage port for carts. GetByUserID returns
// (nil, nil) when the user has no cart yet.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, userID string) error
}
