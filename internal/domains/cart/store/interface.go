package store

import (
	"context"

	"pos-admin-gateway/internal/domains/cart/model"
)

// Store keeps one cart per session. Implementations must return a
// fresh empty cart for unknown or expired sessions, never nil.
type Store interface {
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	Save(ctx context.Context, sessionID string, cart *model.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
