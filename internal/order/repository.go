package order

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/model"
)

type Repository interface {
	// Create stores the order and its items atomically.
	Create(ctx context.Context, o *model.Order) error
	// FindByBuyer returns a buyer's orders, newest first.
	FindByBuyer(ctx context.Context, buyerID string) ([]model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
}
