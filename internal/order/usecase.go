package order

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/fekuna/florist-marketplace-service/internal/order/dto"
)

type UseCase interface {
	PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput) (*model.Order, error)
	ListBuyerOrders(ctx context.Context, buyerID string) ([]model.Order, error)
}
