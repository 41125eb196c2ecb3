package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/catalog"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/fekuna/florist-marketplace-service/internal/order"
	"github.com/fekuna/florist-marketplace-service/internal/order/dto"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/broker"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/cache"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type orderUseCase struct {
	repo      order.Repository
	cache     *cache.RedisClient
	publisher broker.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewOrderUseCase(repo order.Repository, cache *cache.RedisClient, publisher broker.Publisher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func validateItem(i int, item *dto.OrderItemInput) error {
	switch {
	case strings.TrimSpace(item.ListingID) == "" || strings.TrimSpace(item.VendorID) == "":
		return errors.Wrapf(model.ErrInvalidInput, "item %d: productId and vendorId are required", i)
	case strings.TrimSpace(item.CanonicalName) == "" || strings.TrimSpace(item.VendorName) == "":
		return errors.Wrapf(model.ErrInvalidInput, "item %d: canonicalName and vendorName are required", i)
	case math.IsNaN(item.Price) || math.IsInf(item.Price, 0) || item.Price < 0:
		return errors.Wrapf(model.ErrInvalidInput, "item %d: price must be a finite non-negative number", i)
	case item.Quantity <= 0 || item.Quantity != math.Trunc(item.Quantity) || item.Quantity > math.MaxInt32:
		return errors.Wrapf(model.ErrInvalidInput, "item %d: quantity must be a positive integer", i)
	}
	return nil
}

func (uc *orderUseCase) PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput) (*model.Order, error) {
	if input.BuyerID == "" {
		return nil, errors.Wrap(model.ErrInvalidInput, "buyer id is required")
	}
	if len(input.Items) == 0 {
		return nil, errors.Wrap(model.ErrInvalidInput, "order must contain at least one item")
	}

	items := make([]model.OrderItem, len(input.Items))
	total := 0.0
	for i := range input.Items {
		in := &input.Items[i]
		if err := validateItem(i, in); err != nil {
			return nil, err
		}
		qty := int(in.Quantity)
		items[i] = model.OrderItem{
			Position:      i,
			ListingID:     in.ListingID,
			VendorID:      in.VendorID,
			VendorName:    in.VendorName,
			CanonicalName: in.CanonicalName,
			Price:         in.Price,
			Quantity:      qty,
		}
		total += in.Price * float64(qty)
	}

	o := &model.Order{
		ID:        uuid.New().String(),
		BuyerID:   input.BuyerID,
		BuyerName: input.BuyerName,
		Status:    model.OrderStatusPlaced,
		Total:     total,
		CreatedAt: uc.now(),
		Items:     items,
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	// Trending depends on sales.
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, catalog.CacheKeyVersion, catalog.CacheKeyTrending); err != nil {
			uc.logger.Warn("failed to invalidate trending cache", zap.Error(err))
		}
	}

	go uc.publishPlaced(context.Background(), o)

	uc.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("buyer_id", o.BuyerID),
		zap.Float64("total", o.Total),
	)
	return o, nil
}

func (uc *orderUseCase) ListBuyerOrders(ctx context.Context, buyerID string) ([]model.Order, error) {
	if buyerID == "" {
		return nil, errors.Wrap(model.ErrInvalidInput, "buyer id is required")
	}
	return uc.repo.FindByBuyer(ctx, buyerID)
}

func (uc *orderUseCase) publishPlaced(ctx context.Context, o *model.Order) {
	if uc.publisher == nil {
		return
	}

	event, err := broker.NewEvent(model.EventOrderPlaced, model.OrderPlacedPayload{
		OrderID: o.ID,
		BuyerID: o.BuyerID,
		Items:   o.Items,
	})
	if err != nil {
		uc.logger.Error("failed to build order event", zap.Error(err))
		return
	}
	if err := uc.publisher.Publish(ctx, o.ID, event); err != nil {
		uc.logger.Error("failed to publish order event", zap.String("order_id", o.ID), zap.Error(err))
	}
}
