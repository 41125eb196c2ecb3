package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/catalog"
	catalogdto "github.com/fekuna/florist-marketplace-service/internal/catalog/dto"
	"github.com/fekuna/florist-marketplace-service/internal/listing"
	"github.com/fekuna/florist-marketplace-service/internal/listing/dto"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/broker"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/cache"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/search"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	actionCreated = "created"
	actionUpdated = "updated"
	actionDeleted = "deleted"
)

type listingUseCase struct {
	repo      listing.Repository
	cache     *cache.RedisClient
	es        *search.Client
	publisher broker.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

// NewListingUseCase wires the listing store with its optional side channels.
// cache, es and publisher may be nil.
func NewListingUseCase(repo listing.Repository, cache *cache.RedisClient, es *search.Client, publisher broker.Publisher, log logger.ZapLogger) listing.UseCase {
	return &listingUseCase{
		repo:      repo,
		cache:     cache,
		es:        es,
		publisher: publisher,
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func validPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func (uc *listingUseCase) CreateListing(ctx context.Context, input *dto.CreateListingInput) (*model.Listing, error) {
	name := strings.TrimSpace(input.CanonicalName)
	if input.VendorID == "" {
		return nil, errors.Wrap(model.ErrInvalidInput, "vendor id is required")
	}
	if name == "" || input.Price == nil {
		return nil, errors.Wrap(model.ErrInvalidInput, "canonicalName and price are required")
	}
	if !validPrice(*input.Price) {
		return nil, errors.Wrap(model.ErrInvalidInput, "price must be a finite non-negative number")
	}
	if input.StemsPerBunch < 0 || input.UnitsPerBox < 0 {
		return nil, errors.Wrap(model.ErrInvalidInput, "stem and unit counts must be positive")
	}

	stems := input.StemsPerBunch
	if stems == 0 {
		stems = model.DefaultStemsPerBunch
	}
	units := input.UnitsPerBox
	if units == 0 {
		units = model.DefaultUnitsPerBox
	}

	now := uc.now()
	l := &model.Listing{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CanonicalName: name,
		VendorID:      input.VendorID,
		VendorName:    input.VendorName,
		Price:         *input.Price,
		Category:      orDefault(input.Category, model.DefaultCategory),
		Color:         orDefault(input.Color, model.DefaultColor),
		StemsPerBunch: stems,
		UnitsPerBox:   units,
		BoxType:       orDefault(input.BoxType, model.DefaultBoxType),
	}

	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	uc.afterWrite(ctx, l, actionCreated)
	return l, nil
}

func (uc *listingUseCase) ListVendorListings(ctx context.Context, vendorID string) ([]model.Listing, error) {
	if vendorID == "" {
		return nil, errors.Wrap(model.ErrInvalidInput, "vendor id is required")
	}
	return uc.repo.FindByVendor(ctx, vendorID)
}

func validateFields(f *dto.ListingFields) error {
	if f.Empty() {
		return errors.Wrap(model.ErrInvalidInput, "no fields to update")
	}
	if f.CanonicalName != nil && strings.TrimSpace(*f.CanonicalName) == "" {
		return errors.Wrap(model.ErrInvalidInput, "canonicalName cannot be blank")
	}
	if f.Price != nil && !validPrice(*f.Price) {
		return errors.Wrap(model.ErrInvalidInput, "price must be a finite non-negative number")
	}
	if (f.StemsPerBunch != nil && *f.StemsPerBunch <= 0) || (f.UnitsPerBox != nil && *f.UnitsPerBox <= 0) {
		return errors.Wrap(model.ErrInvalidInput, "stem and unit counts must be positive")
	}
	return nil
}

// owned loads a listing and checks it belongs to vendorID.
func (uc *listingUseCase) owned(ctx context.Context, vendorID, id string) (*model.Listing, error) {
	l, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errors.Wrap(model.ErrNotFound, "product not found")
	}
	if l.VendorID != vendorID {
		return nil, errors.Wrap(model.ErrForbidden, "not your product")
	}
	return l, nil
}

func (uc *listingUseCase) UpdateListing(ctx context.Context, input *dto.UpdateListingInput) (*model.Listing, error) {
	if err := validateFields(&input.Fields); err != nil {
		return nil, err
	}
	if _, err := uc.owned(ctx, input.VendorID, input.ID); err != nil {
		return nil, err
	}

	fields := input.Fields
	if fields.CanonicalName != nil {
		name := strings.TrimSpace(*fields.CanonicalName)
		fields.CanonicalName = &name
	}

	updated, err := uc.repo.Update(ctx, input.ID, &fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.Wrap(model.ErrNotFound, "product not found")
	}

	uc.afterWrite(ctx, updated, actionUpdated)
	return updated, nil
}

func (uc *listingUseCase) DeleteListing(ctx context.Context, vendorID, id string) error {
	l, err := uc.owned(ctx, vendorID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.afterWrite(ctx, l, actionDeleted)
	return nil
}

func (uc *listingUseCase) afterWrite(ctx context.Context, l *model.Listing, action string) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, catalog.CacheKeyVersion, catalog.CacheKeys()...); err != nil {
			uc.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
		}
	}

	snapshot := *l
	go uc.syncToElastic(context.Background(), &snapshot, action)
	go uc.publishChange(context.Background(), &snapshot, action)
}

func (uc *listingUseCase) syncToElastic(ctx context.Context, l *model.Listing, action string) {
	if uc.es == nil {
		return
	}

	if action == actionDeleted {
		if err := uc.es.Delete(ctx, catalog.SearchIndex, l.ID); err != nil {
			uc.logger.Error("failed to remove listing from index", zap.String("listing_id", l.ID), zap.Error(err))
		}
		return
	}

	_ = uc.es.CreateIndex(ctx, catalog.SearchIndex, catalog.SearchIndexMapping)
	if err := uc.es.Index(ctx, catalog.SearchIndex, l.ID, catalogdto.NewListingDocument(l)); err != nil {
		uc.logger.Error("failed to index listing", zap.String("listing_id", l.ID), zap.Error(err))
	}
}

func (uc *listingUseCase) publishChange(ctx context.Context, l *model.Listing, action string) {
	if uc.publisher == nil {
		return
	}

	event, err := broker.NewEvent(model.EventListingChanged, model.ListingChangedPayload{
		ListingID:     l.ID,
		VendorID:      l.VendorID,
		CanonicalName: l.CanonicalName,
		Action:        action,
	})
	if err != nil {
		uc.logger.Error("failed to build listing event", zap.Error(err))
		return
	}
	if err := uc.publisher.Publish(ctx, l.CanonicalName, event); err != nil {
		uc.logger.Error("failed to publish listing event", zap.String("listing_id", l.ID), zap.Error(err))
	}
}
