package listing

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/listing/dto"
	"github.com/fekuna/florist-marketplace-service/internal/model"
)

type UseCase interface {
	CreateListing(ctx context.Context, input *dto.CreateListingInput) (*model.Listing, error)
	ListVendorListings(ctx context.Context, vendorID string) ([]model.Listing, error)
	UpdateListing(ctx context.Context, input *dto.UpdateListingInput) (*model.Listing, error)
	DeleteListing(ctx context.Context, vendorID, id string) error
}
