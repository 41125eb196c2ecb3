package listing

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/listing/dto"
	"github.com/fekuna/florist-marketplace-service/internal/model"
)

// Repository is the listing store. Lookups that find nothing return an empty
// result and a nil error; FindByID and Update return nil for a missing id.
type Repository interface {
	Create(ctx context.Context, l *model.Listing) error
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	// FindByCanonicalName returns every vendor's listings for a product, cheapest first.
	FindByCanonicalName(ctx context.Context, canonicalName string) ([]model.Listing, error)
	// FindByVendor returns a vendor's listings ordered by canonical name.
	FindByVendor(ctx context.Context, vendorID string) ([]model.Listing, error)
	FindByVendorAndCanonicalName(ctx context.Context, vendorID, canonicalName string) ([]model.Listing, error)
	// FindAll returns every listing in insertion order.
	FindAll(ctx context.Context) ([]model.Listing, error)
	Update(ctx context.Context, id string, fields *dto.ListingFields) (*model.Listing, error)
	Delete(ctx context.Context, id string) error
}
