package alert

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/model"
)

// Repository stores acknowledgement records keyed by (vendor, canonical name).
type Repository interface {
	FindByVendor(ctx context.Context, vendorID string) ([]model.Acknowledgement, error)
	// Upsert replaces any existing record for the same key.
	Upsert(ctx context.Context, ack *model.Acknowledgement) error
}
