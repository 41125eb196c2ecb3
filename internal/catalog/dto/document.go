package dto

import (
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/model"
)

// ListingDocument is the search index shape of a listing.
type ListingDocument struct {
	CanonicalName string    `json:"canonical_name"`
	VendorID      string    `json:"vendor_id"`
	VendorName    string    `json:"vendor_name"`
	Category      string    `json:"category"`
	Color         string    `json:"color"`
	Price         float64   `json:"price"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewListingDocument(l *model.Listing) ListingDocument {
	return ListingDocument{
		CanonicalName: l.CanonicalName,
		VendorID:      l.VendorID,
		VendorName:    l.VendorName,
		Category:      l.Category,
		Color:         l.Color,
		Price:         l.Price,
		UpdatedAt:     l.UpdatedAt,
	}
}
