package usecase

import (
	"math"

	"github.com/fekuna/florist-marketplace-service/internal/model"
)

// Aggregate folds listings into one summary per canonical name, in order of
// first appearance. Descriptive fields come from the first listing seen for a
// name; later listings only move LowestPrice and VendorCount. VendorCount
// counts listings, so a vendor with two listings under one name counts twice.
// Listings with a negative or non-finite price are skipped.
func Aggregate(listings []model.Listing) []model.CatalogSummary {
	index := make(map[string]int, len(listings))
	out := make([]model.CatalogSummary, 0, len(listings))

	for i := range listings {
		l := &listings[i]
		if math.IsNaN(l.Price) || math.IsInf(l.Price, 0) || l.Price < 0 {
			continue
		}

		if at, ok := index[l.CanonicalName]; ok {
			s := &out[at]
			s.VendorCount++
			if l.Price < s.LowestPrice {
				s.LowestPrice = l.Price
			}
			continue
		}

		index[l.CanonicalName] = len(out)
		out = append(out, model.CatalogSummary{
			CanonicalName: l.CanonicalName,
			LowestPrice:   l.Price,
			VendorCount:   1,
			Category:      l.Category,
			Color:         l.Color,
			StemsPerBunch: l.StemsPerBunch,
			UnitsPerBox:   l.UnitsPerBox,
			BoxType:       l.BoxType,
		})
	}

	return out
}

// ProjectOffers maps the listings of one canonical name to buyer-facing offers,
// keeping the store order.
func ProjectOffers(listings []model.Listing) []model.Offer {
	offers := make([]model.Offer, 0, len(listings))
	for _, l := range listings {
		offers = append(offers, model.Offer{
			ListingID:     l.ID,
			VendorID:      l.VendorID,
			VendorName:    l.VendorName,
			Price:         l.Price,
			StemsPerBunch: l.StemsPerBunch,
			UnitsPerBox:   l.UnitsPerBox,
			BoxType:       l.BoxType,
			Category:      l.Category,
			Color:         l.Color,
		})
	}
	return offers
}
