package usecase

import (
	"math"
	"testing"

	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newListing(id, name, vendor string, price float64) model.Listing {
	return model.Listing{
		BaseModel:     model.BaseModel{ID: id},
		CanonicalName: name,
		VendorID:      vendor,
		VendorName:    vendor,
		Price:         price,
		Category:      "Roses",
		Color:         "Red",
		StemsPerBunch: 25,
		UnitsPerBox:   4,
		BoxType:       "QB",
	}
}

func TestAggregateFirstSeenWins(t *testing.T) {
	first := newListing("p1", "Red Roses", "vendor-1", 45)
	second := newListing("p2", "Red Roses", "vendor-2", 38)
	second.Color = "Crimson"
	second.BoxType = "HB"
	tulips := newListing("p3", "Blue Tulips", "vendor-1", 12)

	got := Aggregate([]model.Listing{first, tulips, second})

	require.Len(t, got, 2)
	assert.Equal(t, model.CatalogSummary{
		CanonicalName: "Red Roses",
		LowestPrice:   38,
		VendorCount:   2,
		Category:      "Roses",
		Color:         "Red",
		StemsPerBunch: 25,
		UnitsPerBox:   4,
		BoxType:       "QB",
	}, got[0])
	assert.Equal(t, "Blue Tulips", got[1].CanonicalName)
	assert.Equal(t, 1, got[1].VendorCount)
}

func TestAggregateCountsListingsNotVendors(t *testing.T) {
	got := Aggregate([]model.Listing{
		newListing("p1", "Tulips", "vendor-1", 10),
		newListing("p2", "Tulips", "vendor-1", 9),
	})

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].VendorCount)
	assert.Equal(t, 9.0, got[0].LowestPrice)
}

func TestAggregateSkipsMalformedPrices(t *testing.T) {
	got := Aggregate([]model.Listing{
		newListing("p1", "Tulips", "vendor-1", math.NaN()),
		newListing("p2", "Tulips", "vendor-2", 11),
		newListing("p3", "Tulips", "vendor-3", math.Inf(-1)),
		newListing("p4", "Lilies", "vendor-3", -4),
	})

	require.Len(t, got, 1)
	assert.Equal(t, 11.0, got[0].LowestPrice)
	assert.Equal(t, 1, got[0].VendorCount)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestAggregateProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		names := []string{"Red Roses", "Blue Tulips", "Lilies", "Peonies"}
		listings := rapid.SliceOf(rapid.Custom(func(t *rapid.T) model.Listing {
			return model.Listing{
				CanonicalName: rapid.SampledFrom(names).Draw(t, "name"),
				VendorID:      rapid.SampledFrom([]string{"vendor-1", "vendor-2", "vendor-3"}).Draw(t, "vendor"),
				Price:         rapid.Float64Range(0, 500).Draw(t, "price"),
				Color:         rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "color"),
			}
		})).Draw(t, "listings")

		got := Aggregate(listings)

		var order []string
		first := map[string]model.Listing{}
		count := map[string]int{}
		lowest := map[string]float64{}
		for _, l := range listings {
			if _, ok := first[l.CanonicalName]; !ok {
				first[l.CanonicalName] = l
				order = append(order, l.CanonicalName)
				lowest[l.CanonicalName] = l.Price
			}
			count[l.CanonicalName]++
			lowest[l.CanonicalName] = math.Min(lowest[l.CanonicalName], l.Price)
		}

		if len(got) != len(order) {
			t.Fatalf("got %d summaries, want %d", len(got), len(order))
		}
		for i, s := range got {
			if s.CanonicalName != order[i] {
				t.Fatalf("summary %d is %q, want %q", i, s.CanonicalName, order[i])
			}
			if s.LowestPrice != lowest[s.CanonicalName] {
				t.Fatalf("%s lowest %v, want %v", s.CanonicalName, s.LowestPrice, lowest[s.CanonicalName])
			}
			if s.VendorCount != count[s.CanonicalName] {
				t.Fatalf("%s count %d, want %d", s.CanonicalName, s.VendorCount, count[s.CanonicalName])
			}
			if s.Color != first[s.CanonicalName].Color {
				t.Fatalf("%s color %q, want first-seen %q", s.CanonicalName, s.Color, first[s.CanonicalName].Color)
			}
		}
	})
}
