package usecase

import (
	"math"
	"testing"

	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestEvaluateAlertsSkips(t *testing.T) {
	own := []model.Listing{
		newListing("a1", "Solo", "A", 99),
		newListing("a2", "Tied", "A", 10),
		newListing("a3", "Broken", "A", math.NaN()),
		newListing("a4", "Free", "A", 5),
	}
	competitors := map[string][]model.Listing{
		"Solo":   {own[0]},
		"Tied":   {own[1], newListing("b2", "Tied", "B", 10)},
		"Broken": {newListing("b3", "Broken", "B", 4)},
		"Free":   {newListing("b4", "Free", "B", 0), newListing("c4", "Free", "C", math.Inf(1))},
	}

	alerts := EvaluateAlerts("A", own, competitors)

	assert.Len(t, alerts, 1)
	assert.Equal(t, "Free", alerts[0].CanonicalName)
	assert.Equal(t, 0.0, alerts[0].PercentAbove)
	assert.Equal(t, 5.0, alerts[0].Difference)
	assert.Equal(t, 0.0, alerts[0].MarketAverage)
}

func TestEvaluateAlertsOrdering(t *testing.T) {
	own := []model.Listing{
		newListing("a1", "Roses", "A", 11),
		newListing("a2", "Tulips", "A", 20),
		newListing("a3", "Lilies", "A", 22),
	}
	competitors := map[string][]model.Listing{
		"Roses":  {newListing("b1", "Roses", "B", 10)},
		"Tulips": {newListing("b2", "Tulips", "B", 10)},
		"Lilies": {newListing("b3", "Lilies", "B", 11)},
	}

	alerts := EvaluateAlerts("A", own, competitors)

	var names []string
	for _, a := range alerts {
		names = append(names, a.CanonicalName)
	}
	// Tulips and Lilies are both 100% above; Tulips was listed first.
	assert.Equal(t, []string{"Tulips", "Lilies", "Roses"}, names)
}

func TestMarkRead(t *testing.T) {
	alerts := []model.AlertSnapshot{
		{CanonicalName: "Roses", YourPrice: 45},
		{CanonicalName: "Tulips", YourPrice: 20},
		{CanonicalName: "Lilies", YourPrice: 12},
	}
	acks := []model.Acknowledgement{
		{CanonicalName: "Roses", ReadAtPrice: 45},
		{CanonicalName: "Tulips", ReadAtPrice: 21},
		{CanonicalName: "Stale", ReadAtPrice: 1},
	}

	got := MarkRead(alerts, acks)

	assert.True(t, got[0].IsRead)
	assert.False(t, got[1].IsRead)
	assert.False(t, got[2].IsRead)
}

func TestEvaluateAlertsSoundAndComplete(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		vendors := []string{"A", "B", "C"}
		names := []string{"Roses", "Tulips", "Lilies"}
		all := rapid.SliceOf(rapid.Custom(func(t *rapid.T) model.Listing {
			return model.Listing{
				CanonicalName: rapid.SampledFrom(names).Draw(t, "name"),
				VendorID:      rapid.SampledFrom(vendors).Draw(t, "vendor"),
				Price:         float64(rapid.IntRange(0, 60).Draw(t, "price")),
			}
		})).Draw(t, "listings")

		byName := map[string][]model.Listing{}
		var own []model.Listing
		for _, l := range all {
			byName[l.CanonicalName] = append(byName[l.CanonicalName], l)
			if l.VendorID == "A" {
				own = append(own, l)
			}
		}

		alerts := EvaluateAlerts("A", own, byName)

		expected := 0
		for _, l := range own {
			lowest := math.Inf(1)
			for _, c := range byName[l.CanonicalName] {
				if c.VendorID != "A" {
					lowest = math.Min(lowest, c.Price)
				}
			}
			if !math.IsInf(lowest, 1) && l.Price > lowest {
				expected++
			}
		}
		if len(alerts) != expected {
			t.Fatalf("got %d alerts, want %d", len(alerts), expected)
		}

		for i, a := range alerts {
			lowest := math.Inf(1)
			for _, c := range byName[a.CanonicalName] {
				if c.VendorID != "A" {
					lowest = math.Min(lowest, c.Price)
				}
			}
			if a.LowestMarketPrice != lowest {
				t.Fatalf("%s lowest %v, want %v", a.CanonicalName, a.LowestMarketPrice, lowest)
			}
			if a.YourPrice <= a.LowestMarketPrice {
				t.Fatalf("%s alert without undercut: %v <= %v", a.CanonicalName, a.YourPrice, a.LowestMarketPrice)
			}
			if a.Difference != a.YourPrice-a.LowestMarketPrice {
				t.Fatalf("%s difference %v", a.CanonicalName, a.Difference)
			}
			if i > 0 && alerts[i-1].PercentAbove < a.PercentAbove {
				t.Fatalf("alerts not sorted by percent above")
			}
		}
	})
}
