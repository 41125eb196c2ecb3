package usecase

import (
	"math"
	"sort"

	"github.com/fekuna/florist-marketplace-service/internal/model"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// EvaluateAlerts compares each of the vendor's listings with the other vendors'
// listings for the same canonical name. A listing yields an alert only when it
// has at least one priced competitor and is strictly more expensive than the
// cheapest of them. Alerts are ordered by PercentAbove, highest first; ties
// keep the order of own.
func EvaluateAlerts(vendorID string, own []model.Listing, competitorsByName map[string][]model.Listing) []model.AlertSnapshot {
	alerts := []model.AlertSnapshot{}

	for _, l := range own {
		var prices []float64
		for _, c := range competitorsByName[l.CanonicalName] {
			if c.VendorID == vendorID || !finite(c.Price) {
				continue
			}
			prices = append(prices, c.Price)
		}
		if len(prices) == 0 || !finite(l.Price) {
			continue
		}

		lowest, sum := prices[0], 0.0
		for _, p := range prices {
			lowest = math.Min(lowest, p)
			sum += p
		}
		if l.Price <= lowest {
			continue
		}

		diff := l.Price - lowest
		percent := 0.0
		if lowest > 0 {
			percent = diff / lowest * 100
		}

		alerts = append(alerts, model.AlertSnapshot{
			CanonicalName:     l.CanonicalName,
			YourPrice:         l.Price,
			MarketAverage:     sum / float64(len(prices)),
			LowestMarketPrice: lowest,
			PercentAbove:      percent,
			Difference:        diff,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].PercentAbove > alerts[j].PercentAbove })
	return alerts
}

// MarkRead joins alerts with acknowledgement records. An alert is read only
// while the acknowledged price equals the current price exactly.
func MarkRead(alerts []model.AlertSnapshot, acks []model.Acknowledgement) []model.VendorAlert {
	readAt := make(map[string]float64, len(acks))
	for _, a := range acks {
		if a.CanonicalName == "" || !finite(a.ReadAtPrice) {
			continue
		}
		readAt[a.CanonicalName] = a.ReadAtPrice
	}

	out := make([]model.VendorAlert, len(alerts))
	for i, a := range alerts {
		price, ok := readAt[a.CanonicalName]
		out[i] = model.VendorAlert{AlertSnapshot: a, IsRead: ok && price == a.YourPrice}
	}
	return out
}
