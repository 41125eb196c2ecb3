package usecase

import (
	"sort"

	"github.com/fekuna/florist-marketplace-service/internal/model"
)

const TrendingLimit = 6

// RankTrending picks the best-selling catalog entries. Sales are summed per
// canonical name over all order items; names that no longer have a listing are
// dropped. With no sales at all it falls back to the most widely listed
// products, cheapest first on ties, reporting TotalSold as zero.
func RankTrending(catalog []model.CatalogSummary, orders []model.Order, limit int) []model.TrendingProduct {
	type tally struct {
		name string
		sold int
	}

	seen := make(map[string]int)
	var sales []tally
	for _, o := range orders {
		for _, item := range o.Items {
			if item.CanonicalName == "" || item.Quantity <= 0 {
				continue
			}
			if at, ok := seen[item.CanonicalName]; ok {
				sales[at].sold += item.Quantity
				continue
			}
			seen[item.CanonicalName] = len(sales)
			sales = append(sales, tally{name: item.CanonicalName, sold: item.Quantity})
		}
	}

	out := make([]model.TrendingProduct, 0, limit)

	if len(sales) > 0 {
		byName := make(map[string]int, len(catalog))
		for i, s := range catalog {
			byName[s.CanonicalName] = i
		}

		sort.SliceStable(sales, func(i, j int) bool { return sales[i].sold > sales[j].sold })
		for _, t := range sales {
			if len(out) == limit {
				break
			}
			at, ok := byName[t.name]
			if !ok {
				continue
			}
			out = append(out, model.TrendingProduct{CatalogSummary: catalog[at], TotalSold: t.sold})
		}
		return out
	}

	ranked := make([]model.CatalogSummary, len(catalog))
	copy(ranked, catalog)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].VendorCount != ranked[j].VendorCount {
			return ranked[i].VendorCount > ranked[j].VendorCount
		}
		return ranked[i].LowestPrice < ranked[j].LowestPrice
	})
	for _, s := range ranked {
		if len(out) == limit {
			break
		}
		out = append(out, model.TrendingProduct{CatalogSummary: s})
	}
	return out
}
