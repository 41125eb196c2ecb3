package catalog

import (
	"context"

	"github.com/fekuna/florist-marketplace-service/internal/catalog/dto"
	"github.com/fekuna/florist-marketplace-service/internal/model"
)

const (
	CacheKeyList     = "catalog:list"
	CacheKeyTrending = "catalog:trending"
	// CacheKeyVersion is bumped on every invalidation; cached views are only
	// written back under the version they were computed at.
	CacheKeyVersion = "catalog:version"

	// SearchIndex holds one document per listing.
	SearchIndex = "listings"
	// SearchIndexMapping is applied when the index is first created.
	SearchIndexMapping = `{
		"mappings": {
			"properties": {
				"canonical_name": { "type": "text", "fields": { "raw": { "type": "keyword" } } },
				"vendor_id": { "type": "keyword" },
				"vendor_name": { "type": "text" },
				"category": { "type": "keyword" },
				"color": { "type": "keyword" },
				"price": { "type": "double" },
				"updated_at": { "type": "date" }
			}
		}
	}`
)

// CacheKeys lists every derived view a listing or order write makes stale.
func CacheKeys() []string {
	return []string{CacheKeyList, CacheKeyTrending}
}

type UseCase interface {
	ListCatalog(ctx context.Context) ([]model.CatalogSummary, error)
	GetProductDetail(ctx context.Context, canonicalName string) (*model.ProductDetail, error)
	ListTrending(ctx context.Context) ([]model.TrendingProduct, error)
	SearchCatalog(ctx context.Context, filters *dto.SearchFilters) ([]model.CatalogSummary, error)
	InvalidateCache(ctx context.Context) error
}
