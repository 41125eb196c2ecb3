package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/catalog"
	"github.com/fekuna/florist-marketplace-service/internal/catalog/dto"
	"github.com/fekuna/florist-marketplace-service/internal/listing"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/fekuna/florist-marketplace-service/internal/order"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/cache"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/search"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("florist/catalog")

// searchBucketSize caps the distinct canonical names a search can return.
const searchBucketSize = 500

type catalogUseCase struct {
	listings listing.Repository
	orders   order.Repository
	cache    *cache.RedisClient
	es       *search.Client
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

// NewCatalogUseCase builds the read side of the marketplace. cache and es may be nil.
func NewCatalogUseCase(listings listing.Repository, orders order.Repository, cache *cache.RedisClient, es *search.Client, cacheTTL time.Duration, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		listings: listings,
		orders:   orders,
		cache:    cache,
		es:       es,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *catalogUseCase) ListCatalog(ctx context.Context) ([]model.CatalogSummary, error) {
	ctx, span := tracer.Start(ctx, "catalog.ListCatalog")
	defer span.End()

	var cached []model.CatalogSummary
	if uc.fromCache(ctx, catalog.CacheKeyList, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	version, cacheable := uc.cacheVersion(ctx)
	summaries, err := uc.aggregateAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if cacheable {
		uc.toCache(ctx, catalog.CacheKeyList, version, summaries)
	}
	return summaries, nil
}

func (uc *catalogUseCase) aggregateAll(ctx context.Context) ([]model.CatalogSummary, error) {
	listings, err := uc.listings.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return Aggregate(listings), nil
}

func (uc *catalogUseCase) GetProductDetail(ctx context.Context, canonicalName string) (*model.ProductDetail, error) {
	ctx, span := tracer.Start(ctx, "catalog.GetProductDetail",
		trace.WithAttributes(attribute.String("canonical_name", canonicalName)))
	defer span.End()

	listings, err := uc.listings.FindByCanonicalName(ctx, canonicalName)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(listings) == 0 {
		return nil, errors.Wrap(model.ErrNotFound, "product not found")
	}

	offers := ProjectOffers(listings)
	return &model.ProductDetail{
		CanonicalName: canonicalName,
		Category:      offers[0].Category,
		Color:         offers[0].Color,
		Offers:        offers,
	}, nil
}

func (uc *catalogUseCase) ListTrending(ctx context.Context) ([]model.TrendingProduct, error) {
	ctx, span := tracer.Start(ctx, "catalog.ListTrending")
	defer span.End()

	var cached []model.TrendingProduct
	if uc.fromCache(ctx, catalog.CacheKeyTrending, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}

	version, cacheable := uc.cacheVersion(ctx)
	summaries, err := uc.aggregateAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	orders, err := uc.orders.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	trending := RankTrending(summaries, orders, TrendingLimit)
	if cacheable {
		uc.toCache(ctx, catalog.CacheKeyTrending, version, trending)
	}
	return trending, nil
}

// SearchCatalog narrows the catalog to names matching the filters. The search
// index resolves matching names when available; otherwise the catalog is
// filtered in process. Results keep catalog order either way.
func (uc *catalogUseCase) SearchCatalog(ctx context.Context, filters *dto.SearchFilters) ([]model.CatalogSummary, error) {
	ctx, span := tracer.Start(ctx, "catalog.SearchCatalog")
	defer span.End()

	summaries, err := uc.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if filters.Empty() {
		return summaries, nil
	}

	if uc.es != nil {
		names, err := uc.searchNames(ctx, filters)
		if err == nil {
			out := make([]model.CatalogSummary, 0, len(names))
			for _, s := range summaries {
				if _, ok := names[s.CanonicalName]; ok {
					out = append(out, s)
				}
			}
			return out, nil
		}
		uc.logger.Warn("search index unavailable, filtering catalog in process", zap.Error(err))
	}

	return FilterCatalog(summaries, filters), nil
}

func (uc *catalogUseCase) searchNames(ctx context.Context, f *dto.SearchFilters) (map[string]struct{}, error) {
	var must []interface{}
	if f.Query != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     f.Query,
				"fields":    []string{"canonical_name^2", "vendor_name"},
				"fuzziness": "AUTO",
			},
		})
	}
	var filter []interface{}
	if f.Category != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"category": f.Category}})
	}
	if f.Color != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"color": f.Color}})
	}

	boolQuery := map[string]interface{}{}
	if len(must) > 0 {
		boolQuery["must"] = must
	}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}

	query := map[string]interface{}{
		"size":  0,
		"query": map[string]interface{}{"bool": boolQuery},
		"aggs": map[string]interface{}{
			"names": map[string]interface{}{
				"terms": map[string]interface{}{"field": "canonical_name.raw", "size": searchBucketSize},
			},
		},
	}

	res, err := uc.es.Search(ctx, catalog.SearchIndex, query)
	if err != nil {
		return nil, err
	}

	var agg search.TermsAggregation
	if raw, ok := res.Aggregations["names"]; ok {
		if err := json.Unmarshal(raw, &agg); err != nil {
			return nil, err
		}
	}

	names := make(map[string]struct{}, len(agg.Buckets))
	for _, b := range agg.Buckets {
		names[b.Key] = struct{}{}
	}
	return names, nil
}

// FilterCatalog applies search filters without the index: a case-insensitive
// substring match on the name plus exact category and color.
func FilterCatalog(summaries []model.CatalogSummary, f *dto.SearchFilters) []model.CatalogSummary {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]model.CatalogSummary, 0, len(summaries))
	for _, s := range summaries {
		if q != "" && !strings.Contains(strings.ToLower(s.CanonicalName), q) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(s.Category, f.Category) {
			continue
		}
		if f.Color != "" && !strings.EqualFold(s.Color, f.Color) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (uc *catalogUseCase) InvalidateCache(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Invalidate(ctx, catalog.CacheKeyVersion, catalog.CacheKeys()...)
}

func (uc *catalogUseCase) fromCache(ctx context.Context, key string, dst interface{}) bool {
	if uc.cache == nil {
		return false
	}
	hit, err := uc.cache.GetJSON(ctx, key, dst)
	if err != nil {
		uc.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

// cacheVersion must be read before the store so a write landing mid-read
// leaves the version behind and the result is not cached.
func (uc *catalogUseCase) cacheVersion(ctx context.Context) (int64, bool) {
	if uc.cache == nil || uc.cacheTTL <= 0 {
		return 0, false
	}
	v, err := uc.cache.Version(ctx, catalog.CacheKeyVersion)
	if err != nil {
		uc.logger.Warn("catalog cache version read failed", zap.Error(err))
		return 0, false
	}
	return v, true
}

func (uc *catalogUseCase) toCache(ctx context.Context, key string, version int64, value interface{}) {
	stored, err := uc.cache.SetJSONAtVersion(ctx, catalog.CacheKeyVersion, version, key, value, uc.cacheTTL)
	if err != nil {
		uc.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	if !stored {
		uc.logger.Debug("catalog cache write skipped after invalidation", zap.String("key", key))
	}
}
