package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/florist-marketplace-service/internal/catalog/dto"
	listingrepo "github.com/fekuna/florist-marketplace-service/internal/listing/repository"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	orderrepo "github.com/fekuna/florist-marketplace-service/internal/order/repository"
	"github.com/fekuna/florist-marketplace-service/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededUseCase(orders ...model.Order) *catalogUseCase {
	roses1 := newListing("p1", "Red Roses", "vendor-1", 45)
	roses2 := newListing("p2", "Red Roses", "vendor-2", 38)
	roses3 := newListing("p3", "Red Roses", "vendor-3", 39.5)
	tulips := newListing("p4", "Blue Tulips", "vendor-1", 12)
	tulips.Category = "Tulips"
	tulips.Color = "Blue"

	listings := listingrepo.NewMemoryRepository(roses1, roses2, roses3, tulips)
	return NewCatalogUseCase(listings, orderrepo.NewMemoryRepository(orders...), nil, nil, 0, logger.NewNop()).(*catalogUseCase)
}

func TestListCatalog(t *testing.T) {
	uc := seededUseCase()

	got, err := uc.ListCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Red Roses", got[0].CanonicalName)
	assert.Equal(t, 38.0, got[0].LowestPrice)
	assert.Equal(t, 3, got[0].VendorCount)
}

func TestGetProductDetail(t *testing.T) {
	uc := seededUseCase()

	detail, err := uc.GetProductDetail(context.Background(), "Red Roses")
	require.NoError(t, err)
	assert.Equal(t, "Roses", detail.Category)
	require.Len(t, detail.Offers, 3)
	assert.Equal(t, "p2", detail.Offers[0].ListingID)
	assert.Equal(t, 38.0, detail.Offers[0].Price)
	assert.Equal(t, "p1", detail.Offers[2].ListingID)

	_, err = uc.GetProductDetail(context.Background(), "Orchids")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestListTrending(t *testing.T) {
	t.Run("fallback", func(t *testing.T) {
		got, err := seededUseCase().ListTrending(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Red Roses", got[0].CanonicalName)
		assert.Zero(t, got[0].TotalSold)
	})

	t.Run("sales", func(t *testing.T) {
		uc := seededUseCase(model.Order{ID: "o1", Items: []model.OrderItem{{CanonicalName: "Blue Tulips", Quantity: 4}}})
		got, err := uc.ListTrending(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Blue Tulips", got[0].CanonicalName)
		assert.Equal(t, 4, got[0].TotalSold)
	})
}

func TestSearchCatalogWithoutIndex(t *testing.T) {
	uc := seededUseCase()
	ctx := context.Background()

	got, err := uc.SearchCatalog(ctx, &dto.SearchFilters{Query: "tulip"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Blue Tulips", got[0].CanonicalName)

	got, err = uc.SearchCatalog(ctx, &dto.SearchFilters{Color: "red"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Red Roses", got[0].CanonicalName)

	got, err = uc.SearchCatalog(ctx, &dto.SearchFilters{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, uc.InvalidateCache(ctx))
}
