package repository

import (
	"context"
	"testing"

	"github.com/fekuna/florist-marketplace-service/internal/listing/dto"
	"github.com/fekuna/florist-marketplace-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(id, name, vendor string, price float64) model.Listing {
	return model.Listing{
		BaseModel:     model.BaseModel{ID: id},
		CanonicalName: name,
		VendorID:      vendor,
		Price:         price,
	}
}

func ids(ls []model.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func TestMemoryRepositoryIndexes(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(
		listing("p1", "Red Roses", "vendor-1", 45),
		listing("p2", "Tulips", "vendor-1", 12),
		listing("p3", "Red Roses", "vendor-2", 38),
		listing("p4", "Carnations", "vendor-1", 9),
		listing("p5", "Red Roses", "vendor-3", 38),
	)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5"}, ids(all))

	byName, err := repo.FindByCanonicalName(ctx, "Red Roses")
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p5", "p1"}, ids(byName))

	byVendor, err := repo.FindByVendor(ctx, "vendor-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p1", "p2"}, ids(byVendor))

	both, err := repo.FindByVendorAndCanonicalName(ctx, "vendor-1", "Tulips")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids(both))

	none, err := repo.FindByCanonicalName(ctx, "Orchids")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryRepositoryUpdateDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(listing("p1", "Red Roses", "vendor-1", 45))

	price := 43.0
	color := "Crimson"
	updated, err := repo.Update(ctx, "p1", &dto.ListingFields{Price: &price, Color: &color})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 43.0, updated.Price)
	assert.Equal(t, "Crimson", updated.Color)
	assert.Equal(t, "Red Roses", updated.CanonicalName)

	missing, err := repo.Update(ctx, "nope", &dto.ListingFields{Price: &price})
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Delete(ctx, "p1"))
	got, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(listing("p1", "Red Roses", "vendor-1", 45))

	got, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	got.Price = 1

	again, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 45.0, again.Price)
}
