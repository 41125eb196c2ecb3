package seed

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/florist-marketplace-service/internal/listing/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSeedsOnce(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	n, err := Run(ctx, repo, now)
	require.NoError(t, err)
	assert.Equal(t, 54, n)

	n, err = Run(ctx, repo, now)
	require.NoError(t, err)
	assert.Zero(t, n)

	roses, err := repo.FindByCanonicalName(ctx, "Red Roses - 1 Dozen")
	require.NoError(t, err)
	require.Len(t, roses, 4)
	assert.Equal(t, "vendor-2", roses[0].VendorID)
	assert.Equal(t, 38.0, roses[0].Price)
}

func TestUsers(t *testing.T) {
	users := Users()
	require.Len(t, users, 7)
	assert.Equal(t, "Jane Buyer", users[6].Name)
}
