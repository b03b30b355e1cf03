package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"returnit_backend/internal/models"
)

func TestItemsWithin_FiltersByRadius(t *testing.T) {
	campus := item("umbrella at the library", 10.0, 76.0)
	nextTown := item("umbrella at the station", 10.15, 76.0) // ~17 km away
	farCity := item("umbrella downtown", 11.0, 77.0)         // ~150 km away

	repo := &fakeItemRepo{
		lost:  []models.Item{campus, farCity},
		found: []models.Item{nextTown},
	}
	svc := NewNearbyService(repo)

	result, err := svc.ItemsWithin(context.Background(), 10.0, 76.0, DefaultNearbyRadiusKm)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, campus.ID, result[0].ID)
	assert.Equal(t, models.ItemKindLost, result[0].Kind)
	assert.InDelta(t, 0.0, result[0].DistanceKm, 0.001)

	assert.Equal(t, nextTown.ID, result[1].ID)
	assert.Equal(t, models.ItemKindFound, result[1].Kind)
	assert.InDelta(t, 16.7, result[1].DistanceKm, 0.5)
}

func TestItemsWithin_ZeroRadiusFallsBackToDefault(t *testing.T) {
	near := item("keys on a red lanyard", 10.05, 76.0) // ~5.6 km away
	repo := &fakeItemRepo{found: []models.Item{near}}
	svc := NewNearbyService(repo)

	result, err := svc.ItemsWithin(context.Background(), 10.0, 76.0, 0)
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestItemsWithin_SkipsItemsWithoutLocation(t *testing.T) {
	noLocation := item("untagged report", 0, 0)
	noLocation.Location = nil

	repo := &fakeItemRepo{lost: []models.Item{noLocation}}
	svc := NewNearbyService(repo)

	result, err := svc.ItemsWithin(context.Background(), 10.0, 76.0, 20)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestItemsWithin_RepositoryFailure(t *testing.T) {
	repo := &fakeItemRepo{listErr: assert.AnError}
	svc := NewNearbyService(repo)

	_, err := svc.ItemsWithin(context.Background(), 10.0, 76.0, 20)
	require.Error(t, err)
}
