package services

import (
	"context"

	"returnit_backend/internal/geo"
	"returnit_backend/internal/models"
	"returnit_backend/internal/repositories"
	"returnit_backend/pkg/apperrors"
)

// DefaultNearbyRadiusKm is used when the caller does not specify a radius.
const DefaultNearbyRadiusKm = 20.0

// NearbyItem is a report tagged with the pool it came from and its distance
// from the query point.
type NearbyItem struct {
	models.Item
	Kind       models.ItemKind `json:"type"`
	DistanceKm float64         `json:"distanceKm"`
}

type NearbyService interface {
	// ItemsWithin returns every lost and found report within radiusKm of the
	// given point. Records without a location are skipped.
	ItemsWithin(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyItem, error)
}

type nearbyService struct {
	items repositories.ItemRepository
}

func NewNearbyService(items repositories.ItemRepository) NearbyService {
	return &nearbyService{items: items}
}

func (s *nearbyService) ItemsWithin(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyItem, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	lostItems, err := s.items.ListAllLost(ctx)
	if err != nil {
		return nil, apperrors.RepositoryError("nearby", err)
	}
	foundItems, err := s.items.ListAllFound(ctx)
	if err != nil {
		return nil, apperrors.RepositoryError("nearby", err)
	}

	result := []NearbyItem{}
	result = appendWithin(result, lostItems, models.ItemKindLost, lat, lng, radiusKm)
	result = appendWithin(result, foundItems, models.ItemKindFound, lat, lng, radiusKm)
	return result, nil
}

func appendWithin(dst []NearbyItem, items []models.Item, kind models.ItemKind, lat, lng, radiusKm float64) []NearbyItem {
	for i := range items {
		if items[i].Location == nil {
			continue
		}
		distance := geo.DistanceKm(lat, lng, items[i].Location.Lat, items[i].Location.Lng)
		if distance > radiusKm {
			continue
		}
		dst = append(dst, NearbyItem{
			Item:       items[i],
			Kind:       kind,
			DistanceKm: distance,
		})
	}
	return dst
}
