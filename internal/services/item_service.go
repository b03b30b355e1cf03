package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"returnit_backend/internal/models"
	"returnit_backend/internal/repositories"
	"returnit_backend/internal/services/dto"
	"returnit_backend/pkg/apperrors"
)

var ErrNotItemOwner = apperrors.New(apperrors.CodeForbidden, "items", "Only the reporter can delete this item", http.StatusForbidden)

type ItemService interface {
	Report(ctx context.Context, kind models.ItemKind, userID string, req *dto.CreateItemRequest) (*models.Item, error)
	Get(ctx context.Context, kind models.ItemKind, id string) (*models.Item, error)
	ListMine(ctx context.Context, kind models.ItemKind, userID string) ([]models.Item, error)
	Delete(ctx context.Context, kind models.ItemKind, id, userID string) error
}

type itemService struct {
	items repositories.ItemRepository
}

func NewItemService(items repositories.ItemRepository) ItemService {
	return &itemService{items: items}
}

func (s *itemService) Report(ctx context.Context, kind models.ItemKind, userID string, req *dto.CreateItemRequest) (*models.Item, error) {
	item := &models.Item{
		UserID:      userID,
		Category:    models.Category(req.Category),
		Description: req.Description,
		Location: &models.Location{
			Lat: *req.Location.Lat,
			Lng: *req.Location.Lng,
		},
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := s.items.Create(ctx, kind, item); err != nil {
		return nil, apperrors.RepositoryError("items", err)
	}
	return item, nil
}

func (s *itemService) Get(ctx context.Context, kind models.ItemKind, id string) (*models.Item, error) {
	item, err := s.items.FindByID(ctx, kind, id)
	if errors.Is(err, repositories.ErrItemNotFound) {
		return nil, apperrors.NewNotFoundError("items", "Item not found")
	}
	if err != nil {
		return nil, apperrors.RepositoryError("items", err)
	}
	return item, nil
}

func (s *itemService) ListMine(ctx context.Context, kind models.ItemKind, userID string) ([]models.Item, error) {
	var (
		items []models.Item
		err   error
	)
	if kind == models.ItemKindFound {
		items, err = s.items.ListFoundByUser(ctx, userID)
	} else {
		items, err = s.items.ListLostByUser(ctx, userID)
	}
	if err != nil {
		return nil, apperrors.RepositoryError("items", err)
	}
	return items, nil
}

func (s *itemService) Delete(ctx context.Context, kind models.ItemKind, id, userID string) error {
	item, err := s.items.FindByID(ctx, kind, id)
	if errors.Is(err, repositories.ErrItemNotFound) {
		return apperrors.NewNotFoundError("items", "Item not found")
	}
	if err != nil {
		return apperrors.RepositoryError("items", err)
	}

	if item.UserID != userID {
		return ErrNotItemOwner
	}

	if err := s.items.Delete(ctx, kind, id); err != nil {
		return apperrors.RepositoryError("items", err)
	}
	return nil
}
