package services

import (
	"context"
	"sort"
	"sync"

	"returnit_backend/internal/geo"
	"returnit_backend/internal/logger"
	"returnit_backend/internal/models"
	"returnit_backend/internal/repositories"
	"returnit_backend/internal/similarity"
	"returnit_backend/pkg/apperrors"
)

// Ranking parameters. Candidates below the similarity gate or beyond the
// proximity gate are discarded outright; survivors are ranked by a weighted
// blend of text similarity and inverse normalized distance.
const (
	similarityGate   = 0.5
	proximityGateKm  = 1.0
	topK             = 3
	similarityWeight = 0.7
	proximityWeight  = 0.3
)

type MatchingService interface {
	// MatchUserItems ranks the entire found pool against every lost item the
	// user has reported. A repository failure fails the whole request.
	MatchUserItems(ctx context.Context, userID string) ([]models.MatchGroup, error)

	// RankMatches runs the gate-score-sort-truncate pipeline over explicit
	// item slices. Groups come back in lostItems order.
	RankMatches(ctx context.Context, lostItems, foundItems []models.Item) []models.MatchGroup
}

type MatchingOptions struct {
	// Concurrency caps in-flight similarity calls per lost item. 1 scores
	// pairs one at a time.
	Concurrency int
	// RetryFailed retries a failed similarity call once before excluding
	// the pair.
	RetryFailed bool
}

type matchingService struct {
	items       repositories.ItemRepository
	scorer      similarity.Scorer
	concurrency int
	retryFailed bool
}

func NewMatchingService(items repositories.ItemRepository, scorer similarity.Scorer, opts MatchingOptions) MatchingService {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &matchingService{
		items:       items,
		scorer:      scorer,
		concurrency: concurrency,
		retryFailed: opts.RetryFailed,
	}
}

func (s *matchingService) MatchUserItems(ctx context.Context, userID string) ([]models.MatchGroup, error) {
	lostItems, err := s.items.ListLostByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.RepositoryError("matching", err)
	}

	foundItems, err := s.items.ListAllFound(ctx)
	if err != nil {
		return nil, apperrors.RepositoryError("matching", err)
	}

	groups := s.RankMatches(ctx, lostItems, foundItems)

	logger.CtxInfo(ctx, "matching completed",
		"lost_items", len(lostItems),
		"found_items", len(foundItems),
		"groups", len(groups),
	)
	return groups, nil
}

func (s *matchingService) RankMatches(ctx context.Context, lostItems, foundItems []models.Item) []models.MatchGroup {
	groups := make([]models.MatchGroup, 0, len(lostItems))
	for i := range lostItems {
		groups = append(groups, models.MatchGroup{
			LostItem:   lostItems[i],
			TopMatches: s.rankForLostItem(ctx, &lostItems[i], foundItems),
		})
	}
	return groups
}

// rankForLostItem evaluates every found item against one lost item. Pairs are
// scored under a bounded worker cap; results land in a slice indexed by the
// found item's position, so the candidate order (and therefore tie order
// after the stable sort) never depends on goroutine scheduling.
func (s *matchingService) rankForLostItem(ctx context.Context, lost *models.Item, foundItems []models.Item) []models.MatchResult {
	evaluated := make([]*models.MatchResult, len(foundItems))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.concurrency)

	for i := range foundItems {
		found := &foundItems[i]
		if !lost.Matchable() || !found.Matchable() {
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int, found *models.Item) {
			defer wg.Done()
			defer func() { <-sem }()
			evaluated[i] = s.evaluatePair(ctx, lost, found)
		}(i, found)
	}
	wg.Wait()

	candidates := make([]models.MatchResult, 0, len(foundItems))
	for _, result := range evaluated {
		if result != nil {
			candidates = append(candidates, *result)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return candidates
}

// evaluatePair returns nil when the pair is gated out or the scorer failed.
// Scorer failures exclude only this pair; the rest of the batch proceeds.
func (s *matchingService) evaluatePair(ctx context.Context, lost, found *models.Item) *models.MatchResult {
	sim, err := s.scorer.Score(ctx, lost.Description, found.Description)
	if err != nil && s.retryFailed {
		sim, err = s.scorer.Score(ctx, lost.Description, found.Description)
	}
	if err != nil {
		logger.CtxDebug(ctx, "similarity scorer failed, excluding pair",
			"error", err.Error(),
			"found_item", found.ID.Hex(),
		)
		return nil
	}
	if sim < similarityGate {
		return nil
	}

	distance := geo.DistanceKm(
		lost.Location.Lat, lost.Location.Lng,
		found.Location.Lat, found.Location.Lng,
	)
	if distance > proximityGateKm {
		return nil
	}

	normalizedDistance := distance / proximityGateKm
	finalScore := similarityWeight*sim + proximityWeight*(1-normalizedDistance)

	return &models.MatchResult{FoundItem: *found, Similarity: finalScore}
}
