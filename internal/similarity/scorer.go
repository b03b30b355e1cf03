package similarity

import (
	"context"
	"errors"
)

// ErrUnavailable signals that the provider declined or failed to score a
// pair. Callers must treat it as "score unknown", never as zero.
var ErrUnavailable = errors.New("similarity score unavailable")

// Scorer rates the semantic similarity of two free-text descriptions on a
// [0,1] scale, 1 meaning identical meaning. Implementations call out to an
// external model, so every invocation may fail; a returned error excludes
// the pair from matching rather than aborting the batch.
type Scorer interface {
	Score(ctx context.Context, source, candidate string) (float64, error)
}

// clamp01 keeps provider output inside the documented [0,1] range. Some
// embedding backends return cosine values marginally outside it.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
