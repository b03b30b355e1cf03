package similarity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"returnit_backend/internal/logger"
)

// CachedScorer memoizes pair scores in redis. The matching engine compares
// every lost item against the whole found pool on each request, so without a
// cache it issues one provider call per pair per request.
//
// Cache failures never fail a score: a miss or a redis error falls through to
// the wrapped scorer, and write errors are logged and dropped.
type CachedScorer struct {
	inner Scorer
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedScorer(inner Scorer, rdb *redis.Client, ttl time.Duration) *CachedScorer {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &CachedScorer{inner: inner, rdb: rdb, ttl: ttl}
}

// pairKey is order-sensitive: sentence-similarity models are not guaranteed
// symmetric, so (a,b) and (b,a) cache separately.
func pairKey(source, candidate string) string {
	h := sha256.New()
	h.Write([]byte(source))
	h.Write([]byte{0})
	h.Write([]byte(candidate))
	return "similarity:pair:" + hex.EncodeToString(h.Sum(nil))
}

func (s *CachedScorer) Score(ctx context.Context, source, candidate string) (float64, error) {
	key := pairKey(source, candidate)

	val, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		if score, parseErr := strconv.ParseFloat(val, 64); parseErr == nil {
			return score, nil
		}
	} else if err != redis.Nil {
		logger.CtxDebug(ctx, "similarity cache read failed", "error", err.Error())
	}

	score, err := s.inner.Score(ctx, source, candidate)
	if err != nil {
		// Failures are transient by assumption; do not cache them.
		return 0, err
	}

	if err := s.rdb.Set(ctx, key, strconv.FormatFloat(score, 'f', -1, 64), s.ttl).Err(); err != nil {
		logger.CtxDebug(ctx, "similarity cache write failed", "error", err.Error())
	}

	return score, nil
}
