package similarity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer(handler http.HandlerFunc) (*HuggingFaceScorer, *httptest.Server) {
	srv := httptest.NewServer(handler)
	scorer := NewHuggingFaceScorer(HuggingFaceConfig{
		APIURL:  srv.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
	return scorer, srv
}

func TestHuggingFaceScorer_Score(t *testing.T) {
	t.Run("returns provider score and sends expected payload", func(t *testing.T) {
		var gotAuth string
		var gotBody hfRequest

		scorer, srv := newTestScorer(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode([]float64{0.87})
		})
		defer srv.Close()

		score, err := scorer.Score(context.Background(), "black leather wallet", "black wallet found")
		require.NoError(t, err)
		assert.Equal(t, 0.87, score)

		assert.Equal(t, "Bearer test-key", gotAuth)
		assert.Equal(t, "black leather wallet", gotBody.Inputs.SourceSentence)
		assert.Equal(t, []string{"black wallet found"}, gotBody.Inputs.Sentences)
	})

	t.Run("non-200 is unavailable", func(t *testing.T) {
		scorer, srv := newTestScorer(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		defer srv.Close()

		_, err := scorer.Score(context.Background(), "a", "b")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("malformed body is unavailable", func(t *testing.T) {
		scorer, srv := newTestScorer(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error": "model loading"}`))
		})
		defer srv.Close()

		_, err := scorer.Score(context.Background(), "a", "b")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("empty score array is unavailable", func(t *testing.T) {
		scorer, srv := newTestScorer(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})
		defer srv.Close()

		_, err := scorer.Score(context.Background(), "a", "b")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("unreachable host is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close() // closed on purpose

		scorer := NewHuggingFaceScorer(HuggingFaceConfig{APIURL: srv.URL, Timeout: time.Second})
		_, err := scorer.Score(context.Background(), "a", "b")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("scores outside the unit range are clamped", func(t *testing.T) {
		scorer, srv := newTestScorer(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]float64{1.0000001})
		})
		defer srv.Close()

		score, err := scorer.Score(context.Background(), "a", "a")
		require.NoError(t, err)
		assert.Equal(t, 1.0, score)
	})
}

func TestPairKey(t *testing.T) {
	// Order matters, and the separator prevents boundary collisions.
	assert.NotEqual(t, pairKey("a", "b"), pairKey("b", "a"))
	assert.NotEqual(t, pairKey("ab", "c"), pairKey("a", "bc"))
	assert.Equal(t, pairKey("a", "b"), pairKey("a", "b"))
}
