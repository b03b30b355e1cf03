package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"returnit_backend/internal/logger"
)

// HuggingFaceScorer scores description pairs against a hosted
// sentence-similarity model (sentence-transformers style inference API).
type HuggingFaceScorer struct {
	apiURL  string
	apiKey  string
	client  *http.Client
	timeout time.Duration
}

type HuggingFaceConfig struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

func NewHuggingFaceScorer(cfg HuggingFaceConfig) *HuggingFaceScorer {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HuggingFaceScorer{
		apiURL:  cfg.APIURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

type hfRequest struct {
	Inputs hfInputs `json:"inputs"`
}

type hfInputs struct {
	SourceSentence string   `json:"source_sentence"`
	Sentences      []string `json:"sentences"`
}

// Score issues one inference call per pair. The API accepts a list of
// candidate sentences and returns one score per candidate; the matching
// engine compares pairs one at a time, so the list always has one entry.
func (s *HuggingFaceScorer) Score(ctx context.Context, source, candidate string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := json.Marshal(hfRequest{
		Inputs: hfInputs{SourceSentence: source, Sentences: []string{candidate}},
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logger.CtxDebug(ctx, "similarity call failed", "error", err.Error())
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Model loading and rate limiting both surface as non-200 here.
		logger.CtxDebug(ctx, "similarity provider declined", "status", resp.StatusCode)
		return 0, fmt.Errorf("%w: provider returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var scores []float64
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return 0, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}
	if len(scores) == 0 {
		return 0, fmt.Errorf("%w: empty score array", ErrUnavailable)
	}

	return clamp01(scores[0]), nil
}
