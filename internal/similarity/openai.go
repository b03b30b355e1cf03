package similarity

import (
	"context"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIScorer is an alternative provider backed by OpenAI embeddings.
// Cosine similarity of the two embeddings is rescaled from [-1,1] to [0,1]
// so both providers honor the same score contract.
type OpenAIScorer struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAIScorer(cfg OpenAIConfig) *OpenAIScorer {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}

	model := openai.EmbeddingModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.SmallEmbedding3
	}

	return &OpenAIScorer{client: c, model: model}
}

func (s *OpenAIScorer) Score(ctx context.Context, source, candidate string) (float64, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{source, candidate},
		Model: s.model,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Data) != 2 {
		return 0, fmt.Errorf("%w: expected 2 embeddings, got %d", ErrUnavailable, len(resp.Data))
	}

	cos, err := cosine(resp.Data[0].Embedding, resp.Data[1].Embedding)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return clamp01((cos + 1) / 2), nil
}

func cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, fmt.Errorf("embedding length mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-length embedding")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
