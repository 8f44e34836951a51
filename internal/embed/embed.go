// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embed adapts an OpenAI-compatible embedding endpoint behind a
// small Service interface. Embeddings are deterministic per text for a
// fixed model version; the planner relies on that for idempotent
// re-indexing.
package embed

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/embedding/openai"

	"github.com/pdiddy/conference-planner/pkg/types"
)

// Service produces embedding vectors for queries and document batches.
type Service interface {
	// EmbedQuery embeds a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds a batch of document texts, preserving order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the embedding model identifier.
	ModelName() string

	// Dim returns the embedding dimension.
	Dim() int
}

type openaiService struct {
	cfg   types.EmbeddingConfig
	inner *openai.Embedder
}

// New builds a Service from config. The API key is required; defaults are
// applied for model and dimension.
func New(ctx context.Context, cfg types.EmbeddingConfig) (Service, error) {
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.Dim == 0 {
		cfg.Dim = 1536
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key required (set .secrets/openai-api-key or embedding.api_key)")
	}

	inner, err := openai.NewEmbedder(ctx, &openai.EmbeddingConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	return &openaiService{cfg: cfg, inner: inner}, nil
}

func (s *openaiService) ModelName() string { return s.cfg.Model }
func (s *openaiService) Dim() int          { return s.cfg.Dim }

func (s *openaiService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("query text is empty")
	}
	vecs, err := s.inner.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("embedding backend returned no vectors")
	}
	return toFloat32(vecs[0]), nil
}

func (s *openaiService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts to embed")
	}
	vecs64, err := s.inner.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding batch of %d: %w", len(texts), err)
	}
	if len(vecs64) != len(texts) {
		return nil, fmt.Errorf("embedding backend returned %d vectors for %d texts", len(vecs64), len(texts))
	}
	vecs := make([][]float32, len(vecs64))
	for i, v := range vecs64 {
		vecs[i] = toFloat32(v)
	}
	return vecs, nil
}

// toFloat32 narrows provider float64 vectors for index storage.
func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
