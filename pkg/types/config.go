// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionConfig holds settings for the abstract extraction stage.
type ExtractionConfig struct {
	// ConferenceDir is the working directory for one conference. It holds
	// the source text, the talk cache (index/), and generated output.
	ConferenceDir string `json:"conference_dir" yaml:"conference_dir"`

	// DefaultSessionType is assigned when a section carries neither
	// poster- nor talk-indicating vocabulary. The "poster" default
	// reflects the dominant category in typical abstract books; override
	// it for conferences where that assumption does not hold.
	DefaultSessionType SessionType `json:"default_session_type" yaml:"default_session_type"`
}

// EmbeddingConfig holds settings for the embedding service.
type EmbeddingConfig struct {
	// BaseURL overrides the OpenAI-compatible endpoint. Empty uses the
	// provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey authenticates with the embedding provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the embedding model identifier (default "text-embedding-3-small").
	Model string `json:"model" yaml:"model"`

	// Dim is the embedding dimension (default 1536). Must match what the
	// model produces; the index stores vectors as-is.
	Dim int `json:"dim" yaml:"dim"`
}

// IndexConfig holds settings for the vector index.
type IndexConfig struct {
	// Dir is the directory for persistent index storage, typically
	// ConferenceDir/index/vectors.
	Dir string `json:"dir" yaml:"dir"`

	// Collection names the index collection, typically
	// "conference_<name>". One collection per conference.
	Collection string `json:"collection" yaml:"collection"`
}

// RankConfig holds settings for relevance ranking.
type RankConfig struct {
	// TopK is the maximum number of candidates in the final schedule
	// (default 50).
	TopK int `json:"top_k" yaml:"top_k"`

	// MinRelevanceScore drops candidates below this similarity
	// (default 0.3).
	MinRelevanceScore float64 `json:"min_relevance_score" yaml:"min_relevance_score"`

	// AuthorBoost is added to a candidate's similarity when an
	// author-of-interest matches (default 0.15), capped at 1.0.
	AuthorBoost float64 `json:"author_boost" yaml:"author_boost"`
}

// PlannerConfig groups all stage configurations for one conference.
type PlannerConfig struct {
	// Conference is the conference identifier (e.g. "ASHG2025").
	Conference string `json:"conference" yaml:"conference"`

	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Embedding  EmbeddingConfig  `json:"embedding" yaml:"embedding"`
	Index      IndexConfig      `json:"index" yaml:"index"`
	Rank       RankConfig       `json:"rank" yaml:"rank"`
}
