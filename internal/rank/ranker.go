// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank scores extracted talks against a research profile. It
// embeds a combined interest query, retrieves nearest talks from the
// vector index, applies an author-affinity boost, and filters candidates
// through the exclusion classifier.
package rank

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/conference-planner/internal/index"
	"github.com/pdiddy/conference-planner/internal/textutil"
	"github.com/pdiddy/conference-planner/pkg/types"
)

var (
	// ErrNoInterests is returned when the profile has no interest
	// statements; there is nothing to build a query from.
	ErrNoInterests = errors.New("no research interests configured")

	// ErrEmptyIndex is returned when the vector index holds no talks.
	ErrEmptyIndex = errors.New("vector index is empty; index talks first")
)

// DefaultAuthorBoost is added to a candidate's similarity when an
// author-of-interest matches.
const DefaultAuthorBoost = 0.15

// QueryEmbedder embeds the ranking query. Declared here so tests can
// substitute a deterministic stub.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Searcher is the slice of the vector index the ranker needs.
type Searcher interface {
	Query(ctx context.Context, vec []float32, k int) ([]index.Hit, error)
	Count() int
}

// Options control one ranking pass.
type Options struct {
	// TopK is the maximum number of candidates to return (default 50).
	TopK int

	// MinScore drops candidates whose similarity falls below it.
	MinScore float64
}

// Ranker scores talks against a research profile.
type Ranker struct {
	Embedder QueryEmbedder
	Index    Searcher

	// AuthorBoost overrides DefaultAuthorBoost when positive.
	AuthorBoost float64
}

// Rank returns up to opts.TopK candidates ordered by descending
// similarity, after threshold filtering, author boosting, and exclusion
// classification. It fails with ErrNoInterests or ErrEmptyIndex when the
// preconditions for ranking are not met; embedding and index failures are
// wrapped and propagated.
func (r *Ranker) Rank(ctx context.Context, profile types.ResearchProfile, opts Options) ([]types.RankedCandidate, error) {
	if !profile.HasInterests() {
		return nil, ErrNoInterests
	}
	total := r.Index.Count()
	if total == 0 {
		return nil, ErrEmptyIndex
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = 50
	}

	vec, err := r.Embedder.EmbedQuery(ctx, BuildQuery(profile))
	if err != nil {
		return nil, fmt.Errorf("embedding interest query: %w", err)
	}

	// Over-fetch when exclusion topics are set to compensate for
	// post-filtering attrition.
	fetch := topK
	if len(profile.ExclusionTopics) > 0 {
		fetch = topK * 3
	}
	if fetch > total {
		fetch = total
	}

	hits, err := r.Index.Query(ctx, vec, fetch)
	if err != nil {
		return nil, fmt.Errorf("querying vector index: %w", err)
	}

	boost := r.AuthorBoost
	if boost <= 0 {
		boost = DefaultAuthorBoost
	}

	var candidates []types.RankedCandidate
	for _, hit := range hits {
		similarity := Similarity(hit.Distance)
		if similarity < opts.MinScore {
			continue
		}

		matched := matchAuthors(profile.AuthorsOfInterest, hit.Talk.Authors)
		if len(matched) > 0 {
			similarity += boost
			if similarity > 1.0 {
				similarity = 1.0
			}
		}

		if ShouldExclude(hit.Talk, profile.ExclusionTopics) {
			continue
		}

		candidates = append(candidates, types.RankedCandidate{
			Talk:           hit.Talk,
			Similarity:     similarity,
			MatchedAuthors: matched,
		})
		if len(candidates) >= topK {
			break
		}
	}

	return candidates, nil
}

// BuildQuery concatenates the profile into one query text. Supplementary
// text, when present, is prepended twice: a single long document would
// otherwise be diluted by the short combined-interest vector.
func BuildQuery(profile types.ResearchProfile) string {
	var parts []string
	if profile.SupplementaryText != "" {
		parts = append(parts, profile.SupplementaryText, profile.SupplementaryText)
	}
	parts = append(parts, profile.Interests...)
	return strings.Join(parts, " ")
}

// Similarity converts an index distance to a score in (0, 1]. Smaller
// distance always yields a larger score.
func Similarity(distance float64) float64 {
	return 1 / (1 + distance)
}

// matchAuthors returns the authors-of-interest entries whose every name
// token appears among some talk author's tokens.
func matchAuthors(interests, talkAuthors []string) []string {
	var matched []string
	for _, want := range interests {
		for _, have := range talkAuthors {
			if textutil.TokenSupersetMatch(want, have) {
				matched = append(matched, want)
				break
			}
		}
	}
	return matched
}
