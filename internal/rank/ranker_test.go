package rank

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/pdiddy/conference-planner/internal/index"
	"github.com/pdiddy/conference-planner/pkg/types"
)

// --- stubs ---

type stubEmbedder struct {
	err   error
	calls int
}

func (s *stubEmbedder) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []float32{1, 0, 0}, nil
}

type stubSearcher struct {
	hits  []index.Hit
	count int
	lastK int
	err   error
}

func (s *stubSearcher) Query(_ context.Context, _ []float32, k int) ([]index.Hit, error) {
	s.lastK = k
	if s.err != nil {
		return nil, s.err
	}
	if k > len(s.hits) {
		k = len(s.hits)
	}
	return s.hits[:k], nil
}

func (s *stubSearcher) Count() int { return s.count }

func computationalTalk(id string, distance float64) index.Hit {
	return index.Hit{
		Talk: types.Talk{
			ID:       id,
			Title:    "Statistical Methods for Association Mapping",
			Abstract: "We present a statistical model and computational pipeline for large-scale genetic association analysis.",
			Authors:  []string{"Jane A. Doe", "John Smith"},
		},
		Distance: distance,
	}
}

func profileWithInterests() types.ResearchProfile {
	return types.ResearchProfile{
		Interests: []string{"statistical genetics", "fine-mapping"},
	}
}

// --- precondition errors ---

func TestRankNoInterests(t *testing.T) {
	r := &Ranker{Embedder: &stubEmbedder{}, Index: &stubSearcher{count: 10}}
	_, err := r.Rank(context.Background(), types.ResearchProfile{}, Options{TopK: 5})
	if !errors.Is(err, ErrNoInterests) {
		t.Fatalf("err = %v, want ErrNoInterests", err)
	}
}

func TestRankEmptyIndex(t *testing.T) {
	r := &Ranker{Embedder: &stubEmbedder{}, Index: &stubSearcher{count: 0}}
	_, err := r.Rank(context.Background(), profileWithInterests(), Options{TopK: 5})
	if !errors.Is(err, ErrEmptyIndex) {
		t.Fatalf("err = %v, want ErrEmptyIndex", err)
	}
}

func TestRankEmbedderFailurePropagates(t *testing.T) {
	r := &Ranker{
		Embedder: &stubEmbedder{err: fmt.Errorf("backend down")},
		Index:    &stubSearcher{count: 10},
	}
	_, err := r.Rank(context.Background(), profileWithInterests(), Options{TopK: 5})
	if err == nil {
		t.Fatal("expected wrapped embedder error")
	}
	if !strings.Contains(err.Error(), "backend down") {
		t.Errorf("err = %v, want it to wrap the embedder failure", err)
	}
}

// --- fetch count ---

func TestRankFetchCount(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		topK       int
		exclusions []string
		wantFetch  int
	}{
		{"no exclusions", 100, 10, nil, 10},
		{"exclusions triple fetch", 100, 10, []string{"wet lab"}, 30},
		{"capped at total", 5, 10, []string{"wet lab"}, 5},
		{"no exclusions capped", 5, 10, nil, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &stubSearcher{count: tt.count}
			r := &Ranker{Embedder: &stubEmbedder{}, Index: searcher}

			profile := profileWithInterests()
			profile.ExclusionTopics = tt.exclusions

			if _, err := r.Rank(context.Background(), profile, Options{TopK: tt.topK}); err != nil {
				t.Fatal(err)
			}
			if searcher.lastK != tt.wantFetch {
				t.Errorf("fetch = %d, want %d", searcher.lastK, tt.wantFetch)
			}
		})
	}
}

// --- similarity ---

func TestSimilarityMonotonic(t *testing.T) {
	distances := []float64{0, 0.1, 0.5, 1, 2, 10}
	for i := 1; i < len(distances); i++ {
		if Similarity(distances[i]) >= Similarity(distances[i-1]) {
			t.Errorf("Similarity(%v) >= Similarity(%v)", distances[i], distances[i-1])
		}
	}
	if got := Similarity(0); got != 1.0 {
		t.Errorf("Similarity(0) = %v, want 1.0", got)
	}
}

func TestRankThreshold(t *testing.T) {
	searcher := &stubSearcher{
		count: 2,
		hits: []index.Hit{
			computationalTalk("talk-0001", 0.5), // similarity 0.667
			computationalTalk("talk-0002", 4.0), // similarity 0.2
		},
	}
	r := &Ranker{Embedder: &stubEmbedder{}, Index: searcher}

	got, err := r.Rank(context.Background(), profileWithInterests(), Options{TopK: 10, MinScore: 0.3})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Talk.ID != "talk-0001" {
		t.Fatalf("got %v, want only talk-0001", got)
	}
}

// --- author boost ---

func TestRankAuthorBoost(t *testing.T) {
	searcher := &stubSearcher{count: 1, hits: []index.Hit{computationalTalk("talk-0001", 1.0)}}
	r := &Ranker{Embedder: &stubEmbedder{}, Index: searcher}

	profile := profileWithInterests()
	profile.AuthorsOfInterest = []string{"Jane Doe"}

	got, err := r.Rank(context.Background(), profile, Options{TopK: 10, MinScore: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	// Base similarity 1/(1+1) = 0.5, plus the 0.15 boost.
	if math.Abs(got[0].Similarity-0.65) > 1e-9 {
		t.Errorf("Similarity = %v, want 0.65", got[0].Similarity)
	}
	if len(got[0].MatchedAuthors) != 1 || got[0].MatchedAuthors[0] != "Jane Doe" {
		t.Errorf("MatchedAuthors = %v", got[0].MatchedAuthors)
	}
}

func TestRankAuthorBoostCapped(t *testing.T) {
	searcher := &stubSearcher{count: 1, hits: []index.Hit{computationalTalk("talk-0001", 0)}}
	r := &Ranker{Embedder: &stubEmbedder{}, Index: searcher}

	profile := profileWithInterests()
	profile.AuthorsOfInterest = []string{"John Smith"}

	got, err := r.Rank(context.Background(), profile, Options{TopK: 10, MinScore: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Similarity != 1.0 {
		t.Errorf("Similarity = %v, want capped at 1.0", got[0].Similarity)
	}
}

func TestRankNoBoostWithoutMatch(t *testing.T) {
	searcher := &stubSearcher{count: 1, hits: []index.Hit{computationalTalk("talk-0001", 1.0)}}
	r := &Ranker{Embedder: &stubEmbedder{}, Index: searcher}

	profile := profileWithInterests()
	profile.AuthorsOfInterest = []string{"Someone Else"}

	got, err := r.Rank(context.Background(), profile, Options{TopK: 10, MinScore: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Similarity != 0.5 || len(got[0].MatchedAuthors) != 0 {
		t.Errorf("candidate = %+v, want unboosted", got[0])
	}
}

// --- topK ---

func TestRankStopsAtTopK(t *testing.T) {
	var hits []index.Hit
	for i := 0; i < 10; i++ {
		hits = append(hits, computationalTalk(fmt.Sprintf("talk-%04d", i+1), 0.1))
	}
	searcher := &stubSearcher{count: 10, hits: hits}
	r := &Ranker{Embedder: &stubEmbedder{}, Index: searcher}

	got, err := r.Rank(context.Background(), profileWithInterests(), Options{TopK: 3, MinScore: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("got %d candidates, want 3", len(got))
	}
}

// --- query building ---

func TestBuildQuery(t *testing.T) {
	profile := types.ResearchProfile{
		Interests:         []string{"eQTL mapping", "fine-mapping"},
		SupplementaryText: "draft chapter",
	}
	got := BuildQuery(profile)
	want := "draft chapter draft chapter eQTL mapping fine-mapping"
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuildQueryNoSupplementary(t *testing.T) {
	got := BuildQuery(types.ResearchProfile{Interests: []string{"a", "b"}})
	if got != "a b" {
		t.Errorf("BuildQuery() = %q, want %q", got, "a b")
	}
}
