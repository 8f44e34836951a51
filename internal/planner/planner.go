// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planner wires the pipeline stages together: extract talks from
// the conference text, embed and index them, rank against the research
// profile, and compile the schedule. Each stage is also reachable on its
// own through the CLI.
package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/conference-planner/internal/abstracts"
	"github.com/pdiddy/conference-planner/internal/embed"
	"github.com/pdiddy/conference-planner/internal/index"
	"github.com/pdiddy/conference-planner/internal/rank"
	"github.com/pdiddy/conference-planner/internal/schedule"
	"github.com/pdiddy/conference-planner/internal/store"
	"github.com/pdiddy/conference-planner/pkg/types"
)

// ErrNoTalks is returned when extraction yields zero valid records: the
// source file is missing its expected structure, not merely sparse.
var ErrNoTalks = errors.New("no talks extracted from conference text")

// Planner runs the pipeline for one conference.
type Planner struct {
	cfg   types.PlannerConfig
	store *store.Store
	index *index.Index

	// newEmbedder is replaced in tests to avoid the network backend.
	newEmbedder func(context.Context, types.EmbeddingConfig) (embed.Service, error)
	embedder    embed.Service
}

// New opens the talk cache and vector index for the configured
// conference, applying defaults for unset fields. The embedding backend
// is not contacted until a stage needs vectors.
func New(cfg types.PlannerConfig) (*Planner, error) {
	if cfg.Conference == "" {
		return nil, fmt.Errorf("conference name required")
	}
	if cfg.Extraction.ConferenceDir == "" {
		return nil, fmt.Errorf("extraction.conference_dir required")
	}
	if cfg.Index.Dir == "" {
		cfg.Index.Dir = filepath.Join(cfg.Extraction.ConferenceDir, "index", "vectors")
	}
	if cfg.Index.Collection == "" {
		cfg.Index.Collection = "conference_" + strings.ToLower(cfg.Conference)
	}
	if cfg.Rank.TopK <= 0 {
		cfg.Rank.TopK = 50
	}
	if cfg.Rank.MinRelevanceScore <= 0 {
		cfg.Rank.MinRelevanceScore = 0.3
	}

	st, err := store.Open(cfg.Extraction.ConferenceDir)
	if err != nil {
		return nil, fmt.Errorf("opening talk cache: %w", err)
	}
	ix, err := index.Open(cfg.Index)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("opening vector index: %w", err)
	}

	return &Planner{
		cfg:         cfg,
		store:       st,
		index:       ix,
		newEmbedder: embed.New,
	}, nil
}

// Close releases the talk cache.
func (p *Planner) Close() error {
	return p.store.Close()
}

// Config returns the effective configuration after defaults.
func (p *Planner) Config() types.PlannerConfig {
	return p.cfg
}

// ExtractTalks returns the talks for the configured conference, reusing
// the cache when the source file is unchanged since the last extraction.
// Progress and per-section skips go to w. A run that yields zero valid
// records fails with ErrNoTalks.
func (p *Planner) ExtractTalks(ctx context.Context, sourcePath string, w io.Writer) ([]types.Talk, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading conference text: %w", err)
	}

	if p.store.Fresh(ctx, p.cfg.Conference, info.ModTime()) {
		talks, err := p.store.LoadTalks(ctx, p.cfg.Conference)
		if err != nil {
			return nil, fmt.Errorf("loading cached talks: %w", err)
		}
		fmt.Fprintf(w, "using %d cached talks for %s\n", len(talks), p.cfg.Conference)
		if len(talks) == 0 {
			return nil, fmt.Errorf("%w (cached result for %s)", ErrNoTalks, sourcePath)
		}
		return talks, nil
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading conference text: %w", err)
	}

	extractor := abstracts.Extractor{DefaultSessionType: p.cfg.Extraction.DefaultSessionType}
	talks, summary := extractor.Extract(string(data), w)
	fmt.Fprintf(w, "extracted %d talks, skipped %d sections\n", summary.Extracted, summary.Skipped)

	if err := p.store.SaveTalks(ctx, p.cfg.Conference, talks, info.ModTime()); err != nil {
		return nil, fmt.Errorf("caching talks: %w", err)
	}
	if len(talks) == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrNoTalks, sourcePath)
	}
	return talks, nil
}

// IndexTalks embeds the talks and stores them in the vector index. An
// index that already holds exactly len(talks) records is assumed current
// and left alone; anything else is rebuilt from scratch.
func (p *Planner) IndexTalks(ctx context.Context, talks []types.Talk, w io.Writer) error {
	if len(talks) == 0 {
		return fmt.Errorf("no talks to index")
	}
	if p.index.Count() == len(talks) {
		fmt.Fprintf(w, "index already holds %d talks, skipping re-embed\n", len(talks))
		return nil
	}

	svc, err := p.embedService(ctx)
	if err != nil {
		return err
	}

	texts := make([]string, len(talks))
	for i, t := range talks {
		texts[i] = t.SearchableText()
	}
	fmt.Fprintf(w, "embedding %d talks with %s\n", len(talks), svc.ModelName())
	vectors, err := svc.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding talks: %w", err)
	}

	if err := p.index.Reset(); err != nil {
		return fmt.Errorf("resetting index: %w", err)
	}
	if err := p.index.Upsert(ctx, talks, vectors); err != nil {
		return fmt.Errorf("storing vectors: %w", err)
	}
	fmt.Fprintf(w, "indexed %d talks\n", len(talks))
	return nil
}

// CompileSchedule ranks the indexed talks against the profile and
// compiles the chronological schedule with conflict groups.
func (p *Planner) CompileSchedule(ctx context.Context, profile types.ResearchProfile) ([]types.RankedCandidate, []types.ConflictGroup, error) {
	svc, err := p.embedService(ctx)
	if err != nil {
		return nil, nil, err
	}

	ranker := &rank.Ranker{
		Embedder:    svc,
		Index:       p.index,
		AuthorBoost: p.cfg.Rank.AuthorBoost,
	}
	candidates, err := ranker.Rank(ctx, profile, rank.Options{
		TopK:     p.cfg.Rank.TopK,
		MinScore: p.cfg.Rank.MinRelevanceScore,
	})
	if err != nil {
		return nil, nil, err
	}

	conflicts := schedule.Compile(candidates)
	return candidates, conflicts, nil
}

// Run executes the full pipeline and returns the compiled schedule.
func (p *Planner) Run(ctx context.Context, sourcePath string, profile types.ResearchProfile, w io.Writer) ([]types.RankedCandidate, []types.ConflictGroup, error) {
	talks, err := p.ExtractTalks(ctx, sourcePath, w)
	if err != nil {
		return nil, nil, err
	}
	if err := p.IndexTalks(ctx, talks, w); err != nil {
		return nil, nil, err
	}
	return p.CompileSchedule(ctx, profile)
}

func (p *Planner) embedService(ctx context.Context) (embed.Service, error) {
	if p.embedder != nil {
		return p.embedder, nil
	}
	svc, err := p.newEmbedder(ctx, p.cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("configuring embedding backend: %w", err)
	}
	p.embedder = svc
	return svc, nil
}
