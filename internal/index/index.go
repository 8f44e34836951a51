// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index wraps an embedded chromem-go vector database behind an
// explicit handle owned by the caller. One collection holds one
// conference's talks; vectors are always supplied by the caller, so the
// collection's embedding function is never invoked.
package index

import (
	"context"
	"errors"
	"fmt"
	"os"

	chromem "github.com/philippgille/chromem-go"

	"github.com/pdiddy/conference-planner/pkg/types"
)

// ErrVectorCount is returned when Upsert receives mismatched talks and
// vectors.
var ErrVectorCount = errors.New("talk and vector counts differ")

// Hit is one nearest-neighbor result: the stored talk plus its distance
// from the query vector. Smaller distance means closer.
type Hit struct {
	Talk     types.Talk
	Distance float64
}

// Index is a handle to one conference's vector collection.
type Index struct {
	db   *chromem.DB
	col  *chromem.Collection
	name string
}

// noEmbed rejects any implicit embedding: the planner always supplies
// precomputed vectors, and silently calling out to a provider from inside
// the index would hide a collaborator dependency.
func noEmbed(_ context.Context, _ string) ([]float32, error) {
	return nil, fmt.Errorf("index requires precomputed embeddings")
}

// Open opens or creates a persistent index at dir with the named
// collection.
func Open(cfg types.IndexConfig) (*Index, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("index collection name required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	db, err := chromem.NewPersistentDB(cfg.Dir, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector database: %w", err)
	}
	return newIndex(db, cfg.Collection)
}

// OpenMemory creates a non-persistent index, used by tests and dry runs.
func OpenMemory(collection string) (*Index, error) {
	return newIndex(chromem.NewDB(), collection)
}

func newIndex(db *chromem.DB, collection string) (*Index, error) {
	col, err := db.GetOrCreateCollection(collection, nil, noEmbed)
	if err != nil {
		return nil, fmt.Errorf("opening collection %s: %w", collection, err)
	}
	return &Index{db: db, col: col, name: collection}, nil
}

// Count returns the number of stored talks.
func (ix *Index) Count() int {
	return ix.col.Count()
}

// Reset drops and recreates the collection. Used when the stored count no
// longer matches the extracted batch.
func (ix *Index) Reset() error {
	if err := ix.db.DeleteCollection(ix.name); err != nil {
		return fmt.Errorf("deleting collection %s: %w", ix.name, err)
	}
	col, err := ix.db.GetOrCreateCollection(ix.name, nil, noEmbed)
	if err != nil {
		return fmt.Errorf("recreating collection %s: %w", ix.name, err)
	}
	ix.col = col
	return nil
}

// Upsert stores talks with their precomputed vectors. talks[i] pairs with
// vectors[i]; optional talk fields are coerced to empty strings in the
// stored payload.
func (ix *Index) Upsert(ctx context.Context, talks []types.Talk, vectors [][]float32) error {
	if len(talks) != len(vectors) {
		return fmt.Errorf("%w: %d talks, %d vectors", ErrVectorCount, len(talks), len(vectors))
	}
	if len(talks) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(talks))
	for i, talk := range talks {
		docs[i] = chromem.Document{
			ID:        talk.ID,
			Content:   talk.SearchableText(),
			Metadata:  talkPayload(talk),
			Embedding: vectors[i],
		}
	}

	// Concurrency 1: embeddings are precomputed, nothing to parallelize.
	if err := ix.col.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("storing %d talks: %w", len(docs), err)
	}
	return nil
}

// Query returns the k nearest talks to vec, closest first. k is capped at
// the collection size; an empty collection yields no hits.
func (ix *Index) Query(ctx context.Context, vec []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	count := ix.col.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := ix.col.QueryEmbedding(ctx, vec, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", ix.name, err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		talk, err := talkFromPayload(r.ID, r.Metadata)
		if err != nil {
			return nil, fmt.Errorf("restoring talk %s: %w", r.ID, err)
		}
		// chromem reports cosine similarity in [-1, 1]; distance is its
		// complement so that closer results have smaller values.
		hits[i] = Hit{Talk: talk, Distance: 1 - float64(r.Similarity)}
	}
	return hits, nil
}
