// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResearchProfile describes what the user wants out of a conference.
// Interests drive the embedding query; exclusion topics and authors of
// interest refine the ranked results.
type ResearchProfile struct {
	// Interests are free-text research focus statements. At least one is
	// required for ranking to run.
	Interests []string `json:"interests" yaml:"interests"`

	// ExclusionTopics are free-text topics to filter out. When empty, the
	// exclusion classifier never drops a candidate.
	ExclusionTopics []string `json:"exclusion_topics,omitempty" yaml:"exclusion_topics,omitempty"`

	// AuthorsOfInterest lists author names whose talks receive a relevance
	// boost when matched.
	AuthorsOfInterest []string `json:"authors_of_interest,omitempty" yaml:"authors_of_interest,omitempty"`

	// SupplementaryText is optional long-form text (e.g. a draft of the
	// user's own writing) that biases the query. It is weighted more
	// heavily than the interest statements.
	SupplementaryText string `json:"supplementary_text,omitempty" yaml:"supplementary_text,omitempty"`
}

// HasInterests reports whether the profile can drive a ranking run.
func (p ResearchProfile) HasInterests() bool {
	return len(p.Interests) > 0
}

// RankedCandidate pairs a Talk with its relevance to a ResearchProfile.
// Candidates are recomputed on every ranking pass; they are derived views,
// never persisted.
type RankedCandidate struct {
	Talk Talk `json:"talk" yaml:"talk"`

	// Similarity is in (0, 1], including any author-affinity boost.
	Similarity float64 `json:"similarity" yaml:"similarity"`

	// MatchedAuthors records which authors-of-interest entries matched
	// this talk's author list. Informational only; it never gates
	// inclusion.
	MatchedAuthors []string `json:"matched_authors,omitempty" yaml:"matched_authors,omitempty"`
}

// ConflictGroup holds the candidates sharing one day/time slot when more
// than one relevant talk lands there. Conflicts are informational: no
// candidate is dropped for being in a group.
type ConflictGroup struct {
	Day  string `json:"day" yaml:"day"`
	Time string `json:"time" yaml:"time"`

	// Candidates are ordered by descending similarity.
	Candidates []RankedCandidate `json:"candidates" yaml:"candidates"`
}

// Key returns the day/time grouping key for the slot.
func (g ConflictGroup) Key() string {
	return g.Day + "_" + g.Time
}
