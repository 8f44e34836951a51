// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"strings"

	"github.com/pdiddy/conference-planner/internal/textutil"
	"github.com/pdiddy/conference-planner/pkg/types"
)

// Indicator vocabularies for the exclusion classifier. Counts of distinct
// terms present act as proxy signals for topical categories.
var (
	computationalVocab = []string{
		"computational", "statistical", "algorithm", "machine learning", "deep learning",
		"model", "modeling", "prediction", "bioinformatics", "simulation", "software",
		"bayesian", "regression", "neural network", "random forest", "clustering",
		"dimensionality reduction", "feature selection", "cross-validation",
		"likelihood", "inference", "estimation", "pipeline", "workflow", "framework",
		"database", "tool", "method development", "novel method", "approach",
	}

	wetlabVocab = []string{
		"pipetting", "western blot", "immunostaining", "cell culture",
		"gel electrophoresis", "cloning", "transfection", "microscopy",
		"staining", "histology", "immunohistochemistry", "pcr protocol",
		"purification", "extraction protocol", "laboratory technique",
	}

	clinicalVocab = []string{
		"case report", "case series", "clinical trial enrollment",
		"patient recruitment", "clinical management", "treatment protocol",
		"surgical procedure", "diagnostic criteria", "clinical presentation",
	}

	pureWetlabPhrases = []string{
		"experimental protocol", "laboratory protocol", "wet lab",
		"bench protocol", "pipetting technique",
	}
)

// minExclusionTokenLen filters short words out of exclusion-topic
// matching ("the", "for", "and" would match everything).
const minExclusionTokenLen = 3

// ShouldExclude decides whether a talk is out of scope for the user. With
// no exclusion topics configured it never drops anything. The rule is
// deliberately conservative: any detectable computational signal
// suppresses exclusion except when wet-lab indicators dominate.
func ShouldExclude(talk types.Talk, exclusionTopics []string) bool {
	if len(exclusionTopics) == 0 {
		return false
	}

	text := strings.ToLower(talk.Title + " " + talk.Abstract)

	compCount := textutil.CountIndicators(text, computationalVocab)
	wetlabCount := textutil.CountIndicators(text, wetlabVocab)
	clinicalCount := textutil.CountIndicators(text, clinicalVocab)
	exclusionMatches := countExclusionMatches(text, exclusionTopics)

	switch {
	case exclusionMatches >= 2 && compCount == 0:
		return true
	case wetlabCount >= 3 && compCount <= 1:
		return true
	case clinicalCount >= 2 && compCount == 0:
		return true
	case compCount == 0 && textutil.ContainsAny(text, pureWetlabPhrases):
		return true
	}
	return false
}

// countExclusionMatches counts how many user exclusion topics match the
// text. A topic matches when it appears verbatim or when at least two of
// its longer words appear individually.
func countExclusionMatches(text string, topics []string) int {
	matches := 0
	for _, topic := range topics {
		lower := strings.ToLower(topic)
		if strings.Contains(text, lower) {
			matches++
			continue
		}

		wordHits := 0
		for _, word := range strings.Fields(lower) {
			if len(word) > minExclusionTokenLen && strings.Contains(text, word) {
				wordHits++
			}
		}
		if wordHits >= 2 {
			matches++
		}
	}
	return matches
}
