// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/conference-planner/pkg/types"
)

// timeNow allows tests to pin the generation timestamp.
var timeNow = time.Now

// RenderMarkdown produces the human-readable schedule: talks grouped by
// day in chronological order, with similarity scores, matched authors,
// and a trailing conflicts section when any slot is contested. The
// candidates are expected to be sorted already (see Sort).
func RenderMarkdown(candidates []types.RankedCandidate, conflicts []types.ConflictGroup) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Conference Schedule\n\n")
	fmt.Fprintf(&b, "Generated %s. %d talks selected.\n",
		timeNow().Format("2006-01-02 15:04"), len(candidates))

	contested := make(map[string]bool)
	for _, g := range conflicts {
		contested[g.Key()] = true
	}

	currentDay := ""
	for _, c := range candidates {
		day := dayKey(c)
		if day != currentDay {
			fmt.Fprintf(&b, "\n## %s\n", day)
			currentDay = day
		}
		renderCandidate(&b, c, contested)
	}

	if len(conflicts) > 0 {
		fmt.Fprintf(&b, "\n## Conflicts\n\n")
		fmt.Fprintf(&b, "Slots with more than one relevant talk; pick in person.\n\n")
		for _, g := range conflicts {
			fmt.Fprintf(&b, "- %s at %s: %d talks overlap\n", g.Day, g.Time, len(g.Candidates))
		}
	}

	return b.String()
}

func renderCandidate(b *strings.Builder, c types.RankedCandidate, contested map[string]bool) {
	fmt.Fprintf(b, "\n### %s\n\n", c.Talk.Title)

	fmt.Fprintf(b, "- Time: %s\n", timeKey(c))
	if c.Talk.Location != "" {
		fmt.Fprintf(b, "- Location: %s\n", c.Talk.Location)
	}
	fmt.Fprintf(b, "- Type: %s\n", c.Talk.SessionType)
	fmt.Fprintf(b, "- Relevance: %.1f%%\n", c.Similarity*100)
	if len(c.Talk.Authors) > 0 {
		fmt.Fprintf(b, "- Authors: %s\n", strings.Join(c.Talk.Authors, ", "))
	}
	if len(c.MatchedAuthors) > 0 {
		fmt.Fprintf(b, "- Matched authors: %s\n", strings.Join(c.MatchedAuthors, ", "))
	}
	if key, ok := c.Talk.SlotKey(); ok && contested[key] {
		fmt.Fprintf(b, "- Note: conflicts with another selected talk in this slot\n")
	}

	if c.Talk.Abstract != "" {
		fmt.Fprintf(b, "\n%s\n", abstractPreview(c.Talk.Abstract))
	}
}

// abstractPreview truncates long abstracts so the schedule stays
// skimmable; the full text lives in the YAML export.
func abstractPreview(abstract string) string {
	const limit = 400
	if len(abstract) <= limit {
		return abstract
	}
	cut := strings.LastIndex(abstract[:limit], " ")
	if cut <= 0 {
		cut = limit
	}
	return abstract[:cut] + "…"
}
