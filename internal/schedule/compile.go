// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule orders ranked candidates into a chronological
// conference schedule and surfaces time-slot conflicts. Conflicts are
// informational only: every candidate stays in the schedule regardless
// of overlap.
package schedule

import (
	"sort"

	"github.com/pdiddy/conference-planner/pkg/types"
)

// unknownSlot stands in for a missing day or time when ordering, so
// talks without schedule metadata sort together rather than
// interleaving with placed talks.
const unknownSlot = "Unknown"

// Sort orders candidates chronologically in place: by day, then time,
// then descending similarity within a slot. Missing days and times sort
// under the Unknown placeholder.
func Sort(candidates []types.RankedCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := dayKey(candidates[i]), dayKey(candidates[j])
		if di != dj {
			return di < dj
		}
		ti, tj := timeKey(candidates[i]), timeKey(candidates[j])
		if ti != tj {
			return ti < tj
		}
		return candidates[i].Similarity > candidates[j].Similarity
	})
}

// DetectConflicts groups candidates that share a fully-specified
// day/time slot. Groups hold two or more candidates ordered by
// descending similarity; candidates missing either field never
// conflict. Groups come back ordered by day then time.
func DetectConflicts(candidates []types.RankedCandidate) []types.ConflictGroup {
	slots := make(map[string][]types.RankedCandidate)
	for _, c := range candidates {
		key, ok := c.Talk.SlotKey()
		if !ok {
			continue
		}
		slots[key] = append(slots[key], c)
	}

	var groups []types.ConflictGroup
	for _, members := range slots {
		if len(members) < 2 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Similarity > members[j].Similarity
		})
		groups = append(groups, types.ConflictGroup{
			Day:        members[0].Talk.Day,
			Time:       members[0].Talk.Time,
			Candidates: members,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Day != groups[j].Day {
			return groups[i].Day < groups[j].Day
		}
		return groups[i].Time < groups[j].Time
	})
	return groups
}

// Compile sorts candidates chronologically and detects slot conflicts
// in one pass over the ranked results.
func Compile(candidates []types.RankedCandidate) []types.ConflictGroup {
	Sort(candidates)
	return DetectConflicts(candidates)
}

func dayKey(c types.RankedCandidate) string {
	if c.Talk.Day == "" {
		return unknownSlot
	}
	return c.Talk.Day
}

func timeKey(c types.RankedCandidate) string {
	if c.Talk.Time == "" {
		return unknownSlot
	}
	return c.Talk.Time
}
