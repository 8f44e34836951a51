// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/conference-planner/pkg/types"
)

// Export is the serialized form of a compiled schedule.
type Export struct {
	GeneratedAt time.Time               `json:"generated_at" yaml:"generated_at"`
	TalkCount   int                     `json:"talk_count" yaml:"talk_count"`
	Candidates  []types.RankedCandidate `json:"candidates" yaml:"candidates"`
	Conflicts   []types.ConflictGroup   `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
}

// WriteYAML writes the compiled schedule to path as YAML.
func WriteYAML(path string, candidates []types.RankedCandidate, conflicts []types.ConflictGroup) error {
	export := Export{
		GeneratedAt: timeNow(),
		TalkCount:   len(candidates),
		Candidates:  candidates,
		Conflicts:   conflicts,
	}
	data, err := yaml.Marshal(export)
	if err != nil {
		return fmt.Errorf("marshaling schedule: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteMarkdown writes the rendered schedule to path.
func WriteMarkdown(path string, candidates []types.RankedCandidate, conflicts []types.ConflictGroup) error {
	return os.WriteFile(path, []byte(RenderMarkdown(candidates, conflicts)), 0o644)
}
