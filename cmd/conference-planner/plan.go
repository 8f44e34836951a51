// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/conference-planner/internal/planner"
	"github.com/pdiddy/conference-planner/internal/profile"
	"github.com/pdiddy/conference-planner/internal/schedule"
	"github.com/pdiddy/conference-planner/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compile a personalized schedule from the indexed talks",
	Long: `Plan runs the full pipeline: extract (or reuse cached) talks, embed and
index them, rank against the research profile, and compile the schedule.
It writes schedule.md and schedule.yaml to the conference directory and
prints a summary.

The research profile is read from research_interests.md in the conference
directory; create one with "conference-planner interests init".`,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg := plannerConfig(cmd)

	prof, err := profile.Load(profilePath(cmd, cfg))
	if err != nil {
		return fmt.Errorf("no research profile: %w (run \"conference-planner interests init\")", err)
	}

	p, err := planner.New(cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	candidates, conflicts, err := p.Run(context.Background(), sourcePath(cmd, cfg), prof, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(schedule.Export{
			GeneratedAt: time.Now(),
			TalkCount:   len(candidates),
			Candidates:  candidates,
			Conflicts:   conflicts,
		})
	}

	dir := cfg.Extraction.ConferenceDir
	mdPath := filepath.Join(dir, "schedule.md")
	yamlPath := filepath.Join(dir, "schedule.yaml")

	if err := schedule.WriteMarkdown(mdPath, candidates, conflicts); err != nil {
		return fmt.Errorf("writing schedule markdown: %w", err)
	}
	if err := schedule.WriteYAML(yamlPath, candidates, conflicts); err != nil {
		return fmt.Errorf("writing schedule YAML: %w", err)
	}

	printPlanSummary(candidates, conflicts, mdPath)
	return nil
}

func printPlanSummary(candidates []types.RankedCandidate, conflicts []types.ConflictGroup, mdPath string) {
	fmt.Fprintf(os.Stdout, "%d talks in schedule, %d slot conflicts\n", len(candidates), len(conflicts))
	for _, g := range conflicts {
		fmt.Fprintf(os.Stdout, "  conflict: %s at %s (%d talks)\n", g.Day, g.Time, len(g.Candidates))
	}
	fmt.Fprintf(os.Stdout, "Schedule written to %s\n", mdPath)
}

func init() {
	planCmd.Flags().String("source", "", "conference text file (default: <conference-dir>/conference.txt)")
	planCmd.Flags().String("profile", "", "research profile file (default: <conference-dir>/research_interests.md)")
	planCmd.Flags().Bool("json", false, "output the schedule as JSON instead of writing files")

	rootCmd.AddCommand(planCmd)
}
