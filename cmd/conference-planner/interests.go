// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/conference-planner/internal/profile"
)

var interestsCmd = &cobra.Command{
	Use:   "interests",
	Short: "Manage the research profile (init, show)",
	Long: `Interests manages the research_interests.md profile that drives
ranking: research focus statements, topics to exclude, authors of
interest, and optional supplementary text.`,
}

var interestsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter research profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := plannerConfig(cmd)
		path := profilePath(cmd, cfg)

		if err := os.MkdirAll(cfg.Extraction.ConferenceDir, 0o755); err != nil {
			return fmt.Errorf("creating conference directory: %w", err)
		}
		if err := profile.Init(path); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Created %s; edit it, then run \"conference-planner plan\"\n", path)
		return nil
	},
}

var interestsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the parsed research profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := plannerConfig(cmd)
		p, err := profile.Load(profilePath(cmd, cfg))
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Interests (%d):\n", len(p.Interests))
		for _, s := range p.Interests {
			fmt.Fprintf(os.Stdout, "  - %s\n", s)
		}
		fmt.Fprintf(os.Stdout, "Exclusion topics (%d):\n", len(p.ExclusionTopics))
		for _, s := range p.ExclusionTopics {
			fmt.Fprintf(os.Stdout, "  - %s\n", s)
		}
		fmt.Fprintf(os.Stdout, "Authors of interest (%d):\n", len(p.AuthorsOfInterest))
		for _, s := range p.AuthorsOfInterest {
			fmt.Fprintf(os.Stdout, "  - %s\n", s)
		}
		if p.SupplementaryText != "" {
			lines := len(strings.Split(p.SupplementaryText, "\n"))
			fmt.Fprintf(os.Stdout, "Supplementary text: %d line(s)\n", lines)
		}
		return nil
	},
}

func init() {
	interestsCmd.PersistentFlags().String("profile", "", "research profile file (default: <conference-dir>/research_interests.md)")

	interestsCmd.AddCommand(interestsInitCmd)
	interestsCmd.AddCommand(interestsShowCmd)

	rootCmd.AddCommand(interestsCmd)
}
