// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/conference-planner/internal/planner"
	"github.com/pdiddy/conference-planner/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract talk records from the conference abstract text",
	Long: `Extract scans the flattened abstract book for talk sections, recovers
title, authors, abstract, session type, and schedule metadata, and caches
the result. Unchanged source files reuse the cache on subsequent runs.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := plannerConfig(cmd)

	p, err := planner.New(cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	talks, err := p.ExtractTalks(context.Background(), sourcePath(cmd, cfg), os.Stderr)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatExtractOutput(talks, jsonOutput)
}

func formatExtractOutput(talks []types.Talk, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(talks)
	}

	for _, t := range talks {
		slot := t.Day
		if slot == "" {
			slot = "Unknown"
		}
		if t.Time != "" {
			slot += " at " + t.Time
		}
		fmt.Fprintf(os.Stdout, "%s  [%s]  %s  (%s)\n", t.ID, t.SessionType, t.Title, slot)
	}
	fmt.Fprintf(os.Stdout, "\n%d talks\n", len(talks))
	return nil
}

func init() {
	extractCmd.Flags().String("source", "", "conference text file (default: <conference-dir>/conference.txt)")
	extractCmd.Flags().Bool("json", false, "output talks as JSON")

	rootCmd.AddCommand(extractCmd)
}
