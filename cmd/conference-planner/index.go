// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pdiddy/conference-planner/internal/planner"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed extracted talks into the vector index",
	Long: `Index embeds each talk's searchable text with the configured embedding
model and stores the vectors in the local index. An index that already
holds the current talk set is left alone; otherwise it is rebuilt.

Requires an embedding API key in .secrets/openai-api-key or the
embedding.api_key config field.`,
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := plannerConfig(cmd)

	p, err := planner.New(cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx := context.Background()
	talks, err := p.ExtractTalks(ctx, sourcePath(cmd, cfg), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return p.IndexTalks(ctx, talks, cmd.OutOrStdout())
}

func init() {
	indexCmd.Flags().String("source", "", "conference text file (default: <conference-dir>/conference.txt)")

	rootCmd.AddCommand(indexCmd)
}
