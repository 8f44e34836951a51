// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the conference-planner CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/conference-planner/internal/profile"
	"github.com/pdiddy/conference-planner/internal/secrets"
	"github.com/pdiddy/conference-planner/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value
// for key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the conference-planner CLI.
var rootCmd = &cobra.Command{
	Use:   "conference-planner",
	Short: "Build a personalized conference schedule from an abstract book",
	Long: `conference-planner turns a flattened conference abstract book into a
personalized schedule. It extracts talk records from the text, embeds and
indexes them, ranks them against your research profile, and compiles a
chronological schedule with time-slot conflicts flagged.

Each pipeline stage is a subcommand: extract, index, and plan. Edit your
profile with the interests subcommand.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./conference-planner.yaml or ~/.config/conference-planner/config.yaml)")
	rootCmd.PersistentFlags().String("conference", "", "conference identifier (e.g. ASHG2026)")
	rootCmd.PersistentFlags().String("conference-dir", "", "working directory for the conference (default: ./conference)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("conference-planner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "conference-planner"))
		}
	}

	viper.SetEnvPrefix("CONFERENCE_PLANNER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// plannerConfig assembles the stage configuration from flags, the config
// file, and loaded secrets. Flags win over config values.
func plannerConfig(cmd *cobra.Command) types.PlannerConfig {
	conference, _ := cmd.Flags().GetString("conference")
	if conference == "" {
		conference = viper.GetString("conference")
	}

	dir, _ := cmd.Flags().GetString("conference-dir")
	if dir == "" {
		dir = viper.GetString("extraction.conference_dir")
	}
	if dir == "" {
		dir = "conference"
	}

	return types.PlannerConfig{
		Conference: conference,
		Extraction: types.ExtractionConfig{
			ConferenceDir:      dir,
			DefaultSessionType: types.SessionType(viper.GetString("extraction.default_session_type")),
		},
		Embedding: types.EmbeddingConfig{
			BaseURL: viper.GetString("embedding.base_url"),
			APIKey:  secretDefault(secrets.OpenAIAPIKey, viper.GetString("embedding.api_key")),
			Model:   viper.GetString("embedding.model"),
			Dim:     viper.GetInt("embedding.dim"),
		},
		Index: types.IndexConfig{
			Dir:        viper.GetString("index.dir"),
			Collection: viper.GetString("index.collection"),
		},
		Rank: types.RankConfig{
			TopK:              viper.GetInt("rank.top_k"),
			MinRelevanceScore: viper.GetFloat64("rank.min_relevance_score"),
			AuthorBoost:       viper.GetFloat64("rank.author_boost"),
		},
	}
}

// sourcePath resolves the conference text file: the --source flag when
// given, otherwise conference.txt in the conference directory.
func sourcePath(cmd *cobra.Command, cfg types.PlannerConfig) string {
	if src, _ := cmd.Flags().GetString("source"); src != "" {
		return src
	}
	return filepath.Join(cfg.Extraction.ConferenceDir, "conference.txt")
}

// profilePath resolves the research profile file: the --profile flag
// when given, otherwise research_interests.md in the conference directory.
func profilePath(cmd *cobra.Command, cfg types.PlannerConfig) string {
	if p, _ := cmd.Flags().GetString("profile"); p != "" {
		return p
	}
	return filepath.Join(cfg.Extraction.ConferenceDir, profile.DefaultFileName)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
