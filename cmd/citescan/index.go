// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citescan/internal/cite"
	"github.com/pdiddy/citescan/internal/index"
	"github.com/pdiddy/citescan/internal/reporters"
	"github.com/pdiddy/citescan/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index <files...>",
	Short: "Extract citations from files into a searchable SQLite index",
	Long: `Index extracts citations from each file and ingests them into a SQLite
database with FTS5 indexing at <index-dir>/citescan.db. Files unchanged
since the last run are skipped; changed files are re-extracted and their
old citations replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	ex := cite.New(reporters.Default(), extractConfig())

	summary, err := store.Ingest(context.Background(), ex, args, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// indexConfig resolves index settings from flags, falling back to viper.
func indexConfig(cmd *cobra.Command) types.IndexConfig {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = viper.GetString("index.dir")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = viper.GetInt("index.max_results")
	}

	return types.IndexConfig{
		IndexDir:   indexDir,
		MaxResults: maxResults,
	}
}

func init() {
	indexCmd.Flags().String("index-dir", "", "directory for the citation index database (default \"index\")")
	indexCmd.Flags().Int("max-results", 0, "default maximum number of query results")

	rootCmd.AddCommand(indexCmd)
}
