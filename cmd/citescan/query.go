// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citescan/internal/index"
	"github.com/pdiddy/citescan/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [terms]",
	Short: "Search the citation index",
	Long: `Query searches the citation index using FTS5 full-text search over
citation text, structured filters (--type, --file), or a combination.
Results include the source file path and the citation's position in it.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms, --type, or --file")
	}

	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Query(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []index.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-40s  %-30s  %s\n",
		"Rank", "Type", "Text", "File", "Span")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 104))

	for i, r := range results {
		text := r.Text
		if len(text) > 40 {
			text = text[:37] + "..."
		}
		path := r.Path
		if len(path) > 30 {
			path = "..." + path[len(path)-27:]
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-40s  %-30s  %d-%d\n",
			i+1, r.Type, text, path, r.Start, r.End)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) index.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	citType, _ := cmd.Flags().GetString("type")
	path, _ := cmd.Flags().GetString("file")
	limit, _ := cmd.Flags().GetInt("limit")

	return index.QueryOptions{
		Query:      queryText,
		Type:       types.CitationType(citType),
		Path:       path,
		MaxResults: limit,
	}
}

func init() {
	queryCmd.Flags().String("query", "", "full-text search query over citation text")
	queryCmd.Flags().String("type", "", "filter by citation type, e.g. FullCaseCitation")
	queryCmd.Flags().String("file", "", "filter by source file path")
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	queryCmd.Flags().String("index-dir", "", "directory for the citation index database (default \"index\")")
	queryCmd.Flags().Int("max-results", 0, "default maximum number of query results")

	rootCmd.AddCommand(queryCmd)
}
