// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citescan/internal/reporters"
)

var reportersCmd = &cobra.Command{
	Use:   "reporters",
	Short: "List the reporter, code, and journal abbreviations in use",
	Long: `Reporters prints the abbreviation tables the citation grammar matches
against: case reporters, statutory codes, and law journals, with the
spelling variants accepted for each.`,
	RunE: runReporters,
}

func runReporters(cmd *cobra.Command, args []string) error {
	table, err := reporters.Load()
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	}

	printFamily("Reporters", table.Reporters)
	printFamily("Laws", table.Laws)
	printFamily("Journals", table.Journals)
	return nil
}

func printFamily(heading string, entries []reporters.Entry) {
	fmt.Printf("%s (%d):\n", heading, len(entries))
	for _, e := range entries {
		fmt.Printf("  %-16s  %s\n", e.Cite, e.Name)
	}
	fmt.Println()
}

func init() {
	reportersCmd.Flags().Bool("json", false, "output tables as JSON")

	rootCmd.AddCommand(reportersCmd)
}
