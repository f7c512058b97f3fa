// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citescan/internal/cite"
	"github.com/pdiddy/citescan/internal/reporters"
	"github.com/pdiddy/citescan/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract citations from files or stdin",
	Long: `Extract runs the citation engine over named files, or over stdin when
no files are given. A single input produces one citations document; with
multiple files the output is an object mapping each path to its document.

Use --type to keep only the listed citation families, e.g.
--type FullCaseCitation --type FullLawCitation.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	typeFilters, _ := cmd.Flags().GetStringSlice("type")
	outputPath, _ := cmd.Flags().GetString("output")

	keep := make(map[types.CitationType]bool, len(typeFilters))
	for _, label := range typeFilters {
		if !types.ValidCitationType(label) {
			return fmt.Errorf("unknown citation type %q: valid types are %v", label, types.CitationTypes)
		}
		keep[types.CitationType(label)] = true
	}

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	ex := cite.New(reporters.Default(), extractConfig())

	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		doc := extractDocument(ex, string(data), keep)
		return writeDocument(out, doc)
	}

	if len(args) == 1 {
		doc, err := extractFile(ex, args[0], keep)
		if err != nil {
			return err
		}
		return writeDocument(out, doc)
	}

	docs := make(map[string]types.Document, len(args))
	for _, path := range args {
		doc, err := extractFile(ex, path, keep)
		if err != nil {
			return err
		}
		docs[path] = doc
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func extractFile(ex *cite.Extractor, path string, keep map[types.CitationType]bool) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return extractDocument(ex, string(data), keep), nil
}

func extractDocument(ex *cite.Extractor, text string, keep map[types.CitationType]bool) types.Document {
	if text == "" {
		return types.NewDocument(nil)
	}

	citations := ex.Extract(text)
	if len(keep) > 0 {
		var filtered []types.Citation
		for _, c := range citations {
			if keep[c.Type] {
				filtered = append(filtered, c)
			}
		}
		citations = filtered
	}
	return types.NewDocument(citations)
}

func init() {
	extractCmd.Flags().StringSlice("type", nil, "keep only these citation types (repeatable)")
	extractCmd.Flags().String("output", "", "write output to file instead of stdout")

	rootCmd.AddCommand(extractCmd)
}
