// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citescan CLI.
//
// citescan reads text and reports the legal citations it contains. The
// bare command is a stdin-to-stdout filter; subcommands extend the same
// engine to named files and to a persistent citation index.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citescan/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Invoked bare it runs the filter: read
// all of stdin, extract citations, write one JSON document to stdout.
var rootCmd = &cobra.Command{
	Use:   "citescan",
	Short: "Extract legal citations from text",
	Long: `citescan scans text for legal citations - case reporters, short-form
and Id./supra references, statutes, and law journal cites - and reports
each match with its position and citation type.

Invoked without a subcommand it acts as a filter: text on stdin, one
JSON document on stdout:

  {
    "citations": [
      {"text": "531 U.S. 98", "start": 18, "end": 29, "type": "FullCaseCitation"}
    ]
  }

Use the extract subcommand for named files, and index/query to build a
searchable citation database over a corpus.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citescan.yaml or ~/.config/citescan/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citescan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citescan"))
		}
	}

	viper.SetEnvPrefix("CITESCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// extractConfig builds the engine configuration from viper. Unknown
// labels in extract.disabled are reported on stderr and ignored.
func extractConfig() types.ExtractConfig {
	var cfg types.ExtractConfig
	for _, label := range viper.GetStringSlice("extract.disabled") {
		if !types.ValidCitationType(label) {
			fmt.Fprintf(os.Stderr, "warning: unknown citation type %q in extract.disabled\n", label)
			continue
		}
		cfg.DisabledTypes = append(cfg.DisabledTypes, types.CitationType(label))
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
