// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/clue-extractor/internal/export"
	"github.com/pdiddy/clue-extractor/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract clues from an exported chat into a table",
	Long: `Extract loads the exported chat HTML, keeps every message whose text
carries a crossword enumeration and whose author annotation parses, and
writes them with columns time, date, author, text.

Each clue is printed as it is found. Messages that do not qualify are
skipped silently; run with --verbose to see why each one was skipped.
If no clue qualifies, nothing is written and the command fails.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig()

	_, err := pipeline.Run(context.Background(), cfg, os.Stdout, logger)
	if errors.Is(err, export.ErrNoClues) {
		fmt.Fprintf(os.Stderr, "no clues found in %s; %s was not written\n", cfg.InputPath, cfg.OutputPath)
	}
	return err
}

func init() {
	extractCmd.Flags().StringP("output", "o", pipeline.DefaultOutputPath, "destination file")
	extractCmd.Flags().String("format", "csv", "output format: csv, yaml or json")

	viper.SetDefault("output_path", pipeline.DefaultOutputPath)
	viper.SetDefault("format", "csv")
	bindFlag("output_path", extractCmd.Flags().Lookup("output"))
	bindFlag("format", extractCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(extractCmd)
}
