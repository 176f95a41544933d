// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/clue-extractor/internal/archive"
	"github.com/pdiddy/clue-extractor/internal/pipeline"
	"github.com/pdiddy/clue-extractor/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Keep clues from many chats in a searchable archive",
	Long: `Archive manages a local SQLite database of clues collected from
transcripts. Use subcommands to store a transcript's clues, search them,
or export them.`,
}

// --- store subcommand ---

var archiveStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Extract clues from the input chat and add them to the archive",
	Long: `Store runs the extraction on --input and records every clue under the
input path. Clues already archived from the same transcript are skipped,
so storing an unchanged chat twice adds nothing.`,
	RunE: runArchiveStore,
}

func runArchiveStore(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig()
	clues, summary, err := pipeline.Extract(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "extracted %d clue(s) from %d container(s)\n", summary.Clues, summary.Containers)

	store, err := archive.NewStore(archiveConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(context.Background(), cfg.InputPath, clues, os.Stdout)
	return err
}

// --- search subcommand ---

var archiveSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search archived clues by text, author, date or source",
	Long: `Search matches archived clues by a case-insensitive substring of the
clue text and/or author, an exact date, or the transcript they came from.`,
	RunE: runArchiveSearch,
}

func runArchiveSearch(cmd *cobra.Command, args []string) error {
	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --author, --date, or --source")
	}

	store, err := archive.NewStore(archiveConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []archive.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-8s  %-20s  %s\n", "#", "Date", "Time", "Author", "Clue")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for i, r := range results {
		author := r.Author
		if len(author) > 20 {
			author = author[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-10s  %-8s  %-20s  %s\n", i+1, r.Date, r.Time, author, r.Text)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var archiveExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export archived clues to YAML",
	Long: `Export writes archived clues to a YAML file. Supports the same filter
flags as search for partial exports.`,
	RunE: runArchiveExport,
}

func runArchiveExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")

	store, err := archive.NewStore(archiveConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ExportYAML(context.Background(), queryOptsFromFlags(cmd, args), out); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", out)
	return nil
}

// --- shared helpers ---

func archiveConfig() types.ArchiveConfig {
	return types.ArchiveConfig{
		Dir:        viper.GetString("archive.dir"),
		MaxResults: viper.GetInt("archive.max_results"),
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) archive.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}
	author, _ := cmd.Flags().GetString("author")
	date, _ := cmd.Flags().GetString("date")
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	return archive.QueryOptions{
		Query:      queryText,
		Author:     author,
		Date:       date,
		Source:     source,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	archiveCmd.PersistentFlags().String("archive-dir", "archive", "directory holding clues.db")
	archiveCmd.PersistentFlags().Int("max-results", 20, "default maximum number of search results")

	viper.SetDefault("archive.dir", "archive")
	viper.SetDefault("archive.max_results", 20)
	bindFlag("archive.dir", archiveCmd.PersistentFlags().Lookup("archive-dir"))
	bindFlag("archive.max_results", archiveCmd.PersistentFlags().Lookup("max-results"))

	// Filter flags shared by search and export.
	for _, c := range []*cobra.Command{archiveSearchCmd, archiveExportCmd} {
		c.Flags().String("query", "", "substring of the clue text")
		c.Flags().String("author", "", "substring of the author name")
		c.Flags().String("date", "", "exact date as written in the chat (e.g. 3/31/2019)")
		c.Flags().String("source", "", "transcript path the clues were stored from")
		c.Flags().Int("limit", 0, "maximum results (0 = use default)")
	}
	archiveSearchCmd.Flags().Bool("json", false, "output results as JSON")
	archiveExportCmd.Flags().StringP("output", "o", "archive-export.yaml", "destination YAML file")

	// Wire subcommands.
	archiveCmd.AddCommand(archiveStoreCmd)
	archiveCmd.AddCommand(archiveSearchCmd)
	archiveCmd.AddCommand(archiveExportCmd)

	rootCmd.AddCommand(archiveCmd)
}
