// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the clue-extractor CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/clue-extractor/internal/pipeline"
	"github.com/pdiddy/clue-extractor/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from --verbose before any subcommand runs.
var logger = zap.NewNop()

// rootCmd is the base command for the clue-extractor CLI.
var rootCmd = &cobra.Command{
	Use:   "clue-extractor",
	Short: "Pull crossword clues out of exported WhatsApp chats",
	Long: `clue-extractor reads a chat transcript exported from WhatsApp Web as HTML,
keeps the messages that look like crossword clues (they end in an
enumeration such as "(5)" or "(4,5)"), and records who posted each clue
and when.

Subcommands extract clues to a table, guess answers from the replies that
follow each clue, and keep an archive of clues across transcripts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./clue-extractor.yaml or ~/.config/clue-extractor/config.yaml)")
	pf.BoolP("verbose", "v", false, "log every skipped message")
	pf.StringP("input", "i", pipeline.DefaultInputPath, "exported chat HTML file")
	pf.String("container-selector", "", "CSS selector for message containers")
	pf.String("text-selector", "", "CSS selector for the message text inside a container")
	pf.String("author-selector", "", "CSS selector for the author annotation node inside a container")
	pf.String("annotation-attr", "", "attribute of the author node holding \"[time, date] author: \"")

	def := types.DefaultSelectors()
	viper.SetDefault("input_path", pipeline.DefaultInputPath)
	viper.SetDefault("selectors.container", def.Container)
	viper.SetDefault("selectors.text", def.Text)
	viper.SetDefault("selectors.author", def.Author)
	viper.SetDefault("selectors.annotation_attr", def.AnnotationAttr)

	bindFlag("input_path", pf.Lookup("input"))
	bindFlag("selectors.container", pf.Lookup("container-selector"))
	bindFlag("selectors.text", pf.Lookup("text-selector"))
	bindFlag("selectors.author", pf.Lookup("author-selector"))
	bindFlag("selectors.annotation_attr", pf.Lookup("annotation-attr"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("clue-extractor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "clue-extractor"))
		}
	}

	viper.SetEnvPrefix("CLUE_EXTRACTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger writes human-readable diagnostics to stderr. Debug level
// reports each skipped container.
func newLogger(verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.Sampling = nil
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// extractionConfig assembles the pipeline settings from config file,
// environment and flags.
func extractionConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		InputPath:  viper.GetString("input_path"),
		OutputPath: viper.GetString("output_path"),
		Format:     types.OutputFormat(viper.GetString("format")),
		Selectors: types.Selectors{
			Container:      viper.GetString("selectors.container"),
			Text:           viper.GetString("selectors.text"),
			Author:         viper.GetString("selectors.author"),
			AnnotationAttr: viper.GetString("selectors.annotation_attr"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
