// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/clue-extractor/internal/answers"
	"github.com/pdiddy/clue-extractor/internal/export"
	"github.com/pdiddy/clue-extractor/internal/pipeline"
	"github.com/pdiddy/clue-extractor/pkg/types"
)

var answersCmd = &cobra.Command{
	Use:   "answers",
	Short: "Guess answers to each clue from the replies that follow it",
	Long: `Answers reads the whole conversation, and for every clue looks at the
messages that follow it for words whose lengths fit the enumeration. A
confirming reply such as "yes!" or a thumbs-up pins the attempt just
before it. Up to three candidates are kept per clue.

Output columns: date, author, clue, enum, enum_total, answer1-3.`,
	RunE: runAnswers,
}

func runAnswers(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("output")

	msgs, err := pipeline.Messages(extractionConfig(), logger)
	if err != nil {
		return err
	}

	results := answers.NewFinder(answerConfig()).Find(msgs)

	solved := 0
	for _, r := range results {
		guess := "-"
		if len(r.Answers) > 0 {
			guess = strings.Join(r.Answers, " / ")
			solved++
		}
		fmt.Fprintf(os.Stdout, "%s  =>  %s\n", r.Clue.Text, guess)
	}
	fmt.Fprintf(os.Stdout, "\nclues: %d, with answers: %d\n", len(results), solved)

	if err := export.WriteAnswersCSV(results, out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
	return nil
}

func answerConfig() types.AnswerConfig {
	return types.AnswerConfig{
		InitialDepth:  viper.GetInt("answers.initial_depth"),
		MaxDepth:      viper.GetInt("answers.max_depth"),
		RetryDepth:    viper.GetInt("answers.retry_depth"),
		RetryMaxDepth: viper.GetInt("answers.retry_max_depth"),
		Step:          viper.GetInt("answers.step"),
		MaxAnswers:    viper.GetInt("answers.max_answers"),
	}
}

func init() {
	answersCmd.Flags().StringP("output", "o", "answers.csv", "destination CSV file")
	answersCmd.Flags().Int("depth", 0, "first search window in messages (default 7)")

	def := types.DefaultAnswerConfig()
	viper.SetDefault("answers.initial_depth", def.InitialDepth)
	viper.SetDefault("answers.max_depth", def.MaxDepth)
	viper.SetDefault("answers.retry_depth", def.RetryDepth)
	viper.SetDefault("answers.retry_max_depth", def.RetryMaxDepth)
	viper.SetDefault("answers.step", def.Step)
	viper.SetDefault("answers.max_answers", def.MaxAnswers)
	bindFlag("answers.initial_depth", answersCmd.Flags().Lookup("depth"))

	rootCmd.AddCommand(answersCmd)
}
