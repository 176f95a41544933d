// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Selectors maps each semantic role in the exported chat markup to the CSS
// selector that finds it. The export format is not stable, so these live in
// configuration rather than code.
type Selectors struct {
	// Container selects one node per message (e.g. "div.vW7d1").
	Container string `json:"container" yaml:"container" mapstructure:"container"`

	// Text selects the text-bearing node inside a container (e.g. "span.selectable-text").
	Text string `json:"text" yaml:"text" mapstructure:"text"`

	// Author selects the annotation-bearing node inside a container (e.g. "div._3Usvm").
	Author string `json:"author" yaml:"author" mapstructure:"author"`

	// AnnotationAttr is the attribute of the author node holding
	// "[time, date] author: " (e.g. "data-pre-plain-text").
	AnnotationAttr string `json:"annotation_attr" yaml:"annotation_attr" mapstructure:"annotation_attr"`
}

// DefaultSelectors returns the markers used by the WhatsApp Web export.
func DefaultSelectors() Selectors {
	return Selectors{
		Container:      "div.vW7d1",
		Text:           "span.selectable-text",
		Author:         "div._3Usvm",
		AnnotationAttr: "data-pre-plain-text",
	}
}

// OutputFormat selects the serialization of extracted clues.
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatYAML OutputFormat = "yaml"
	FormatJSON OutputFormat = "json"
)

// ExtractionConfig holds settings for the extract pipeline.
type ExtractionConfig struct {
	// InputPath is the exported chat document (default "text.html").
	InputPath string `json:"input_path" yaml:"input_path" mapstructure:"input_path"`

	// OutputPath is the destination table (default "out.csv").
	OutputPath string `json:"output_path" yaml:"output_path" mapstructure:"output_path"`

	// Format selects csv, yaml or json output (default csv).
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	Selectors Selectors `json:"selectors" yaml:"selectors" mapstructure:"selectors"`
}

// ArchiveConfig holds settings for the clue archive.
type ArchiveConfig struct {
	// Dir is the directory containing clues.db (default "archive").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// AnswerConfig tunes how far the answer finder looks past each clue.
type AnswerConfig struct {
	// InitialDepth is the first search window of the early-exit pass (default 7).
	InitialDepth int `json:"initial_depth" yaml:"initial_depth" mapstructure:"initial_depth"`

	// MaxDepth bounds the early-exit pass (default 20).
	MaxDepth int `json:"max_depth" yaml:"max_depth" mapstructure:"max_depth"`

	// RetryDepth is the first window of the exhaustive second pass (default 10).
	RetryDepth int `json:"retry_depth" yaml:"retry_depth" mapstructure:"retry_depth"`

	// RetryMaxDepth bounds the second pass (default 35).
	RetryMaxDepth int `json:"retry_max_depth" yaml:"retry_max_depth" mapstructure:"retry_max_depth"`

	// Step is how much a window grows when it finds nothing (default 5).
	Step int `json:"step" yaml:"step" mapstructure:"step"`

	// MaxAnswers caps the candidates kept per clue (default 3).
	MaxAnswers int `json:"max_answers" yaml:"max_answers" mapstructure:"max_answers"`
}

// DefaultAnswerConfig returns the search windows that work well on real chats.
func DefaultAnswerConfig() AnswerConfig {
	return AnswerConfig{
		InitialDepth:  7,
		MaxDepth:      20,
		RetryDepth:    10,
		RetryMaxDepth: 35,
		Step:          5,
		MaxAnswers:    3,
	}
}
