// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/clue-extractor/pkg/types"
)

func TestNewLogger(t *testing.T) {
	l, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	l, err = newLogger(true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestExtractionConfigDefaults(t *testing.T) {
	cfg := extractionConfig()

	assert.Equal(t, "text.html", cfg.InputPath)
	assert.Equal(t, "out.csv", cfg.OutputPath)
	assert.Equal(t, types.FormatCSV, cfg.Format)
	assert.Equal(t, types.DefaultSelectors(), cfg.Selectors)
}

func TestAnswerConfigDefaults(t *testing.T) {
	assert.Equal(t, types.DefaultAnswerConfig(), answerConfig())
}

func TestCommandsRegistered(t *testing.T) {
	for _, path := range [][]string{
		{"extract"},
		{"answers"},
		{"archive", "store"},
		{"archive", "search"},
		{"archive", "export"},
		{"version"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestInitConfigReadsNestedKeysFromEnv(t *testing.T) {
	t.Setenv("CLUE_EXTRACTOR_INPUT_PATH", "chat.html")
	t.Setenv("CLUE_EXTRACTOR_SELECTORS_CONTAINER", "li.msg")
	t.Setenv("CLUE_EXTRACTOR_SELECTORS_ANNOTATION_ATTR", "data-meta")
	t.Setenv("CLUE_EXTRACTOR_ARCHIVE_DIR", "/tmp/clue-archive")
	t.Setenv("CLUE_EXTRACTOR_ANSWERS_MAX_DEPTH", "40")

	initConfig()

	cfg := extractionConfig()
	assert.Equal(t, "chat.html", cfg.InputPath)
	assert.Equal(t, "li.msg", cfg.Selectors.Container)
	assert.Equal(t, "data-meta", cfg.Selectors.AnnotationAttr)
	assert.Equal(t, types.DefaultSelectors().Text, cfg.Selectors.Text)
	assert.Equal(t, "/tmp/clue-archive", archiveConfig().Dir)
	assert.Equal(t, 40, answerConfig().MaxDepth)
}
