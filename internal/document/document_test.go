// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "text.html")
	require.NoError(t, os.WriteFile(path, []byte(`<html><body><div class="msg">hi</div></body></html>`), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, d.Path)
	assert.Equal(t, 1, d.Find("div.msg").Length())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResource)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_ReadFailure(t *testing.T) {
	_, err := Parse(failingReader{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResource)
}

func TestParse_Lenient(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   int
	}{
		{name: "unclosed tags", markup: `<div class="msg"><span>one<div class="msg">two`, want: 2},
		{name: "fragment without html element", markup: `<div class="msg">x</div>`, want: 1},
		{name: "stray closing tags", markup: `</p></div><div class="msg">y</div></span>`, want: 1},
		{name: "empty input", markup: ``, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(strings.NewReader(tt.markup))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Find("div.msg").Length())
			assert.Empty(t, d.Path)
		})
	}
}
