// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/clue-extractor/pkg/types"
)

func TestMatchEnumeration(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantOK    bool
		wantGroup string
	}{
		{name: "single length", text: "Capital of France (5)", wantOK: true, wantGroup: "(5)"},
		{name: "multi word", text: "River in Egypt (4,4)", wantOK: true, wantGroup: "(4,4)"},
		{name: "group mid text", text: "Fish (3) - easy one", wantOK: true, wantGroup: "(3)"},
		{name: "three groups", text: "Long one (3,2,7)", wantOK: true, wantGroup: "(3,2,7)"},
		{name: "group only", text: "(6)", wantOK: true, wantGroup: "(6)"},
		{name: "no enumeration", text: "Hello there"},
		{name: "words in parens", text: "Nice (really nice)"},
		{name: "empty parens", text: "Sad face ()"},
		{name: "empty digit groups", text: "Odd (,)"},
		{name: "trailing comma", text: "Odd (4,)"},
		{name: "hyphen separated", text: "Hyphenated (4-5)"},
		{name: "multi line text", text: "First line (5)\nsecond line"},
		{name: "trailing newline", text: "Capital of France (5)\n", wantOK: true, wantGroup: "(5)"},
		{name: "trailing newline after suffix", text: "Fish (4) easy\n", wantOK: true, wantGroup: "(4)"},
		{name: "two trailing newlines", text: "Capital of France (5)\n\n"},
		{name: "group on second line", text: "first line\nCapital (5)"},
		{name: "empty", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := MatchEnumeration(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantGroup, m.Group)
				assert.Equal(t, tt.wantGroup, tt.text[m.Start:m.End])
			}
		})
	}
}

func TestParseEnumeration(t *testing.T) {
	tests := []struct {
		group  string
		want   types.Enumeration
		wantOK bool
	}{
		{group: "(5)", want: types.Enumeration{5}, wantOK: true},
		{group: "(4,5)", want: types.Enumeration{4, 5}, wantOK: true},
		{group: "(1,2,10)", want: types.Enumeration{1, 2, 10}, wantOK: true},
		{group: "()"},
		{group: "(4,)"},
		{group: "4,5"},
	}

	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			got, ok := ParseEnumeration(tt.group)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnnotation(t *testing.T) {
	t.Run("whatsapp format", func(t *testing.T) {
		a, ok := ParseAnnotation("[4:12 PM, 3/31/2019] Kuchu Gautham: ")
		require.True(t, ok)
		assert.Equal(t, types.Annotation{Time: "4:12 PM", Date: "3/31/2019", Author: "Kuchu Gautham"}, a)
	})

	t.Run("preview after colon is ignored", func(t *testing.T) {
		a, ok := ParseAnnotation("[09:05, 01/02/2020] +91 98450 12345: Capital of Spain (6)")
		require.True(t, ok)
		assert.Equal(t, "09:05", a.Time)
		assert.Equal(t, "01/02/2020", a.Date)
		assert.Equal(t, "+91 98450 12345", a.Author)
	})

	t.Run("internal whitespace kept", func(t *testing.T) {
		a, ok := ParseAnnotation("[4:12  PM, 3/31/2019] Mary  Ann: ")
		require.True(t, ok)
		assert.Equal(t, "4:12  PM", a.Time)
		assert.Equal(t, "Mary  Ann", a.Author)
	})

	for _, bad := range []string{
		"",
		"Kuchu Gautham: hi",
		"[4:12 PM 3/31/2019] Kuchu Gautham: ",
		"[4:12 PM, 3/31/2019] Kuchu Gautham",
		"4:12 PM, 3/31/2019] Kuchu Gautham: ",
	} {
		t.Run("reject "+bad, func(t *testing.T) {
			_, ok := ParseAnnotation(bad)
			assert.False(t, ok)
		})
	}
}
