// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pattern holds the two micro-grammars of a chat export: the
// crossword enumeration that marks a message as a clue, and the
// "[time, date] author: " annotation that WhatsApp attaches to each message.
package pattern

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/clue-extractor/pkg/types"
)

var (
	// clueRe requires the whole single-line text to contain a parenthesized
	// group of comma-separated digit runs, e.g. "(5)" or "(4,5)". Every group
	// needs at least one digit, so "()" and "(,)" do not qualify. One trailing
	// newline is allowed; interior newlines are not.
	clueRe = regexp.MustCompile(`^.*(\(\d+(?:,\d+)*\)).*\n?$`)

	// enumRe finds a standalone enumeration group.
	enumRe = regexp.MustCompile(`^\((\d+(?:,\d+)*)\)$`)

	// annotationRe splits "[4:12 PM, 3/31/2019] Kuchu Gautham: " into time,
	// date and author. Anything after the colon is a message preview.
	annotationRe = regexp.MustCompile(`^\[([^\],]*),\s*([^\]]*)\] ([^:]*):`)
)

// EnumerationMatch is a successful enumeration filter result.
type EnumerationMatch struct {
	// Group is the matched parenthesized substring, e.g. "(4,5)".
	Group string

	// Start and End are the byte offsets of Group within the text.
	Start, End int
}

// MatchEnumeration reports whether text is shaped like a crossword clue.
// When more than one group is present the last one is reported.
func MatchEnumeration(text string) (EnumerationMatch, bool) {
	loc := clueRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return EnumerationMatch{}, false
	}
	return EnumerationMatch{
		Group: text[loc[2]:loc[3]],
		Start: loc[2],
		End:   loc[3],
	}, true
}

// ParseEnumeration converts a group such as "(4,5)" into its word lengths.
func ParseEnumeration(group string) (types.Enumeration, bool) {
	m := enumRe.FindStringSubmatch(group)
	if m == nil {
		return nil, false
	}
	parts := strings.Split(m[1], ",")
	enum := make(types.Enumeration, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		enum = append(enum, n)
	}
	return enum, true
}

// ParseAnnotation splits a pre-formatted annotation string into its parts.
// Delimiters are dropped; whitespace inside each part is kept.
func ParseAnnotation(s string) (types.Annotation, bool) {
	m := annotationRe.FindStringSubmatch(s)
	if m == nil {
		return types.Annotation{}, false
	}
	return types.Annotation{
		Time:   m[1],
		Date:   m[2],
		Author: m[3],
	}, true
}
