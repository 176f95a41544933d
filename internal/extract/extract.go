// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract walks the message containers of a parsed chat transcript
// and recovers Clue records from the ones shaped like crossword clues.
//
// Every structural absence (no text node, no author node, a non-clue text or
// an unparsable annotation) skips the container silently. Skips are counted
// in Result and logged at debug level; they never fail the run.
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"

	"github.com/pdiddy/clue-extractor/internal/document"
	"github.com/pdiddy/clue-extractor/internal/pattern"
	"github.com/pdiddy/clue-extractor/pkg/types"
)

const (
	deletedMessage = "This message was deleted"
	systemAuthor   = "System"

	// minClueRunes is the length a message line must exceed before the
	// answer search treats it as a clue; a bare "(5)" is a reply.
	minClueRunes = 6
)

// SkipReason names why a container produced no Clue.
type SkipReason string

const (
	SkipNoText        SkipReason = "no_text"
	SkipNotClue       SkipReason = "not_clue"
	SkipNoAuthor      SkipReason = "no_author"
	SkipBadAnnotation SkipReason = "bad_annotation"
)

// SkipCounts tallies skipped containers by reason.
type SkipCounts struct {
	NoText        int `json:"no_text" yaml:"no_text"`
	NotClue       int `json:"not_clue" yaml:"not_clue"`
	NoAuthor      int `json:"no_author" yaml:"no_author"`
	BadAnnotation int `json:"bad_annotation" yaml:"bad_annotation"`
}

// Total returns the number of skipped containers.
func (s SkipCounts) Total() int {
	return s.NoText + s.NotClue + s.NoAuthor + s.BadAnnotation
}

func (s *SkipCounts) add(r SkipReason) {
	switch r {
	case SkipNoText:
		s.NoText++
	case SkipNotClue:
		s.NotClue++
	case SkipNoAuthor:
		s.NoAuthor++
	case SkipBadAnnotation:
		s.BadAnnotation++
	}
}

// Result is the outcome of one extraction pass.
type Result struct {
	// Containers is the number of message containers visited.
	Containers int

	// Clues holds the extracted records in document order.
	Clues []types.Clue

	Skipped SkipCounts
}

// Extractor recovers clues using a fixed set of selectors.
type Extractor struct {
	container cascadia.Selector
	text      cascadia.Selector
	author    cascadia.Selector
	attr      string
	logger    *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for skip diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New compiles sel into an Extractor. Empty fields fall back to
// types.DefaultSelectors; an invalid selector is an error.
func New(sel types.Selectors, opts ...Option) (*Extractor, error) {
	def := types.DefaultSelectors()
	if sel.Container == "" {
		sel.Container = def.Container
	}
	if sel.Text == "" {
		sel.Text = def.Text
	}
	if sel.Author == "" {
		sel.Author = def.Author
	}
	if sel.AnnotationAttr == "" {
		sel.AnnotationAttr = def.AnnotationAttr
	}

	e := &Extractor{attr: sel.AnnotationAttr, logger: zap.NewNop()}

	var err error
	if e.container, err = compile("container", sel.Container); err != nil {
		return nil, err
	}
	if e.text, err = compile("text", sel.Text); err != nil {
		return nil, err
	}
	if e.author, err = compile("author", sel.Author); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func compile(role, selector string) (cascadia.Selector, error) {
	s, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compiling %s selector %q: %w", role, selector, err)
	}
	return s, nil
}

// Extract returns the clues of doc in document order.
func (e *Extractor) Extract(doc *document.Document) Result {
	var res Result
	doc.FindMatcher(e.container).Each(func(i int, c *goquery.Selection) {
		res.Containers++
		clue, reason, ok := e.clue(c)
		if !ok {
			res.Skipped.add(reason)
			e.logger.Debug("skipped container",
				zap.Int("index", i),
				zap.String("reason", string(reason)))
			return
		}
		res.Clues = append(res.Clues, clue)
	})

	e.logger.Debug("extraction finished",
		zap.Int("containers", res.Containers),
		zap.Int("clues", len(res.Clues)),
		zap.Int("skipped", res.Skipped.Total()))
	return res
}

func (e *Extractor) clue(c *goquery.Selection) (types.Clue, SkipReason, bool) {
	text, ok := e.messageText(c)
	if !ok {
		return types.Clue{}, SkipNoText, false
	}
	if _, ok := pattern.MatchEnumeration(text); !ok {
		return types.Clue{}, SkipNotClue, false
	}

	authorNode := c.FindMatcher(e.author).First()
	if authorNode.Length() == 0 {
		return types.Clue{}, SkipNoAuthor, false
	}
	ann, ok := e.annotation(authorNode)
	if !ok {
		return types.Clue{}, SkipBadAnnotation, false
	}

	return types.Clue{
		Time:   ann.Time,
		Date:   ann.Date,
		Author: ann.Author,
		Text:   text,
	}, "", true
}

func (e *Extractor) messageText(c *goquery.Selection) (string, bool) {
	node := c.FindMatcher(e.text).First()
	if node.Length() == 0 {
		return "", false
	}
	return node.Text(), true
}

func (e *Extractor) annotation(authorNode *goquery.Selection) (types.Annotation, bool) {
	raw, exists := authorNode.Attr(e.attr)
	if !exists {
		return types.Annotation{}, false
	}
	return pattern.ParseAnnotation(raw)
}

// Messages returns every text-bearing message of doc in document order,
// clue or not, with its annotation when one parses. A multi-line message
// yields one Message per non-empty line, all sharing its annotation.
// Deleted messages and system notices are dropped.
func (e *Extractor) Messages(doc *document.Document) []types.Message {
	var msgs []types.Message
	doc.FindMatcher(e.container).Each(func(_ int, c *goquery.Selection) {
		text, ok := e.messageText(c)
		if !ok || text == deletedMessage {
			return
		}

		var ann *types.Annotation
		if authorNode := c.FindMatcher(e.author).First(); authorNode.Length() > 0 {
			if a, ok := e.annotation(authorNode); ok {
				ann = &a
			}
		}
		if ann != nil && ann.Author == systemAuthor {
			return
		}

		for _, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			msgs = append(msgs, types.Message{
				Text:       line,
				Annotation: ann,
				IsClue:     isClueLine(line),
			})
		}
	})
	return msgs
}

func isClueLine(line string) bool {
	if utf8.RuneCountInString(line) <= minClueRunes {
		return false
	}
	_, ok := pattern.MatchEnumeration(line)
	return ok
}
