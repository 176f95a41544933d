// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package answers guesses the solution of each clue from the conversation
// that follows it. Solvers reply with attempts; an attempt whose word
// lengths fit the clue's enumeration is a candidate, and a confirming reply
// ("yes!", 👍) pins the most recent fitting attempt.
package answers

import (
	"github.com/pdiddy/clue-extractor/internal/pattern"
	"github.com/pdiddy/clue-extractor/pkg/types"
)

// Finder scans message histories for answers.
type Finder struct {
	cfg types.AnswerConfig
}

// NewFinder returns a Finder; zero fields of cfg take their defaults.
func NewFinder(cfg types.AnswerConfig) *Finder {
	def := types.DefaultAnswerConfig()
	if cfg.InitialDepth <= 0 {
		cfg.InitialDepth = def.InitialDepth
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if cfg.RetryDepth <= 0 {
		cfg.RetryDepth = def.RetryDepth
	}
	if cfg.RetryMaxDepth <= 0 {
		cfg.RetryMaxDepth = def.RetryMaxDepth
	}
	if cfg.Step <= 0 {
		cfg.Step = def.Step
	}
	if cfg.MaxAnswers <= 0 {
		cfg.MaxAnswers = def.MaxAnswers
	}
	return &Finder{cfg: cfg}
}

// Find returns one entry per annotated clue message in msgs, in order.
// Clue messages without an annotation still bound other clues' searches
// but produce no entry.
func (f *Finder) Find(msgs []types.Message) []types.ClueAnswers {
	var out []types.ClueAnswers
	for i, m := range msgs {
		if !m.IsClue || m.Annotation == nil {
			continue
		}
		enum := enumerationOf(m.Text)
		if len(enum) == 0 {
			continue
		}

		found := f.widen(msgs, i, enum, f.cfg.InitialDepth, f.cfg.MaxDepth, true)
		if len(found) == 0 {
			found = f.widen(msgs, i, enum, f.cfg.RetryDepth, f.cfg.RetryMaxDepth, false)
		}

		out = append(out, types.ClueAnswers{
			Clue: types.Clue{
				Time:   m.Annotation.Time,
				Date:   m.Annotation.Date,
				Author: m.Annotation.Author,
				Text:   m.Text,
			},
			Enumeration: enum,
			Answers:     found,
		})
	}
	return out
}

// widen scans with a growing window until something is found or the
// window reaches limit.
func (f *Finder) widen(msgs []types.Message, i int, enum types.Enumeration, depth, limit int, earlyExit bool) []string {
	found := f.scan(msgs, i, enum, depth, earlyExit)
	for len(found) == 0 && depth < limit {
		depth += f.cfg.Step
		found = f.scan(msgs, i, enum, depth, earlyExit)
	}
	return found
}

// scan looks at msgs[i+1 : i+depth] for answers to the clue at i.
func (f *Finder) scan(msgs []types.Message, i int, enum types.Enumeration, depth int, earlyExit bool) []string {
	limit := min(i+depth, len(msgs))

	var possible []string
	for j := i + 1; j < limit; j++ {
		if msgs[j].IsClue {
			continue
		}
		text := msgs[j].Text

		if earlyExit && IsPositiveReply(text) && j > i+2 {
			possible = nil
			for k := j - 1; k > i; k-- {
				if msgs[k].IsClue || IsAnnotation(msgs[k].Text) {
					continue
				}
				if c := Candidates(msgs[k].Text, enum); len(c) > 0 {
					possible = c
					break
				}
			}
			break
		}

		possible = append(possible, Candidates(text, enum)...)
	}
	return rank(possible, f.cfg.MaxAnswers)
}

// rank keeps the most repeated candidates in first-seen order, dropping
// confirmations that happen to fit the enumeration.
func rank(candidates []string, limit int) []string {
	counts := make(map[string]int)
	var order []string
	best := 0
	for _, c := range candidates {
		if IsPositiveReply(c) {
			continue
		}
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
		best = max(best, counts[c])
	}

	var out []string
	for _, c := range order {
		if counts[c] == best {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func enumerationOf(text string) types.Enumeration {
	m, ok := pattern.MatchEnumeration(text)
	if !ok {
		return nil
	}
	enum, _ := pattern.ParseEnumeration(m.Group)
	return enum
}
