// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package answers

import (
	"regexp"
	"strings"
)

// positiveReplies are words a solver's peers use to confirm an answer.
var positiveReplies = map[string]bool{
	"👍": true, "👍🏻": true, "👍🏼": true, "👍🏽": true, "👍🏾": true, "👍🏿": true,
	"YES": true, "YESS": true, "YESSS": true,
	"YEAH": true, "YEAHH": true,
	"YUP": true, "YUPP": true, "YUPPP": true,
	"YEH": true, "YAH": true, "YAS": true,
	"YEP": true, "YEPP": true,
	"NICE": true, "ADHE": true, "ADHEY": true, "CORRECT": true,
}

// annotationMarks appear in messages that explain wordplay rather than
// propose an answer.
const annotationMarks = "-><~*+←"

var (
	punctRe    = regexp.MustCompile(`[&/\\#,+()$~%.'":*?<>{}!]`)
	nonAlphaRe = regexp.MustCompile(`[^a-zA-Z ]`)
)

// IsPositiveReply reports whether text contains a confirming word.
func IsPositiveReply(text string) bool {
	cleaned := strings.ToUpper(punctRe.ReplaceAllString(text, ""))
	for _, w := range strings.Fields(cleaned) {
		if positiveReplies[w] {
			return true
		}
	}
	return false
}

// IsAnnotation reports whether text looks like a wordplay breakdown.
func IsAnnotation(text string) bool {
	return strings.ContainsAny(text, annotationMarks)
}

// Candidates returns the runs of consecutive words in text whose letter
// counts spell out lengths, uppercased and space-joined. Runs do not
// overlap.
func Candidates(text string, lengths []int) []string {
	if len(lengths) == 0 {
		return nil
	}
	words := strings.Fields(strings.ToUpper(nonAlphaRe.ReplaceAllString(text, "")))

	var out []string
	for i := 0; i+len(lengths) <= len(words); {
		if fits(words[i:i+len(lengths)], lengths) {
			out = append(out, strings.Join(words[i:i+len(lengths)], " "))
			i += len(lengths)
			continue
		}
		i++
	}
	return out
}

func fits(words []string, lengths []int) bool {
	for j, w := range words {
		if len(w) != lengths[j] {
			return false
		}
	}
	return true
}
