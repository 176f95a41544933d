// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Clue is a crossword clue recovered from one chat message. Field order is
// the column order of the output table.
type Clue struct {
	// Time is the wall-clock part of the message timestamp, as found (e.g. "4:12 PM").
	Time string `csv:"time" json:"time" yaml:"time"`

	// Date is the date part of the message timestamp, as found (e.g. "3/31/2019").
	Date string `csv:"date" json:"date" yaml:"date"`

	// Author is the sender name as captured from the annotation.
	Author string `csv:"author" json:"author" yaml:"author"`

	// Text is the full message body, enumeration included.
	Text string `csv:"text" json:"text" yaml:"text"`
}

// Annotation is the timestamp and sender carried by a message's
// pre-formatted "[time, date] author: " string.
type Annotation struct {
	Time   string `json:"time" yaml:"time"`
	Date   string `json:"date" yaml:"date"`
	Author string `json:"author" yaml:"author"`
}

// Message is one message container of the transcript in document order.
type Message struct {
	// Text is the message body.
	Text string `json:"text" yaml:"text"`

	// Annotation is nil when the container has no usable author annotation.
	Annotation *Annotation `json:"annotation,omitempty" yaml:"annotation,omitempty"`

	// IsClue reports whether Text passed the enumeration filter.
	IsClue bool `json:"is_clue" yaml:"is_clue"`
}

// Author returns the annotated sender or "" when the message has none.
func (m Message) Author() string {
	if m.Annotation == nil {
		return ""
	}
	return m.Annotation.Author
}

// Enumeration holds the answer word lengths of a clue, e.g. (4,5) -> [4 5].
type Enumeration []int

// Total returns the combined letter count of the answer.
func (e Enumeration) Total() int {
	total := 0
	for _, n := range e {
		total += n
	}
	return total
}

// ClueAnswers pairs a clue with the answers guessed from the conversation
// that follows it.
type ClueAnswers struct {
	Clue        Clue        `json:"clue" yaml:"clue"`
	Enumeration Enumeration `json:"enumeration" yaml:"enumeration"`

	// Answers holds up to three candidates, best first.
	Answers []string `json:"answers" yaml:"answers"`
}
