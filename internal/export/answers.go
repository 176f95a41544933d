// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"strconv"
	"strings"

	"github.com/pdiddy/clue-extractor/pkg/types"
)

// answerRow is the flat table shape of one types.ClueAnswers.
type answerRow struct {
	Date      string `csv:"date"`
	Author    string `csv:"author"`
	Clue      string `csv:"clue"`
	Enum      string `csv:"enum"`
	EnumTotal int    `csv:"enum_total"`
	Answer1   string `csv:"answer1"`
	Answer2   string `csv:"answer2"`
	Answer3   string `csv:"answer3"`
}

// WriteAnswersCSV writes one row per clue with its enumeration and up to
// three guessed answers.
func WriteAnswersCSV(records []types.ClueAnswers, path string) error {
	rows := make([]answerRow, len(records))
	for i, r := range records {
		rows[i] = answerRow{
			Date:      r.Clue.Date,
			Author:    r.Clue.Author,
			Clue:      r.Clue.Text,
			Enum:      formatEnumeration(r.Enumeration),
			EnumTotal: r.Enumeration.Total(),
			Answer1:   nth(r.Answers, 0),
			Answer2:   nth(r.Answers, 1),
			Answer3:   nth(r.Answers, 2),
		}
	}
	return writeTable(rows, path)
}

// formatEnumeration renders [4 5] as "(4,5)".
func formatEnumeration(e types.Enumeration) string {
	parts := make([]string, len(e))
	for i, n := range e {
		parts[i] = strconv.Itoa(n)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func nth(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
