// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/clue-extractor/pkg/types"
)

// QueryOptions holds parameters for archive queries. Text filters are
// case-insensitive substring matches.
type QueryOptions struct {
	// Query matches against the clue text.
	Query string

	// Author matches against the clue author.
	Author string

	// Date must equal the clue date exactly.
	Date string

	// Source must equal the transcript the clue came from.
	Source string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Author == "" && q.Date == "" && q.Source == ""
}

// QueryResult is an archived clue with its provenance.
type QueryResult struct {
	types.Clue `yaml:",inline"`
	ID         string `json:"id" yaml:"id"`
	Source     string `json:"source" yaml:"source"`
}

// Retrieve returns archived clues matching opts, ordered by source and
// then by the order they were archived in.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, source, time, date, author, text FROM clues WHERE 1=1`)

	if opts.Query != "" {
		qb.WriteString(` AND lower(text) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(opts.Query))
	}
	if opts.Author != "" {
		qb.WriteString(` AND lower(author) LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(opts.Author))
	}
	if opts.Date != "" {
		qb.WriteString(` AND date = ?`)
		args = append(args, opts.Date)
	}
	if opts.Source != "" {
		qb.WriteString(` AND source = ?`)
		args = append(args, opts.Source)
	}

	qb.WriteString(` ORDER BY source, rowid LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var r QueryResult
		if err := rows.Scan(&r.ID, &r.Source, &r.Time, &r.Date, &r.Author, &r.Text); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// likePattern wraps term for a substring LIKE match, escaping wildcards.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

const exportLimit = 100000

// ExportYAML writes every clue matching opts to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions, path string) error {
	opts.MaxResults = exportLimit
	results, err := s.Retrieve(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	if results == nil {
		results = []QueryResult{}
	}

	data, err := yaml.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
