// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/clue-extractor/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	store, err := NewStore(types.ArchiveConfig{
		Dir:        filepath.Join(tmpDir, "archive"),
		MaxResults: 20,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

func sampleClues() []types.Clue {
	return []types.Clue{
		{Time: "4:12 PM", Date: "3/31/2019", Author: "Kuchu Gautham", Text: "Capital of Spain (6)"},
		{Time: "4:30 PM", Date: "3/31/2019", Author: "Asha", Text: "River in Egypt (4,4)"},
		{Time: "9:00 AM", Date: "4/1/2019", Author: "Kuchu Gautham", Text: "Spanish dance (8)"},
	}
}

func ingestHelper(t *testing.T, store *Store, source string, clues []types.Clue) IngestSummary {
	t.Helper()
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), source, clues, &buf)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	return summary
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	for _, table := range []string{"clues", "sources"} {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	_, tmpDir := testSetup(t)

	dbPath := filepath.Join(tmpDir, "archive", dbFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}
}

// --- ingest tests ---

func TestIngest(t *testing.T) {
	store, _ := testSetup(t)

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), "text.html", sampleClues(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Stored != 3 {
		t.Errorf("Stored = %d, want 3", summary.Stored)
	}
	if summary.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", summary.Skipped)
	}
	if !strings.Contains(buf.String(), "archived text.html: stored: 3, skipped: 0") {
		t.Errorf("summary output = %q", buf.String())
	}
}

func TestIngestSkipsDuplicates(t *testing.T) {
	store, _ := testSetup(t)

	ingestHelper(t, store, "text.html", sampleClues())
	summary := ingestHelper(t, store, "text.html", sampleClues())

	if summary.Stored != 0 || summary.Skipped != 3 {
		t.Errorf("second run = %+v, want 0 stored, 3 skipped", summary)
	}
	if summary.Total() != 3 {
		t.Errorf("Total = %d, want 3", summary.Total())
	}
}

func TestIngestSameClueDifferentSource(t *testing.T) {
	store, _ := testSetup(t)

	ingestHelper(t, store, "march.html", sampleClues()[:1])
	summary := ingestHelper(t, store, "april.html", sampleClues()[:1])

	if summary.Stored != 1 {
		t.Errorf("Stored = %d, want 1", summary.Stored)
	}
}

func TestStableID(t *testing.T) {
	c := sampleClues()[0]
	a := stableID("text.html", c)
	if a != stableID("text.html", c) {
		t.Error("stableID should be deterministic")
	}
	if len(a) != 16 {
		t.Errorf("len = %d, want 16", len(a))
	}
	if a == stableID("other.html", c) {
		t.Error("stableID should depend on source")
	}
}

// --- retrieve tests ---

func TestRetrieve(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "text.html", sampleClues())

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{
			name: "text substring is case-insensitive",
			opts: QueryOptions{Query: "spAIn"},
			want: []string{"Capital of Spain (6)"},
		},
		{
			name: "author filter",
			opts: QueryOptions{Author: "kuchu"},
			want: []string{"Capital of Spain (6)", "Spanish dance (8)"},
		},
		{
			name: "date filter",
			opts: QueryOptions{Date: "4/1/2019"},
			want: []string{"Spanish dance (8)"},
		},
		{
			name: "combined filters",
			opts: QueryOptions{Query: "span", Author: "Kuchu", Date: "4/1/2019"},
			want: []string{"Spanish dance (8)"},
		},
		{
			name: "source filter",
			opts: QueryOptions{Source: "text.html", MaxResults: 2},
			want: []string{"Capital of Spain (6)", "River in Egypt (4,4)"},
		},
		{
			name: "wildcards are literal",
			opts: QueryOptions{Query: "%"},
		},
		{
			name: "no results",
			opts: QueryOptions{Query: "nonexistent xyz123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Retrieve(context.Background(), tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, r := range results {
				got = append(got, r.Text)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRetrieveIncludesProvenance(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "text.html", sampleClues()[:1])

	results, err := store.Retrieve(context.Background(), QueryOptions{Query: "capital"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Source != "text.html" || r.Author != "Kuchu Gautham" || r.Time != "4:12 PM" || r.Date != "3/31/2019" {
		t.Errorf("unexpected result %+v", r)
	}
	if r.ID != stableID("text.html", sampleClues()[0]) {
		t.Errorf("ID = %s, want stable ID", r.ID)
	}
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	if !(QueryOptions{}).IsEmpty() {
		t.Error("empty QueryOptions should report IsEmpty() = true")
	}
	if (QueryOptions{Author: "a"}).IsEmpty() {
		t.Error("author filter should make the query non-empty")
	}
}

// --- export tests ---

func TestExportYAML(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, "text.html", sampleClues())

	path := filepath.Join(tmpDir, "export.yaml")
	if err := store.ExportYAML(context.Background(), QueryOptions{Author: "asha"}, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []map[string]any
	if err := yaml.Unmarshal(data, &entries); err != nil {
		t.Fatalf("parsing export: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0]["text"] != "River in Egypt (4,4)" || entries[0]["source"] != "text.html" {
		t.Errorf("unexpected entry %v", entries[0])
	}
}
