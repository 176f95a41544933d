// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes extracted clues to tabular (CSV), YAML or JSON
// files. Every writer replaces its target atomically: output goes to a
// temporary file in the same directory and is renamed into place only once
// it is complete, so a failed run never leaves a partial file behind.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/clue-extractor/pkg/types"
)

// ErrNoClues reports that there is nothing to write. A table's header comes
// from its first record, so an empty sequence has no header either.
var ErrNoClues = errors.New("no clues found")

// Write serializes records to path in the given format. An empty format
// means CSV.
func Write(records []types.Clue, path string, format types.OutputFormat) error {
	switch format {
	case types.FormatCSV, "":
		return WriteCSV(records, path)
	case types.FormatYAML:
		return WriteYAML(records, path)
	case types.FormatJSON:
		return WriteJSON(records, path)
	default:
		return fmt.Errorf("unsupported format %q: use csv, yaml or json", format)
	}
}

// WriteCSV writes a header row taken from the first record's fields
// (time, date, author, text) followed by one row per record.
func WriteCSV(records []types.Clue, path string) error {
	return writeTable(records, path)
}

// WriteYAML writes records as a YAML sequence.
func WriteYAML(records []types.Clue, path string) error {
	if len(records) == 0 {
		return ErrNoClues
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(records []types.Clue, path string) error {
	if len(records) == 0 {
		return ErrNoClues
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// writeTable writes a CSV whose header is the csv tags of the first
// record's struct fields in declaration order.
func writeTable[T any](records []T, path string) error {
	if len(records) == 0 {
		return ErrNoClues
	}
	header, err := columns(records[0])
	if err != nil {
		return err
	}

	return writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		for i, r := range records {
			if err := cw.Write(row(r)); err != nil {
				return fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// columns returns the csv column names of a flat struct of strings and ints.
func columns(record any) ([]string, error) {
	t := reflect.TypeOf(record)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tabular record must be a struct, got %s", t.Kind())
	}
	var names []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("csv")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names = append(names, name)
	}
	return names, nil
}

func row(record any) []string {
	v := reflect.ValueOf(record)
	t := v.Type()
	var cells []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("csv") == "-" {
			continue
		}
		cells = append(cells, fmt.Sprint(v.Field(i).Interface()))
	}
	return cells
}

// writeAtomic runs fill against a temporary file next to path and renames
// it over path when fill succeeds.
func writeAtomic(path string, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if err := fill(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	committed = true
	return nil
}
