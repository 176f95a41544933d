// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document loads an exported chat transcript into a queryable
// node tree. Parsing follows the HTML5 tree-construction algorithm, so
// malformed markup still yields a tree.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	// ErrResource reports that the source document could not be opened or read.
	ErrResource = errors.New("document unreadable")

	// ErrParse reports that the source document could not be parsed at all.
	ErrParse = errors.New("document unparsable")
)

// Document is a parsed transcript.
type Document struct {
	// Path is the file the document was loaded from; empty for Parse.
	Path string

	doc *goquery.Document
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrResource, path, err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	d.Path = path
	return d, nil
}

// Parse builds a Document from r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResource, err)
	}

	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
}

// Find returns the nodes matching selector in document order.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// FindMatcher returns the nodes accepted by a precompiled matcher in
// document order.
func (d *Document) FindMatcher(m goquery.Matcher) *goquery.Selection {
	return d.doc.FindMatcher(m)
}
