// Package render is the seam to the platform document framework. Parsing,
// pagination, and in-document find all happen behind the Engine interface;
// nothing above this package touches PDF internals.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoDocument is returned by engines when the buffer cannot be opened as
// a document at all.
var ErrNoDocument = errors.New("render: buffer is not an openable document")

// Engine opens raw document bytes with a concrete rendering backend.
type Engine interface {
	Name() string
	Open(data []byte) (Doc, error)
}

// Doc is an open document handle. Implementations serialize access so a
// handle can be shared between the render loop and background find calls.
type Doc interface {
	PageCount() int
	// PageText returns the extracted text of the 0-indexed page.
	PageText(n int) (string, error)
	Metadata() Metadata
	// Find reports occurrences of query across the document, in page order.
	Find(query string) ([]Match, error)
	Close() error
}

// Metadata is the embedded document information the backend exposes.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
	Format   string
}

// Match locates one find hit: the 0-indexed page, the 0-indexed line within
// that page's text, and the line itself for preview.
type Match struct {
	Page int
	Line int
	Text string
}

// NewEngine selects a backend by configured name. An empty name picks the
// default backend.
func NewEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fitz", "mupdf":
		return FitzEngine{}, nil
	default:
		return nil, fmt.Errorf("render: unknown engine %q", name)
	}
}

// findInPages is the shared find implementation backends delegate to after
// extracting page text. Matching is case-insensitive on whole lines the way
// document widgets usually present it.
func findInPages(d Doc, query string) ([]Match, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	needle := strings.ToLower(query)
	var matches []Match
	for page := 0; page < d.PageCount(); page++ {
		text, err := d.PageText(page)
		if err != nil {
			return nil, fmt.Errorf("render: page %d text: %w", page+1, err)
		}
		for i, line := range strings.Split(text, "\n") {
			if strings.Contains(strings.ToLower(line), needle) {
				matches = append(matches, Match{Page: page, Line: i, Text: strings.TrimSpace(line)})
			}
		}
	}
	return matches, nil
}
