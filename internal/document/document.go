// Package document loads PDF buffers and derives their display identity.
// Loading is plain byte movement; everything engine-specific stays behind
// render.Engine, and an engine that cannot parse the buffer never fails the
// load, it only costs the embedded title.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vincenzpascarella/PDFViewer/internal/render"
)

// DefaultTitle is used when neither metadata nor the source name yields one.
const DefaultTitle = "Document"

// Options controls presentation hints carried by the loaded document.
type Options struct {
	// SinglePage asks the viewer for one page at a time instead of the
	// continuous scroll default.
	SinglePage bool
}

// Document is an immutable loaded PDF: the raw bytes plus the derived
// display title and presentation hints. Construct via Load or FromBytes.
type Document struct {
	data       []byte
	source     string
	title      string
	singlePage bool
}

// Load reads the file at path and wraps it. A buffer the engine cannot open
// still loads; only unreadable files are errors.
func Load(path string, eng render.Engine, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	return FromBytes(data, filepath.Base(path), eng, opts), nil
}

// FromBytes wraps an in-memory buffer. name is used for title fallback and
// may be empty.
func FromBytes(data []byte, name string, eng render.Engine, opts Options) *Document {
	return &Document{
		data:       data,
		source:     name,
		title:      deriveTitle(probeTitle(eng, data), name),
		singlePage: opts.SinglePage,
	}
}

// Data returns the loaded bytes. Callers must not modify the slice; share,
// save, and print all hand these exact bytes onward.
func (d *Document) Data() []byte { return d.data }

// Title is the embedded metadata title when present, otherwise the source
// name with its extension stripped.
func (d *Document) Title() string { return d.title }

// Source is the original filename or caller-provided buffer name.
func (d *Document) Source() string { return d.source }

// SinglePage reports whether the viewer should page rather than scroll.
func (d *Document) SinglePage() bool { return d.singlePage }

// Empty reports a zero-length buffer. The viewer renders nothing for it but
// actions still receive it unchanged.
func (d *Document) Empty() bool { return len(d.data) == 0 }

func probeTitle(eng render.Engine, data []byte) string {
	if eng == nil || len(data) == 0 {
		return ""
	}
	doc, err := eng.Open(data)
	if err != nil {
		return ""
	}
	defer doc.Close()
	return doc.Metadata().Title
}

func deriveTitle(metaTitle, source string) string {
	if t := strings.TrimSpace(metaTitle); t != "" {
		return t
	}
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return DefaultTitle
	}
	return base
}
