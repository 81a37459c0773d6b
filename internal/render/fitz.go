package render

import (
	"fmt"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// FitzEngine renders through MuPDF via go-fitz. It is the default backend.
type FitzEngine struct{}

func (FitzEngine) Name() string { return "fitz" }

func (FitzEngine) Open(data []byte) (Doc, error) {
	if len(data) == 0 {
		return nil, ErrNoDocument
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	return &fitzDoc{doc: doc}, nil
}

type fitzDoc struct {
	mu  sync.Mutex
	doc *fitz.Document
}

func (d *fitzDoc) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.NumPage()
}

func (d *fitzDoc) PageText(n int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n < 0 || n >= d.doc.NumPage() {
		return "", fmt.Errorf("render: page %d out of range", n+1)
	}
	text, err := d.doc.Text(n)
	if err != nil {
		return "", fmt.Errorf("render: extract page %d: %w", n+1, err)
	}
	return text, nil
}

func (d *fitzDoc) Metadata() Metadata {
	d.mu.Lock()
	defer d.mu.Unlock()
	meta := d.doc.Metadata()
	return Metadata{
		Title:    meta["title"],
		Author:   meta["author"],
		Subject:  meta["subject"],
		Creator:  meta["creator"],
		Producer: meta["producer"],
		Format:   meta["format"],
	}
}

func (d *fitzDoc) Find(query string) ([]Match, error) {
	return findInPages(d, query)
}

func (d *fitzDoc) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Close()
}
