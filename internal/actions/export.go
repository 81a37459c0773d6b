package actions

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/vincenzpascarella/PDFViewer/internal/document"
	"github.com/vincenzpascarella/PDFViewer/internal/logging"
)

// ExportService saves a copy of the document buffer to disk. The written
// file is byte-for-byte the loaded buffer; validation only ever warns.
type ExportService struct {
	dir string
	log logging.Logger
}

// NewExportService uses dir as the destination for relative export names.
func NewExportService(dir string, log logging.Logger) *ExportService {
	if log == nil {
		log = logging.Nop()
	}
	return &ExportService{dir: dir, log: log}
}

// Dir returns the default destination directory.
func (s *ExportService) Dir() string { return s.dir }

// Export writes the buffer under name, appending .pdf when missing. An
// empty name falls back to the document title. Relative names land in the
// service's directory; the final path is returned.
func (s *ExportService) Export(doc *document.Document, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = SafeFileName(doc.Title())
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	dest := name
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(s.dir, dest)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("export: mkdir %s: %w", filepath.Dir(dest), err)
	}

	if pages, err := preflight(doc.Data()); err != nil {
		// a buffer the validator dislikes still exports unchanged
		s.log.Warn("export preflight failed", "source", doc.Source(), "reason", err.Error())
	} else {
		s.log.Debug("export preflight ok", "pages", pages)
	}

	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, doc.Data(), 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return "", fmt.Errorf("export: rename %s: %w", dest, err)
	}
	s.log.Info("document exported", "path", dest, "bytes", len(doc.Data()))
	return dest, nil
}

// preflight validates the buffer and reports its page count.
func preflight(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	pdfContext, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return 0, err
	}
	return pdfContext.PageCount, nil
}
