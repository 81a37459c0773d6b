package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/browser"

	"github.com/vincenzpascarella/PDFViewer/internal/document"
	"github.com/vincenzpascarella/PDFViewer/internal/logging"
)

// Opener hands a staged file to the system open/share service.
type Opener interface {
	OpenFile(ctx context.Context, path string) error
}

// SystemOpener shares through the platform opener (xdg-open and friends).
type SystemOpener struct{}

func (SystemOpener) OpenFile(_ context.Context, path string) error {
	return browser.OpenFile(path)
}

// CommandOpener shares by running a configured command with the staged path
// as its final argument.
type CommandOpener struct {
	Runner  Runner
	Command string
}

func (c CommandOpener) OpenFile(ctx context.Context, path string) error {
	return c.Runner.Run(ctx, nil, c.Command, path)
}

// ShareService stages the document bytes under a title-derived name and
// hands the file to an Opener.
type ShareService struct {
	opener Opener
	log    logging.Logger
}

func NewShareService(opener Opener, log logging.Logger) *ShareService {
	if log == nil {
		log = logging.Nop()
	}
	return &ShareService{opener: opener, log: log}
}

// Share writes the buffer to a fresh staging directory and opens it. The
// staged path is returned so the UI can show where the copy went.
func (s *ShareService) Share(ctx context.Context, doc *document.Document) (string, error) {
	dir, err := os.MkdirTemp("", "pdfviewer-share-")
	if err != nil {
		return "", fmt.Errorf("share: stage dir: %w", err)
	}
	path := filepath.Join(dir, SafeFileName(doc.Title())+".pdf")
	if err := os.WriteFile(path, doc.Data(), 0o600); err != nil {
		return "", fmt.Errorf("share: stage %s: %w", path, err)
	}
	if err := s.opener.OpenFile(ctx, path); err != nil {
		return "", fmt.Errorf("share: open %s: %w", path, err)
	}
	s.log.Info("document shared", "path", path, "bytes", len(doc.Data()))
	return path, nil
}
