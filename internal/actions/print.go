package actions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/vincenzpascarella/PDFViewer/internal/document"
	"github.com/vincenzpascarella/PDFViewer/internal/logging"
)

// ErrUnprintable is returned when the buffer cannot be parsed as a PDF and
// therefore no print job is created.
var ErrUnprintable = errors.New("actions: buffer is not a printable document")

// PrintService spools the document buffer to the system print service.
type PrintService struct {
	runner  Runner
	spooler string
	printer string
	log     logging.Logger
}

// NewPrintService prints through spooler (normally lp). printer may be empty
// to use the system default destination.
func NewPrintService(runner Runner, spooler, printer string, log logging.Logger) *PrintService {
	if log == nil {
		log = logging.Nop()
	}
	return &PrintService{runner: runner, spooler: spooler, printer: printer, log: log}
}

// Print parses the buffer to name the job, then spools it on stdin. The job
// title is the embedded metadata title when present, otherwise the
// document's derived title. An unparsable buffer aborts with ErrUnprintable
// and exactly one log entry; no job reaches the spooler.
func (s *PrintService) Print(ctx context.Context, doc *document.Document) error {
	title, err := probePrintTitle(doc.Data())
	if err != nil {
		s.log.Error("print aborted, document failed to parse", err, "source", doc.Source())
		return fmt.Errorf("%w: %v", ErrUnprintable, err)
	}
	if title == "" {
		title = doc.Title()
	}

	args := []string{"-t", title}
	if s.printer != "" {
		args = append(args, "-d", s.printer)
	}
	if err := s.runner.Run(ctx, doc.Data(), s.spooler, args...); err != nil {
		return fmt.Errorf("print: spool: %w", err)
	}
	s.log.Info("print job spooled", "title", title, "spooler", s.spooler)
	return nil
}

// probePrintTitle opens the buffer independently of the viewer's engine and
// pulls the Info dictionary title. The reader panics on some malformed
// trailers, so the recover folds those into the error return.
func probePrintTitle(data []byte) (title string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse document: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(r.Trailer().Key("Info").Key("Title").Text()), nil
}
