package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vincenzpascarella/PDFViewer/internal/actions"
	"github.com/vincenzpascarella/PDFViewer/internal/config"
	"github.com/vincenzpascarella/PDFViewer/internal/document"
	"github.com/vincenzpascarella/PDFViewer/internal/history"
	"github.com/vincenzpascarella/PDFViewer/internal/logging"
	"github.com/vincenzpascarella/PDFViewer/internal/render"
	"github.com/vincenzpascarella/PDFViewer/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// the viewer still works without a log file
	var logger logging.Logger = logging.Nop()
	if l, f, err := logging.OpenFile(cfg.Log.Path, logging.ParseLevel(cfg.Log.Level)); err == nil {
		logger = l
		defer f.Close()
	}

	eng, err := render.NewEngine(cfg.Engine.Name)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	// history is optional; a broken store must not block viewing
	var recents tui.Recents
	if db, err := history.Open(cfg.History.Path); err != nil {
		logger.Warn("history disabled", "error", err.Error())
	} else {
		defer db.Close()
		if err := history.Migrate(db); err != nil {
			logger.Warn("history disabled", "error", err.Error())
		} else {
			recents = history.NewRepo(db)
		}
	}

	var opts tui.Options
	if len(os.Args) > 1 {
		path := os.Args[1]
		doc, err := document.Load(path, eng, document.Options{SinglePage: cfg.Viewer.SinglePage})
		if err != nil {
			log.Fatalf("open %s: %v", path, err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		opts = tui.Options{Document: doc, Path: abs}
	}

	runner := actions.NewRunner()
	var opener actions.Opener = actions.SystemOpener{}
	if cmd := cfg.Actions.ShareCommand; cmd != "" {
		opener = actions.CommandOpener{Runner: runner, Command: cmd}
	}
	services := tui.Services{
		Share:  actions.NewShareService(opener, logger),
		Export: actions.NewExportService(cfg.Actions.ExportDir, logger),
		Print:  actions.NewPrintService(runner, cfg.Actions.PrintSpooler, cfg.Actions.Printer, logger),
	}

	styles := tui.NewStyles(tui.ThemeByName(cfg.UI.Theme))
	app := tui.New(ctx, cfg, eng, services, recents, logger, styles, opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		fmt.Printf("error: %v\n", err)
	}
	if a, ok := m.(*tui.App); ok {
		_ = a.Close()
	}
}
