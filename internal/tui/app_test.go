package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vincenzpascarella/PDFViewer/internal/config"
	"github.com/vincenzpascarella/PDFViewer/internal/document"
	"github.com/vincenzpascarella/PDFViewer/internal/history"
	"github.com/vincenzpascarella/PDFViewer/internal/logging"
	"github.com/vincenzpascarella/PDFViewer/internal/render"
)

type stubRenderDoc struct {
	pages   []string
	matches []render.Match
}

func (s stubRenderDoc) PageCount() int { return len(s.pages) }

func (s stubRenderDoc) PageText(n int) (string, error) {
	if n < 0 || n >= len(s.pages) {
		return "", errors.New("page out of range")
	}
	return s.pages[n], nil
}

func (s stubRenderDoc) Metadata() render.Metadata { return render.Metadata{} }

func (s stubRenderDoc) Find(query string) ([]render.Match, error) {
	return s.matches, nil
}

func (s stubRenderDoc) Close() error { return nil }

type fakeSharer struct {
	calls int
	err   error
}

func (f *fakeSharer) Share(ctx context.Context, doc *document.Document) (string, error) {
	f.calls++
	return "/tmp/shared.pdf", f.err
}

type fakeExporter struct {
	names []string
	err   error
}

func (f *fakeExporter) Export(doc *document.Document, name string) (string, error) {
	f.names = append(f.names, name)
	return "/exports/" + name, f.err
}

func (f *fakeExporter) Dir() string { return "/exports" }

type fakePrinter struct {
	calls int
	err   error
}

func (f *fakePrinter) Print(ctx context.Context, doc *document.Document) error {
	f.calls++
	return f.err
}

type fakeRecents struct {
	entries   []history.Entry
	touched   []string
	positions map[string]int
	widths    []int
	removed   []string
}

func (f *fakeRecents) List(ctx context.Context, limit int) ([]history.Entry, error) {
	return f.entries, nil
}

func (f *fakeRecents) Touch(ctx context.Context, path, title string) (history.Entry, error) {
	f.touched = append(f.touched, path)
	for _, e := range f.entries {
		if e.Path == path {
			return e, nil
		}
	}
	return history.Entry{Path: path, Title: title}, nil
}

func (f *fakeRecents) SetPosition(ctx context.Context, path string, page, textWidth int) error {
	if f.positions == nil {
		f.positions = map[string]int{}
	}
	f.positions[path] = page
	f.widths = append(f.widths, textWidth)
	return nil
}

func (f *fakeRecents) Remove(ctx context.Context, path string) error {
	f.removed = append(f.removed, path)
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.Path != path {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(a *App, k string) tea.Cmd {
	_, cmd := a.Update(keyPress(k))
	return cmd
}

func typeChars(a *App, s string) {
	for _, r := range s {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func viewingApp(t *testing.T, services Services, recents Recents, pages ...string) *App {
	t.Helper()
	doc := document.FromBytes([]byte("%PDF-1.4 stub"), "notes.pdf", nil, document.Options{})
	app := New(context.Background(), config.Config{}, nil, services, recents, logging.Nop(), NewStyles(DefaultTheme()), Options{
		Document: doc,
		Path:     "/docs/notes.pdf",
	})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.Update(pagesMsg{doc: stubRenderDoc{pages: pages}, pages: pages})
	return app
}

func TestFindOverlayOpensAndDismisses(t *testing.T) {
	app := viewingApp(t, Services{}, nil, "alpha beta", "gamma")

	if app.ShowingSearch() {
		t.Fatal("find overlay visible before / was pressed")
	}
	press(app, "/")
	if !app.ShowingSearch() {
		t.Fatal("/ did not open the find overlay")
	}
	if app.ShowingSaveDialog() {
		t.Fatal("opening find flipped the save dialog flag")
	}
	press(app, "esc")
	if app.ShowingSearch() {
		t.Fatal("esc did not close the find overlay")
	}
}

func TestSaveDialogOpensAndDismisses(t *testing.T) {
	app := viewingApp(t, Services{}, nil, "alpha")

	press(app, "s")
	if !app.ShowingSaveDialog() {
		t.Fatal("s did not open the save dialog")
	}
	if app.ShowingSearch() {
		t.Fatal("opening the save dialog flipped the find flag")
	}
	press(app, "esc")
	if app.ShowingSaveDialog() {
		t.Fatal("esc did not close the save dialog")
	}
	if app.ShowingSearch() {
		t.Fatal("dismissing the save dialog touched the find flag")
	}
}

func TestSaveDialogPrefillsDocumentTitle(t *testing.T) {
	app := viewingApp(t, Services{}, nil, "alpha")

	press(app, "s")
	if got := app.save.Value(); got != "notes" {
		t.Fatalf("save dialog prefilled %q, want %q", got, "notes")
	}
}

func TestSaveDialogEnterDispatchesExport(t *testing.T) {
	exporter := &fakeExporter{}
	app := viewingApp(t, Services{Export: exporter}, nil, "alpha")

	press(app, "s")
	typeChars(app, "-v2")
	cmd := press(app, "enter")
	if app.ShowingSaveDialog() {
		t.Fatal("enter left the save dialog open")
	}
	if cmd == nil {
		t.Fatal("enter produced no export command")
	}
	msg := cmd()
	if len(exporter.names) != 1 || exporter.names[0] != "notes-v2" {
		t.Fatalf("exporter called with %v, want [notes-v2]", exporter.names)
	}
	status, ok := msg.(statusMsg)
	if !ok {
		t.Fatalf("export produced %T, want statusMsg", msg)
	}
	if !strings.Contains(string(status), "notes-v2") {
		t.Fatalf("status %q does not name the saved file", status)
	}
}

func TestShareKeyInvokesService(t *testing.T) {
	sharer := &fakeSharer{}
	app := viewingApp(t, Services{Share: sharer}, nil, "alpha")

	cmd := press(app, "o")
	if cmd == nil {
		t.Fatal("o produced no share command")
	}
	if _, ok := cmd().(statusMsg); !ok {
		t.Fatal("share did not report a status")
	}
	if sharer.calls != 1 {
		t.Fatalf("share service called %d times, want 1", sharer.calls)
	}
}

func TestPrintKeyInvokesService(t *testing.T) {
	printer := &fakePrinter{}
	app := viewingApp(t, Services{Print: printer}, nil, "alpha")

	cmd := press(app, "p")
	if cmd == nil {
		t.Fatal("p produced no print command")
	}
	cmd()
	if printer.calls != 1 {
		t.Fatalf("print service called %d times, want 1", printer.calls)
	}
}

func TestPrintFailureBecomesStatusError(t *testing.T) {
	printer := &fakePrinter{err: errors.New("spooler offline")}
	app := viewingApp(t, Services{Print: printer}, nil, "alpha")

	cmd := press(app, "p")
	msg := cmd()
	em, ok := msg.(errMsg)
	if !ok {
		t.Fatalf("print failure produced %T, want errMsg", msg)
	}
	app.Update(em)
	if !app.statusErr {
		t.Fatal("error message did not mark the status bar")
	}
	if !strings.Contains(app.status, "spooler offline") {
		t.Fatalf("status %q does not carry the failure", app.status)
	}
}

func TestFindFlowSearchesAndSteps(t *testing.T) {
	matches := []render.Match{
		{Page: 0, Line: 0, Text: "alpha one"},
		{Page: 1, Line: 0, Text: "alpha two"},
	}
	doc := document.FromBytes([]byte("%PDF-1.4 stub"), "notes.pdf", nil, document.Options{})
	app := New(context.Background(), config.Config{}, nil, Services{}, nil, logging.Nop(), NewStyles(DefaultTheme()), Options{Document: doc})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.Update(pagesMsg{
		doc:   stubRenderDoc{pages: []string{"alpha one", "alpha two"}, matches: matches},
		pages: []string{"alpha one", "alpha two"},
	})

	press(app, "/")
	typeChars(app, "alpha")
	cmd := press(app, "enter")
	if cmd == nil {
		t.Fatal("enter produced no find command")
	}
	app.Update(cmd())

	if got := app.viewer.MatchCount(); got != 2 {
		t.Fatalf("viewer holds %d matches, want 2", got)
	}
	if _, idx, ok := app.viewer.CurrentMatch(); !ok || idx != 0 {
		t.Fatalf("current match = %d, %v; want 0, true", idx, ok)
	}

	// input is blurred after enter, so n steps instead of typing
	press(app, "n")
	if _, idx, _ := app.viewer.CurrentMatch(); idx != 1 {
		t.Fatalf("n stepped to match %d, want 1", idx)
	}
	press(app, "N")
	if _, idx, _ := app.viewer.CurrentMatch(); idx != 0 {
		t.Fatalf("N stepped back to match %d, want 0", idx)
	}

	press(app, "esc")
	if app.ShowingSearch() {
		t.Fatal("esc did not close the find overlay")
	}
	if app.viewer.MatchCount() != 0 {
		t.Fatal("dismissing the overlay kept stale highlights")
	}
}

func TestReopeningFindResetsQuery(t *testing.T) {
	app := viewingApp(t, Services{}, nil, "alpha")

	press(app, "/")
	typeChars(app, "beta")
	press(app, "esc")
	press(app, "/")
	if got := app.find.Value(); got != "" {
		t.Fatalf("reopened find kept query %q", got)
	}
}

func TestPageChangePersistsPosition(t *testing.T) {
	recents := &fakeRecents{}
	doc := document.FromBytes([]byte("%PDF-1.4 stub"), "notes.pdf", nil, document.Options{SinglePage: true})
	app := New(context.Background(), config.Config{}, nil, Services{}, recents, logging.Nop(), NewStyles(DefaultTheme()), Options{
		Document: doc,
		Path:     "/docs/notes.pdf",
	})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.Update(pagesMsg{doc: stubRenderDoc{}, pages: []string{"page one", "page two"}})

	cmd := press(app, "l")
	if cmd == nil {
		t.Fatal("page change produced no persistence command")
	}
	cmd()
	if got := recents.positions["/docs/notes.pdf"]; got != 1 {
		t.Fatalf("stored page %d, want 1", got)
	}
	if len(recents.widths) != 1 || recents.widths[0] != 0 {
		t.Fatalf("stored widths %v, want [0]", recents.widths)
	}
}

func TestEngineFailureKeepsActionsAlive(t *testing.T) {
	printer := &fakePrinter{}
	doc := document.FromBytes([]byte("garbled"), "broken.pdf", nil, document.Options{})
	app := New(context.Background(), config.Config{}, nil, Services{Print: printer}, nil, logging.Nop(), NewStyles(DefaultTheme()), Options{Document: doc})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.Update(engineFailedMsg{errors.New("bad xref")})

	if !app.statusErr {
		t.Fatal("engine failure did not surface in the status bar")
	}
	cmd := press(app, "p")
	if cmd == nil {
		t.Fatal("print unavailable after engine failure")
	}
	cmd()
	if printer.calls != 1 {
		t.Fatal("print service not reached after engine failure")
	}
}

func TestPickerSelectionOpensDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 data"), 0o644); err != nil {
		t.Fatal(err)
	}

	recents := &fakeRecents{entries: []history.Entry{
		{Path: path, Title: "report", LastPage: 3},
	}}
	app := New(context.Background(), config.Config{}, nil, Services{}, recents, logging.Nop(), NewStyles(DefaultTheme()), Options{})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	initCmd := app.Init()
	if initCmd == nil {
		t.Fatal("picker start produced no recents load")
	}
	app.Update(initCmd())

	cmd := press(app, "enter")
	if cmd == nil {
		t.Fatal("enter on a recent produced no open command")
	}
	msg := cmd()
	opened, ok := msg.(docOpenedMsg)
	if !ok {
		t.Fatalf("selection produced %T, want docOpenedMsg", msg)
	}
	if opened.page != 3 {
		t.Fatalf("selection carried page %d, want 3", opened.page)
	}
	app.Update(opened)
	if app.state != stateViewing {
		t.Fatal("opening a recent did not enter the viewer")
	}
	if got := app.doc.Title(); got != "report" {
		t.Fatalf("opened document titled %q, want %q", got, "report")
	}
}

func TestPickerRemoveRefreshesList(t *testing.T) {
	recents := &fakeRecents{entries: []history.Entry{
		{Path: "/a.pdf", Title: "a"},
		{Path: "/b.pdf", Title: "b"},
	}}
	app := New(context.Background(), config.Config{}, nil, Services{}, recents, logging.Nop(), NewStyles(DefaultTheme()), Options{})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.Update(app.Init()())

	cmd := press(app, "ctrl+x")
	if cmd == nil {
		t.Fatal("ctrl+x produced no remove command")
	}
	app.Update(cmd())
	if len(recents.removed) != 1 || recents.removed[0] != "/a.pdf" {
		t.Fatalf("removed %v, want [/a.pdf]", recents.removed)
	}
	if got := len(app.picker.Items()); got != 1 {
		t.Fatalf("picker lists %d items after remove, want 1", got)
	}
}

func TestViewRendersChrome(t *testing.T) {
	app := viewingApp(t, Services{}, nil, "alpha", "beta")

	view := app.View()
	if !strings.Contains(view, "notes") {
		t.Fatal("header does not show the document title")
	}
	if !strings.Contains(view, "page 1/2") {
		t.Fatal("header does not show the page indicator")
	}

	press(app, "s")
	view = app.View()
	if !strings.Contains(view, "Save a copy") {
		t.Fatal("save dialog not composited over the viewer")
	}
}

func TestRestoredPositionAppliesAfterPagesArrive(t *testing.T) {
	recents := &fakeRecents{entries: []history.Entry{
		{Path: "/docs/notes.pdf", Title: "notes", LastPage: 1},
	}}
	doc := document.FromBytes([]byte("%PDF-1.4 stub"), "notes.pdf", nil, document.Options{SinglePage: true})
	app := New(context.Background(), config.Config{}, nil, Services{}, recents, logging.Nop(), NewStyles(DefaultTheme()), Options{
		Document: doc,
		Path:     "/docs/notes.pdf",
	})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	// history answers before the engine finishes extracting pages
	app.Update(touchedMsg{entry: history.Entry{Path: "/docs/notes.pdf", LastPage: 1, TextWidth: 60}})
	app.Update(pagesMsg{doc: stubRenderDoc{}, pages: []string{"one", "two"}})

	if got := app.viewer.CurrentPage(); got != 1 {
		t.Fatalf("restored to page %d, want 1", got)
	}
	if got := app.viewer.TextWidth(); got != 60 {
		t.Fatalf("restored width %d, want 60", got)
	}
}
