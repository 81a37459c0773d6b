package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/vincenzpascarella/PDFViewer/internal/actions"
	"github.com/vincenzpascarella/PDFViewer/internal/config"
	"github.com/vincenzpascarella/PDFViewer/internal/document"
	"github.com/vincenzpascarella/PDFViewer/internal/history"
	"github.com/vincenzpascarella/PDFViewer/internal/logging"
	"github.com/vincenzpascarella/PDFViewer/internal/render"
)

// Sharer hands the document to the system share service.
type Sharer interface {
	Share(ctx context.Context, doc *document.Document) (string, error)
}

// Exporter saves a copy of the document.
type Exporter interface {
	Export(doc *document.Document, name string) (string, error)
	Dir() string
}

// Printer spools the document.
type Printer interface {
	Print(ctx context.Context, doc *document.Document) error
}

// Services bundles the action-bar handlers.
type Services struct {
	Share  Sharer
	Export Exporter
	Print  Printer
}

// Recents is the recently-opened store. A nil Recents disables history.
type Recents interface {
	List(ctx context.Context, limit int) ([]history.Entry, error)
	Touch(ctx context.Context, path, title string) (history.Entry, error)
	SetPosition(ctx context.Context, path string, page, textWidth int) error
	Remove(ctx context.Context, path string) error
}

type appState string

const (
	statePicker  appState = "picker"
	stateViewing appState = "viewing"
)

// Options selects what the app opens at startup.
type Options struct {
	// Document to view immediately; nil opens the recents picker.
	Document *document.Document
	// Path is where Document came from, for history. Empty for raw buffers.
	Path string
}

// App ties together the viewer, the find overlay, the save dialog, and the
// action bar. Overlay visibility is exactly two booleans; dismissing one
// never touches the other.
type App struct {
	ctx      context.Context
	cfg      config.Config
	eng      render.Engine
	services Services
	recents  Recents
	log      logging.Logger

	doc  *document.Document
	path string
	rdoc render.Doc

	state  appState
	styles Styles
	keys   keyMap
	viewer *Viewer
	find   findBar
	save   saveDialog
	picker *picker

	showSearch bool
	showSave   bool

	status      string
	statusErr   bool
	width       int
	height      int
	pendingPage int
}

// New builds the shell. Styles are constructed by the caller, once, via
// NewStyles; the shell never initializes styling on its own.
func New(ctx context.Context, cfg config.Config, eng render.Engine, services Services, recents Recents, log logging.Logger, styles Styles, opts Options) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		eng:      eng,
		services: services,
		recents:  recents,
		log:      log,
		styles:   styles,
		keys:     defaultKeyMap(),
		find:     newFindBar(styles),
		picker:   newPicker(nil),
		state:    statePicker,
	}
	exportDir := cfg.Actions.ExportDir
	if services.Export != nil {
		exportDir = services.Export.Dir()
	}
	a.save = newSaveDialog(styles, exportDir)
	if opts.Document != nil {
		a.installDocument(opts.Document, opts.Path)
	}
	return a
}

// installDocument swaps the viewed document in. The engine handle is opened
// asynchronously by openDocCmd.
func (a *App) installDocument(doc *document.Document, path string) {
	if a.rdoc != nil {
		_ = a.rdoc.Close()
		a.rdoc = nil
	}
	a.doc = doc
	a.path = path
	a.state = stateViewing
	a.showSearch = false
	a.showSave = false
	a.pendingPage = 0
	a.viewer = NewViewer(a.styles, doc.SinglePage(), a.cfg.Viewer.TextWidth)
	a.viewer.SetSize(a.width, a.contentHeight())
}

// Close releases the engine handle. Call after the program finishes.
func (a *App) Close() error {
	if a.rdoc != nil {
		err := a.rdoc.Close()
		a.rdoc = nil
		return err
	}
	return nil
}

// ShowingSearch reports the find-overlay flag.
func (a *App) ShowingSearch() bool { return a.showSearch }

// ShowingSaveDialog reports the save-dialog flag.
func (a *App) ShowingSaveDialog() bool { return a.showSave }

func (a *App) Init() tea.Cmd {
	if a.state == stateViewing {
		return tea.Batch(a.openDocCmd(a.doc), a.touchCmd())
	}
	return a.loadRecentsCmd()
}

func (a *App) contentHeight() int {
	h := a.height - 3 // header, status bar, footer
	if h < 1 {
		h = 1
	}
	return h
}

// commands

func (a *App) openDocCmd(doc *document.Document) tea.Cmd {
	eng := a.eng
	return func() tea.Msg {
		if doc.Empty() || eng == nil {
			return pagesMsg{}
		}
		rd, err := eng.Open(doc.Data())
		if err != nil {
			return engineFailedMsg{err}
		}
		pages := make([]string, rd.PageCount())
		for i := range pages {
			text, err := rd.PageText(i)
			if err != nil {
				_ = rd.Close()
				return engineFailedMsg{err}
			}
			pages[i] = text
		}
		return pagesMsg{doc: rd, pages: pages}
	}
}

func (a *App) loadRecentsCmd() tea.Cmd {
	if a.recents == nil {
		return func() tea.Msg { return recentsMsg(nil) }
	}
	limit := a.cfg.History.Limit
	return func() tea.Msg {
		entries, err := a.recents.List(a.ctx, limit)
		if err != nil {
			return errMsg{err}
		}
		return recentsMsg(entries)
	}
}

func (a *App) openPathCmd(path string, page int) tea.Cmd {
	eng := a.eng
	singlePage := a.cfg.Viewer.SinglePage
	return func() tea.Msg {
		doc, err := document.Load(path, eng, document.Options{SinglePage: singlePage})
		if err != nil {
			return errMsg{err}
		}
		return docOpenedMsg{doc: doc, path: path, page: page}
	}
}

func (a *App) touchCmd() tea.Cmd {
	if a.recents == nil || a.path == "" {
		return nil
	}
	recents, path, title := a.recents, a.path, a.doc.Title()
	return func() tea.Msg {
		entry, err := recents.Touch(a.ctx, path, title)
		if err != nil {
			return errMsg{err}
		}
		return touchedMsg{entry}
	}
}

func (a *App) savePositionCmd() tea.Cmd {
	if a.recents == nil || a.path == "" || a.viewer == nil {
		return nil
	}
	recents, path := a.recents, a.path
	page, width := a.viewer.CurrentPage(), a.viewer.TextWidth()
	return func() tea.Msg {
		if err := recents.SetPosition(a.ctx, path, page, width); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (a *App) removeRecentCmd(path string) tea.Cmd {
	recents, ctx, limit := a.recents, a.ctx, a.cfg.History.Limit
	return func() tea.Msg {
		if err := recents.Remove(ctx, path); err != nil {
			return errMsg{err}
		}
		entries, err := recents.List(ctx, limit)
		if err != nil {
			return errMsg{err}
		}
		return recentsMsg(entries)
	}
}

func (a *App) findDocCmd(query string) tea.Cmd {
	rdoc := a.rdoc
	return func() tea.Msg {
		if rdoc == nil {
			return errMsg{fmt.Errorf("no preview to search")}
		}
		matches, err := rdoc.Find(query)
		if err != nil {
			return errMsg{err}
		}
		return matchesMsg{query: query, matches: matches}
	}
}

func (a *App) shareCmd() tea.Cmd {
	if a.services.Share == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("share not configured")} }
	}
	doc := a.doc
	return func() tea.Msg {
		path, err := a.services.Share.Share(a.ctx, doc)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg("shared " + path)
	}
}

func (a *App) exportCmd(name string) tea.Cmd {
	if a.services.Export == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("export not configured")} }
	}
	doc := a.doc
	return func() tea.Msg {
		dest, err := a.services.Export.Export(doc, name)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg("saved " + dest)
	}
}

func (a *App) printCmd() tea.Cmd {
	if a.services.Print == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("print not configured")} }
	}
	doc := a.doc
	return func() tea.Msg {
		if err := a.services.Print.Print(a.ctx, doc); err != nil {
			return errMsg{err}
		}
		return statusMsg("sent to printer")
	}
}

func (a *App) saveLayoutCmd() tea.Cmd {
	cfg := a.cfg
	cfg.Viewer.SinglePage = a.viewer.SinglePage()
	cfg.Viewer.TextWidth = a.viewer.TextWidth()
	a.cfg = cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		if a.viewer != nil {
			a.viewer.SetSize(a.width, a.contentHeight())
		}
		return a, nil

	case tea.KeyMsg:
		if a.state == statePicker {
			return a.handlePickerKey(m)
		}
		if a.showSave {
			return a.handleSaveKey(m)
		}
		if a.showSearch {
			return a.handleFindKey(m)
		}
		return a.handleViewerKey(m)

	case pagesMsg:
		a.rdoc = m.doc
		a.viewer.SetPages(m.pages)
		if a.pendingPage > 0 {
			a.viewer.GotoPage(a.pendingPage)
			a.pendingPage = 0
		}
		if len(m.pages) == 0 {
			a.status = "empty document"
		} else {
			a.log.Info("document opened", "title", a.doc.Title(), "pages", len(m.pages))
		}
		return a, nil

	case engineFailedMsg:
		a.status = "preview unavailable: " + m.err.Error()
		a.statusErr = true
		a.log.Error("rendering engine rejected document", m.err, "source", a.doc.Source())
		return a, nil

	case recentsMsg:
		items := make([]pickerItem, 0, len(m))
		for _, e := range m {
			items = append(items, pickerItem{Path: e.Path, Title: e.Title, Page: e.LastPage})
		}
		a.picker.SetItems(items)
		return a, nil

	case docOpenedMsg:
		a.installDocument(m.doc, m.path)
		a.pendingPage = m.page
		a.status = ""
		a.statusErr = false
		return a, tea.Batch(a.openDocCmd(m.doc), a.touchCmd())

	case touchedMsg:
		if a.viewer == nil {
			return a, nil
		}
		if m.entry.TextWidth > 0 {
			a.viewer.SetTextWidth(m.entry.TextWidth)
		}
		if m.entry.LastPage > 0 {
			if a.viewer.PageCount() > 0 {
				a.viewer.GotoPage(m.entry.LastPage)
			} else {
				a.pendingPage = m.entry.LastPage
			}
		}
		return a, nil

	case matchesMsg:
		a.viewer.SetMatches(m.matches)
		_, idx, _ := a.viewer.CurrentMatch()
		a.find.SetResult(idx, len(m.matches))
		a.log.Debug("find completed", "query", m.query, "matches", len(m.matches))
		return a, nil

	case statusMsg:
		a.status = string(m)
		a.statusErr = false
		return a, nil

	case errMsg:
		a.status = "error: " + m.Error()
		a.statusErr = true
		return a, nil
	}
	return a, nil
}

func (a *App) handleViewerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Sequence(a.savePositionCmd(), tea.Quit)

	case key.Matches(m, a.keys.Find):
		a.showSearch = true
		a.find.Reset()
		return a, a.find.Focus()

	case key.Matches(m, a.keys.Save):
		a.showSave = true
		return a, a.save.Open(actions.SafeFileName(a.doc.Title()))

	case key.Matches(m, a.keys.Share):
		a.status = "sharing..."
		a.statusErr = false
		return a, a.shareCmd()

	case key.Matches(m, a.keys.Print):
		a.status = "printing..."
		a.statusErr = false
		return a, a.printCmd()

	case key.Matches(m, a.keys.Layout):
		a.viewer.ToggleLayout()
		return a, a.saveLayoutCmd()

	case key.Matches(m, a.keys.NextPage):
		a.viewer.NextPage()
		return a, a.savePositionCmd()

	case key.Matches(m, a.keys.PrevPage):
		a.viewer.PrevPage()
		return a, a.savePositionCmd()

	case key.Matches(m, a.keys.Top):
		a.viewer.GotoTop()
		return a, nil

	case key.Matches(m, a.keys.Bottom):
		a.viewer.GotoBottom()
		return a, nil

	case key.Matches(m, a.keys.Wider):
		a.viewer.Wider()
		return a, a.saveLayoutCmd()

	case key.Matches(m, a.keys.Narrower):
		a.viewer.Narrower()
		return a, a.saveLayoutCmd()

	case key.Matches(m, a.keys.FitWidth):
		a.viewer.FitWidth()
		return a, a.saveLayoutCmd()

	case key.Matches(m, a.keys.NextMatch):
		a.viewer.NextMatch()
		return a, nil

	case key.Matches(m, a.keys.PrevMatch):
		a.viewer.PrevMatch()
		return a, nil

	case key.Matches(m, a.keys.Dismiss):
		// no overlay up, so esc dismisses the whole viewer
		return a, tea.Sequence(a.savePositionCmd(), tea.Quit)
	}
	return a, a.viewer.Update(m)
}

func (a *App) handleFindKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.find.Focused() {
		switch m.Type {
		case tea.KeyEsc:
			a.closeSearch()
			return a, nil
		case tea.KeyEnter:
			query := strings.TrimSpace(a.find.Value())
			if query == "" {
				return a, nil
			}
			a.find.Blur()
			return a, a.findDocCmd(query)
		}
		return a, a.find.Update(m)
	}

	switch {
	case key.Matches(m, a.keys.Dismiss):
		a.closeSearch()
		return a, nil
	case key.Matches(m, a.keys.Quit):
		return a, tea.Sequence(a.savePositionCmd(), tea.Quit)
	case key.Matches(m, a.keys.NextMatch), key.Matches(m, a.keys.Confirm):
		a.viewer.NextMatch()
		_, idx, _ := a.viewer.CurrentMatch()
		a.find.SetResult(idx, a.viewer.MatchCount())
		return a, nil
	case key.Matches(m, a.keys.PrevMatch):
		a.viewer.PrevMatch()
		_, idx, _ := a.viewer.CurrentMatch()
		a.find.SetResult(idx, a.viewer.MatchCount())
		return a, nil
	case key.Matches(m, a.keys.Find):
		return a, a.find.Focus()
	}
	return a, a.viewer.Update(m)
}

func (a *App) closeSearch() {
	a.showSearch = false
	a.find.Reset()
	if a.viewer != nil {
		a.viewer.ClearMatches()
	}
}

func (a *App) handleSaveKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.showSave = false
		return a, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(a.save.Value())
		a.showSave = false
		a.status = "saving..."
		a.statusErr = false
		return a, a.exportCmd(name)
	}
	return a, a.save.Update(m)
}

func (a *App) handlePickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	result := a.picker.HandleKey(m)
	switch result.Action {
	case pickerSelected:
		a.status = "opening " + result.Item.Path
		a.statusErr = false
		return a, a.openPathCmd(result.Item.Path, result.Item.Page)
	case pickerRemoved:
		if a.recents == nil {
			return a, nil
		}
		return a, a.removeRecentCmd(result.Item.Path)
	case pickerCancelled:
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	if a.state == statePicker {
		body := fitCanvas(a.picker.view(a.styles, a.width, a.height-2), a.width, a.height-2)
		status := renderStatusBar(a.styles, a.width, a.status, a.statusErr)
		footer := renderFooter(a.styles, a.width, a.keys.pickerBindings())
		return a.styles.App.Render(body + "\n" + status + "\n" + footer)
	}

	header := a.renderHeader()
	content := clipHeight(fitCanvas(a.viewer.View(), a.width, a.contentHeight()), a.contentHeight())
	status := renderStatusBar(a.styles, a.width, a.status, a.statusErr)

	var footer string
	switch {
	case a.showSave:
		footer = renderFooter(a.styles, a.width, a.keys.saveBindings())
	case a.showSearch:
		footer = renderFooter(a.styles, a.width, a.keys.findBindings())
	default:
		footer = renderFooter(a.styles, a.width, a.keys.viewerBindings(a.viewer.SinglePage()))
	}

	body := header + "\n" + content + "\n" + status + "\n" + footer

	if a.showSearch {
		card := a.styles.Popup.Render(a.find.view())
		lines := splitToLines(card, 0)
		x := a.width - maxLineWidth(lines) - 1
		if x < 0 {
			x = 0
		}
		body = overlayAt(fitCanvas(body, a.width, a.height), card, x, 1, a.width, a.height)
	}
	if a.showSave {
		body = a.styles.renderPopup(body, a.save.view(), a.width, a.height)
	}
	return a.styles.App.Render(body)
}

func (a *App) renderHeader() string {
	title := a.styles.Title.Render(a.doc.Title())
	info := a.styles.PageInfo.Render(a.viewer.pageIndicator())
	gap := a.width - ansi.StringWidth(title) - ansi.StringWidth(info)
	if gap < 0 {
		title = ansi.Truncate(title, max(0, a.width-ansi.StringWidth(info)), "…")
		gap = a.width - ansi.StringWidth(title) - ansi.StringWidth(info)
		if gap < 0 {
			gap = 0
		}
	}
	fill := a.styles.HeaderBar.Render(strings.Repeat(" ", gap))
	return title + fill + info
}

// messages

type pagesMsg struct {
	doc   render.Doc
	pages []string
}

type engineFailedMsg struct{ err error }

type recentsMsg []history.Entry

type docOpenedMsg struct {
	doc  *document.Document
	path string
	page int
}

type touchedMsg struct{ entry history.Entry }

type matchesMsg struct {
	query   string
	matches []render.Match
}

type statusMsg string

type errMsg struct{ error }
