package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vincenzpascarella/PDFViewer/internal/render"
)

// Viewer presents extracted page text through a scrolling viewport. It owns
// layout (continuous or one page at a time), fit-to-width wrapping, and the
// find-match highlights; the shell owns everything around it.
type Viewer struct {
	vp     viewport.Model
	styles Styles

	pages      []string
	singlePage bool
	page       int
	textWidth  int
	width      int
	height     int

	pageStarts []int
	lineIndex  [][]int

	matches []render.Match
	current int
}

func NewViewer(styles Styles, singlePage bool, textWidth int) *Viewer {
	return &Viewer{
		styles:     styles,
		singlePage: singlePage,
		textWidth:  textWidth,
		current:    -1,
		vp:         viewport.New(0, 0),
	}
}

// SetPages installs the extracted text, one string per page.
func (v *Viewer) SetPages(pages []string) {
	v.pages = pages
	if v.page >= len(pages) {
		v.page = 0
	}
	v.recompose()
}

func (v *Viewer) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.vp.Width = width
	v.vp.Height = height
	v.recompose()
}

func (v *Viewer) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && v.singlePage && v.vp.AtBottom() {
		// paging past the end of a page advances to the next one
		switch k.String() {
		case "pgdown", " ":
			if v.page < len(v.pages)-1 {
				v.NextPage()
				return nil
			}
		}
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return cmd
}

func (v *Viewer) View() string {
	if len(v.pages) == 0 {
		return v.styles.PageSep.Render("(no pages to display)")
	}
	return v.vp.View()
}

func (v *Viewer) Empty() bool      { return len(v.pages) == 0 }
func (v *Viewer) PageCount() int   { return len(v.pages) }
func (v *Viewer) SinglePage() bool { return v.singlePage }

// CurrentPage is 0-indexed. In continuous layout it derives from the scroll
// position.
func (v *Viewer) CurrentPage() int {
	if v.singlePage || len(v.pageStarts) == 0 {
		return v.page
	}
	page := 0
	for i, start := range v.pageStarts {
		if v.vp.YOffset >= start {
			page = i
		}
	}
	return page
}

func (v *Viewer) NextPage() {
	if v.singlePage {
		if v.page < len(v.pages)-1 {
			v.page++
			v.recompose()
			v.vp.GotoTop()
		}
		return
	}
	v.GotoPage(v.CurrentPage() + 1)
}

func (v *Viewer) PrevPage() {
	if v.singlePage {
		if v.page > 0 {
			v.page--
			v.recompose()
			v.vp.GotoTop()
		}
		return
	}
	v.GotoPage(v.CurrentPage() - 1)
}

func (v *Viewer) GotoPage(n int) {
	if len(v.pages) == 0 {
		return
	}
	if n < 0 {
		n = 0
	}
	if n >= len(v.pages) {
		n = len(v.pages) - 1
	}
	if v.singlePage {
		v.page = n
		v.recompose()
		v.vp.GotoTop()
		return
	}
	if n < len(v.pageStarts) {
		v.vp.SetYOffset(v.pageStarts[n])
	}
}

// ToggleLayout switches between continuous scroll and one page at a time,
// staying on the page the reader was looking at.
func (v *Viewer) ToggleLayout() {
	page := v.CurrentPage()
	v.singlePage = !v.singlePage
	v.page = page
	v.recompose()
	v.GotoPage(page)
}

func (v *Viewer) GotoTop()    { v.vp.GotoTop() }
func (v *Viewer) GotoBottom() { v.vp.GotoBottom() }

func (v *Viewer) Wider() {
	w := v.textWidth
	if w == 0 {
		w = v.width
	}
	w += 8
	if v.width > 0 && w >= v.width {
		v.textWidth = 0 // back to fit
	} else {
		v.textWidth = w
	}
	v.recompose()
}

func (v *Viewer) Narrower() {
	w := v.textWidth
	if w == 0 {
		w = v.width
	}
	w -= 8
	if w < 20 {
		w = 20
	}
	v.textWidth = w
	v.recompose()
}

func (v *Viewer) FitWidth() {
	v.textWidth = 0
	v.recompose()
}

func (v *Viewer) TextWidth() int { return v.textWidth }

// SetTextWidth restores a remembered column width; 0 means fit.
func (v *Viewer) SetTextWidth(w int) {
	if w < 0 {
		w = 0
	}
	v.textWidth = w
	v.recompose()
}

// SetMatches installs find results and jumps to the first one.
func (v *Viewer) SetMatches(ms []render.Match) {
	v.matches = ms
	if len(ms) == 0 {
		v.current = -1
		v.recompose()
		return
	}
	v.current = 0
	v.recompose()
	v.jumpToMatch()
}

func (v *Viewer) ClearMatches() {
	v.matches = nil
	v.current = -1
	v.recompose()
}

func (v *Viewer) MatchCount() int { return len(v.matches) }

func (v *Viewer) CurrentMatch() (render.Match, int, bool) {
	if v.current < 0 || v.current >= len(v.matches) {
		return render.Match{}, 0, false
	}
	return v.matches[v.current], v.current, true
}

func (v *Viewer) NextMatch() {
	if len(v.matches) == 0 {
		return
	}
	v.current = (v.current + 1) % len(v.matches)
	v.recompose()
	v.jumpToMatch()
}

func (v *Viewer) PrevMatch() {
	if len(v.matches) == 0 {
		return
	}
	v.current--
	if v.current < 0 {
		v.current = len(v.matches) - 1
	}
	v.recompose()
	v.jumpToMatch()
}

func (v *Viewer) jumpToMatch() {
	m, _, ok := v.CurrentMatch()
	if !ok {
		return
	}
	if v.singlePage && v.page != m.Page {
		v.page = m.Page
		v.recompose()
	}
	offset := v.matchOffset(m)
	if offset < 0 {
		return
	}
	// leave a little context above the hit
	offset -= 2
	if offset < 0 {
		offset = 0
	}
	v.vp.SetYOffset(offset)
}

// matchOffset maps a match to a rendered line in the current composition,
// or -1 when the match is on a page that is not composed.
func (v *Viewer) matchOffset(m render.Match) int {
	if m.Page < 0 || m.Page >= len(v.lineIndex) {
		return -1
	}
	idx := v.lineIndex[m.Page]
	if idx == nil || m.Line < 0 || m.Line >= len(idx) {
		return -1
	}
	if v.singlePage {
		if m.Page != v.page {
			return -1
		}
		return idx[m.Line]
	}
	return v.pageStarts[m.Page] + idx[m.Line]
}

func (v *Viewer) wrapWidth() int {
	w := v.width
	if w <= 0 {
		w = 80
	}
	if v.textWidth > 0 && v.textWidth < w {
		w = v.textWidth
	}
	return w
}

// recompose rebuilds the viewport content for the current layout, width,
// and match set.
func (v *Viewer) recompose() {
	if len(v.pages) == 0 {
		v.vp.SetContent("")
		v.pageStarts = nil
		v.lineIndex = nil
		return
	}
	w := v.wrapWidth()
	v.lineIndex = make([][]int, len(v.pages))

	if v.singlePage {
		lines, idx := v.renderPage(v.page, w)
		v.lineIndex[v.page] = idx
		v.pageStarts = nil
		v.vp.SetContent(strings.Join(lines, "\n"))
		return
	}

	sep := v.styles.PageSep.Render(strings.Repeat("─", max(1, w)))
	var all []string
	v.pageStarts = make([]int, len(v.pages))
	for i := range v.pages {
		if i > 0 {
			all = append(all, sep)
		}
		v.pageStarts[i] = len(all)
		lines, idx := v.renderPage(i, w)
		v.lineIndex[i] = idx
		all = append(all, lines...)
	}
	v.vp.SetContent(strings.Join(all, "\n"))
}

// renderPage wraps one page's text and returns its rendered lines plus, for
// each original line, the rendered line it starts on.
func (v *Viewer) renderPage(page, width int) ([]string, []int) {
	src := strings.Split(strings.TrimRight(v.pages[page], "\n"), "\n")
	out := make([]string, 0, len(src))
	idx := make([]int, len(src))
	for li, line := range src {
		idx[li] = len(out)
		if style, ok := v.matchStyle(page, li); ok {
			line = style.Render(line)
		}
		wrapped := ansi.Wrap(line, width, "-")
		out = append(out, strings.Split(wrapped, "\n")...)
	}
	return out, idx
}

func (v *Viewer) matchStyle(page, line int) (lipgloss.Style, bool) {
	for i, m := range v.matches {
		if m.Page == page && m.Line == line {
			if i == v.current {
				return v.styles.MatchCurrent, true
			}
			return v.styles.Match, true
		}
	}
	return lipgloss.Style{}, false
}

// pageIndicator is what the header shows on the right.
func (v *Viewer) pageIndicator() string {
	if len(v.pages) == 0 {
		return ""
	}
	return fmt.Sprintf("page %d/%d", v.CurrentPage()+1, len(v.pages))
}
