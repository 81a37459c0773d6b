package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
)

// pickerItem is one recently opened document.
type pickerItem struct {
	Path  string
	Title string
	Page  int
}

type pickerAction int

const (
	pickerNone pickerAction = iota
	pickerMoved
	pickerSelected
	pickerRemoved
	pickerCancelled
)

type pickerResult struct {
	Action pickerAction
	Item   pickerItem
}

// picker filters recents as the user types. Filtering gates on subsequence
// match; ranking uses normalized edit distance so near-exact titles win.
type picker struct {
	items    []pickerItem
	filtered []pickerItem
	query    string
	cursor   int
}

func newPicker(items []pickerItem) *picker {
	p := &picker{}
	p.SetItems(items)
	return p
}

func (p *picker) SetItems(items []pickerItem) {
	p.items = append([]pickerItem(nil), items...)
	p.rebuild()
}

func (p *picker) SetQuery(q string) {
	p.query = q
	p.rebuild()
}

func (p *picker) Query() string { return p.query }

func (p *picker) Items() []pickerItem {
	return append([]pickerItem(nil), p.filtered...)
}

func (p *picker) Current() (pickerItem, bool) {
	if len(p.filtered) == 0 {
		return pickerItem{}, false
	}
	idx := p.cursor
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.filtered) {
		idx = len(p.filtered) - 1
	}
	return p.filtered[idx], true
}

func (p *picker) HandleKey(msg tea.KeyMsg) pickerResult {
	switch msg.String() {
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
			return pickerResult{Action: pickerMoved}
		}
		return pickerResult{Action: pickerNone}
	case "down", "ctrl+n":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
			return pickerResult{Action: pickerMoved}
		}
		return pickerResult{Action: pickerNone}
	case "enter":
		item, ok := p.Current()
		if !ok {
			return pickerResult{Action: pickerNone}
		}
		return pickerResult{Action: pickerSelected, Item: item}
	case "ctrl+x":
		item, ok := p.Current()
		if !ok {
			return pickerResult{Action: pickerNone}
		}
		return pickerResult{Action: pickerRemoved, Item: item}
	case "esc":
		return pickerResult{Action: pickerCancelled}
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(p.query) > 0 {
			p.SetQuery(p.query[:len(p.query)-1])
		}
	case tea.KeySpace:
		p.SetQuery(p.query + " ")
	case tea.KeyRunes:
		p.SetQuery(p.query + string(msg.Runes))
	}
	return pickerResult{Action: pickerNone}
}

type scoredItem struct {
	item  pickerItem
	score float64
	index int
}

func (p *picker) rebuild() {
	q := strings.TrimSpace(p.query)
	scored := make([]scoredItem, 0, len(p.items))
	for idx, item := range p.items {
		search := item.Title + " " + item.Path
		if !subsequenceMatch(search, q) {
			continue
		}
		scored = append(scored, scoredItem{item: item, score: similarity(item.Title, q), index: idx})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})
	p.filtered = p.filtered[:0]
	for _, row := range scored {
		p.filtered = append(p.filtered, row.item)
	}

	maxIdx := len(p.filtered) - 1
	if maxIdx < 0 {
		p.cursor = 0
	} else if p.cursor > maxIdx {
		p.cursor = maxIdx
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func subsequenceMatch(label, query string) bool {
	if query == "" {
		return true
	}
	label = strings.ToLower(label)
	query = strings.ToLower(query)
	j := 0
	for i := 0; i < len(label) && j < len(query); i++ {
		if label[i] == query[j] {
			j++
		}
	}
	return j == len(query)
}

// similarity is 1 for an exact match and approaches 0 as the strings drift
// apart. An empty query ranks everything equal, keeping recency order.
func similarity(a, b string) float64 {
	if b == "" {
		return 0
	}
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	dist := levenshtein.ComputeDistance(a, b)
	maxlen := len(a)
	if len(b) > maxlen {
		maxlen = len(b)
	}
	if maxlen == 0 {
		return 1
	}
	return 1 - float64(dist)/float64(maxlen)
}

func (p *picker) view(s Styles, width, height int) string {
	head := s.PopupTitle.Render("Open a recent document")
	query := s.Prompt.Render("> ") + p.query + s.Prompt.Render("▌")

	rows := make([]string, 0, len(p.filtered))
	for i, it := range p.filtered {
		cursor := "  "
		if i == p.cursor {
			cursor = s.PickerCursor.Render("▶ ")
		}
		meta := it.Path
		if it.Page > 0 {
			meta += fmt.Sprintf("  (page %d)", it.Page+1)
		}
		rows = append(rows, cursor+s.PickerLabel.Render(it.Title)+"  "+s.PickerMeta.Render(meta))
	}
	if len(rows) == 0 {
		if len(p.items) == 0 {
			rows = append(rows, s.PickerMeta.Render("  nothing opened yet, run with a file path"))
		} else {
			rows = append(rows, s.PickerMeta.Render("  no titles match"))
		}
	}

	body := head + "\n\n" + query + "\n\n" + strings.Join(rows, "\n")
	return clipHeight(body, height)
}
