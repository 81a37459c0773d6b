package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// findBar is the search overlay. The shell toggles its visibility; the bar
// itself only owns the query input and the result summary.
type findBar struct {
	input   textinput.Model
	styles  Styles
	total   int
	current int
	ran     bool
}

func newFindBar(styles Styles) findBar {
	ti := textinput.New()
	ti.Placeholder = "find in document"
	ti.Prompt = "/ "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 128
	ti.Width = 32
	return findBar{input: ti, styles: styles}
}

func (f *findBar) Focus() tea.Cmd { return f.input.Focus() }

func (f *findBar) Blur() { f.input.Blur() }

func (f *findBar) Focused() bool { return f.input.Focused() }

func (f *findBar) Reset() {
	f.input.Reset()
	f.total = 0
	f.current = 0
	f.ran = false
}

func (f *findBar) Value() string { return f.input.Value() }

func (f *findBar) SetResult(current, total int) {
	f.current = current
	f.total = total
	f.ran = true
}

func (f *findBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f findBar) view() string {
	summary := "enter to search"
	if f.ran {
		if f.total == 0 {
			summary = "no matches"
		} else {
			summary = fmt.Sprintf("%d/%d  n/N to step", f.current+1, f.total)
		}
	}
	return f.input.View() + "\n" + f.styles.FooterDesc.Render(summary)
}
