package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// saveDialog collects the destination name for save-a-copy.
type saveDialog struct {
	input  textinput.Model
	styles Styles
	dir    string
}

func newSaveDialog(styles Styles, dir string) saveDialog {
	ti := textinput.New()
	ti.Placeholder = "file name"
	ti.Prompt = "> "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 255
	ti.Width = 40
	return saveDialog{input: ti, styles: styles, dir: dir}
}

// Open pre-fills the name field and focuses it.
func (d *saveDialog) Open(defaultName string) tea.Cmd {
	d.input.SetValue(defaultName)
	d.input.CursorEnd()
	return d.input.Focus()
}

func (d *saveDialog) Value() string { return d.input.Value() }

func (d *saveDialog) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

func (d saveDialog) view() string {
	out := d.styles.PopupTitle.Render("Save a copy") + "\n\n"
	out += d.input.View() + "\n\n"
	out += d.styles.FooterDesc.Render("to " + d.dir + "  ·  .pdf is added if missing") + "\n"
	out += d.styles.FooterDesc.Render("enter save · esc cancel")
	return out
}
