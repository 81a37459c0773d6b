package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Dismiss   key.Binding
	Find      key.Binding
	Save      key.Binding
	Share     key.Binding
	Print     key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Layout    key.Binding
	Wider     key.Binding
	Narrower  key.Binding
	FitWidth  key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
	Open      key.Binding
	Remove    key.Binding
	Confirm   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Find:      key.NewBinding(key.WithKeys("/", "f"), key.WithHelp("/", "find")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save a copy")),
		Share:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "share")),
		Print:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "print")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev page")),
		Top:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Layout:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "layout")),
		Wider:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "wider")),
		Narrower:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrower")),
		FitWidth:  key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "fit width")),
		NextMatch: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Remove:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	}
}

// viewerBindings is what the footer advertises while reading.
func (k keyMap) viewerBindings(singlePage bool) []key.Binding {
	out := []key.Binding{k.Find, k.Share, k.Save, k.Print}
	if singlePage {
		out = append(out, k.NextPage, k.PrevPage)
	}
	out = append(out, k.Layout, k.Quit)
	return out
}

func (k keyMap) findBindings() []key.Binding {
	return []key.Binding{k.Confirm, k.NextMatch, k.PrevMatch, k.Dismiss}
}

func (k keyMap) saveBindings() []key.Binding {
	return []key.Binding{k.Confirm, k.Dismiss}
}

func (k keyMap) pickerBindings() []key.Binding {
	return []key.Binding{k.Open, k.Remove, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit"))}
}
