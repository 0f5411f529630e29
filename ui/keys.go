package ui

import "github.com/charmbracelet/bubbles/key"

type browseKeys struct {
	Up          key.Binding
	Down        key.Binding
	Search      key.Binding
	ClearFilter key.Binding
	Run         key.Binding
	Add         key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	Confirm     key.Binding
	Deny        key.Binding
}

func newBrowseKeys() browseKeys {
	return browseKeys{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearFilter: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
		Run:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
		Confirm:     key.NewBinding(key.WithKeys("y", "Y")),
		Deny:        key.NewBinding(key.WithKeys("n", "N", "esc")),
	}
}

func (k browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Search, k.Add, k.Edit, k.Delete, k.Quit}
}

func (k browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Up, k.Down, k.ClearFilter}}
}

type formKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func newFormKeys() formKeys {
	return formKeys{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous")),
		Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Save, k.Cancel}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
