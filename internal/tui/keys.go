package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Filter   key.Binding
	Todo     key.Binding
	Doing    key.Binding
	Done     key.Binding
	Cycle    key.Binding
	Collapse key.Binding
	Content  key.Binding
	Page     key.Binding
	Copy     key.Binding
	Export   key.Binding
	Help     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Todo:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "todo")),
		Doing:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "doing")),
		Done:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "done")),
		Cycle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "cycle status")),
		Collapse: key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "fold theme")),
		Content:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "content")),
		Page:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "page")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy key")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Cycle, k.Content, k.Page, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Collapse, k.Filter},
		{k.Todo, k.Doing, k.Done, k.Cycle},
		{k.Content, k.Page, k.Copy, k.Export},
		{k.Help, k.Back, k.Quit},
	}
}
