package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit         key.Binding
	Help         key.Binding
	Tab          key.Binding
	Enter        key.Binding
	Back         key.Binding
	Refresh      key.Binding
	Search       key.Binding
	Filter       key.Binding
	Stats        key.Binding
	SortScore    key.Binding
	SortDate     key.Binding
	SuccessOnly  key.Binding
	FailuresOnly key.Binding
	ShowAll      key.Binding
	ExportJSON   key.Binding
	ExportPDF    key.Binding
	ExportYAML   key.Binding
	ToggleAll    key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
}

var Keys = KeyMap{
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Tab:          key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
	Enter:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
	Stats:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "statistics")),
	SortScore:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sort by score")),
	SortDate:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "sort by date")),
	SuccessOnly:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "success only")),
	FailuresOnly: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "failures only")),
	ShowAll:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "show all")),
	ExportJSON:   key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "export json")),
	ExportPDF:    key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "export pdf")),
	ExportYAML:   key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "export yaml")),
	ToggleAll:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "toggle details")),
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	PageUp:       key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:     key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
}
