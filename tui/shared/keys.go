package shared

import "github.com/charmbracelet/bubbles/key"

// KeyMap uses control chords for actions because plain characters must reach
// the active text input.
type KeyMap struct {
	Advance  key.Binding
	Retreat  key.Binding
	NextStep key.Binding
	PrevStep key.Binding
	Review   key.Binding
	Validate key.Binding
	Export   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
}

var Keys = KeyMap{
	Advance: key.NewBinding(
		key.WithKeys("tab", "enter"),
		key.WithHelp("tab/enter", "next field"),
	),
	Retreat: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "previous field"),
	),
	NextStep: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("C-n", "next step"),
	),
	PrevStep: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("C-p", "previous step"),
	),
	Review: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "go to review"),
	),
	Validate: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "run validation"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("C-e", "export package"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("C-g", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Retreat, k.Review, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Advance, k.Retreat, k.NextStep, k.PrevStep},
		{k.Review, k.Validate, k.Export},
		{k.Help, k.Escape, k.Quit},
	}
}
