package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pathfinder key.Binding
	Center     key.Binding
	Next       key.Binding
	Prev       key.Binding
	Click      key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Reset      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Pathfinder: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pathfinder"),
	),
	Center: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "center node"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next node"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev node"),
	),
	Click: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "reveal"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "pan up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "pan down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "pan left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "pan right"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Pathfinder, k.Next, k.Center, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Click, k.Pathfinder, k.Next, k.Prev},
		{k.Center, k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Help, k.Quit},
	}
}
