package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	ZoomIn, ZoomOut       key.Binding
	Sidebar, Open         key.Binding
	Paste, Attrs          key.Binding
	Inspect, Close        key.Binding
	Layers                key.Binding
	Points, Lines, Polys  key.Binding
	Help, Quit            key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "pan up")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "pan down")),
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "pan left")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "pan right")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Sidebar: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "files")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Paste:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste WKT")),
		Attrs:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attrs")),
		Inspect: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Layers:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "layers")),
		Points:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "points")),
		Lines:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "lines")),
		Polys:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "polygons")),
		Help:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Sidebar, k.Open, k.Paste, k.Attrs, k.Inspect, k.Close, k.Layers, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.ZoomIn, k.ZoomOut},
		{k.Sidebar, k.Open, k.Paste, k.Attrs, k.Inspect, k.Close},
		{k.Layers, k.Points, k.Lines, k.Polys, k.Help, k.Quit},
	}
}
