package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Search        key.Binding
	Blur          key.Binding
	Submit        key.Binding
	Clear         key.Binding
	PrevPage      key.Binding
	NextPage      key.Binding
	Up            key.Binding
	Down          key.Binding
	Favorite      key.Binding
	FavoritesOnly key.Binding
	NextUser      key.Binding
	Open          key.Binding
	Dismiss       key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search now"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear search"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next page"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f/space", "favorite"),
		),
		FavoritesOnly: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "favorites only"),
		),
		NextUser: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "next user"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "description"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss error"),
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
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Favorite, k.FavoritesOnly, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Search, k.Submit, k.Blur, k.Clear},
		{k.Favorite, k.FavoritesOnly, k.NextUser},
		{k.Open, k.Dismiss, k.Help, k.Quit},
	}
}
