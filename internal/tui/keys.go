package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	logout    key.Binding
	info      key.Binding
	refresh   key.Binding
	newItem   key.Binding
	edit      key.Binding
	delete    key.Binding
	copy      key.Binding
	toggle    key.Binding
	toggleAll key.Binding
	filter    key.Binding
	role      key.Binding
	status    key.Binding
	sort      key.Binding
	mode      key.Binding
	timeRange key.Binding
	send      key.Binding
	recompose key.Binding
	yes       key.Binding
	no        key.Binding

	dashboard    key.Binding
	users        key.Binding
	chat         key.Binding
	timeline     key.Binding
	announcement key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	left:      key.NewBinding(key.WithKeys("left", "h")),
	right:     key.NewBinding(key.WithKeys("right", "l")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("ctrl+c")),
	logout:    key.NewBinding(key.WithKeys("ctrl+l")),
	info:      key.NewBinding(key.WithKeys("ctrl+v")),
	refresh:   key.NewBinding(key.WithKeys("r")),
	newItem:   key.NewBinding(key.WithKeys("n")),
	edit:      key.NewBinding(key.WithKeys("e")),
	delete:    key.NewBinding(key.WithKeys("d")),
	copy:      key.NewBinding(key.WithKeys("c")),
	toggle:    key.NewBinding(key.WithKeys(" ")),
	toggleAll: key.NewBinding(key.WithKeys("a")),
	filter:    key.NewBinding(key.WithKeys("/")),
	role:      key.NewBinding(key.WithKeys("f")),
	status:    key.NewBinding(key.WithKeys("s")),
	sort:      key.NewBinding(key.WithKeys("o")),
	mode:      key.NewBinding(key.WithKeys("b")),
	timeRange: key.NewBinding(key.WithKeys("t")),
	send:      key.NewBinding(key.WithKeys("ctrl+s")),
	recompose: key.NewBinding(key.WithKeys("ctrl+r")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n", "esc")),

	dashboard:    key.NewBinding(key.WithKeys("f1")),
	users:        key.NewBinding(key.WithKeys("f2")),
	chat:         key.NewBinding(key.WithKeys("f3")),
	timeline:     key.NewBinding(key.WithKeys("f4")),
	announcement: key.NewBinding(key.WithKeys("f5")),
}
