package state

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings of the watch view.
type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	MarkRead       key.Binding
	MarkAllRead    key.Binding
	Dismiss        key.Binding
	Clear          key.Binding
	Search         key.Binding
	HideDismissed  key.Binding
	DismissToasts  key.Binding
	PauseToasts    key.Binding
	HoverToast     key.Binding
	DismissCritical key.Binding
	CriticalAction key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:             key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:           key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		MarkRead:       key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "mark read")),
		MarkAllRead:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "mark all read")),
		Dismiss:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss")),
		Clear:          key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Search:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		HideDismissed:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "hide dismissed")),
		DismissToasts:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "close toasts")),
		PauseToasts:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause toasts")),
		HoverToast:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hold top toast")),
		DismissCritical: key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("esc", "dismiss critical")),
		CriticalAction: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "critical action"),
		),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MarkRead, k.Dismiss, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.HideDismissed},
		{k.MarkRead, k.MarkAllRead, k.Dismiss, k.Clear},
		{k.DismissToasts, k.PauseToasts, k.HoverToast},
		{k.DismissCritical, k.CriticalAction, k.Help, k.Quit},
	}
}
