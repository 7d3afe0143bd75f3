package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings; which ones apply depends on the phase
type KeyMap struct {
	Start   key.Binding
	ResetBR key.Binding

	ChipSmall key.Binding
	ChipMid   key.Binding
	ChipBig   key.Binding
	ClearBet  key.Binding
	Deal      key.Binding
	Rebet     key.Binding

	TakeIns    key.Binding
	DeclineIns key.Binding

	Hit    key.Binding
	Stand  key.Binding
	Double key.Binding
	Split  key.Binding

	NewRound key.Binding
	Lobby    key.Binding
	Restart  key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sit down")),
		ResetBR: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "reset bankroll")),

		ChipSmall: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "bet 5")),
		ChipMid:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "bet 25")),
		ChipBig:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "bet 100")),
		ClearBet:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear bet")),
		Deal:      key.NewBinding(key.WithKeys("d", "enter"), key.WithHelp("d", "deal")),
		Rebet:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rebet & deal")),

		TakeIns:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "take insurance")),
		DeclineIns: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "decline")),

		Hit:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hit")),
		Stand:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stand")),
		Double: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "double")),
		Split:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "split")),

		NewRound: key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "next round")),
		Lobby:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lobby")),
		Restart:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "restart session")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
