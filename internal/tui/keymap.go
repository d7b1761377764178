package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/xfind/internal/core/action"
)

type keyMap struct {
	Toggle key.Binding
	Close  key.Binding
	Rescan key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "find file")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Rescan: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "rescan")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// shortHelp renders the bindings available while the finder is closed.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Rescan, k.Quit}
}

// actionFor returns the workspace action bound to msg, if any.
func (k keyMap) actionFor(msg tea.KeyPressMsg) (action.Action, bool) {
	if key.Matches(msg, k.Toggle) {
		return action.NewToggleFileFinder(), true
	}
	return nil, false
}
