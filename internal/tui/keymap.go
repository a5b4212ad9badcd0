package tui

import (
	"strings"
	"unicode"

	"charm.land/bubbles/v2/key"
)

// KeyConfig overrides single bindings. Blank fields keep the default key.
type KeyConfig struct {
	PickUp  string
	Journal string
	CopyID  string
	Reset   string
}

// keyMap represents key map data used by this package.
type keyMap struct {
	quit       key.Binding
	toggleHelp key.Binding
	moveLeft   key.Binding
	moveRight  key.Binding
	moveUp     key.Binding
	moveDown   key.Binding
	pickUp     key.Binding
	drop       key.Binding
	cancel     key.Binding
	journal    key.Binding
	copyID     key.Binding
	reset      key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "container left")),
		moveRight:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "container right")),
		moveUp:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "item up")),
		moveDown:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "item down")),
		pickUp:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pick up")),
		drop:       key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter/space", "drop")),
		cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		journal:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "drag journal")),
		copyID:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy item id")),
		reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset board")),
	}
}

// applyConfig applies configured overrides on top of the defaults.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.pickUp, cfg.PickUp, "space", "pick up")
	configureBinding(&k.journal, cfg.Journal, "g", "drag journal")
	configureBinding(&k.copyID, cfg.CopyID, "y", "copy item id")
	configureBinding(&k.reset, cfg.Reset, "r", "reset board")
}

// configureBinding replaces the keys of b when raw is set.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	keys, helpKey := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(helpKey, desc)
}

// parseBindingKeys turns one configured key into matcher keys plus help text.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	if raw == "space" || raw == " " {
		return []string{" ", "space"}, "space"
	}
	runes := []rune(raw)
	if len(runes) == 1 {
		r := runes[0]
		if unicode.IsUpper(r) {
			return []string{raw, "shift+" + string(unicode.ToLower(r))}, raw
		}
		return []string{raw}, raw
	}
	return []string{strings.ToLower(raw)}, raw
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.pickUp, k.drop, k.cancel, k.journal, k.reset, k.toggleHelp, k.quit}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown},
		{k.pickUp, k.drop, k.cancel},
		{k.journal, k.copyID, k.reset, k.toggleHelp, k.quit},
	}
}
