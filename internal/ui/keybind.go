package ui

import (
	"slices"
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"heartgate/internal/card"
)

// KeybindRegistry maps keys to commands, optionally scoped to screens.
// Keys use tea.KeyMsg.String() notation: "q", "esc", "ctrl+c".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	screens      map[string][]card.Screen // nil/empty = applies to all screens
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		screens:      make(map[string][]card.Screen),
	}
}

// Bind registers a key for every screen. Overwrites any existing binding.
func (r *KeybindRegistry) Bind(k string, cmd tea.Cmd, desc string) {
	r.BindForScreens(k, cmd, desc, nil)
}

// BindForScreens registers a key that only applies on the given screens.
// If screens is empty, the binding applies everywhere.
func (r *KeybindRegistry) BindForScreens(k string, cmd tea.Cmd, desc string, screens []card.Screen) {
	r.bindings[k] = cmd
	if desc != "" {
		r.descriptions[k] = desc
	}
	if len(screens) > 0 {
		r.screens[k] = screens
	} else {
		delete(r.screens, k)
	}
}

// Lookup returns the command bound to k on screen, or nil.
func (r *KeybindRegistry) Lookup(k string, screen card.Screen) tea.Cmd {
	cmd, ok := r.bindings[k]
	if !ok || !r.appliesTo(k, screen) {
		return nil
	}
	return cmd
}

// Hints returns key -> description for bindings active on screen.
// Bindings without a description are left out.
func (r *KeybindRegistry) Hints(screen card.Screen) map[string]string {
	out := make(map[string]string)
	for k, cmd := range r.bindings {
		if cmd == nil || !r.appliesTo(k, screen) {
			continue
		}
		if d := r.descriptions[k]; d != "" {
			out[k] = d
		}
	}
	return out
}

func (r *KeybindRegistry) appliesTo(k string, screen card.Screen) bool {
	screens, ok := r.screens[k]
	if !ok || len(screens) == 0 {
		return true
	}
	return slices.Contains(screens, screen)
}

// KeyMap implements help.KeyMap over the registry for one screen, plus the
// screen's own view-level bindings.
type KeyMap struct {
	registry *KeybindRegistry
	screen   card.Screen
	extra    []key.Binding
}

// NewKeyMap creates a KeyMap for screen.
func NewKeyMap(registry *KeybindRegistry, screen card.Screen, extra ...key.Binding) help.KeyMap {
	return &KeyMap{registry: registry, screen: screen, extra: extra}
}

// ShortHelp returns the view bindings followed by the registry bindings
// sorted by key.
func (km *KeyMap) ShortHelp() []key.Binding {
	bindings := append([]key.Binding(nil), km.extra...)
	if km.registry == nil {
		return bindings
	}
	hints := km.registry.Hints(km.screen)
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, hints[k]),
		))
	}
	return bindings
}

// FullHelp returns a single column with the same bindings as ShortHelp.
func (km *KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}
